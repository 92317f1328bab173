package configure

import (
	"reflect"
	"testing"
)

func TestEntryArg(t *testing.T) {
	cases := []struct {
		entry Entry
		want  string
	}{
		{Entry{Name: "CMAKE_INSTALL_PREFIX", Type: TypePath, Value: "/opt/app"}, "-DCMAKE_INSTALL_PREFIX:PATH=/opt/app"},
		{Entry{Name: "CMAKE_BUILD_TYPE", Type: TypeString, Value: "Debug"}, "-DCMAKE_BUILD_TYPE:STRING=Debug"},
		{Entry{Name: "WITH_DEBUG", Type: TypeBool, Value: "ON"}, "-DWITH_DEBUG:BOOL=ON"},
		{Entry{Name: "CMAKE_CXX_FLAGS", Type: TypeString, Value: ""}, "-DCMAKE_CXX_FLAGS:STRING="},
		{Entry{Name: "WITH_DEBUG", Unset: true}, "-UWITH_DEBUG"},
	}

	for _, tc := range cases {
		got := tc.entry.Arg()
		if got != tc.want {
			t.Errorf("Arg() = %q, want %q", got, tc.want)
		}
	}
}

func TestEntryList_AppendOnly(t *testing.T) {
	var list EntryList
	list.Append("WITH_DEBUG", TypeBool, "OFF")
	list.Append("WITH_DEBUG", TypeBool, "ON")
	list.AppendUnset("WITH_DEBUG")

	want := []string{
		"-DWITH_DEBUG:BOOL=OFF",
		"-DWITH_DEBUG:BOOL=ON",
		"-UWITH_DEBUG",
	}
	if !reflect.DeepEqual(list.Args(), want) {
		t.Fatalf("duplicate entries must be kept in insertion order, got %v", list.Args())
	}
}
