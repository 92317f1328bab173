package configure

import (
	"strings"

	"github.com/rotisserie/eris"
)

const (
	// DefaultPrefix is used as the install prefix unless --prefix is given.
	DefaultPrefix = "/usr/local"

	// DefaultBuildDir is used unless --builddir is given.
	DefaultBuildDir = "build"
)

// ErrHelpRequested is returned by Parse when -h or --help was passed.
var ErrHelpRequested = eris.New("help requested")

// featureDefaults lists the feature toggles seeded as disabled before any
// options are applied, in the order they appear on the command line.
var featureDefaults = []string{
	"WITH_DEBUG",
	"WITH_JEMALLOC",
	"WITH_PERFTOOLS",
	"WITH_PERFTOOLS_DEBUG",
	"WITH_TESTS",
}

// Translator accumulates cache entries while it walks the argument vector.
// The entry list is append-only; options that override a previously written
// value append a new entry with the same name.
type Translator struct {
	Entries   EntryList
	Prefix    string
	SrcDir    string
	BuildDir  string
	Generator string
	DryRun    bool

	datadirSet    bool
	sysconfdirSet bool
	presets       map[string]presetArgs
}

// NewTranslator returns a translator with the documented defaults already
// seeded into the entry list.
func NewTranslator() *Translator {
	t := &Translator{
		Prefix:   DefaultPrefix,
		BuildDir: DefaultBuildDir,
	}

	t.Entries.Append("CMAKE_INSTALL_PREFIX", TypePath, t.Prefix)
	t.appendPrefixPaths()

	for _, name := range featureDefaults {
		t.Entries.Append(name, TypeBool, "OFF")
	}

	return t
}

// appendPrefixPaths appends the three install paths derived from the current
// prefix. Called once while seeding and again every time --prefix is applied
// so the new entries override the earlier ones.
func (t *Translator) appendPrefixPaths() {
	t.Entries.Append("INSTALL_BINDIR", TypePath, t.Prefix+"/bin")
	t.Entries.Append("INSTALL_LIBDIR", TypePath, t.Prefix+"/lib")
	t.Entries.Append("INSTALL_INCLUDEDIR", TypePath, t.Prefix+"/include")
}

// Parse consumes the full argument vector in order. Any token that doesn't
// match a known option aborts with an error; nothing is ever applied
// partially since the process exits in that case.
func (t *Translator) Parse(args []string) error {
	for _, arg := range args {
		err := t.handleToken(arg, true)
		if err != nil {
			return err
		}
	}

	// These defaults depend on the final prefix, so they can only be
	// applied once the whole argument vector has been consumed.
	if !t.datadirSet {
		t.Entries.Append("DATA_DIR", TypePath, t.Prefix+"/var")
	}

	if !t.sysconfdirSet {
		t.Entries.Append("SYSCONF_DIR", TypePath, t.Prefix+"/etc")
	}

	return nil
}

func (t *Translator) handleToken(arg string, allowPresets bool) error {
	name := arg
	value := ""
	hasValue := false

	pos := strings.Index(arg, "=")
	if pos > -1 {
		name = arg[:pos]
		value = arg[pos+1:]
		hasValue = true
	}

	needsValue := func() error {
		if !hasValue || value == "" {
			return eris.Errorf("Option %s requires a value, see --help", name)
		}
		return nil
	}
	noValue := func() error {
		if hasValue {
			return eris.Errorf("Option %s doesn't accept a value, see --help", name)
		}
		return nil
	}

	switch name {
	case "-h", "--help":
		return ErrHelpRequested

	case "--prefix":
		if err := needsValue(); err != nil {
			return err
		}

		t.Prefix = value
		t.Entries.Append("CMAKE_INSTALL_PREFIX", TypePath, value)
		t.appendPrefixPaths()

	case "--datadir":
		if err := needsValue(); err != nil {
			return err
		}

		t.datadirSet = true
		t.Entries.Append("DATA_DIR", TypePath, value)

	case "--sysconfdir":
		if err := needsValue(); err != nil {
			return err
		}

		t.sysconfdirSet = true
		t.Entries.Append("SYSCONF_DIR", TypePath, value)

	case "--build-type":
		if err := needsValue(); err != nil {
			return err
		}

		t.Entries.Append("CMAKE_BUILD_TYPE", TypeString, value)
		if strings.EqualFold(value, "debug") {
			t.Entries.Append("WITH_DEBUG", TypeBool, "ON")
		}

	case "--with-debug":
		if err := noValue(); err != nil {
			return err
		}

		t.Entries.Append("WITH_DEBUG", TypeBool, "ON")

	case "--with-jemalloc":
		if err := needsValue(); err != nil {
			return err
		}

		t.Entries.Append("JEMALLOC_ROOT_DIR", TypePath, value)
		t.Entries.Append("WITH_JEMALLOC", TypeBool, "ON")

	case "--with-perftools":
		if err := noValue(); err != nil {
			return err
		}

		t.Entries.Append("WITH_PERFTOOLS", TypeBool, "ON")

	case "--with-perftools-debug":
		if err := noValue(); err != nil {
			return err
		}

		t.Entries.Append("WITH_PERFTOOLS_DEBUG", TypeBool, "ON")
		t.Entries.Append("WITH_PERFTOOLS", TypeBool, "ON")

	case "--with-tests":
		if err := noValue(); err != nil {
			return err
		}

		t.Entries.Append("WITH_TESTS", TypeBool, "ON")

	case "--builddir":
		if err := needsValue(); err != nil {
			return err
		}

		t.BuildDir = value

	case "--srcdir":
		if err := needsValue(); err != nil {
			return err
		}

		t.SrcDir = value

	case "--generator":
		if err := needsValue(); err != nil {
			return err
		}

		t.Generator = value

	case "--define":
		if err := needsValue(); err != nil {
			return err
		}

		return t.handleDefine(value)

	case "--unset":
		if err := needsValue(); err != nil {
			return err
		}

		t.Entries.AppendUnset(value)

	case "--preset":
		if err := needsValue(); err != nil {
			return err
		}

		if !allowPresets {
			return eris.Errorf("Preset %s references another preset, which isn't supported", value)
		}

		return t.applyPreset(value)

	case "--dry-run":
		if err := noValue(); err != nil {
			return err
		}

		t.DryRun = true

	default:
		return eris.Errorf("Unknown option %s, run configure --help for a list of supported options", name)
	}

	return nil
}

// handleDefine appends a verbatim cache entry given as NAME[:TYPE]=VALUE.
// The type defaults to STRING, the value may be empty.
func (t *Translator) handleDefine(def string) error {
	pos := strings.Index(def, "=")
	if pos < 0 {
		return eris.Errorf("Option --define expects NAME[:TYPE]=VALUE but got %s", def)
	}

	entryName := def[:pos]
	entryValue := def[pos+1:]
	entryType := TypeString

	typePos := strings.Index(entryName, ":")
	if typePos > -1 {
		switch EntryType(strings.ToUpper(entryName[typePos+1:])) {
		case TypePath:
			entryType = TypePath
		case TypeString:
			entryType = TypeString
		case TypeBool:
			entryType = TypeBool
		default:
			return eris.Errorf("Unsupported cache entry type %s in --define=%s", entryName[typePos+1:], def)
		}

		entryName = entryName[:typePos]
	}

	if entryName == "" {
		return eris.Errorf("Option --define expects NAME[:TYPE]=VALUE but got %s", def)
	}

	t.Entries.Append(entryName, entryType, entryValue)
	return nil
}

// SourceDir returns the configured source directory. If --srcdir wasn't
// given, the nearest ancestor of the working directory that contains a
// CMakeLists.txt file is used.
func (t *Translator) SourceDir() (string, error) {
	if t.SrcDir != "" {
		return t.SrcDir, nil
	}

	root, err := FindSourceRoot()
	if err != nil {
		return "", err
	}

	t.SrcDir = root
	return root, nil
}

// CommandLine assembles the full downstream invocation: the cmake binary,
// the optional generator selector, every accumulated cache entry in
// insertion order and finally the source directory.
func (t *Translator) CommandLine(cmakeBin string) ([]string, error) {
	srcDir, err := t.SourceDir()
	if err != nil {
		return nil, err
	}

	argv := []string{cmakeBin}
	if t.Generator != "" {
		argv = append(argv, "-G", t.Generator)
	}

	argv = append(argv, t.Entries.Args()...)
	return append(argv, srcDir), nil
}

// Usage returns the full option listing. It's printed to stderr since a help
// request still exits with a non-zero status.
func Usage() string {
	return `Usage: configure [option...]

Translates the given options into a CMake cache invocation, prepares the
build directory and runs CMake against the source tree.

Options:
  --prefix=PATH               install prefix (default ` + DefaultPrefix + `)
  --datadir=PATH              runtime data directory (default PREFIX/var)
  --sysconfdir=PATH           configuration directory (default PREFIX/etc)
  --build-type=TYPE           CMake build type; "debug" also enables WITH_DEBUG
  --with-debug                build with debugging support
  --with-jemalloc=PATH        use the jemalloc installation at PATH
  --with-perftools            build with gperftools support
  --with-perftools-debug      build with the gperftools debug allocator
  --with-tests                build the test suite
  --builddir=DIR              build directory (default ` + DefaultBuildDir + `)
  --srcdir=DIR                source tree (default: nearest CMakeLists.txt)
  --generator=NAME            CMake generator to use, e.g. Ninja
  --define=NAME[:TYPE]=VALUE  pass an extra cache entry verbatim
  --unset=NAME                remove NAME from CMake's cache
  --preset=NAME               apply the named preset from configure.yml
  --dry-run                   print the CMake command line and exit
  -h, --help                  print this message

Environment:
  CMAKE                       path to the cmake binary (default: search PATH)
  CC, CXX                     compiler selection, passed through to CMake
  CFLAGS, CXXFLAGS, LDFLAGS   extra compiler and linker flags, passed through

Subcommands:
  clean                       remove the generated configuration
  compile-db                  copy compile_commands.json into the source tree
`
}
