package configure

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
)

// FindSourceRoot walks from the working directory upwards until it finds a
// directory containing a CMakeLists.txt file.
func FindSourceRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", eris.Wrap(err, "Failed to retrieve the current working directory")
	}

	path := wd
	for {
		listPath := filepath.Join(path, "CMakeLists.txt")
		_, err := os.Stat(listPath)
		if err == nil {
			return path, nil
		}

		if !eris.Is(err, os.ErrNotExist) {
			return "", eris.Wrapf(err, "Failed to check %s", listPath)
		}

		nextPath := filepath.Dir(path)
		if path == nextPath {
			break
		}
		path = nextPath
	}

	return "", eris.New("No CMakeLists.txt found; pass --srcdir to point at the source tree")
}
