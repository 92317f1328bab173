package configure

import (
	"context"
	"errors"
	"io/ioutil"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

const (
	// CacheFileName is the cache file CMake writes into the build directory.
	CacheFileName = "CMakeCache.txt"

	// StatusFileName is the re-invocation script written after a successful run.
	StatusFileName = "config.status"
)

// FindCMake locates the cmake binary. The CMAKE environment variable takes
// precedence over a PATH lookup.
func FindCMake() (string, error) {
	if bin := os.Getenv("CMAKE"); bin != "" {
		return bin, nil
	}

	path, err := exec.LookPath("cmake")
	if err != nil {
		return "", eris.New("cmake was not found on your PATH. Please install CMake (https://cmake.org/) or point the CMAKE environment variable at the binary and run configure again.")
	}

	return path, nil
}

// PrepareBuildDir creates the build directory and removes a stale cache file
// left behind by a previous configuration. Mixing entries from two runs in
// one cache file leads to an inconsistent configuration, so the old file has
// to go before CMake runs.
func PrepareBuildDir(ctx context.Context, buildDir string) error {
	err := os.MkdirAll(buildDir, 0770)
	if err != nil {
		return eris.Wrapf(err, "Failed to create build directory %s", buildDir)
	}

	cachePath := filepath.Join(buildDir, CacheFileName)
	_, err = os.Stat(cachePath)
	if err == nil {
		log(ctx).Info().Str("path", cachePath).Msg("Removing stale cache file")

		err = os.Remove(cachePath)
		if err != nil {
			return eris.Wrapf(err, "Failed to remove stale cache file %s", cachePath)
		}
	} else if !eris.Is(err, os.ErrNotExist) {
		return eris.Wrapf(err, "Failed to check %s", cachePath)
	}

	return nil
}

// Run invokes the assembled command line inside the build directory with
// stdio forwarded. A non-zero exit of the child is returned as the plain
// *exec.ExitError so the caller can propagate the code.
func Run(ctx context.Context, buildDir string, argv []string) error {
	log(ctx).Info().Msg(strings.Join(argv, " "))

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = buildDir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return err
		}

		return eris.Wrapf(err, "Failed to run %s", argv[0])
	}

	return nil
}

// WriteStatusScript records the original command line as an executable shell
// script in the build directory so the same configuration can be repeated by
// running it.
func WriteStatusScript(ctx context.Context, buildDir string, original []string) error {
	var buffer strings.Builder
	buffer.WriteString("#!/bin/sh\n")
	buffer.WriteString("# Re-runs the last configure invocation.\n")

	parts := make([]string, len(original))
	for idx, item := range original {
		parts[idx] = shellQuote(item)
	}

	buffer.WriteString("exec " + strings.Join(parts, " ") + " \"$@\"\n")

	statusPath := filepath.Join(buildDir, StatusFileName)
	err := ioutil.WriteFile(statusPath, []byte(buffer.String()), 0755)
	if err != nil {
		return eris.Wrapf(err, "Failed to write to %s", statusPath)
	}

	// WriteFile's mode is subject to the umask and doesn't apply if the file
	// already existed, fix it up explicitly.
	err = os.Chmod(statusPath, 0755)
	if err != nil {
		return eris.Wrapf(err, "Failed to mark %s as executable", statusPath)
	}

	log(ctx).Info().Str("path", statusPath).Msg("Recorded invocation")
	return nil
}

// shellQuote wraps the given string in single quotes unless it only contains
// characters the shell treats literally.
func shellQuote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\n\"'`$&|;<>()*?[]#~%{}\\") {
		return s
	}

	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
