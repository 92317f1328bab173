package cmd

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"cmakewrap/pkg"
	"cmakewrap/pkg/configure"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Removes the generated configuration from the build directory",
	Long: `Removes the files CMake generated during configuration (the cache file,
the CMakeFiles directory and the config.status script). Pass --all to delete
the whole build directory instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		buildDir, err := cmd.Flags().GetString("builddir")
		if err != nil {
			return err
		}

		all, err := cmd.Flags().GetBool("all")
		if err != nil {
			return err
		}

		force, err := cmd.Flags().GetBool("force")
		if err != nil {
			return err
		}

		info, err := os.Stat(buildDir)
		if err != nil {
			if force && eris.Is(err, os.ErrNotExist) {
				return nil
			}

			return eris.Wrapf(err, "Could not stat %s", buildDir)
		}

		if !info.IsDir() {
			return eris.Errorf("%s is not a directory!", buildDir)
		}

		if all {
			pkg.PrintTask("Removing " + buildDir)
			err = os.RemoveAll(buildDir)
			if err != nil {
				return eris.Wrapf(err, "Could not delete %s", buildDir)
			}

			return nil
		}

		pkg.PrintTask("Cleaning " + buildDir)
		for _, item := range []string{configure.CacheFileName, "CMakeFiles", configure.StatusFileName} {
			itemPath := filepath.Join(buildDir, item)
			_, err := os.Stat(itemPath)
			if err != nil {
				if eris.Is(err, os.ErrNotExist) {
					continue
				}

				return eris.Wrapf(err, "Could not stat %s", itemPath)
			}

			pkg.PrintSubtask("Remove " + itemPath)
			err = os.RemoveAll(itemPath)
			if err != nil {
				return eris.Wrapf(err, "Could not delete %s", itemPath)
			}
		}

		return nil
	},
}

func init() {
	cleanCmd.Flags().String("builddir", configure.DefaultBuildDir, "build directory to clean")
	cleanCmd.Flags().BoolP("all", "a", false, "delete the whole build directory, not just the configuration")
	cleanCmd.Flags().BoolP("force", "f", false, "suppresses errors caused by a missing build directory")

	rootCmd.AddCommand(cleanCmd)
}
