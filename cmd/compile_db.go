package cmd

import (
	"io/ioutil"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"cmakewrap/pkg"
	"cmakewrap/pkg/configure"
)

// compileDBName is the compilation database CMake writes when
// CMAKE_EXPORT_COMPILE_COMMANDS is enabled.
const compileDBName = "compile_commands.json"

var compileDBCmd = &cobra.Command{
	Use:   "compile-db",
	Short: "Copies the compilation database into the source tree",
	Long: `Copies the compile_commands.json file CMake generated in the build directory
into the source tree so tools like clangd pick it up.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		buildDir, err := cmd.Flags().GetString("builddir")
		if err != nil {
			return err
		}

		srcDir, err := cmd.Flags().GetString("srcdir")
		if err != nil {
			return err
		}

		if srcDir == "" {
			srcDir, err = configure.FindSourceRoot()
			if err != nil {
				return err
			}
		}

		dbPath := filepath.Join(buildDir, compileDBName)
		data, err := ioutil.ReadFile(dbPath)
		if err != nil {
			return eris.Wrapf(err, "Could not read %s; did the configuration run with --define=CMAKE_EXPORT_COMPILE_COMMANDS=ON?", dbPath)
		}

		destPath := filepath.Join(srcDir, compileDBName)
		err = ioutil.WriteFile(destPath, data, 0660)
		if err != nil {
			return eris.Wrapf(err, "Failed to write to %s", destPath)
		}

		pkg.PrintSubtask("Wrote " + destPath)
		return nil
	},
}

func init() {
	compileDBCmd.Flags().String("builddir", configure.DefaultBuildDir, "build directory to copy from")
	compileDBCmd.Flags().String("srcdir", "", "source tree to copy into (default: nearest CMakeLists.txt)")

	rootCmd.AddCommand(compileDBCmd)
}
