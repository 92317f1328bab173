package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/mitchellh/colorstring"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"cmakewrap/pkg/configure"
)

// errHelpShown signals that the usage text was already printed and only the
// exit status is left to handle.
var errHelpShown = eris.New("help shown")

var rootCmd = &cobra.Command{
	Use:   "configure [option...]",
	Short: "Generates the CMake configuration for this source tree",
	Long: `This command translates the passed options into a CMake cache invocation,
prepares the build directory and runs CMake against the source tree. The
applied configuration is recorded in a config.status script inside the build
directory which can be re-run to repeat the same configuration.`,
	DisableFlagParsing: true,
	SilenceUsage:       true,
	SilenceErrors:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := zerolog.New(NewConsoleWriter())
		ctx := configure.WithLogger(context.Background(), &logger)

		// CMake has to be available before we do anything else; everything
		// after this point assumes we can actually delegate to it.
		cmakeBin, err := configure.FindCMake()
		if err != nil {
			return err
		}

		tr := configure.NewTranslator()
		err = tr.Parse(args)
		if err != nil {
			if eris.Is(err, configure.ErrHelpRequested) {
				fmt.Fprint(os.Stderr, configure.Usage())
				return errHelpShown
			}

			return err
		}

		argv, err := tr.CommandLine(cmakeBin)
		if err != nil {
			return err
		}

		if tr.DryRun {
			fmt.Println(strings.Join(argv, " "))
			return nil
		}

		err = configure.PrepareBuildDir(ctx, tr.BuildDir)
		if err != nil {
			return err
		}

		err = configure.Run(ctx, tr.BuildDir, argv)
		if err != nil {
			return err
		}

		original := append([]string{os.Args[0]}, args...)
		return configure.WriteStatusScript(ctx, tr.BuildDir, original)
	},
}

// Execute runs the root command and maps errors to exit codes: usage and
// parsing errors exit with 1, a failed CMake run exits with CMake's own code.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.ExitCode())
	}

	if !eris.Is(err, errHelpShown) {
		colorstring.Fprintf(os.Stderr, "[red]Error:[reset] %s\n", eris.ToString(err, os.Getenv("CONFIGURE_DEBUG") != ""))
	}
	os.Exit(1)
}
