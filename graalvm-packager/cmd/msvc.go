package cmd

import (
	"fmt"
	"os"

	"graalvm-tools/go/pkg/platform"

	"github.com/spf13/cobra"
)

var msvcCmd = &cobra.Command{
	Use:   "msvc",
	Short: "Resolves the MSVC environment native-image uses on Windows.",
	Run: func(cmd *cobra.Command, args []string) {
		host := platform.Detect()
		if !host.IsWindows() {
			log.Info("toolchain", "resolve", "skip", "MSVC resolution only runs on Windows", "classifier", host.Classifier)
			return
		}

		settings, err := resolveSettings()
		if err != nil {
			log.Error("config", "load", "error", "Failed to resolve settings", "error", err)
			os.Exit(1)
		}
		invoker := newInvoker(settings)
		env, err := invoker.Toolchain.Resolve(cmd.Context(), settings.CacheDir, host.Arch)
		if err != nil {
			log.Error("toolchain", "resolve", "failure", "Failed to resolve MSVC", "error", err)
			os.Exit(1)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "vcvarsall: %s\narch: %s\n", env.SetupScript, env.Arch)
	},
}

func init() {
	rootCmd.AddCommand(msvcCmd)
}
