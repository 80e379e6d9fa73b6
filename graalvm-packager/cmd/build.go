package cmd

import (
	"context"
	"fmt"
	"os"

	"graalvm-tools/go/pkg/config"
	"graalvm-tools/go/pkg/nativeimage"

	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generates a native image from the application jar.",
	Run: func(cmdCobra *cobra.Command, args []string) {
		settings, err := resolveSettings()
		if err != nil {
			log.Error("config", "load", "error", "Failed to resolve settings", "error", err)
			os.Exit(1)
		}

		exePath, err := runBuild(cmdCobra.Context(), settings, newInvoker(settings))
		if err != nil {
			log.Error("compiler", "build", "failure", "Native image build failed", "error", err)
			os.Exit(1)
		}
		log.Info("compiler", "finish", "success", "Native image written", "path", exePath)
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(ctx context.Context, settings config.Settings, invoker *nativeimage.Invoker) (string, error) {
	entries, err := config.ExpandClasspath(settings.Classpath)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("no classpath entries given; pass --classpath with the application jar")
	}
	for _, entry := range entries {
		if _, err := os.Stat(entry); err != nil {
			return "", fmt.Errorf("classpath entry %s: %w", entry, err)
		}
	}

	return invoker.Invoke(ctx, settings.GraalVM, settings.Project, entries, settings.OutputDir())
}
