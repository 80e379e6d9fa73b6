package cmd

import (
	"context"
	"os"
	"path/filepath"

	"graalvm-tools/go/pkg/config"
	"graalvm-tools/go/pkg/dist"
	"graalvm-tools/go/pkg/nativeimage"
	"graalvm-tools/go/pkg/platform"

	"github.com/spf13/cobra"
)

var (
	zipFormat string
	zipBuild  bool
)

var zipCmd = &cobra.Command{
	Use:   "zip",
	Short: "Compresses the native image into <build-dir>/dist.",
	Run: func(cmdCobra *cobra.Command, args []string) {
		settings, err := resolveSettings()
		if err != nil {
			log.Error("config", "load", "error", "Failed to resolve settings", "error", err)
			os.Exit(1)
		}
		if zipFormat != "" {
			settings.DistFormat = zipFormat
		}

		if zipBuild {
			if _, err := runBuild(cmdCobra.Context(), settings, newInvoker(settings)); err != nil {
				log.Error("compiler", "build", "failure", "Native image build failed", "error", err)
				os.Exit(1)
			}
		}

		archive, err := runZip(cmdCobra.Context(), settings, platform.Detect())
		if err != nil {
			log.Error("dist", "pack", "failure", "Failed to archive native image", "error", err)
			os.Exit(1)
		}
		log.Info("dist", "finish", "success", "Distribution archive written", "path", archive)
	},
}

func init() {
	rootCmd.AddCommand(zipCmd)
	zipCmd.Flags().StringVar(&zipFormat, "format", "", "Archive format: zip, tar.zst or tar.bz2 (default: zip).")
	zipCmd.Flags().BoolVar(&zipBuild, "build", false, "Run the native image build first.")
}

func runZip(ctx context.Context, settings config.Settings, host platform.Classifier) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	format, err := dist.ParseFormat(settings.DistFormat)
	if err != nil {
		return "", err
	}
	exeName := nativeimage.ExecutableName(settings.GraalVM, settings.Project, host)
	exePath := filepath.Join(settings.OutputDir(), exeName+host.ExecutableSuffix())
	return dist.Package(log, exePath, settings.DistDir(), exeName, format)
}
