package cmd

import (
	"context"
	"os"
	"os/signal"

	"graalvm-tools/go/pkg/logbowl"

	"github.com/spf13/cobra"
)

var (
	log logbowl.Logger
)

var rootCmd = &cobra.Command{
	Use:   "graalvm-packager",
	Short: "Builds GraalVM native images from a packaged application jar.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log = logbowl.Create("graalvm-packager")
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if log.Logger != nil { // Check if logger was initialized
			log.Error("system", "stop", "error", "Failed to execute command", "error", err)
		}
		stop()
		os.Exit(1)
	}
}
