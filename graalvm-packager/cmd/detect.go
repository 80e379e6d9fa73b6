package cmd

import (
	"fmt"

	"graalvm-tools/go/pkg/platform"

	"github.com/spf13/cobra"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Prints the normalized host OS, architecture and classifier.",
	Run: func(cmd *cobra.Command, args []string) {
		host := platform.Detect()
		log.Debug("platform", "detect", "success", "Detected host", "classifier", host.Classifier)
		printClassifier(cmd, host)
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}

func printClassifier(cmd *cobra.Command, c platform.Classifier) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "os: %s\n", c.OS)
	fmt.Fprintf(out, "arch: %s\n", c.Arch)
	fmt.Fprintf(out, "classifier: %s\n", c.Classifier)
}
