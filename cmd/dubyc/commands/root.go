package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// errReported means diagnostics were already printed.
var errReported = errors.New("compilation failed")

var configPath string

var rootCmd = &cobra.Command{
	Use:   "dubyc",
	Short: "dubyc compiles typed duby syntax trees to Java source",
	Long: `dubyc reads duby programs serialized as YAML syntax trees, infers the
static type of every node and writes one Java source file per class.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command. Any failure exits with status 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to dubyc.yaml (default: nearest one above the input)")
}

// AddCommand allows adding subcommands from other files.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}
