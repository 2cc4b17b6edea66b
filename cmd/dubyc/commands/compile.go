package commands

import (
	"github.com/spf13/cobra"
)

var (
	outputDir string
	toStdout  bool
)

var compileCmd = &cobra.Command{
	Use:   "compile <tree.yaml...>",
	Short: "Compiles syntax trees to Java source files",
	Long: `The compile command infers types for each tree and writes the generated
classes under the output directory, one directory per package segment.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := options{outputDir: outputDir, stdout: toStdout}
		if !runFiles(args, opts, cmd.OutOrStdout(), cmd.ErrOrStderr()) {
			return errReported
		}
		return nil
	},
}

func init() {
	compileCmd.Flags().StringVarP(&outputDir, "dir", "d", "", "Output directory (overrides output_dir)")
	compileCmd.Flags().BoolVar(&toStdout, "stdout", false, "Print generated sources instead of writing files")
	AddCommand(compileCmd)
}
