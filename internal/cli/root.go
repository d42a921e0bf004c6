package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Execute runs the rotulado CLI.
func Execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:          "rotulado",
		Short:        "rotulado renders label designs to ZPL for thermal printers",
		Long:         "rotulado takes a label design and a batch of data rows, resolves the bound content through the template language, and emits ZPL programs ready for a thermal printer. It can also produce a PDF proof of a design.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newPreviewCmd())
	root.AddCommand(newCheckCmd())

	return root.ExecuteContext(context.Background())
}
