package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rotulado/rotulado/design"
)

func newCheckCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check <design.json>",
		Short: "Validate a design and report layout issues",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			d, err := design.Load(args[0])
			if err != nil {
				return err
			}
			warns := d.Validate()
			for _, w := range warns {
				logger.Warn("design check", "issue", w)
			}
			if len(warns) == 0 {
				logger.Info("design ok", "elements", len(d.Elements),
					"size", fmt.Sprintf("%.1fx%.1f mm", d.WidthMM, d.HeightMM))
				return nil
			}
			if strict {
				return fmt.Errorf("%d issue(s) found", len(warns))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when issues are found")
	return cmd
}
