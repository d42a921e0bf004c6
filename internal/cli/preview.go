package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rotulado/rotulado/datasource"
	"github.com/rotulado/rotulado/design"
	"github.com/rotulado/rotulado/preview"
)

func newPreviewCmd() *cobra.Command {
	var (
		data   string
		rowIdx int
		font   string
		output string
	)

	cmd := &cobra.Command{
		Use:   "preview <design.json>",
		Short: "Render a PDF proof of a design",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			d, err := design.Load(args[0])
			if err != nil {
				return err
			}

			row := design.DataRow{}
			batch := 1
			if data != "" {
				rows, err := datasource.Rows(data)
				if err != nil {
					return err
				}
				if rowIdx < 0 || rowIdx >= len(rows) {
					return fmt.Errorf("row %d out of range (%d rows)", rowIdx, len(rows))
				}
				row = rows[rowIdx]
				batch = len(rows)
			}

			r, err := preview.NewRenderer(preview.Options{FontPath: font})
			if err != nil {
				return err
			}
			if font == "" {
				logger.Warn("no --font given; text elements render as outlines")
			}

			pdfBytes, err := r.Render(d, row, design.NewRenderContext(rowIdx, batch, time.Now()))
			if err != nil {
				return err
			}
			if output == "" {
				output = "preview.pdf"
			}
			if err := os.WriteFile(output, pdfBytes, 0o644); err != nil {
				return fmt.Errorf("write preview %s: %w", output, err)
			}
			logger.Info("wrote preview", "file", output, "row", rowIdx)
			return nil
		},
	}
	cmd.Flags().StringVarP(&data, "data", "d", "", "data file for resolved content")
	cmd.Flags().IntVar(&rowIdx, "row", 0, "row index to preview")
	cmd.Flags().StringVar(&font, "font", "", "TTF/OTF font for text elements")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output PDF path (default preview.pdf)")
	return cmd
}
