package cli

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rotulado/rotulado/datasource"
	"github.com/rotulado/rotulado/design"
	"github.com/rotulado/rotulado/zpl"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	data    string // data file (.xlsx/.csv/.json); empty renders one label with no row
	output  string // file path; "-" or empty writes to stdout
	config  string // printer-profile TOML path
	profile string // profile name within the config
	printer string // host:port of a raw-socket printer; overrides profile address
	dpi     int
	workers int
}

func newRenderCmd() *cobra.Command {
	opts := renderOpts{dpi: zpl.DPI203, workers: 1}

	cmd := &cobra.Command{
		Use:   "render <design.json>",
		Short: "Render a design plus data rows to ZPL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], &opts)
		},
	}
	cmd.Flags().StringVarP(&opts.data, "data", "d", "", "data file with one row per label (.xlsx, .csv or .json)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&opts.config, "config", "", "printer profile config (default ~/.config/rotulado/config.toml)")
	cmd.Flags().StringVar(&opts.profile, "profile", "", "printer profile name")
	cmd.Flags().StringVar(&opts.printer, "printer", "", "send the program to a raw-socket printer at host:port")
	cmd.Flags().IntVar(&opts.dpi, "dpi", zpl.DPI203, "printer resolution (203, 300 or 600)")
	cmd.Flags().IntVar(&opts.workers, "workers", 1, "rows rendered concurrently in a batch")
	return cmd
}

func runRender(cmd *cobra.Command, designPath string, opts *renderOpts) error {
	logger := loggerFromContext(cmd.Context())

	cfg, err := loadConfig(opts.config)
	if err != nil {
		return err
	}
	prof, err := cfg.profile(opts.profile)
	if err != nil {
		return err
	}
	dpi := opts.dpi
	if !cmd.Flags().Changed("dpi") && prof.DPI != 0 {
		dpi = prof.DPI
	}
	address := opts.printer
	if address == "" {
		address = prof.Address
	}

	d, err := design.Load(designPath)
	if err != nil {
		return err
	}
	for _, w := range d.Validate() {
		logger.Warn("design check", "issue", w)
	}

	var rows []design.DataRow
	if opts.data != "" {
		rows, err = datasource.Rows(opts.data)
		if err != nil {
			return err
		}
		logger.Debug("data loaded", "file", opts.data, "rows", len(rows))
	}

	genOpts := zpl.Options{DPI: dpi, Workers: opts.workers}
	start := time.Now()
	var program string
	if len(rows) == 0 {
		program = zpl.Generate(d, design.DataRow{}, genOpts)
		logger.Info("rendered label", "elements", len(d.Elements), "dpi", dpi, "took", time.Since(start))
	} else {
		program = zpl.GenerateBatch(d, rows, genOpts)
		logger.Info("rendered batch", "labels", len(rows), "dpi", dpi, "took", time.Since(start))
	}

	if opts.output != "" && opts.output != "-" {
		if err := os.WriteFile(opts.output, []byte(program+"\n"), 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", opts.output, err)
		}
		logger.Info("wrote program", "file", opts.output)
	} else if address == "" {
		fmt.Fprintln(cmd.OutOrStdout(), program)
	}

	if address != "" {
		if err := sendToPrinter(address, program); err != nil {
			return err
		}
		logger.Info("sent to printer", "address", address)
	}
	return nil
}

// sendToPrinter writes the program to a raw printer socket (the port 9100
// convention). The program text is the wire format; nothing is added beyond
// a trailing newline.
func sendToPrinter(address, program string) error {
	conn, err := net.DialTimeout("tcp", address, 10*time.Second)
	if err != nil {
		return fmt.Errorf("connect printer %s: %w", address, err)
	}
	defer conn.Close()
	if _, err := conn.Write([]byte(program + "\n")); err != nil {
		return fmt.Errorf("send to printer %s: %w", address, err)
	}
	return nil
}
