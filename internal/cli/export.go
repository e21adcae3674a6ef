package cli

import (
	"fmt"
	"path/filepath"

	"github.com/sadopc/zenflow/internal/config"
	"github.com/sadopc/zenflow/internal/export"
	"github.com/spf13/cobra"
)

func newExportCommand(opts *options) *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write weekly activity, tasks or everything to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			c, _, err := opts.open()
			if err != nil {
				return err
			}
			defer c.Close()

			snap := c.Snapshot()
			path := out
			if path == "" {
				path = filepath.Join(config.ExportDir(), export.DefaultFileName(f, snap))
			}
			if err := export.Write(f, snap, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatJSON), "activity, tasks or json")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default in your home directory)")
	return cmd
}
