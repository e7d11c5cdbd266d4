package cli

import (
	"os"
	"path/filepath"

	"github.com/alexanderramin/clientdesk/internal/export"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var out, qr string

	cmd := &cobra.Command{
		Use:   "export <project>",
		Short: "Write an Excel status report and optionally a client link QR code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if out == "" {
				out = export.ReportFileName(p, app.now())
			} else if info, statErr := os.Stat(out); statErr == nil && info.IsDir() {
				out = filepath.Join(out, export.ReportFileName(p, app.now()))
			}
			if err := export.SaveReport(out, p); err != nil {
				return err
			}
			printf(cmd, "Wrote report %s\n", out)

			if qr != "" {
				if err := export.SaveClientLinkQR(qr, app.PublicURL, p); err != nil {
					return err
				}
				printf(cmd, "Wrote client link QR code %s\n", qr)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Report path or directory (default <project>_<date>.xlsx)")
	cmd.Flags().StringVar(&qr, "qr", "", "Also write a PNG QR code of the client link here")
	return cmd
}
