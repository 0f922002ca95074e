package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"finboard/internal/finance"
	"finboard/internal/sheets"
	"finboard/internal/sheets/google"
	"finboard/internal/sheets/memory"
)

func exportCmd(a *app) *cobra.Command {
	var (
		what   string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Append transactions or the dashboard to a Google spreadsheet",
		Long: `Export appends rows to GOOGLE_SPREADSHEET_ID using service account credentials
from GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE.
With --dry-run the rows are built and counted but nothing leaves the process.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if what != "transactions" && what != "dashboard" {
				return fmt.Errorf("unknown export %q (want transactions or dashboard)", what)
			}

			var exp sheets.Exporter
			if dryRun {
				exp = memory.New()
			} else {
				if err := a.cfg.ValidateExport(); err != nil {
					return err
				}
				g, err := google.New(ctx, google.Options{
					SpreadsheetID:   a.cfg.GoogleSpreadsheetID,
					SheetName:       a.cfg.GoogleExportSheetName,
					CredentialsJSON: a.cfg.GoogleServiceAccountJSON,
					CredentialsFile: a.cfg.GoogleServiceAccountFile,
					Logger:          a.logger,
				})
				if err != nil {
					return err
				}
				exp = g
			}

			svc, err := a.dashboard(ctx, finance.FilterAll)
			if err != nil {
				return err
			}

			var ref string
			switch what {
			case "transactions":
				txs, err := svc.Transactions(ctx, finance.TransactionFilter{})
				if err != nil {
					return err
				}
				ref, err = exp.ExportTransactions(ctx, txs)
				if err != nil {
					return err
				}
			case "dashboard":
				d, err := svc.Load(ctx)
				if err != nil {
					return err
				}
				ref, err = exp.ExportDashboard(ctx, d)
				if err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", what, ref)
			return nil
		},
	}

	cmd.Flags().StringVar(&what, "what", "transactions", "what to export (transactions, dashboard)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "build the rows without contacting Google")
	return cmd
}
