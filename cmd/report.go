package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/georgiaharvey/club-reports/internal/model"
	"github.com/georgiaharvey/club-reports/internal/report"
)

var reportJSON bool

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the reporting pipeline once and print the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("report"); err != nil {
			return err
		}

		src := newSource()
		opts, err := reportOptions()
		if err != nil {
			return err
		}

		rep, err := report.Build(ctx, src, opts)
		if err != nil {
			return eris.Wrap(err, "build report")
		}

		if reportJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(rep)
		}

		printReport(rep)
		return nil
	},
}

// printReport renders a console summary with locale-aware dollar figures.
func printReport(rep *model.Report) {
	p := message.NewPrinter(language.English)

	fmt.Printf("Cashier sales (%s):\n", rep.Granularity)
	for _, b := range rep.CashierSales {
		p.Printf("  %-20s $%.2f\n", b.Label, b.Total)
	}

	fmt.Printf("\nTable sales (%s):\n", rep.Granularity)
	for _, b := range rep.TableSales {
		p.Printf("  %-20s $%.2f\n", b.Label, b.Total)
	}

	if rep.TableDeclaredTotal != nil {
		p.Printf("\nDeclared table total: $%.2f\n", *rep.TableDeclaredTotal)
	}

	fmt.Println("\nPromoters:")
	for _, pr := range rep.Promoters {
		p.Printf("  %-30s %d guests\n", pr.Name, pr.Guests)
	}

	if rep.Diagnostics != nil {
		d := rep.Diagnostics
		fmt.Printf("\nSkipped: %d cashier, %d free-cover, %d table items\n",
			d.CashierDropped, d.FreeCoverDropped, d.TableDropped)
	}
}

func init() {
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "emit the full report as JSON")
	rootCmd.AddCommand(reportCmd)
}
