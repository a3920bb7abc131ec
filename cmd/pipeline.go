package main

import (
	"github.com/georgiaharvey/club-reports/internal/aggregate"
	"github.com/georgiaharvey/club-reports/internal/model"
	"github.com/georgiaharvey/club-reports/internal/report"
	"github.com/georgiaharvey/club-reports/internal/sheets"
	"github.com/georgiaharvey/club-reports/pkg/gsheets"
)

// newSource picks the workbook source from config: a local XLSX file when
// one is configured, the Google Sheets API otherwise. Credentials are
// checked by Config.Validate before this runs.
func newSource() sheets.Source {
	if cfg.Sheets.Workbook != "" {
		return sheets.NewWorkbook(cfg.Sheets.Workbook)
	}

	client := gsheets.NewClient(
		cfg.Sheets.SpreadsheetID,
		gsheets.ServiceAccount{
			Email:      cfg.Sheets.ServiceAccountEmail,
			PrivateKey: cfg.Sheets.PrivateKey,
		},
		gsheets.WithRateLimit(cfg.Sheets.RequestsPerSecond),
	)
	return sheets.NewGoogleSource(client)
}

// reportOptions translates config into pipeline options.
func reportOptions() (report.Options, error) {
	opts := report.Options{
		Granularity:   model.Granularity(cfg.Report.Granularity),
		TableStrategy: model.TableStrategy(cfg.Report.TableStrategy),
		Year:          cfg.Report.Year,
		Diagnostics:   cfg.Report.Diagnostics,
	}

	if cfg.Report.PromoterRulesFile != "" {
		rules, err := aggregate.LoadPromoterRules(cfg.Report.PromoterRulesFile)
		if err != nil {
			return report.Options{}, err
		}
		opts.PromoterRules = &rules
	}

	return opts, nil
}
