package main

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/georgiaharvey/club-reports/internal/chat"
	"github.com/georgiaharvey/club-reports/internal/report"
	"github.com/georgiaharvey/club-reports/pkg/anthropic"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the current report",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("ask"); err != nil {
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

		client := anthropic.NewClient(cfg.Anthropic.Key)
		answer, err := chat.Ask(ctx, client, cfg.Anthropic.Model, rep, strings.Join(args, " "))
		if err != nil {
			return eris.Wrap(err, "ask")
		}

		fmt.Println(answer)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
