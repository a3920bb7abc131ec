// Package chat answers management questions about a report by handing a
// compact summary of it to the Anthropic Messages API as grounding
// context.
package chat

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"

	"github.com/georgiaharvey/club-reports/internal/model"
	"github.com/georgiaharvey/club-reports/pkg/anthropic"
)

const systemPrompt = "You are a helpful analytics assistant. Use the provided " +
	"context summary (structured JSON) to answer management questions " +
	"accurately. If data is missing, say so."

const defaultMaxTokens = 600

// summary is the trimmed view of a report sent as model context: series
// and rankings, not the raw per-row records.
type summary struct {
	Granularity  model.Granularity     `json:"granularity"`
	CashierSales []model.SalesBucket   `json:"cashierSales"`
	TableSales   []model.SalesBucket   `json:"tableSales"`
	Promoters    []model.PromoterTotal `json:"promoters"`
	TableTotal   *float64              `json:"tableDeclaredTotal,omitempty"`
}

// Summarize renders the report's aggregates as compact JSON.
func Summarize(rep *model.Report) (string, error) {
	data, err := json.Marshal(summary{
		Granularity:  rep.Granularity,
		CashierSales: rep.CashierSales,
		TableSales:   rep.TableSales,
		Promoters:    rep.Promoters,
		TableTotal:   rep.TableDeclaredTotal,
	})
	if err != nil {
		return "", eris.Wrap(err, "chat: marshal summary")
	}
	return string(data), nil
}

// Ask sends one question about the report and returns the answer text.
func Ask(ctx context.Context, client anthropic.Client, modelID string, rep *model.Report, prompt string) (string, error) {
	contextSummary, err := Summarize(rep)
	if err != nil {
		return "", err
	}

	temp := 0.1
	resp, err := client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       modelID,
		MaxTokens:   defaultMaxTokens,
		System:      systemPrompt,
		Temperature: &temp,
		Messages: []anthropic.Message{
			{Role: "user", Content: "Context summary:\n" + contextSummary},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}

	resp.Usage.LogUsage(resp.Model)
	return resp.Text, nil
}
