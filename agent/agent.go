// Package agent produces AI commentary on portfolio reports using the
// Gemini API: a short summary of what moved, ad-hoc questions about
// the data, and trend analysis over the stored history.
package agent

import (
	"context"
	"fmt"
	"os"

	"github.com/networth-report/networth"
	"github.com/networth-report/networth/date"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// Analyst holds the Gemini client and the model used for all prompts.
type Analyst struct {
	client *genai.Client
	Model  string
}

// NewAnalyst creates an Analyst. Credentials come from the environment
// (GEMINI_API_KEY), and LLM_MODEL overrides the default model.
func NewAnalyst(ctx context.Context) (*Analyst, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot create genai client: %w", err)
	}
	m := os.Getenv("LLM_MODEL")
	if m == "" {
		m = model
	}
	return &Analyst{client: client, Model: m}, nil
}

// ask sends a single prompt and returns the model's text response.
func (a *Analyst) ask(ctx context.Context, prompt string) (string, error) {
	resp, err := a.client.Models.GenerateContent(ctx, a.Model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from model %s", a.Model)
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// Summarize writes a short markdown narrative of the changes in r.
// It returns "" when there is no comparison snapshot to talk about.
// With hideAmounts the model is told to stick to percentages.
func (a *Analyst) Summarize(ctx context.Context, r *networth.ReportData, period date.Period, hideAmounts bool) (string, error) {
	if !r.HasComparison() {
		return "", nil
	}
	prompt, err := summaryPrompt(r, period, hideAmounts)
	if err != nil {
		return "", err
	}
	return a.ask(ctx, prompt)
}

// Query answers a free-form question about the portfolio.
func (a *Analyst) Query(ctx context.Context, question string, r *networth.ReportData) (string, error) {
	prompt, err := queryPrompt(question, r)
	if err != nil {
		return "", err
	}
	return a.ask(ctx, prompt)
}

// Trends analyzes the net worth history over the given period.
func (a *Analyst) Trends(ctx context.Context, history *date.History[float64], period date.Period) (string, error) {
	if history.Len() < 2 {
		return "Not enough historical data for trend analysis.", nil
	}
	prompt, err := trendsPrompt(history, period)
	if err != nil {
		return "", err
	}
	return a.ask(ctx, prompt)
}
