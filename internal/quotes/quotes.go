package quotes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"studybuddy/internal/httpx"
	"studybuddy/internal/logx"
)

// FallbackText is shown when no quote could be fetched.
const FallbackText = "Failed to fetch quote"

var ErrNoQuote = errors.New("quotes: empty response")

type Quote struct {
	Text   string `json:"q"`
	Author string `json:"a"`
}

func (q Quote) String() string {
	return fmt.Sprintf("%s - %s", q.Text, q.Author)
}

// Fetcher reads random quotes from a ZenQuotes-compatible endpoint,
// which answers with a one-element JSON array.
type Fetcher struct {
	URL    string
	Client *httpx.Client
	Log    logx.Logger
}

func New(url string, client *httpx.Client, log logx.Logger) *Fetcher {
	return &Fetcher{URL: url, Client: client, Log: log}
}

func (f *Fetcher) Random(ctx context.Context) (Quote, error) {
	var out []Quote
	if err := f.Client.GetJSON(ctx, f.URL, &out); err != nil {
		return Quote{}, fmt.Errorf("quotes: fetch %s: %w", f.URL, err)
	}
	if len(out) == 0 || strings.TrimSpace(out[0].Text) == "" {
		return Quote{}, ErrNoQuote
	}
	q := out[0]
	q.Text = strings.TrimSpace(q.Text)
	q.Author = strings.TrimSpace(q.Author)
	if q.Author == "" {
		q.Author = "Unknown"
	}
	return q, nil
}

// Line returns "quote - author", or FallbackText when the fetch fails.
func (f *Fetcher) Line(ctx context.Context) string {
	q, err := f.Random(ctx)
	if err != nil {
		f.Log.Warn("quote fetch failed", logx.Err(err))
		return FallbackText
	}
	return q.String()
}
