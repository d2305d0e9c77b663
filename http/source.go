package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"

	"github.com/fwojciec/vipbot"
)

// Ensure Source implements vipbot.Source at compile time.
var _ vipbot.Source = (*Source)(nil)

// Source fetches the dataset and its revision marker from two URLs, retrying
// transient failures.
type Source struct {
	fetcher    *Fetcher
	dataURL    string
	commitsURL string

	// Policy controls retries for both endpoints.
	Policy RetryPolicy
	// Logger receives a debug record for every failed attempt.
	Logger *slog.Logger
}

// NewSource creates a Source reading the dataset from dataURL and the
// revision marker from commitsURL.
func NewSource(fetcher *Fetcher, dataURL, commitsURL string) *Source {
	return &Source{
		fetcher:    fetcher,
		dataURL:    dataURL,
		commitsURL: commitsURL,
		Policy:     DefaultRetryPolicy(),
		Logger:     slog.New(slog.DiscardHandler),
	}
}

// FetchDataset returns the raw dataset text.
func (s *Source) FetchDataset(ctx context.Context) (string, error) {
	var text string
	err := Retry(ctx, s.Policy, func(ctx context.Context, attempt int) error {
		var err error
		text, err = s.fetcher.FetchText(ctx, s.dataURL)
		s.logAttempt(s.dataURL, attempt, err)
		return err
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

// commit is the subset of a commit object carrying the revision marker.
type commit struct {
	SHA string `json:"sha"`
}

// FetchRevision returns the "sha" field of the commit document. Both a
// single commit object and a list of commits (newest first) are accepted.
func (s *Source) FetchRevision(ctx context.Context) (string, error) {
	var sha string
	err := Retry(ctx, s.Policy, func(ctx context.Context, attempt int) error {
		var raw json.RawMessage
		err := s.fetcher.FetchJSON(ctx, s.commitsURL, &raw)
		s.logAttempt(s.commitsURL, attempt, err)
		if err != nil {
			return err
		}
		sha, err = parseRevision(raw)
		return err
	})
	if err != nil {
		return "", err
	}
	return sha, nil
}

func parseRevision(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)

	var c commit
	if len(raw) > 0 && raw[0] == '[' {
		var list []commit
		if err := json.Unmarshal(raw, &list); err != nil || len(list) == 0 {
			return "", vipbot.Errorf(vipbot.EUNAVAILABLE, "commit list is empty or malformed")
		}
		c = list[0]
	} else if err := json.Unmarshal(raw, &c); err != nil {
		return "", vipbot.Errorf(vipbot.EUNAVAILABLE, "commit document is not an object")
	}

	if c.SHA == "" {
		return "", vipbot.Errorf(vipbot.EUNAVAILABLE, "commit document has no sha")
	}
	return c.SHA, nil
}

func (s *Source) logAttempt(url string, attempt int, err error) {
	if err == nil || s.Logger == nil {
		return
	}
	s.Logger.Debug("fetch attempt failed",
		"url", url,
		"attempt", attempt,
		"max", s.Policy.MaxAttempts,
		"err", err,
	)
}
