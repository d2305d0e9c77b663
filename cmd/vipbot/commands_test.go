package main_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/fwojciec/vipbot"
	"github.com/fwojciec/vipbot/bot"
	main "github.com/fwojciec/vipbot/cmd/vipbot"
	"github.com/fwojciec/vipbot/inmem"
	"github.com/fwojciec/vipbot/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRefresher struct {
	RefreshFn func(ctx context.Context) (*vipbot.RefreshResult, error)
	RunFn     func(ctx context.Context) error
}

func (r *fakeRefresher) Refresh(ctx context.Context) (*vipbot.RefreshResult, error) {
	return r.RefreshFn(ctx)
}

func (r *fakeRefresher) Run(ctx context.Context) error {
	return r.RunFn(ctx)
}

type fakeServer struct {
	RunFn func(ctx context.Context, addr string) error
}

func (s *fakeServer) Run(ctx context.Context, addr string) error {
	return s.RunFn(ctx, addr)
}

// newDeps returns dependencies whose refresher loads content into a fresh
// cache.
func newDeps(t *testing.T, content string) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	cache := inmem.NewCache()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	deps := &main.Dependencies{
		Ctx:       context.Background(),
		Stdout:    stdout,
		Stderr:    stderr,
		Logger:    slog.New(slog.DiscardHandler),
		Assistant: &bot.Assistant{Catalog: cache},
		Refresher: &fakeRefresher{
			RefreshFn: func(context.Context) (*vipbot.RefreshResult, error) {
				snap, warnings := vipbot.ParseCatalog(content)
				cache.Replace(snap)
				return &vipbot.RefreshResult{Checked: true, Fetched: true, Warnings: warnings}, nil
			},
		},
	}
	return deps, stdout, stderr
}

const commandDataset = `[PRODUCTS]
VIP Gold|Gold Pack|100.000|30 hari|5
[FAQ]
Cara beli?|Hubungi admin`

func TestAskCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("asks question and prints answer", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(t, commandDataset)
		var asked string
		deps.Assistant.Asker = &mock.Asker{
			AskFn: func(_ context.Context, question string, related []*vipbot.Product) (string, error) {
				asked = question
				return "Gold Pack harganya Rp 100.000.", nil
			},
		}

		cmd := &main.AskCmd{Question: []string{"harga", "gold?"}, UserID: "u1", UserName: "alice"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "harga gold?", asked)
		assert.Contains(t, stdout.String(), "Gold Pack harganya Rp 100.000.")
		assert.Contains(t, stdout.String(), "Ditanyakan oleh alice")
	})

	t.Run("still answers from cache when refresh fails", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newDeps(t, "")
		deps.Refresher = &fakeRefresher{
			RefreshFn: func(context.Context) (*vipbot.RefreshResult, error) {
				return nil, vipbot.Errorf(vipbot.EUNAVAILABLE, "HTTP 503 for data")
			},
		}

		cmd := &main.AskCmd{Question: []string{"gold"}, UserID: "u1", UserName: "alice"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "warning: catalog refresh failed: HTTP 503 for data")
		assert.Contains(t, stdout.String(), "Data Belum Siap")
	})
}

func TestFAQCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists questions", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(t, commandDataset)

		err := (&main.FAQCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "[1] Q1: Cara beli?")
	})

	t.Run("reports unknown index", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newDeps(t, commandDataset)

		err := (&main.FAQCmd{Index: 7}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, vipbot.ENOTFOUND, vipbot.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error: FAQ #7 not found")
		assert.Empty(t, stdout.String())
	})
}

func TestStockCmd_Run(t *testing.T) {
	t.Parallel()

	deps, stdout, _ := newDeps(t, commandDataset)

	err := (&main.StockCmd{Category: []string{"vip", "gold"}}).Run(deps)

	require.NoError(t, err)
	output := stdout.String()
	assert.Contains(t, output, "📦 Produk: VIP Gold")
	assert.Contains(t, output, "✅ Gold Pack\n  💰 **Harga:** Rp 100.000\n")
}

func TestHelpCmd_Run(t *testing.T) {
	t.Parallel()

	deps, stdout, stderr := newDeps(t, commandDataset)

	err := (&main.HelpCmd{Topic: "nope"}).Run(deps)

	require.Error(t, err)
	assert.Contains(t, stderr.String(), "error:")
	assert.Empty(t, stdout.String())
}

func TestHistoryCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints interactions for one user", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(t, "")
		var filter vipbot.InteractionFilter
		deps.Interactions = &mock.InteractionService{
			FindInteractionsFn: func(_ context.Context, f vipbot.InteractionFilter) ([]*vipbot.Interaction, error) {
				filter = f
				return []*vipbot.Interaction{{
					UserID:    "u1",
					UserName:  "alice",
					Query:     "harga gold?",
					Answer:    "Rp 100.000",
					CreatedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
				}}, nil
			},
		}

		err := (&main.HistoryCmd{User: "u1", Limit: 5}).Run(deps)

		require.NoError(t, err)
		require.NotNil(t, filter.UserID)
		assert.Equal(t, "u1", *filter.UserID)
		assert.Equal(t, 5, filter.Limit)
		assert.Contains(t, stdout.String(), "alice (u1)  harga gold?")
		assert.Contains(t, stdout.String(), "    Rp 100.000")
	})

	t.Run("returns storage errors", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(t, "")
		deps.Interactions = &mock.InteractionService{
			FindInteractionsFn: func(context.Context, vipbot.InteractionFilter) ([]*vipbot.Interaction, error) {
				return nil, errors.New("database is locked")
			},
		}

		err := (&main.HistoryCmd{Limit: 5}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error: Internal error")
	})
}

func TestUpdatesCmd_Run(t *testing.T) {
	t.Parallel()

	deps, stdout, _ := newDeps(t, "")
	deps.Updates = &mock.UpdateService{
		FindUpdatesFn: func(_ context.Context, limit int) ([]*vipbot.CatalogUpdate, error) {
			assert.Equal(t, 3, limit)
			return []*vipbot.CatalogUpdate{{Revision: "abcdef123456", Products: 12, FAQ: 4, Categories: 3}}, nil
		},
	}

	err := (&main.UpdatesCmd{Limit: 3}).Run(deps)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "abcdef1  products=12 faq=4 categories=3")
}

func TestServeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("stops cleanly when the context is canceled", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := newDeps(t, "")
		ctx, cancel := context.WithCancel(context.Background())
		deps.Ctx = ctx

		started := make(chan struct{}, 2)
		deps.Refresher = &fakeRefresher{
			RunFn: func(ctx context.Context) error {
				started <- struct{}{}
				<-ctx.Done()
				return ctx.Err()
			},
		}
		var addr string
		deps.Server = &fakeServer{
			RunFn: func(ctx context.Context, a string) error {
				addr = a
				started <- struct{}{}
				<-ctx.Done()
				return nil
			},
		}

		done := make(chan error, 1)
		go func() { done <- (&main.ServeCmd{Addr: ":9999"}).Run(deps) }()

		<-started
		<-started
		cancel()

		select {
		case err := <-done:
			require.NoError(t, err)
			assert.Equal(t, ":9999", addr)
		case <-time.After(5 * time.Second):
			t.Fatal("serve did not stop")
		}
	})

	t.Run("stops the refresher when the server fails", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := newDeps(t, "")
		deps.Refresher = &fakeRefresher{
			RunFn: func(ctx context.Context) error {
				<-ctx.Done()
				return ctx.Err()
			},
		}
		deps.Server = &fakeServer{
			RunFn: func(context.Context, string) error {
				return errors.New("address already in use")
			},
		}

		err := (&main.ServeCmd{Addr: ":1"}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "address already in use")
	})
}
