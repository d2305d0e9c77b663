// Package bot implements the assistant's commands. Each command reads the
// cached catalog, optionally asks the model, and returns a platform-neutral
// vipbot.Reply for a renderer to format.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/vipbot"
)

// Presentation limits inherited from chat embeds and select menus.
const (
	MaxOptions       = 25
	MaxOptionLabel   = 80
	MaxFields        = 25
	MaxRelatedFields = 3
)

// Name is the assistant's display name.
const Name = "Luxury VIP"

// Assistant answers commands from the cached catalog.
type Assistant struct {
	Catalog vipbot.Catalog

	// Asker answers free-form questions. When nil, ask replies that the
	// AI feature is unavailable.
	Asker vipbot.Asker

	// Interactions, if set, records every answered question.
	Interactions vipbot.InteractionLog

	// Limiter, if set, throttles questions per user.
	Limiter vipbot.RateLimiter

	// Refresh, if set, reports the refresh loop state for ping and status.
	Refresh vipbot.RefreshMonitor

	Logger *slog.Logger
	Now    func() time.Time
}

// Ask answers a customer question about the catalog.
func (a *Assistant) Ask(ctx context.Context, user vipbot.User, question string) (*vipbot.Reply, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, vipbot.Errorf(vipbot.EINVALID, "question required")
	}

	snap := a.Catalog.Snapshot()
	if len(snap.Products) == 0 {
		return a.dataNotReady(), nil
	}

	if a.Limiter != nil && !a.Limiter.Allow(user.ID) {
		return &vipbot.Reply{
			Title:       "⏳ Terlalu Banyak Pertanyaan",
			Description: "Tunggu sebentar sebelum bertanya lagi.",
			Tone:        vipbot.ToneWarning,
		}, nil
	}

	related := snap.RelatedProducts(question)
	answer := a.answer(ctx, question, related)

	reply := &vipbot.Reply{
		Title:       "💬 Jawaban " + Name,
		Description: answer,
		Tone:        vipbot.ToneGold,
		Footer:      "Ditanyakan oleh " + user.Name,
		Timestamp:   a.now(),
	}
	if len(related) == 0 {
		reply.Tone = vipbot.ToneWarning
	}
	if len(related) > 0 && len(related) <= MaxRelatedFields {
		for _, p := range related {
			reply.AddField(
				stockEmoji(p)+" "+p.Name,
				fmt.Sprintf("🏷️ %s\n💰 Rp %s\n📊 Stok: %s", p.Category, p.Price, p.Stock),
				true,
			)
		}
	}

	a.logInteraction(ctx, user, question, answer)
	return reply, nil
}

// answer asks the model, degrading every failure to a fixed apology.
func (a *Assistant) answer(ctx context.Context, question string, related []*vipbot.Product) string {
	if a.Asker == nil {
		return vipbot.AskUnavailableMessage
	}
	answer, err := a.Asker.Ask(ctx, question, related)
	if err != nil {
		a.logger().Error("ask failed", "err", err)
		return vipbot.AskFallbackMessage
	}
	return answer
}

func (a *Assistant) logInteraction(ctx context.Context, user vipbot.User, question, answer string) {
	if a.Interactions == nil {
		return
	}
	err := a.Interactions.LogInteraction(ctx, &vipbot.Interaction{
		UserID:    user.ID,
		UserName:  user.Name,
		Query:     question,
		Answer:    answer,
		CreatedAt: a.now(),
	})
	if err != nil {
		a.logger().Error("logging interaction failed", "user", user.ID, "err", err)
	}
}

// FAQ lists the frequently asked questions as selectable options.
func (a *Assistant) FAQ(ctx context.Context) (*vipbot.Reply, error) {
	snap := a.Catalog.Snapshot()
	if len(snap.FAQ) == 0 {
		return &vipbot.Reply{
			Title:       "⚠️ FAQ Belum Tersedia",
			Description: "Belum ada data FAQ.",
			Tone:        vipbot.ToneWarning,
		}, nil
	}

	reply := &vipbot.Reply{
		Title:       "❓ FAQ - Pertanyaan yang Sering Ditanyakan",
		Description: "Pilih pertanyaan dari menu di bawah untuk melihat jawabannya:",
		Tone:        vipbot.ToneInfo,
		Timestamp:   a.now(),
	}
	for i, item := range snap.FAQ {
		if i == MaxOptions {
			break
		}
		reply.Options = append(reply.Options, vipbot.Option{
			Label: fmt.Sprintf("Q%d: %s", i+1, vipbot.Truncate(item.Question, MaxOptionLabel)),
			Value: strconv.Itoa(i + 1),
		})
	}
	return reply, nil
}

// FAQAnswer returns the answer to the FAQ item at the 1-based index.
// Returns ENOTFOUND when no such item exists.
func (a *Assistant) FAQAnswer(ctx context.Context, index int) (*vipbot.Reply, error) {
	snap := a.Catalog.Snapshot()
	if index < 1 || index > len(snap.FAQ) {
		return nil, vipbot.Errorf(vipbot.ENOTFOUND, "FAQ #%d not found", index)
	}

	item := snap.FAQ[index-1]
	return &vipbot.Reply{
		Title:       "❓ " + item.Question,
		Description: item.Answer,
		Tone:        vipbot.ToneSuccess,
		Timestamp:   a.now(),
	}, nil
}

// Stock lists category availability, or the products of one category when
// category is set.
func (a *Assistant) Stock(ctx context.Context, category string) (*vipbot.Reply, error) {
	snap := a.Catalog.Snapshot()
	if len(snap.Products) == 0 {
		return a.dataNotReady(), nil
	}

	category = strings.TrimSpace(category)
	if category == "" {
		reply := &vipbot.Reply{
			Title:       "🏷️ Kategori Produk",
			Description: "Gunakan `!stock <kategori>` untuk melihat produk.\nContoh: `!stock VIP Gold`",
			Tone:        vipbot.ToneInfo,
			Timestamp:   a.now(),
		}
		for _, c := range snap.Categories {
			reply.AddField(c.Name, fmt.Sprintf("✅ Tersedia: %d / %d", c.Available(), len(c.Products)), true)
		}
		return reply, nil
	}

	c := snap.Category(category)
	if c == nil {
		return &vipbot.Reply{
			Title:       "❌ Kategori Tidak Ditemukan",
			Description: fmt.Sprintf("Kategori '%s' tidak ada.", category),
			Tone:        vipbot.ToneError,
		}, nil
	}

	reply := &vipbot.Reply{
		Title:     "📦 Produk: " + c.Name,
		Tone:      vipbot.ToneInfo,
		Timestamp: a.now(),
	}
	for i, p := range c.Products {
		if i == MaxFields {
			break
		}
		reply.AddField(
			stockEmoji(p)+" "+p.Name,
			fmt.Sprintf("💰 **Harga:** Rp %s\n📊 **Stok:** %s", p.Price, p.Stock),
			false,
		)
	}
	return reply, nil
}

// Ping reports the latency of the last upstream revision check.
func (a *Assistant) Ping(ctx context.Context) (*vipbot.Reply, error) {
	latency := a.latency()
	return &vipbot.Reply{
		Title:       "🏓 Pong!",
		Description: fmt.Sprintf("**Latency:** %dms", latency.Milliseconds()),
		Tone:        latencyTone(latency),
	}, nil
}

// Status summarizes the cached catalog and the refresh loop.
func (a *Assistant) Status(ctx context.Context) (*vipbot.Reply, error) {
	snap := a.Catalog.Snapshot()

	autoUpdate := "🔴 Nonaktif"
	if a.Refresh != nil && a.Refresh.Status().Running {
		autoUpdate = "🟢 Aktif"
	}

	reply := &vipbot.Reply{
		Title:     "📊 Status Sistem Bot",
		Tone:      vipbot.ToneInfo,
		Timestamp: a.now(),
	}
	reply.AddField("📡 Latency", fmt.Sprintf("%dms", a.latency().Milliseconds()), true)
	reply.AddField("🔄 Auto-Update", autoUpdate, true)
	reply.AddField("📦 Total Produk", strconv.Itoa(len(snap.Products)), true)
	reply.AddField("🏷️ Kategori", strconv.Itoa(len(snap.Categories)), true)
	reply.AddField("❓ FAQ", strconv.Itoa(len(snap.FAQ)), true)
	reply.AddField("✅ Stok Tersedia", strconv.Itoa(snap.Available()), true)
	reply.AddField("💾 Commit", "`"+snap.ShortRevision()+"`", true)
	return reply, nil
}

func (a *Assistant) dataNotReady() *vipbot.Reply {
	return &vipbot.Reply{
		Title:       "⚠️ Data Belum Siap",
		Description: "Data produk sedang dimuat atau gagal dimuat. Coba lagi nanti atau hubungi admin.",
		Tone:        vipbot.ToneWarning,
	}
}

func (a *Assistant) latency() time.Duration {
	if a.Refresh == nil {
		return 0
	}
	return a.Refresh.Status().LastLatency
}

func (a *Assistant) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *Assistant) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func stockEmoji(p *vipbot.Product) string {
	if p.InStock() {
		return "✅"
	}
	return "❌"
}

func latencyTone(d time.Duration) vipbot.Tone {
	switch {
	case d < 150*time.Millisecond:
		return vipbot.ToneSuccess
	case d < 250*time.Millisecond:
		return vipbot.ToneGold
	default:
		return vipbot.ToneError
	}
}
