package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/vipbot"
)

// Help topics.
const (
	TopicFAQ   = "faq"
	TopicStock = "stock"
	TopicAsk   = "ask"
	TopicAbout = "about"
)

var helpTopics = []vipbot.Option{
	{Label: "❓ FAQ", Value: TopicFAQ, Description: "Cara kerja command !faq"},
	{Label: "📦 Stock", Value: TopicStock, Description: "Cara kerja command !stock"},
	{Label: "💬 Ask", Value: TopicAsk, Description: "Cara bertanya dengan AI"},
	{Label: "🤖 Tentang Bot", Value: TopicAbout, Description: "Info sistem dan auto update"},
}

// Help lists the commands, or explains one topic when topic is set.
// Returns ENOTFOUND for an unknown topic.
func (a *Assistant) Help(ctx context.Context, topic string) (*vipbot.Reply, error) {
	topic = strings.ToLower(strings.TrimSpace(topic))
	if topic == "" {
		return &vipbot.Reply{
			Title: "💎 " + Name + " Assistant",
			Description: "Selamat datang! Saya adalah bot asisten untuk " + Name + ".\n\n" +
				"**📋 Command Tersedia:**\n" +
				"• `!help [topik]` - Menampilkan menu bantuan ini\n" +
				"• `!faq [nomor]` - Pertanyaan yang sering ditanyakan\n" +
				"• `!stock [kategori]` - Melihat produk berdasarkan kategori\n" +
				"• `!ask <pertanyaan>` - Bertanya tentang produk (AI)\n" +
				"• `!ping` - Cek latensi bot\n" +
				"• `!status` - Cek status sistem bot",
			Tone:      vipbot.ToneGold,
			Options:   helpTopics,
			Footer:    "Pilih menu di bawah untuk detail lebih lanjut.",
			Timestamp: a.now(),
		}, nil
	}

	var label, body string
	for _, o := range helpTopics {
		if o.Value == topic {
			label = o.Label
		}
	}

	switch topic {
	case TopicFAQ:
		body = "**Command: `!faq`**\nMenampilkan daftar pertanyaan umum. Pilih dari menu atau gunakan `!faq <nomor>` untuk melihat jawaban."
	case TopicStock:
		body = "**Command: `!stock [kategori]`**\n- `!stock`: Menampilkan semua kategori.\n- `!stock <nama kategori>`: Menampilkan produk dalam kategori tersebut."
	case TopicAsk:
		body = "**Command: `!ask <pertanyaan>`**\nGunakan bahasa natural untuk bertanya. AI akan menjawab berdasarkan data produk.\n**Contoh:** `!ask berapa harga VIP Gold?`"
	case TopicAbout:
		snap := a.Catalog.Snapshot()
		interval := vipbot.DefaultRefreshInterval
		if a.Refresh != nil {
			interval = a.Refresh.Status().Interval
		}
		body = fmt.Sprintf("**%s Bot**\n- **AI:** Google Gemini\n- **Sumber Data:** GitHub\n- **Auto Update:** Setiap %s\n- **Total Produk:** %d\n- **Total FAQ:** %d",
			Name, interval, len(snap.Products), len(snap.FAQ))
	default:
		return nil, vipbot.Errorf(vipbot.ENOTFOUND, "help topic %q not found", topic)
	}

	return &vipbot.Reply{
		Title:       "📖 Bantuan: " + label,
		Description: body,
		Tone:        vipbot.ToneAccent,
	}, nil
}
