// Package gemini answers customer questions with Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/vipbot"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Asker implements vipbot.Asker at compile time.
var _ vipbot.Asker = (*Asker)(nil)

// Asker implements vipbot.Asker using Google Gemini.
type Asker struct {
	client *genai.Client
	model  string
}

// NewAsker creates a new Asker. An empty model selects DefaultModel.
func NewAsker(client *genai.Client, model string) *Asker {
	if model == "" {
		model = DefaultModel
	}
	return &Asker{client: client, model: model}
}

// Ask answers a customer question, using related products as context.
func (a *Asker) Ask(ctx context.Context, question string, related []*vipbot.Product) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", vipbot.Errorf(vipbot.EINVALID, "question required")
	}
	if a.client == nil {
		return "", vipbot.Errorf(vipbot.EUNAVAILABLE, "gemini client not configured")
	}

	result, err := a.client.Models.GenerateContent(ctx, a.model,
		[]*genai.Content{{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{{Text: BuildUserPrompt(related, question)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", &vipbot.Error{Code: vipbot.EUNAVAILABLE, Message: "gemini request failed", Err: err}
	}
	if result == nil {
		return "", vipbot.Errorf(vipbot.EINTERNAL, "gemini returned nil result")
	}

	answer := strings.TrimSpace(result.Text())
	if answer == "" {
		return "", vipbot.Errorf(vipbot.EUNAVAILABLE, "gemini returned an empty answer")
	}
	return answer, nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "Kamu adalah customer service Luxury VIP yang ramah, profesional, dan membantu. Jawab dalam bahasa Indonesia yang natural dan sopan.",
			}},
		},
		Temperature:     genai.Ptr[float32](0.7),
		TopP:            genai.Ptr[float32](0.95),
		TopK:            genai.Ptr[float32](40),
		MaxOutputTokens: 1024,
	}
}

// BuildUserPrompt builds the prompt for a question. With related products
// the prompt carries their details; without, it asks the model to steer the
// customer towards the faq and stock commands.
func BuildUserPrompt(related []*vipbot.Product, question string) string {
	var sb strings.Builder
	if len(related) == 0 {
		fmt.Fprintf(&sb, "Seseorang bertanya: %q\n", question)
		sb.WriteString("Pertanyaan ini tidak terkait dengan produk yang tersedia di katalog kami. ")
		sb.WriteString("Berikan respons yang sopan dan arahkan mereka untuk menggunakan !faq atau !stock.")
		return sb.String()
	}

	sb.WriteString("Berikut detail produk yang relevan:\n\n")
	for _, p := range related {
		fmt.Fprintf(&sb, "- **%s** (Kategori: %s) | Harga: Rp %s | Stok: %s\n", p.Name, p.Category, p.Price, p.Stock)
		if p.Description != "" {
			fmt.Fprintf(&sb, "  %s\n", p.Description)
		}
	}
	fmt.Fprintf(&sb, "\nPertanyaan customer: %q\n", question)
	sb.WriteString("Berikan jawaban yang informatif, akurat, dan sopan. Jika ditanya cara beli, jelaskan prosesnya dengan friendly.")
	return sb.String()
}
