package vipbot

import "context"

// Replies used when a question cannot be answered by the model.
const (
	AskUnavailableMessage = "Maaf, fitur AI saat ini tidak tersedia."
	AskFallbackMessage    = "Maaf, terjadi kesalahan saat memproses pertanyaan Anda. Silakan coba lagi nanti."
)

// Asker answers free-form customer questions with a generative model.
type Asker interface {
	// Ask answers question using related as catalog context. An empty
	// related list means the question does not match the catalog.
	Ask(ctx context.Context, question string, related []*Product) (string, error)
}
