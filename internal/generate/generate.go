// Package generate defines the boundary to an external card generation
// service. The application only depends on this interface; any
// implementation (AI-backed or otherwise) lives outside the core and its
// output goes through the repository's normal import validation.
package generate

import (
	"context"

	"github.com/ethansmadjaa/FlashCards/internal/deck"
)

// Generator produces candidate cards for a topic. Deduplication and
// similarity filtering of candidates are the generator's concern, not
// the repository's.
type Generator interface {
	Generate(ctx context.Context, topic string, count int) ([]deck.GeneratedCard, error)
}
