package app

import (
	"context"

	"totem-quiz-bot/internal/domain"
)

// StateRepository abstracts where per-user quiz progress lives (in-memory, Redis).
type StateRepository interface {
	Get(ctx context.Context, userID int64) (domain.UserQuizState, bool, error)
	Put(ctx context.Context, state domain.UserQuizState) error
	RemoveAll(ctx context.Context) error
}

// FeedbackRepository stores free-text messages users send to the bot.
type FeedbackRepository interface {
	Add(ctx context.Context, fb domain.Feedback) error
	List(ctx context.Context, userID int64) ([]domain.Feedback, error)
}

// CatalogLoader loads quiz content from a backing store.
type CatalogLoader interface {
	LoadCatalog(ctx context.Context) (*domain.Catalog, error)
}

// CardRenderer draws result cards.
type CardRenderer interface {
	RenderDetailCard(outcomeKey, displayName string) (domain.Artifact, error)
	RenderShareCard(outcomeKey, displayName string) (domain.Artifact, error)
}

// ArtifactStore persists rendered cards and returns where they were written.
type ArtifactStore interface {
	Save(artifact domain.Artifact) (string, error)
}
