package assistant

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jrnhq/jrn/internal/apperrors"
	"github.com/jrnhq/jrn/internal/models"
	"github.com/jrnhq/jrn/internal/repository"
)

// Service orchestrates one chat exchange: validate, assemble context, call
// the model, persist both turns, return the reply.
type Service struct {
	entries *repository.EntryRepository
	history *repository.ChatRepository
	gateway CompletionGateway
	log     zerolog.Logger
}

// NewService wires the assistant pipeline.
func NewService(entries *repository.EntryRepository, history *repository.ChatRepository, gateway CompletionGateway, log zerolog.Logger) *Service {
	return &Service{
		entries: entries,
		history: history,
		gateway: gateway,
		log:     log,
	}
}

// Send handles one user message. An empty message fails before any store
// access. On success the user message and the reply are appended
// sequentially, user first, so history read-back never shows a reply ahead
// of its prompt.
func (s *Service) Send(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", apperrors.NewValidation("Message is required")
	}

	entries, err := s.entries.Recent(ctx, ContextEntryLimit)
	if err != nil {
		return "", err
	}

	history, err := s.history.Recent(ctx, HistoryWindow)
	if err != nil {
		return "", err
	}

	reply, err := s.gateway.Complete(ctx, BuildMessages(entries, history, message))
	if err != nil {
		return "", err
	}

	if err := s.history.Append(ctx, models.RoleUser, message); err != nil {
		return "", err
	}
	if err := s.history.Append(ctx, models.RoleAI, reply); err != nil {
		// The user turn is already durable; surfacing the error here
		// leaves a visible but non-corrupting orphan prompt.
		s.log.Error().Err(err).Msg("failed to persist assistant reply")
		return "", err
	}

	return reply, nil
}
