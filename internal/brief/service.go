package brief

import (
	"context"

	"fieldsales_backend/internal/pipeline/domain"
	"fieldsales_backend/platform/logger"
)

// Source tags where a brief came from.
const (
	SourceAssist   = "assist"
	SourceFallback = "fallback"
)

// SnapshotProvider supplies the lead snapshot the brief is written over.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) ([]domain.Lead, error)
}

// Generator produces a brief from a snapshot.
type Generator interface {
	Enabled() bool
	GenerateBrief(ctx context.Context, leads []domain.Lead) (domain.Brief, error)
}

// Service produces the daily brief. The assist service is preferred; any
// failure there degrades to the deterministic local brief so the endpoint
// never errors on an upstream outage.
type Service struct {
	pipeline SnapshotProvider
	assist   Generator
	log      *logger.Logger
}

// New creates a new brief service.
func New(pipeline SnapshotProvider, assist Generator, log *logger.Logger) *Service {
	return &Service{pipeline: pipeline, assist: assist, log: log}
}

// Generate returns the brief for the current pipeline along with its source.
func (s *Service) Generate(ctx context.Context) (domain.Brief, string, error) {
	snapshot, err := s.pipeline.Snapshot(ctx)
	if err != nil {
		return domain.Brief{}, "", err
	}

	if s.assist != nil && s.assist.Enabled() {
		brief, err := s.assist.GenerateBrief(ctx, snapshot)
		if err == nil {
			return brief, SourceAssist, nil
		}
		s.log.WithContext(ctx).Warn("ai assist brief failed, using fallback", "error", err)
	}

	return domain.FallbackBrief(snapshot), SourceFallback, nil
}
