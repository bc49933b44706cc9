package brief

import (
	"context"
	"errors"
	"testing"

	"fieldsales_backend/internal/pipeline/domain"
	"fieldsales_backend/platform/logger"
)

type fakePipeline struct {
	leads []domain.Lead
	err   error
}

func (f *fakePipeline) Snapshot(ctx context.Context) ([]domain.Lead, error) {
	return f.leads, f.err
}

type fakeAssist struct {
	enabled bool
	brief   domain.Brief
	err     error
}

func (f *fakeAssist) Enabled() bool { return f.enabled }

func (f *fakeAssist) GenerateBrief(ctx context.Context, leads []domain.Lead) (domain.Brief, error) {
	return f.brief, f.err
}

func TestGeneratePrefersAssist(t *testing.T) {
	pipeline := &fakePipeline{leads: []domain.Lead{{ID: domain.RemoteID(1), Title: "A", Score: 90}}}
	assist := &fakeAssist{enabled: true, brief: domain.Brief{Summary: "AI summary", HotInsight: "AI insight"}}

	brief, source, err := New(pipeline, assist, logger.New("development")).Generate(context.Background())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if source != SourceAssist {
		t.Errorf("source = %q, want assist", source)
	}
	if brief.Summary != "AI summary" {
		t.Errorf("summary = %q", brief.Summary)
	}
}

func TestGenerateFallsBackOnAssistFailure(t *testing.T) {
	pipeline := &fakePipeline{leads: []domain.Lead{
		{ID: domain.RemoteID(1), Title: "City of Ames", Score: 85, Stage: domain.StageQualified},
	}}
	assist := &fakeAssist{enabled: true, err: errors.New("timeout")}

	brief, source, err := New(pipeline, assist, logger.New("development")).Generate(context.Background())
	if err != nil {
		t.Fatalf("assist failure must not surface: %v", err)
	}
	if source != SourceFallback {
		t.Errorf("source = %q, want fallback", source)
	}
	if brief.Summary != "1 hot lead in play: City of Ames." {
		t.Errorf("summary = %q, want deterministic fallback", brief.Summary)
	}
}

func TestGenerateWithAssistDisabled(t *testing.T) {
	pipeline := &fakePipeline{}
	assist := &fakeAssist{enabled: false}

	_, source, err := New(pipeline, assist, logger.New("development")).Generate(context.Background())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if source != SourceFallback {
		t.Errorf("source = %q, want fallback", source)
	}
}

func TestGeneratePropagatesSnapshotFailure(t *testing.T) {
	pipeline := &fakePipeline{err: errors.New("db down")}

	if _, _, err := New(pipeline, &fakeAssist{}, logger.New("development")).Generate(context.Background()); err == nil {
		t.Fatal("snapshot failure must surface")
	}
}
