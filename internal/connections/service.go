// Package connections reports the health of every external collaborator so
// the mobile client can show which integrations are live.
package connections

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"fieldsales_backend/platform/logger"
)

const checkTimeout = 5 * time.Second

// Target is one collaborator to health-check. A nil Check means the
// collaborator is not configured.
type Target struct {
	ID       string
	Name     string
	Endpoint string
	Check    func(ctx context.Context) error
}

// Status is the health report for one collaborator.
type Status struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Endpoint string `json:"endpoint"`
	OK       bool   `json:"ok"`
	Message  string `json:"message"`
}

// Service checks collaborator health on demand.
type Service struct {
	targets []Target
	log     *logger.Logger
}

// New creates a new connections service over the given targets.
func New(targets []Target, log *logger.Logger) *Service {
	return &Service{targets: targets, log: log}
}

// Statuses pings every target concurrently and reports per-target health.
// Targets never fail the call as a whole; an unreachable collaborator is a
// status, not an error.
func (s *Service) Statuses(ctx context.Context) []Status {
	statuses := make([]Status, len(s.targets))

	g, gctx := errgroup.WithContext(ctx)
	for i, target := range s.targets {
		i, target := i, target
		g.Go(func() error {
			statuses[i] = s.check(gctx, target)
			return nil
		})
	}
	_ = g.Wait()

	return statuses
}

func (s *Service) check(ctx context.Context, target Target) Status {
	status := Status{
		ID:       target.ID,
		Name:     target.Name,
		Endpoint: target.Endpoint,
	}

	if target.Check == nil {
		status.Message = "not configured"
		return status
	}

	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	if err := target.Check(checkCtx); err != nil {
		s.log.WithContext(ctx).Warn("connection check failed", "target", target.ID, "error", err)
		status.Message = err.Error()
		return status
	}

	status.OK = true
	status.Message = "connected"
	return status
}
