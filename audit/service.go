// audit/service.go
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/model"
	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/util"
)

// Service records decisions and exposes the audit read path. RecordDecision
// always returns the generated record id; a persist error is reported
// alongside it and never reverses the decision already made.
type Service interface {
	RecordDecision(ctx context.Context, record model.DecisionRecord) (string, error)
	QueryLogs(ctx context.Context, from, to time.Time, actorSub, eventType string) ([]model.DecisionRecord, error)
}

type service struct {
	repo Repository
	bus  *util.EventBus
}

// NewService wraps a repository. The event bus is optional; when present,
// every decision record is published as a decision.recorded event after
// the append attempt, persisted or not.
func NewService(repo Repository, bus *util.EventBus) Service {
	return &service{repo: repo, bus: bus}
}

func (s *service) RecordDecision(ctx context.Context, record model.DecisionRecord) (string, error) {
	if record.RecordID == "" {
		record.RecordID = "ev-" + uuid.NewString()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}

	err := s.repo.Append(ctx, record)

	if s.bus != nil {
		s.bus.Publish(ctx, util.EventDecisionRecorded, record)
	}

	return record.RecordID, err
}

func (s *service) QueryLogs(ctx context.Context, from, to time.Time, actorSub, eventType string) ([]model.DecisionRecord, error) {
	return s.repo.QueryLogs(ctx, from, to, actorSub, eventType)
}
