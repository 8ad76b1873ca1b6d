// util/notification_service.go

package util

import (
	"context"

	"go.uber.org/zap"

	logger "github.com/Jusharra/identity-aware-healthcare-rag-mcp/logging"
	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/model"
)

// EventDecisionRecorded is published after every authorization decision.
const EventDecisionRecorded = "decision.recorded"

// NotificationService escalates noteworthy decisions. In a larger
// deployment this would feed a message queue or SIEM; here it raises
// structured log events.
type NotificationService struct{}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyDecision surfaces denials loudly and allows quietly.
func (n *NotificationService) NotifyDecision(ctx context.Context, record model.DecisionRecord) error {
	if record.Decision == model.DecisionDeny {
		logger.Warn("NOTIFICATION: Access denied",
			zap.String("recordID", record.RecordID),
			zap.String("eventType", record.EventType),
			zap.String("actor", record.Actor.Sub),
			zap.String("role", record.Actor.Role),
			zap.Strings("reasons", record.Reasons))
		return nil
	}

	logger.Debug("NOTIFICATION: Access allowed",
		zap.String("recordID", record.RecordID),
		zap.String("eventType", record.EventType),
		zap.String("actor", record.Actor.Sub))
	return nil
}

// DecisionHandler adapts NotifyDecision to the event bus.
func (n *NotificationService) DecisionHandler() EventHandler {
	return func(ctx context.Context, event Event) error {
		record, ok := event.Payload.(model.DecisionRecord)
		if !ok {
			return nil
		}
		return n.NotifyDecision(ctx, record)
	}
}
