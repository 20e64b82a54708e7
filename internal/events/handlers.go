package events

import (
	"dockhand/pkg/logger"
)

// AuditLogHandler writes every event to the application log. It subscribes
// to all event types.
type AuditLogHandler struct{}

func NewAuditLogHandler() *AuditLogHandler {
	return &AuditLogHandler{}
}

func (h *AuditLogHandler) CanHandle(EventType) bool {
	return true
}

func (h *AuditLogHandler) Handle(event Event) error {
	logger.Info("audit",
		"event", string(event.Type),
		"deployment_id", event.DeploymentID,
		"node_id", event.NodeID,
		"image", event.Image,
		"tag", event.Tag)
	return nil
}
