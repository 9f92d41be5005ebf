package services

import (
	"encoding/json"

	"pocketledger/internal/localstore"
	"pocketledger/internal/logger"
)

// auditService records user activity as structured log entries.
type auditService struct{}

// NewAuditService creates a new AuditServicer.
func NewAuditService() AuditServicer {
	return &auditService{}
}

// Log records an audit event. Errors are logged but never propagate
// to avoid disrupting the main operation.
func (s *auditService) Log(phone, action, resourceType, resourceID, ipAddress string, changes map[string]any) {
	var changesJSON string
	if changes != nil {
		data, err := json.Marshal(changes)
		if err != nil {
			logger.Get().Errorw("failed to marshal audit log changes", "error", err, "action", action)
			changesJSON = "{}"
		} else {
			changesJSON = string(data)
		}
	}

	logger.Named("audit").Infow(action,
		"user", localstore.NormalizeUserID(phone),
		"resource_type", resourceType,
		"resource_id", resourceID,
		"ip_address", ipAddress,
		"changes", changesJSON,
	)
}
