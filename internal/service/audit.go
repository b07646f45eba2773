package service

import (
	"context"
	"encoding/json"

	"gatekeeper/internal/entity"
	"gatekeeper/internal/repository"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

func appendAudit(
	ctx context.Context,
	audit repository.AuditLogRepository,
	userID *uuid.UUID,
	ipAddress *string,
	action entity.AuditAction,
	metadata map[string]any,
) error {
	if audit == nil {
		return nil
	}
	var payload datatypes.JSON
	if metadata != nil {
		bytes, err := json.Marshal(metadata)
		if err != nil {
			return err
		}
		payload = datatypes.JSON(bytes)
	}
	return audit.Log(ctx, &entity.AuditLog{
		UserID:    userID,
		IPAddress: ipAddress,
		Action:    action,
		Metadata:  payload,
	})
}
