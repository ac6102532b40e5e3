package dto

import (
	"time"

	"github.com/google/uuid"
)

type AuditLogResponse struct {
	ID         int64                  `json:"id"`
	HospitalID *uuid.UUID             `json:"hospitalId,omitempty"`
	Action     string                 `json:"action"`
	Metadata   map[string]interface{} `json:"metadata"`
	CreatedAt  time.Time              `json:"createdAt"`
}
