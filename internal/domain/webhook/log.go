package webhook

import (
	"github.com/google/uuid"

	"github.com/catsync/backend/internal/domain/shared"
)

// WebhookLog is the immutable record of one delivery attempt. Exactly
// one row is written per attempt, successful or not.
type WebhookLog struct {
	shared.TenantEntity
	WebhookID    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Status       DeliveryStatus `gorm:"type:varchar(20);not null"`
	RequestBody  string         `gorm:"type:text"`
	ResponseCode int            `gorm:"not null;default:0"`
	ResponseBody string         `gorm:"type:text"`
	LatencyMS    int64          `gorm:"not null;default:0"`
	ErrorMessage string         `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (WebhookLog) TableName() string {
	return "webhook_logs"
}

// NewWebhookLog creates a delivery attempt record
func NewWebhookLog(tenantID, webhookID uuid.UUID) *WebhookLog {
	return &WebhookLog{
		TenantEntity: shared.NewTenantEntity(tenantID),
		WebhookID:    webhookID,
	}
}
