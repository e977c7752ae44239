package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound          = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists     = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput      = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState      = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrSyncInProgress    = NewDomainError("SYNC_IN_PROGRESS", "A sync run is already in progress for this tenant")
	ErrInvalidCron       = NewDomainError("INVALID_CRON", "Invalid cron expression")
	ErrInvalidTimezone   = NewDomainError("INVALID_TIMEZONE", "Invalid timezone identifier")
	ErrInvalidWebhookURL = NewDomainError("INVALID_WEBHOOK_URL", "Webhook URL must be a valid http or https URL")
	ErrCredentialsNotSet = NewDomainError("CREDENTIALS_NOT_SET", "Marketplace credentials are not configured")
)
