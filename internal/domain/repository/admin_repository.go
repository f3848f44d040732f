package repository

import (
	"context"

	"github.com/yourusername/symptom-checker/internal/domain/entity"
)

// AdminRepository catalog administrator sessions and audit log
type AdminRepository interface {
	// CreateSession start (or refresh) an admin session
	CreateSession(ctx context.Context, session entity.AdminSession) error

	// GetSession ErrNotFound when the user never logged in
	GetSession(ctx context.Context, userID int64) (*entity.AdminSession, error)

	// DeleteSession logout
	DeleteSession(ctx context.Context, userID int64) error

	// IsAdmin false once the session has been idle too long
	IsAdmin(ctx context.Context, userID int64) (bool, error)

	// Touch bump the session's last activity
	Touch(ctx context.Context, userID int64) error

	LogAction(ctx context.Context, action entity.AdminAction) error

	// Actions newest first
	Actions(ctx context.Context, limit int) ([]entity.AdminAction, error)
}
