package user

import (
	"net/http"
	"time"

	"github.com/ft-kumarsatyam/venue-management-system/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusConflict, "email already used")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid email or password")
	ErrEmailRequired      = apperror.New(http.StatusBadRequest, "email is required")
	ErrSelfLockout        = apperror.New(http.StatusConflict, "you cannot deactivate or demote yourself")
	ErrLastAdmin          = apperror.New(http.StatusConflict, "at least one active system admin must remain")
	ErrNoChanges          = apperror.New(http.StatusBadRequest, "no changes requested")
)

// User is an operator of the admin dashboard.
type User struct {
	ID            string // UUID
	Email         string
	PasswordHash  string
	DisplayName   *string
	CreatedAt     time.Time
	LastLoginAt   *time.Time
	IsActive      bool
	IsSystemAdmin bool
}

// UserFilter narrows the operator list.
type UserFilter struct {
	Search   string // email or display name
	IsActive *bool
	Page     int
	PageSize int
}

// Flags is a partial update of the account switches; nil leaves a flag as is.
type Flags struct {
	IsActive      *bool
	IsSystemAdmin *bool
}

func (f Flags) empty() bool {
	return f.IsActive == nil && f.IsSystemAdmin == nil
}

// revokesAdmin reports whether applying f to u leaves u without admin rights.
func (f Flags) revokesAdmin(u *User) bool {
	if !u.IsSystemAdmin || !u.IsActive {
		return false
	}
	return (f.IsActive != nil && !*f.IsActive) || (f.IsSystemAdmin != nil && !*f.IsSystemAdmin)
}
