package auth

import "github.com/A1ekseiPanov/task-management-system/internal/models"

// Identity is the authenticated caller extracted from a session token.
// Every service operation that enforces ownership or role rules receives
// it (or its UserID) explicitly instead of reading ambient request state.
type Identity struct {
	UserID int64
	Email  string
	Roles  []models.Role
}

func (i Identity) HasRole(role models.Role) bool {
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}
	return false
}
