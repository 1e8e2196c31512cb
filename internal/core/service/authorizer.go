package service

import "github.com/taskhub/task-management-api/internal/core/domain"

// Authorizer decides whether a principal may perform an action. It is
// stateless and evaluated per request: role and ownership can change between
// requests, so nothing is cached.
type Authorizer struct{}

func NewAuthorizer() Authorizer {
	return Authorizer{}
}

// RequireAdmin gates role-restricted actions such as listing or mutating
// other users' accounts.
func (Authorizer) RequireAdmin(p domain.Principal) error {
	if !p.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}

// RequireOwnerOrAdmin gates per-resource actions: admins pass, owners pass,
// everyone else is denied.
func (Authorizer) RequireOwnerOrAdmin(p domain.Principal, ownerID string) error {
	if p.IsAdmin() || p.ID == ownerID {
		return nil
	}
	return domain.ErrForbidden
}
