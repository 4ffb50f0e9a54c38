// File: internal/listing/gate.go
package listing

import (
	"github.com/aqkal/Rentixe/internal/shared"
)

// ResolvePermissions computes what the caller may do with a listing,
// evaluated in order: owners may edit and delete, admins may delete
// listings they do not own, any other authenticated user may favorite.
// Anonymous callers get nothing.
func ResolvePermissions(l *Listing, identity *shared.Identity) Permissions {
	if identity.IsAnonymous() {
		return Permissions{}
	}
	if identity.UserID == l.OwnerID {
		return Permissions{CanEdit: true, CanDelete: true}
	}
	if identity.IsAdmin() {
		return Permissions{CanDelete: true}
	}
	return Permissions{CanFavorite: true}
}
