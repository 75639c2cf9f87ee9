package core

// Principal is the authenticated identity plus its organizational binding.
// All visibility checks key on the scope it carries.
type Principal struct {
	UserID         int
	OrganizationID *int
	Role           string
}

// Scope is the (user, organization?) ownership pair records are filtered by.
// A nil OrganizationID means the user acts individually; such a scope only
// matches records whose organization_id is also NULL.
type Scope struct {
	UserID         int
	OrganizationID *int
}

// Scope returns the ownership scope of the principal.
func (p *Principal) Scope() Scope {
	return Scope{UserID: p.UserID, OrganizationID: p.OrganizationID}
}

// Matches reports whether a record owned by (ownerUserID, orgID) is visible
// to this scope: same owner and the organization either equal or both absent.
func (s Scope) Matches(ownerUserID int, orgID *int) bool {
	if s.UserID != ownerUserID {
		return false
	}
	if s.OrganizationID == nil || orgID == nil {
		return s.OrganizationID == nil && orgID == nil
	}
	return *s.OrganizationID == *orgID
}
