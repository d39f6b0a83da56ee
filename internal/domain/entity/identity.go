package entity

// Identity is the authenticated caller as seen by use cases. A guest has
// no UserID.
type Identity struct {
	UserID    string `json:"userId,omitempty"`
	Name      string `json:"name,omitempty"`
	Role      Role   `json:"role,omitempty"`
	SessionID string `json:"-"`
	Guest     bool   `json:"isGuest"`
}

func (i Identity) Authenticated() bool {
	return !i.Guest && i.UserID != ""
}

func (i Identity) IsAdmin() bool {
	return i.Authenticated() && i.Role == RoleAdmin
}

func (i Identity) IsTrader() bool {
	return i.Authenticated() && i.Role == RoleTrader
}
