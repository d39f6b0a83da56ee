package entity

import (
	"time"
)

type Role string

const (
	RoleUser   Role = "user"
	RoleTrader Role = "trader"
	RoleWorker Role = "worker"
	RoleAdmin  Role = "admin"
)

var roles = []Role{RoleUser, RoleTrader, RoleWorker, RoleAdmin}

func (r Role) Valid() bool {
	for _, v := range roles {
		if v == r {
			return true
		}
	}
	return false
}

func Roles() []Role {
	out := make([]Role, len(roles))
	copy(out, roles)
	return out
}

// User is the profile record keyed by the sanitized phone number.
// Password holds a bcrypt hash; records created before hashing was
// introduced may still hold the plaintext value until the next login.
type User struct {
	ID       string  `json:"id" firestore:"id"`
	Phone    string  `json:"phone" firestore:"phone"`
	Name     string  `json:"name" firestore:"name"`
	Password string  `json:"password,omitempty" firestore:"password"`
	Role     Role    `json:"role" firestore:"role"`
	Location string  `json:"location" firestore:"location"`
	Balance  float64 `json:"balance" firestore:"balance"`
	Verified bool    `json:"verified" firestore:"verified"`
	Avatar   string  `json:"avatar" firestore:"avatar"`
	Bio      string  `json:"bio,omitempty" firestore:"bio,omitempty"`

	Store *StoreConfig  `json:"store,omitempty" firestore:"store,omitempty"`
	Staff []StaffMember `json:"staff,omitempty" firestore:"staff,omitempty"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

type StoreConfig struct {
	WorkingHours  string            `json:"workingHours,omitempty" firestore:"workingHours,omitempty"`
	DeliveryAreas []string          `json:"deliveryAreas,omitempty" firestore:"deliveryAreas,omitempty"`
	SocialLinks   map[string]string `json:"socialLinks,omitempty" firestore:"socialLinks,omitempty"`
}

type StaffMember struct {
	ID       string    `json:"id" firestore:"id"`
	Name     string    `json:"name" firestore:"name"`
	Phone    string    `json:"phone" firestore:"phone"`
	Position string    `json:"position,omitempty" firestore:"position,omitempty"`
	AddedAt  time.Time `json:"addedAt" firestore:"addedAt"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Public returns a copy without the credential, for anything leaving the
// service.
func (u *User) Public() *User {
	if u == nil {
		return nil
	}
	out := *u
	out.Password = ""
	return &out
}
