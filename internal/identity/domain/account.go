package domain

import "time"

// Role is a capability label attached both to accounts and, at mint time, to
// tokens as scopes.
type Role string

const (
	RoleUser      Role = "USER"
	RoleAdmin     Role = "ADMIN"
	RoleSysadmin  Role = "SYSADMIN"
	RoleDeveloper Role = "DEVELOPER"
	RoleModerator Role = "MODERATOR"
	RoleSupport   Role = "SUPPORT"
	RoleManager   Role = "MANAGER"
)

// AllRoles lists every role the service recognises, used to seed the roles
// table at startup.
func AllRoles() []Role {
	return []Role{RoleUser, RoleAdmin, RoleSysadmin, RoleDeveloper, RoleModerator, RoleSupport, RoleManager}
}

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSysadmin, RoleDeveloper, RoleModerator, RoleSupport, RoleManager:
		return true
	}
	return false
}

// Account is the identity record. At least one of Email/Phone is always set.
type Account struct {
	ID               int64
	Email            *string
	Phone            *string
	PasswordHash     string
	IsBanned         bool
	BanUntil         *time.Time
	FailedAttempts   int
	LastLoginAttempt *time.Time
	IsEmailConfirmed bool
	IsPhoneConfirmed bool
	Roles            []Role
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// BanExpired reports whether an active ban has run out and may be lifted.
func (a *Account) BanExpired(now time.Time) bool {
	return a.IsBanned && a.BanUntil != nil && !now.Before(*a.BanUntil)
}

// HasRole reports whether the account currently holds the given role.
func (a *Account) HasRole(role Role) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// ScopeIntersection intersects the requested scopes with the held roles. An empty request grants
// the full current role set, both at login and at refresh.
func (a *Account) ScopeIntersection(requested []string) []string {
	if len(requested) == 0 {
		scopes := make([]string, 0, len(a.Roles))
		for _, r := range a.Roles {
			scopes = append(scopes, string(r))
		}
		return scopes
	}
	scopes := make([]string, 0, len(requested))
	for _, s := range requested {
		if a.HasRole(Role(s)) {
			scopes = append(scopes, s)
		}
	}
	return scopes
}
