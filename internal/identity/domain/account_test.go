package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScopeIntersection(t *testing.T) {
	account := &Account{Roles: []Role{RoleUser, RoleAdmin}}

	tests := []struct {
		name      string
		requested []string
		want      []string
	}{
		{name: "empty request grants full role set", requested: nil, want: []string{"USER", "ADMIN"}},
		{name: "subset", requested: []string{"ADMIN"}, want: []string{"ADMIN"}},
		{name: "unheld roles are dropped", requested: []string{"USER", "SYSADMIN"}, want: []string{"USER"}},
		{name: "nothing held", requested: []string{"MODERATOR"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, account.ScopeIntersection(tt.requested))
		})
	}
}

func TestBanExpired(t *testing.T) {
	now := time.Now().UTC()
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	assert.False(t, (&Account{}).BanExpired(now))
	assert.False(t, (&Account{IsBanned: true}).BanExpired(now))
	assert.False(t, (&Account{IsBanned: true, BanUntil: &future}).BanExpired(now))
	assert.True(t, (&Account{IsBanned: true, BanUntil: &past}).BanExpired(now))
	// Boundary: ban_until == now counts as expired.
	assert.True(t, (&Account{IsBanned: true, BanUntil: &now}).BanExpired(now))
}

func TestTokenOwnerInvariant(t *testing.T) {
	accountID := int64(1)
	serviceID := "svc"

	assert.NoError(t, (&Token{AccountID: &accountID}).ValidateOwner())
	assert.NoError(t, (&Token{ServiceID: &serviceID}).ValidateOwner())
	assert.Error(t, (&Token{}).ValidateOwner())
	assert.Error(t, (&Token{AccountID: &accountID, ServiceID: &serviceID}).ValidateOwner())
}

func TestVerificationTokenUsable(t *testing.T) {
	now := time.Now().UTC()

	live := &VerificationToken{ExpiresAt: now.Add(time.Hour)}
	assert.True(t, live.Usable(now))

	expired := &VerificationToken{ExpiresAt: now.Add(-time.Hour)}
	assert.False(t, expired.Usable(now))

	used := &VerificationToken{Ban: true, ExpiresAt: now.Add(time.Hour)}
	assert.False(t, used.Usable(now))
}
