package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OasisOfCleanCode/identity-service/internal/identity/domain"
	"github.com/OasisOfCleanCode/identity-service/internal/identity/service"
	apperr "github.com/OasisOfCleanCode/identity-service/internal/errors"
	"github.com/OasisOfCleanCode/identity-service/internal/mocks"
)

func newLockoutTracker(t *testing.T) (*service.LockoutTracker, *mocks.MockAccountRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mocks.NewMockAccountRepository(ctrl)
	return service.NewLockoutTracker(repo, 10, 10), repo
}

func TestLockoutTracker_CheckBan_NotBanned(t *testing.T) {
	lt, _ := newLockoutTracker(t)

	account := &domain.Account{ID: 1}

	err := lt.CheckBan(context.Background(), account)

	assert.NoError(t, err)
}

func TestLockoutTracker_CheckBan_Active(t *testing.T) {
	lt, _ := newLockoutTracker(t)

	until := time.Now().UTC().Add(7 * time.Minute)
	account := &domain.Account{ID: 1, IsBanned: true, BanUntil: &until}

	err := lt.CheckBan(context.Background(), account)

	require.Error(t, err)
	var lockErr *apperr.LockoutError
	require.True(t, errors.As(err, &lockErr))
	assert.Equal(t, until, lockErr.Until)
	assert.InDelta(t, float64(7*time.Minute), float64(lockErr.Remaining), float64(2*time.Second))
}

func TestLockoutTracker_CheckBan_Elapsed(t *testing.T) {
	lt, repo := newLockoutTracker(t)

	until := time.Now().UTC().Add(-time.Minute)
	account := &domain.Account{ID: 1, IsBanned: true, BanUntil: &until, FailedAttempts: 10}

	repo.EXPECT().UpdateLoginState(gomock.Any(), account).Return(nil)

	err := lt.CheckBan(context.Background(), account)

	assert.NoError(t, err)
	assert.False(t, account.IsBanned)
	assert.Zero(t, account.FailedAttempts)
	assert.Nil(t, account.BanUntil)
}

func TestLockoutTracker_CheckBan_AdminBanNoExpiry(t *testing.T) {
	lt, _ := newLockoutTracker(t)

	account := &domain.Account{ID: 1, IsBanned: true, BanUntil: nil}

	err := lt.CheckBan(context.Background(), account)

	assert.Equal(t, apperr.ErrAccountBanned, err)
}

func TestLockoutTracker_RecordFailure_BelowThreshold(t *testing.T) {
	lt, repo := newLockoutTracker(t)

	// Ninth failure must not lock.
	account := &domain.Account{ID: 1, FailedAttempts: 8}

	repo.EXPECT().UpdateLoginState(gomock.Any(), account).Return(nil)

	err := lt.RecordFailure(context.Background(), account)

	assert.NoError(t, err)
	assert.Equal(t, 9, account.FailedAttempts)
	assert.False(t, account.IsBanned)
}

func TestLockoutTracker_RecordFailure_ThresholdLocks(t *testing.T) {
	lt, repo := newLockoutTracker(t)

	// Tenth failure flips the account to locked for ten minutes.
	account := &domain.Account{ID: 1, FailedAttempts: 9}

	repo.EXPECT().UpdateLoginState(gomock.Any(), account).Return(nil)

	before := time.Now().UTC()
	err := lt.RecordFailure(context.Background(), account)

	require.Error(t, err)
	var lockErr *apperr.LockoutError
	require.True(t, errors.As(err, &lockErr))
	assert.Equal(t, 10*time.Minute, lockErr.Remaining)
	assert.WithinDuration(t, before.Add(10*time.Minute), lockErr.Until, 2*time.Second)

	assert.True(t, account.IsBanned)
	assert.Equal(t, 10, account.FailedAttempts)
	require.NotNil(t, account.BanUntil)
	assert.WithinDuration(t, before.Add(10*time.Minute), *account.BanUntil, 2*time.Second)
}

func TestLockoutTracker_RecordFailure_AlreadyLocked(t *testing.T) {
	lt, _ := newLockoutTracker(t)

	until := time.Now().UTC().Add(5 * time.Minute)
	account := &domain.Account{ID: 1, IsBanned: true, BanUntil: &until, FailedAttempts: 10}

	// A failure during an active lock must not stack another ban.
	err := lt.RecordFailure(context.Background(), account)

	assert.NoError(t, err)
	assert.Equal(t, 10, account.FailedAttempts)
}

func TestLockoutTracker_RecordSuccess(t *testing.T) {
	lt, repo := newLockoutTracker(t)

	account := &domain.Account{ID: 1, FailedAttempts: 4}

	repo.EXPECT().UpdateLoginState(gomock.Any(), account).Return(nil)

	err := lt.RecordSuccess(context.Background(), account)

	assert.NoError(t, err)
	assert.Zero(t, account.FailedAttempts)
	require.NotNil(t, account.LastLoginAttempt)
	assert.WithinDuration(t, time.Now().UTC(), *account.LastLoginAttempt, 2*time.Second)
}

func TestLockoutTracker_SweepExpiredBans(t *testing.T) {
	lt, repo := newLockoutTracker(t)

	repo.EXPECT().SweepExpiredBans(gomock.Any(), gomock.Any()).Return(int64(3), nil)

	n, err := lt.SweepExpiredBans(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestLockoutTracker_SweepExpiredBans_Error(t *testing.T) {
	lt, repo := newLockoutTracker(t)

	expectedError := errors.New("database error")
	repo.EXPECT().SweepExpiredBans(gomock.Any(), gomock.Any()).Return(int64(0), expectedError)

	n, err := lt.SweepExpiredBans(context.Background())

	assert.Error(t, err)
	assert.Zero(t, n)
}
