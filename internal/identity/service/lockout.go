package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/OasisOfCleanCode/identity-service/internal/identity/domain"
	apperr "github.com/OasisOfCleanCode/identity-service/internal/errors"
)

// LockoutTracker escalates repeated failed logins into a timed account ban.
// The counter lives on the account row; the LOCKED → ACTIVE transition is
// evaluated lazily whenever the account is touched.
type LockoutTracker struct {
	repo        domain.AccountRepository
	maxAttempts int
	lockoutFor  time.Duration
	now         func() time.Time
}

func NewLockoutTracker(repo domain.AccountRepository, maxAttempts, lockoutMinutes int) *LockoutTracker {
	return &LockoutTracker{
		repo:        repo,
		maxAttempts: maxAttempts,
		lockoutFor:  time.Duration(lockoutMinutes) * time.Minute,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// CheckBan lifts an elapsed ban and reports an active one as a LockoutError
// carrying the remaining wait. Returns nil when the account may proceed.
func (lt *LockoutTracker) CheckBan(ctx context.Context, account *domain.Account) error {
	if !account.IsBanned {
		return nil
	}

	now := lt.now()
	if account.BanExpired(now) {
		account.IsBanned = false
		account.FailedAttempts = 0
		account.BanUntil = nil
		if err := lt.repo.UpdateLoginState(ctx, account); err != nil {
			return err
		}
		slog.Info("account ban lifted", "account_id", account.ID)
		return nil
	}

	// Manual admin bans may have no ban_until; those never auto-expire.
	if account.BanUntil == nil {
		return apperr.ErrAccountBanned
	}

	return &apperr.LockoutError{Until: *account.BanUntil, Remaining: account.BanUntil.Sub(now)}
}

// RecordFailure increments the counter for a wrong password on a non-locked
// account. The threshold-th failure flips the account to LOCKED.
func (lt *LockoutTracker) RecordFailure(ctx context.Context, account *domain.Account) error {
	if account.IsBanned {
		return nil
	}

	account.FailedAttempts++
	if account.FailedAttempts >= lt.maxAttempts {
		now := lt.now()
		until := now.Add(lt.lockoutFor)
		account.IsBanned = true
		account.BanUntil = &until
		if err := lt.repo.UpdateLoginState(ctx, account); err != nil {
			return err
		}
		slog.Warn("account locked after repeated failed logins",
			"account_id", account.ID, "failed_attempts", account.FailedAttempts, "ban_until", until)
		return &apperr.LockoutError{Until: until, Remaining: lt.lockoutFor}
	}

	return lt.repo.UpdateLoginState(ctx, account)
}

// RecordSuccess resets the failure counter and stamps last_login_attempt.
func (lt *LockoutTracker) RecordSuccess(ctx context.Context, account *domain.Account) error {
	now := lt.now()
	account.FailedAttempts = 0
	account.LastLoginAttempt = &now
	return lt.repo.UpdateLoginState(ctx, account)
}

// SweepExpiredBans bulk-lifts elapsed bans. Optional hygiene; correctness is
// carried by the lazy check above.
func (lt *LockoutTracker) SweepExpiredBans(ctx context.Context) (int64, error) {
	n, err := lt.repo.SweepExpiredBans(ctx, lt.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		slog.Info("expired account bans swept", "count", n)
	}
	return n, nil
}
