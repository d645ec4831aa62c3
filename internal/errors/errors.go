package errors

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel failures raised by the identity core. Handlers translate these to
// transport status codes; services never pick HTTP codes themselves.
var (
	// Authentication. ErrAccountNotFound and ErrInvalidCredentials must be
	// indistinguishable to callers (account enumeration), but stay separate
	// internally for logging.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotFound    = errors.New("account not found")
	ErrIdentifierInvalid  = errors.New("identifier is not a valid email or phone")

	// Registration.
	ErrEmailAlreadyInUse = errors.New("email already in use")
	ErrPhoneAlreadyInUse = errors.New("phone number already in use")

	// Scope authorization.
	ErrForbiddenScope = errors.New("requested scope not granted to account")

	// Token validation, in gate order.
	ErrTokenInvalid   = errors.New("token signature invalid or malformed")
	ErrSubjectMissing = errors.New("token carries no subject")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenRevoked   = errors.New("token revoked or unknown")
	ErrAccountMissing = errors.New("token subject does not resolve to an account")
	ErrAccountBanned  = errors.New("account is banned")

	// Single-use verification tokens. Used and expired tokens collapse to the
	// same external message so a captured token leaks nothing.
	ErrVerificationNotFound      = errors.New("verification token not found")
	ErrVerificationExpiredOrUsed = errors.New("verification token expired or already used")

	// Issuance.
	ErrTokenGeneration = errors.New("failed to generate or persist token pair")
)

// LockoutError reports a locked account together with the time the caller may
// retry. Distinct from ErrInvalidCredentials so handlers can disclose the
// remaining wait.
type LockoutError struct {
	Until     time.Time
	Remaining time.Duration
}

func (e *LockoutError) Error() string {
	return fmt.Sprintf("account locked for %s due to too many failed login attempts", e.RemainingMinutes())
}

// RemainingMinutes renders the wait rounded up to whole minutes, matching the
// "N minute(s)" wording surfaced to clients.
func (e *LockoutError) RemainingMinutes() string {
	mins := int((e.Remaining + time.Minute - 1) / time.Minute)
	if mins < 1 {
		mins = 1
	}
	return fmt.Sprintf("%d minute(s)", mins)
}

// IsLockout unwraps err into a LockoutError if it is one.
func IsLockout(err error) (*LockoutError, bool) {
	var le *LockoutError
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}
