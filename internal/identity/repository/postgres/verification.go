package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/OasisOfCleanCode/identity-service/internal/identity/domain"
	apperr "github.com/OasisOfCleanCode/identity-service/internal/errors"
)

func (r *Repository) CreateVerificationToken(ctx context.Context, vt *domain.VerificationToken) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO verification_tokens (id, kind, email, new_email, token, ban, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`, vt.ID, string(vt.Kind), vt.Email, vt.NewEmail, vt.Token, vt.Ban, vt.ExpiresAt, vt.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert verification token: %w", err)
	}
	return nil
}

func (r *Repository) FindVerificationToken(ctx context.Context, tokenString string, kind domain.VerificationKind) (*domain.VerificationToken, error) {
	query := `
		SELECT id, kind, email, new_email, token, ban, expires_at, created_at
		FROM verification_tokens
		WHERE token = $1 AND kind = $2
		LIMIT 1;
	`
	var vt domain.VerificationToken
	err := r.db.QueryRow(ctx, query, tokenString, string(kind)).
		Scan(&vt.ID, &vt.Kind, &vt.Email, &vt.NewEmail, &vt.Token, &vt.Ban, &vt.ExpiresAt, &vt.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load verification token: %w", err)
	}
	return &vt, nil
}

// RedeemEmailVerify bans the token and confirms the address in one
// transaction; partial application is the bug class this guards against.
func (r *Repository) RedeemEmailVerify(ctx context.Context, vt *domain.VerificationToken, accountID int64) error {
	return r.redeem(ctx, vt, `UPDATE accounts SET is_email_confirmed = true, updated_at = now() WHERE id = $1;`, accountID)
}

// RedeemEmailChange swaps the address and bans the token atomically.
func (r *Repository) RedeemEmailChange(ctx context.Context, vt *domain.VerificationToken, accountID int64) error {
	return r.redeem(ctx, vt,
		`UPDATE accounts SET email = $2, is_email_confirmed = true, updated_at = now() WHERE id = $1;`,
		accountID, vt.NewEmail)
}

// RedeemPasswordReset stores the new hash and bans the token atomically.
func (r *Repository) RedeemPasswordReset(ctx context.Context, vt *domain.VerificationToken, accountID int64, newHash string) error {
	return r.redeem(ctx, vt,
		`UPDATE accounts SET password_hash = $2, updated_at = now() WHERE id = $1;`,
		accountID, newHash)
}

// redeem runs "ban token, then apply effect" in a single transaction. The
// ban UPDATE is guarded by ban = false: of two concurrent redemptions the
// second blocks on the row lock, then sees zero affected rows and is denied.
func (r *Repository) redeem(ctx context.Context, vt *domain.VerificationToken, effectSQL string, effectArgs ...any) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin redeem tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `UPDATE verification_tokens SET ban = true WHERE id = $1 AND ban = false;`, vt.ID)
	if err != nil {
		return fmt.Errorf("failed to ban verification token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrVerificationExpiredOrUsed
	}

	if _, err := tx.Exec(ctx, effectSQL, effectArgs...); err != nil {
		return fmt.Errorf("failed to apply verification effect: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit redemption: %w", err)
	}

	vt.Ban = true
	return nil
}
