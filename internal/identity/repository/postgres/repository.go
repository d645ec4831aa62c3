package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/OasisOfCleanCode/identity-service/internal/identity/domain"
)

// DB is the subset of pgxpool.Pool the repository needs; pgxmock satisfies it
// in tests.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository implements the account, token and verification-token stores on
// PostgreSQL. Every rotation and redemption runs inside one transaction;
// per-account serialization comes from locking the owning account row.
type Repository struct {
	db DB
}

func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

const accountColumns = `id, email, phone, password_hash, is_banned, ban_until, failed_attempts,
	       last_login_attempt, is_email_confirmed, is_phone_confirmed, created_at, updated_at`

func (r *Repository) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 LIMIT 1;`
	return r.scanAccount(ctx, r.db.QueryRow(ctx, query, id))
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1 LIMIT 1;`
	return r.scanAccount(ctx, r.db.QueryRow(ctx, query, email))
}

func (r *Repository) FindByPhone(ctx context.Context, phone string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE phone = $1 LIMIT 1;`
	return r.scanAccount(ctx, r.db.QueryRow(ctx, query, phone))
}

func (r *Repository) scanAccount(ctx context.Context, row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.ID, &a.Email, &a.Phone, &a.PasswordHash, &a.IsBanned, &a.BanUntil,
		&a.FailedAttempts, &a.LastLoginAttempt, &a.IsEmailConfirmed, &a.IsPhoneConfirmed,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	roles, err := r.loadRoles(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	a.Roles = roles

	return &a, nil
}

func (r *Repository) loadRoles(ctx context.Context, accountID int64) ([]domain.Role, error) {
	rows, err := r.db.Query(ctx, `SELECT role FROM account_roles WHERE account_id = $1 ORDER BY role;`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roles: %w", err)
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, domain.Role(role))
	}
	return roles, rows.Err()
}

// Create inserts the account and its initial role in one transaction.
func (r *Repository) Create(ctx context.Context, account *domain.Account, role domain.Role) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin create tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		INSERT INTO accounts (email, phone, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id;
	`, account.Email, account.Phone, account.PasswordHash, account.CreatedAt, account.UpdatedAt).Scan(&account.ID)
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO account_roles (id, account_id, role) VALUES (gen_random_uuid(), $1, $2);
	`, account.ID, string(role))
	if err != nil {
		return fmt.Errorf("failed to insert initial role: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *Repository) UpdateLoginState(ctx context.Context, account *domain.Account) error {
	_, err := r.db.Exec(ctx, `
		UPDATE accounts
		SET failed_attempts = $2, is_banned = $3, ban_until = $4, last_login_attempt = $5, updated_at = now()
		WHERE id = $1;
	`, account.ID, account.FailedAttempts, account.IsBanned, account.BanUntil, account.LastLoginAttempt)
	if err != nil {
		return fmt.Errorf("failed to update login state: %w", err)
	}
	return nil
}

func (r *Repository) UpdateBan(ctx context.Context, id int64, banned bool, until *time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE accounts
		SET is_banned = $2, ban_until = $3,
		    failed_attempts = CASE WHEN $2 THEN failed_attempts ELSE 0 END,
		    updated_at = now()
		WHERE id = $1;
	`, id, banned, until)
	if err != nil {
		return fmt.Errorf("failed to update ban: %w", err)
	}
	return nil
}

func (r *Repository) GrantRole(ctx context.Context, id int64, role domain.Role) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO account_roles (id, account_id, role)
		VALUES (gen_random_uuid(), $1, $2)
		ON CONFLICT (account_id, role) DO NOTHING;
	`, id, string(role))
	return err
}

func (r *Repository) RevokeRole(ctx context.Context, id int64, role domain.Role) error {
	_, err := r.db.Exec(ctx, `DELETE FROM account_roles WHERE account_id = $1 AND role = $2;`, id, string(role))
	return err
}

func (r *Repository) RecordLoginAttempt(ctx context.Context, identifier string, success bool) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO login_attempts (id, identifier, attempt_time, successful)
		VALUES (gen_random_uuid(), $1, now(), $2);
	`, identifier, success)
	return err
}

func (r *Repository) SweepExpiredBans(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE accounts
		SET is_banned = false, failed_attempts = 0, ban_until = NULL, updated_at = now()
		WHERE is_banned = true AND ban_until IS NOT NULL AND ban_until <= $1;
	`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep expired bans: %w", err)
	}
	return tag.RowsAffected(), nil
}

// IssuePair bans every live token of the account and inserts the new
// access+refresh rows, all inside one transaction. The FOR UPDATE lock on the
// account row serializes concurrent rotations for the same account, which is
// what keeps "at most one non-banned row per kind" true under races.
func (r *Repository) IssuePair(ctx context.Context, accountID int64, access, refresh *domain.Token) error {
	return r.rotate(ctx, accountID, nil, access, refresh)
}

// IssueAccessOnly rotates only the ACCESS family; the presented refresh token
// stays live.
func (r *Repository) IssueAccessOnly(ctx context.Context, accountID int64, access *domain.Token) error {
	kind := domain.TokenKindAccess
	return r.rotate(ctx, accountID, &kind, access)
}

func (r *Repository) rotate(ctx context.Context, accountID int64, onlyKind *domain.TokenKind, inserts ...*domain.Token) error {
	for _, t := range inserts {
		if err := t.ValidateOwner(); err != nil {
			return err
		}
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin rotation tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var locked int64
	if err := tx.QueryRow(ctx, `SELECT id FROM accounts WHERE id = $1 FOR UPDATE;`, accountID).Scan(&locked); err != nil {
		return fmt.Errorf("failed to lock account %d: %w", accountID, err)
	}

	if onlyKind != nil {
		_, err = tx.Exec(ctx, `UPDATE tokens SET ban = true WHERE account_id = $1 AND kind = $2 AND ban = false;`,
			accountID, string(*onlyKind))
	} else {
		_, err = tx.Exec(ctx, `UPDATE tokens SET ban = true WHERE account_id = $1 AND ban = false;`, accountID)
	}
	if err != nil {
		return fmt.Errorf("failed to ban prior tokens: %w", err)
	}

	for _, t := range inserts {
		_, err = tx.Exec(ctx, `
			INSERT INTO tokens (id, account_id, service_id, token, kind, expires_at, ban, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
		`, t.ID, t.AccountID, t.ServiceID, t.Token, string(t.Kind), t.ExpiresAt, t.Ban, t.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert %s token: %w", t.Kind, err)
		}
	}

	return tx.Commit(ctx)
}

func (r *Repository) FindActive(ctx context.Context, tokenString string, kind domain.TokenKind, accountID int64) (*domain.Token, error) {
	query := `
		SELECT id, account_id, service_id, token, kind, expires_at, ban, created_at
		FROM tokens
		WHERE token = $1 AND kind = $2 AND account_id = $3 AND ban = false
		LIMIT 1;
	`
	var t domain.Token
	err := r.db.QueryRow(ctx, query, tokenString, string(kind), accountID).
		Scan(&t.ID, &t.AccountID, &t.ServiceID, &t.Token, &t.Kind, &t.ExpiresAt, &t.Ban, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load token: %w", err)
	}
	return &t, nil
}

func (r *Repository) BanAll(ctx context.Context, accountID int64) error {
	_, err := r.db.Exec(ctx, `UPDATE tokens SET ban = true WHERE account_id = $1 AND ban = false;`, accountID)
	if err != nil {
		return fmt.Errorf("failed to ban tokens: %w", err)
	}
	return nil
}
