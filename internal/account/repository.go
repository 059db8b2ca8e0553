// AngelaMos | 2026
// repository.go

package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carterperez-dev/docmailer/internal/core"
)

type Counts struct {
	Total    int `db:"total"`
	Active   int `db:"active"`
	Monthly  int `db:"monthly"`
	Lifetime int `db:"lifetime"`
}

type Repository interface {
	Create(ctx context.Context, acct *Account) error
	GetByID(ctx context.Context, id string) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByExternalID(ctx context.Context, externalID string) (*Account, error)
	LinkExternalID(ctx context.Context, id, externalID string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateSubscription(
		ctx context.Context,
		id string,
		subType SubscriptionType,
		expiresAt *time.Time,
	) error
	SetActive(ctx context.Context, id string, active bool) error
	SoftDelete(ctx context.Context, id string) error
	List(ctx context.Context, params ListAccountsParams) ([]Account, int, error)
	Counts(ctx context.Context) (*Counts, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const accountColumns = `id, email, password_hash, name, role,
	subscription_type, subscription_expires_at, is_active, external_id,
	documents_generated, created_at, updated_at, deleted_at`

func (r *repository) Create(ctx context.Context, acct *Account) error {
	query := `
		INSERT INTO accounts (id, email, password_hash, name, role,
		                      subscription_type, subscription_expires_at,
		                      is_active, external_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, acct, query,
		acct.ID,
		acct.Email,
		acct.PasswordHash,
		acct.Name,
		acct.Role,
		acct.SubscriptionType,
		acct.SubscriptionExpiresAt,
		acct.IsActive,
		acct.ExternalID,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create account: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create account: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Account, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM accounts
		WHERE id = $1 AND deleted_at IS NULL`, accountColumns)

	var acct Account
	err := r.db.GetContext(ctx, &acct, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get account: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}

	return &acct, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*Account, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM accounts
		WHERE lower(email) = lower($1) AND deleted_at IS NULL`, accountColumns)

	var acct Account
	err := r.db.GetContext(ctx, &acct, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get account by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get account by email: %w", err)
	}

	return &acct, nil
}

func (r *repository) GetByExternalID(
	ctx context.Context,
	externalID string,
) (*Account, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM accounts
		WHERE external_id = $1 AND deleted_at IS NULL`, accountColumns)

	var acct Account
	err := r.db.GetContext(ctx, &acct, query, externalID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf(
			"get account by external id: %w",
			core.ErrNotFound,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("get account by external id: %w", err)
	}

	return &acct, nil
}

func (r *repository) LinkExternalID(
	ctx context.Context,
	id, externalID string,
) error {
	query := `
		UPDATE accounts
		SET external_id = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id, externalID)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("link external id: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("link external id: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("link external id: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("link external id: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	id, passwordHash string,
) error {
	query := `
		UPDATE accounts
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) UpdateSubscription(
	ctx context.Context,
	id string,
	subType SubscriptionType,
	expiresAt *time.Time,
) error {
	query := `
		UPDATE accounts
		SET subscription_type = $2, subscription_expires_at = $3,
		    updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id, subType, expiresAt)
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update subscription: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) SetActive(
	ctx context.Context,
	id string,
	active bool,
) error {
	query := `
		UPDATE accounts
		SET is_active = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id, active)
	if err != nil {
		return fmt.Errorf("set active: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set active: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("set active: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) SoftDelete(ctx context.Context, id string) error {
	query := `
		UPDATE accounts
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete account: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListAccountsParams,
) ([]Account, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, "deleted_at IS NULL")

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(email ILIKE $%d OR name ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+escapeLike(params.Search)+"%")
		argIdx++
	}

	if params.Role != "" {
		conditions = append(conditions, fmt.Sprintf("role = $%d", argIdx))
		args = append(args, params.Role)
		argIdx++
	}

	if params.SubscriptionType != "" {
		conditions = append(
			conditions,
			fmt.Sprintf("subscription_type = $%d", argIdx),
		)
		args = append(args, params.SubscriptionType)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM accounts WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count accounts: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM accounts
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		accountColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var accounts []Account
	if err := r.db.SelectContext(ctx, &accounts, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list accounts: %w", err)
	}

	return accounts, total, nil
}

func (r *repository) Counts(ctx context.Context) (*Counts, error) {
	query := `
		SELECT COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE is_active) AS active,
		       COUNT(*) FILTER (WHERE subscription_type = 'monthly') AS monthly,
		       COUNT(*) FILTER (WHERE subscription_type = 'lifetime') AS lifetime
		FROM accounts
		WHERE deleted_at IS NULL`

	var counts Counts
	if err := r.db.GetContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count accounts: %w", err)
	}

	return &counts, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
