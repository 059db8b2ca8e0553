// AngelaMos | 2026
// repository.go

package document

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/docmailer/internal/core"
)

type Counts struct {
	Total   int `db:"total"`
	Pending int `db:"pending"`
	Sent    int `db:"sent"`
	Failed  int `db:"failed"`
}

type Repository interface {
	Create(ctx context.Context, doc *Document) error
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id, detail string) error
	GetByID(ctx context.Context, id string) (*Document, error)
	List(
		ctx context.Context,
		params ListDocumentsParams,
	) ([]Document, int, error)
	Counts(ctx context.Context) (*Counts, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const documentColumns = `id, account_id, template, recipient_email,
	order_number, full_name, status, status_detail, sent_at,
	created_at, updated_at`

// Create inserts the pending record. When the document is attributed to an
// account, the insert and the account's generation counter move in one
// transaction so the counter never drifts from the stored documents.
func (r *repository) Create(ctx context.Context, doc *Document) error {
	insert := `
		INSERT INTO documents (id, account_id, template, recipient_email,
		                       order_number, full_name, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	if doc.AccountID == nil {
		err := r.db.GetContext(ctx, doc, insert,
			doc.ID,
			doc.AccountID,
			doc.Template,
			doc.RecipientEmail,
			doc.OrderNumber,
			doc.FullName,
			doc.Status,
		)
		if err != nil {
			return fmt.Errorf("create document: %w", err)
		}
		return nil
	}

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, doc, insert,
			doc.ID,
			doc.AccountID,
			doc.Template,
			doc.RecipientEmail,
			doc.OrderNumber,
			doc.FullName,
			doc.Status,
		); err != nil {
			return fmt.Errorf("insert document: %w", err)
		}

		counter := `
			UPDATE accounts
			SET documents_generated = documents_generated + 1,
			    updated_at = NOW()
			WHERE id = $1 AND deleted_at IS NULL`

		if _, err := tx.ExecContext(ctx, counter, *doc.AccountID); err != nil {
			return fmt.Errorf("increment generation counter: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	return nil
}

func (r *repository) MarkSent(ctx context.Context, id string) error {
	query := `
		UPDATE documents
		SET status = $2, status_detail = NULL, sent_at = NOW(),
		    updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, StatusSent)
	if err != nil {
		return fmt.Errorf("mark document sent: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark document sent: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("mark document sent: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) MarkFailed(ctx context.Context, id, detail string) error {
	query := `
		UPDATE documents
		SET status = $2, status_detail = $3, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, StatusFailed, detail)
	if err != nil {
		return fmt.Errorf("mark document failed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark document failed: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("mark document failed: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Document, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM documents
		WHERE id = $1`, documentColumns)

	var doc Document
	err := r.db.GetContext(ctx, &doc, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get document: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}

	return &doc, nil
}

func (r *repository) List(
	ctx context.Context,
	params ListDocumentsParams,
) ([]Document, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, "TRUE")

	if params.AccountID != "" {
		conditions = append(
			conditions,
			fmt.Sprintf("account_id = $%d", argIdx),
		)
		args = append(args, params.AccountID)
		argIdx++
	}

	if params.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM documents WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count documents: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM documents
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		documentColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var docs []Document
	if err := r.db.SelectContext(ctx, &docs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list documents: %w", err)
	}

	return docs, total, nil
}

func (r *repository) Counts(ctx context.Context) (*Counts, error) {
	query := `
		SELECT COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE status = 'pending') AS pending,
		       COUNT(*) FILTER (WHERE status = 'sent') AS sent,
		       COUNT(*) FILTER (WHERE status = 'failed') AS failed
		FROM documents`

	var counts Counts
	if err := r.db.GetContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}

	return &counts, nil
}
