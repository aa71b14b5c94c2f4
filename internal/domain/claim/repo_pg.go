package claim

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medclaims/medclaims/internal/platform/apperr"
	"github.com/medclaims/medclaims/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const claimCols = `id, patient_id, name, email, claim_amount, description, document,
	status, approved_amount, insurer_comments, reviewed_by, created_at, updated_at`

func (r *repoPG) scanClaim(row pgx.Row) (*Claim, error) {
	var c Claim
	err := row.Scan(&c.ID, &c.PatientID, &c.Name, &c.Email, &c.ClaimAmount, &c.Description, &c.Document,
		&c.Status, &c.ApprovedAmount, &c.InsurerComments, &c.ReviewedBy, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("claim")
	}
	return &c, err
}

func (r *repoPG) Create(ctx context.Context, c *Claim) error {
	c.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO claims (id, patient_id, name, email, claim_amount, description, document, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`,
		c.ID, c.PatientID, c.Name, c.Email, c.ClaimAmount, c.Description, c.Document, c.Status).
		Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Claim, error) {
	return r.scanClaim(r.conn(ctx).QueryRow(ctx, `SELECT `+claimCols+` FROM claims WHERE id = $1`, id))
}

func (r *repoPG) List(ctx context.Context, f Filter) ([]*Claim, error) {
	var where []string
	var args []interface{}

	add := func(cond string, v interface{}) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.Status != nil {
		add("status = $%d", *f.Status)
	}
	if f.StartDate != nil && f.EndDate != nil {
		add("created_at >= $%d", *f.StartDate)
		add("created_at <= $%d", *f.EndDate)
	}
	if f.MinAmount != nil {
		add("claim_amount >= $%d", *f.MinAmount)
	}
	if f.MaxAmount != nil {
		add("claim_amount <= $%d", *f.MaxAmount)
	}

	sql := `SELECT ` + claimCols + ` FROM claims`
	if len(where) > 0 {
		sql += ` WHERE ` + strings.Join(where, " AND ")
	}
	sql += ` ORDER BY created_at DESC`

	return r.queryClaims(ctx, sql, args...)
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Claim, error) {
	return r.queryClaims(ctx,
		`SELECT `+claimCols+` FROM claims WHERE patient_id = $1 ORDER BY created_at DESC`, patientID)
}

func (r *repoPG) UpdateReview(ctx context.Context, c *Claim) error {
	return r.conn(ctx).QueryRow(ctx, `
		UPDATE claims SET status=$2, approved_amount=$3, insurer_comments=$4, reviewed_by=$5, updated_at=NOW()
		WHERE id = $1
		RETURNING updated_at`,
		c.ID, c.Status, c.ApprovedAmount, c.InsurerComments, c.ReviewedBy).Scan(&c.UpdatedAt)
}

func (r *repoPG) queryClaims(ctx context.Context, sql string, args ...interface{}) ([]*Claim, error) {
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Claim
	for rows.Next() {
		c, err := r.scanClaim(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}
