package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/alexanderramin/clientdesk/internal/db"
	"github.com/alexanderramin/clientdesk/internal/domain"
)

// SQLiteLeadRepo implements LeadRepo using a SQLite database.
type SQLiteLeadRepo struct {
	q db.DBTX
}

func NewSQLiteLeadRepo(q db.DBTX) *SQLiteLeadRepo {
	return &SQLiteLeadRepo{q: q}
}

func (r *SQLiteLeadRepo) Create(ctx context.Context, l *domain.Lead) error {
	if l.Version < 1 {
		l.Version = 1
	}
	doc, err := encodeDocument("encoding lead", l)
	if err != nil {
		return err
	}
	_, err = r.q.ExecContext(ctx,
		`INSERT INTO leads (id, email, status, version, document, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		l.ID, l.Email, string(l.Status), l.Version, doc, formatTimestamp(l.CreatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return domain.Validation("lead %q already exists", l.ID)
		}
		return domain.IOFailure("inserting lead", err)
	}
	return nil
}

func (r *SQLiteLeadRepo) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	var version int64
	var doc string
	err := r.q.QueryRowContext(ctx, `SELECT version, document FROM leads WHERE id = ?`, id).Scan(&version, &doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound("lead", id)
		}
		return nil, domain.IOFailure("scanning lead", err)
	}
	l, err := decodeDocument[domain.Lead]("decoding lead", doc)
	if err != nil {
		return nil, err
	}
	l.Version = version
	return l, nil
}

func (r *SQLiteLeadRepo) List(ctx context.Context) ([]*domain.Lead, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT version, document FROM leads ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, domain.IOFailure("listing leads", err)
	}
	defer rows.Close()

	var leads []*domain.Lead
	for rows.Next() {
		var version int64
		var doc string
		if err := rows.Scan(&version, &doc); err != nil {
			return nil, domain.IOFailure("scanning lead row", err)
		}
		l, err := decodeDocument[domain.Lead]("decoding lead", doc)
		if err != nil {
			return nil, err
		}
		l.Version = version
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.IOFailure("iterating leads", err)
	}
	return leads, nil
}

func (r *SQLiteLeadRepo) Update(ctx context.Context, l *domain.Lead) error {
	next := nextVersion(l.Version)
	stored := *l
	stored.Version = next
	doc, err := encodeDocument("encoding lead", &stored)
	if err != nil {
		return err
	}
	res, err := r.q.ExecContext(ctx,
		`UPDATE leads SET email = ?, status = ?, version = ?, document = ? WHERE id = ? AND version = ?`,
		l.Email, string(l.Status), next, doc, l.ID, l.Version,
	)
	if err != nil {
		return domain.IOFailure("updating lead", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.IOFailure("updating lead", err)
	}
	if n == 0 {
		var count int
		if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads WHERE id = ?`, l.ID).Scan(&count); err != nil {
			return domain.IOFailure("checking lead", err)
		}
		if count == 0 {
			return domain.NotFound("lead", l.ID)
		}
		return domain.Conflict("lead", l.ID)
	}
	l.Version = next
	return nil
}
