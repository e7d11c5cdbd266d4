package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/alexanderramin/clientdesk/internal/db"
	"github.com/alexanderramin/clientdesk/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo with one row per project.
type SQLiteProjectRepo struct {
	q db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(q db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{q: q}
}

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	p.Normalize()
	if p.Version < 1 {
		p.Version = 1
	}
	doc, err := encodeDocument("encoding project", p)
	if err != nil {
		return err
	}
	query := `INSERT INTO projects (id, share_link_id, name, status, deadline, version, document, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.q.ExecContext(ctx, query,
		p.ID,
		p.ShareableLinkID,
		p.Name,
		string(p.Status),
		p.Deadline.String(),
		p.Version,
		doc,
		formatTimestamp(p.CreatedAt),
		formatTimestamp(p.UpdatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return domain.Validation("project %q or its share link already exists", p.ID)
		}
		return domain.IOFailure("inserting project", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	row := r.q.QueryRowContext(ctx, `SELECT version, document FROM projects WHERE id = ?`, id)
	return r.scanProject(row, id)
}

func (r *SQLiteProjectRepo) GetByShareLink(ctx context.Context, linkID string) (*domain.Project, error) {
	row := r.q.QueryRowContext(ctx, `SELECT version, document FROM projects WHERE share_link_id = ?`, linkID)
	return r.scanProject(row, linkID)
}

func (r *SQLiteProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT version, document FROM projects ORDER BY created_at, id`)
	if err != nil {
		return nil, domain.IOFailure("listing projects", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		var version int64
		var doc string
		if err := rows.Scan(&version, &doc); err != nil {
			return nil, domain.IOFailure("scanning project row", err)
		}
		p, err := decodeDocument[domain.Project]("decoding project", doc)
		if err != nil {
			return nil, err
		}
		p.Version = version
		p.Normalize()
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.IOFailure("iterating projects", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	next := nextVersion(p.Version)
	stored := *p
	stored.Version = next
	stored.Normalize()
	doc, err := encodeDocument("encoding project", &stored)
	if err != nil {
		return err
	}

	query := `UPDATE projects SET name = ?, status = ?, deadline = ?, version = ?, document = ?, updated_at = ?
		WHERE id = ? AND version = ?`
	res, err := r.q.ExecContext(ctx, query,
		p.Name,
		string(p.Status),
		p.Deadline.String(),
		next,
		doc,
		formatTimestamp(p.UpdatedAt),
		p.ID,
		p.Version,
	)
	if err != nil {
		return domain.IOFailure("updating project", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.IOFailure("updating project", err)
	}
	if n == 0 {
		return r.missOrConflict(ctx, p.ID)
	}
	p.Version = next
	return nil
}

// missOrConflict explains an UPDATE that matched no rows.
func (r *SQLiteProjectRepo) missOrConflict(ctx context.Context, id string) error {
	var n int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects WHERE id = ?`, id).Scan(&n); err != nil {
		return domain.IOFailure("checking project", err)
	}
	if n == 0 {
		return domain.NotFound("project", id)
	}
	return domain.Conflict("project", id)
}

func (r *SQLiteProjectRepo) scanProject(row *sql.Row, key string) (*domain.Project, error) {
	var version int64
	var doc string
	if err := row.Scan(&version, &doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound("project", key)
		}
		return nil, domain.IOFailure("scanning project", err)
	}
	p, err := decodeDocument[domain.Project]("decoding project", doc)
	if err != nil {
		return nil, err
	}
	p.Version = version
	p.Normalize()
	return p, nil
}
