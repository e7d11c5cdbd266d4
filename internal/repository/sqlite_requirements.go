package repository

import (
	"context"

	"github.com/alexanderramin/clientdesk/internal/db"
	"github.com/alexanderramin/clientdesk/internal/domain"
)

// SQLiteClientRequirementsRepo stores questionnaire submissions, one row
// per submission. A lead may submit more than once.
type SQLiteClientRequirementsRepo struct {
	q db.DBTX
}

func NewSQLiteClientRequirementsRepo(q db.DBTX) *SQLiteClientRequirementsRepo {
	return &SQLiteClientRequirementsRepo{q: q}
}

func (r *SQLiteClientRequirementsRepo) Add(ctx context.Context, req *domain.ClientRequirements) error {
	doc, err := encodeDocument("encoding client requirements", req)
	if err != nil {
		return err
	}
	_, err = r.q.ExecContext(ctx,
		`INSERT INTO client_requirements (lead_id, document, submitted_at) VALUES (?, ?, ?)`,
		req.LeadID, doc, formatTimestamp(req.SubmittedAt),
	)
	if err != nil {
		return domain.IOFailure("inserting client requirements", err)
	}
	return nil
}

func (r *SQLiteClientRequirementsRepo) ListByLead(ctx context.Context, leadID string) ([]*domain.ClientRequirements, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT document FROM client_requirements WHERE lead_id = ? ORDER BY id`, leadID)
	if err != nil {
		return nil, domain.IOFailure("listing client requirements", err)
	}
	defer rows.Close()

	var out []*domain.ClientRequirements
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, domain.IOFailure("scanning client requirements", err)
		}
		req, err := decodeDocument[domain.ClientRequirements]("decoding client requirements", doc)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.IOFailure("iterating client requirements", err)
	}
	return out, nil
}
