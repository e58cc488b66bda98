package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matchday-travel/lead-service/internal/domain"
)

// LeadHistoryRepository reads the append-only status audit trail.
// Writes happen through the transaction scripts in the lead and quote
// repositories so an entry can never land without its status update.
type LeadHistoryRepository interface {
	ListRecentByLead(ctx context.Context, leadID string, limit int) ([]domain.LeadStatusHistory, error)
}

type leadHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewLeadHistoryRepository builds the repository.
func NewLeadHistoryRepository(pool *pgxpool.Pool) LeadHistoryRepository {
	return &leadHistoryRepository{pool: pool}
}

func (r *leadHistoryRepository) ListRecentByLead(ctx context.Context, leadID string, limit int) ([]domain.LeadStatusHistory, error) {
	if limit <= 0 {
		limit = 5
	}
	const query = `
        SELECT id, lead_id, old_status, new_status, changed_at
        FROM lead_status_history
        WHERE lead_id=$1 ORDER BY changed_at DESC LIMIT $2`
	rows, err := r.pool.Query(ctx, query, leadID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.LeadStatusHistory
	for rows.Next() {
		var entry domain.LeadStatusHistory
		if err := rows.Scan(
			&entry.ID,
			&entry.LeadID,
			&entry.OldStatus,
			&entry.NewStatus,
			&entry.ChangedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

// appendStatusHistory inserts one audit entry using the caller's
// querier, which inside the transaction scripts is the open pgx.Tx.
func appendStatusHistory(ctx context.Context, q DBTX, entry *domain.LeadStatusHistory) error {
	const query = `
        INSERT INTO lead_status_history (lead_id, old_status, new_status)
        VALUES ($1,$2,$3)
        RETURNING id, changed_at`
	return q.QueryRow(ctx, query,
		entry.LeadID,
		entry.OldStatus,
		entry.NewStatus,
	).Scan(&entry.ID, &entry.ChangedAt)
}
