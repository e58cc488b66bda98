package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matchday-travel/lead-service/internal/domain"
)

// monthFilterYear pins the month filter to a fixed reference year: the
// filter selects events starting within that month of the season being
// sold, not leads created in it.
const monthFilterYear = 2024

// LeadFilter captures listing parameters.
type LeadFilter struct {
	Status     *domain.LeadStatus
	EventID    *string
	EventMonth *int
	Limit      int
	Offset     int
}

// LeadRepository encapsulates lead persistence, including the atomic
// status+history transaction scripts.
type LeadRepository interface {
	CreateWithInitialHistory(ctx context.Context, lead *domain.Lead) error
	GetByID(ctx context.Context, id string) (*domain.Lead, error)
	List(ctx context.Context, filter LeadFilter) ([]domain.Lead, error)
	Count(ctx context.Context, filter LeadFilter) (int, error)
	TransitionStatus(ctx context.Context, leadID string, from, to domain.LeadStatus) (*domain.LeadStatusHistory, error)
}

type leadRepository struct {
	pool *pgxpool.Pool
}

// NewLeadRepository instantiates the repository.
func NewLeadRepository(pool *pgxpool.Pool) LeadRepository {
	return &leadRepository{pool: pool}
}

// CreateWithInitialHistory inserts the lead and its creation audit
// entry (nil old status) in one transaction. The entry is attached to
// lead.History on success.
func (r *leadRepository) CreateWithInitialHistory(ctx context.Context, lead *domain.Lead) error {
	return withinTx(ctx, r.pool, func(tx pgx.Tx) error {
		const query = `
            INSERT INTO leads (name, email, phone, event_id, traveller_count, status)
            VALUES ($1,$2,$3,$4,$5,$6)
            RETURNING id, created_at, updated_at`
		if err := tx.QueryRow(ctx, query,
			lead.Name,
			lead.Email,
			lead.Phone,
			lead.EventID,
			lead.TravellerCount,
			lead.Status,
		).Scan(&lead.ID, &lead.CreatedAt, &lead.UpdatedAt); err != nil {
			return err
		}

		entry := domain.LeadStatusHistory{
			LeadID:    lead.ID,
			NewStatus: lead.Status,
		}
		if err := appendStatusHistory(ctx, tx, &entry); err != nil {
			return err
		}
		lead.History = []domain.LeadStatusHistory{entry}
		return nil
	})
}

func (r *leadRepository) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	const query = `
        SELECT l.id, l.name, l.email, l.phone, l.event_id, l.traveller_count, l.status,
               l.created_at, l.updated_at,
               e.id, e.name, e.start_date, e.end_date, e.created_at
        FROM leads l
        JOIN events e ON e.id = l.event_id
        WHERE l.id=$1`
	var lead domain.Lead
	var event domain.Event
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&lead.ID,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
		&lead.EventID,
		&lead.TravellerCount,
		&lead.Status,
		&lead.CreatedAt,
		&lead.UpdatedAt,
		&event.ID,
		&event.Name,
		&event.StartDate,
		&event.EndDate,
		&event.CreatedAt,
	); err != nil {
		return nil, err
	}
	lead.Event = &event
	return &lead, nil
}

func (r *leadRepository) List(ctx context.Context, filter LeadFilter) ([]domain.Lead, error) {
	clauses, args := leadFilterClauses(filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`
        SELECT l.id, l.name, l.email, l.phone, l.event_id, l.traveller_count, l.status,
               l.created_at, l.updated_at,
               e.id, e.name, e.start_date, e.end_date, e.created_at
        FROM leads l
        JOIN events e ON e.id = l.event_id
        WHERE %s
        ORDER BY l.created_at DESC
        LIMIT %d OFFSET %d`, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Lead
	for rows.Next() {
		var lead domain.Lead
		var event domain.Event
		if err := rows.Scan(
			&lead.ID,
			&lead.Name,
			&lead.Email,
			&lead.Phone,
			&lead.EventID,
			&lead.TravellerCount,
			&lead.Status,
			&lead.CreatedAt,
			&lead.UpdatedAt,
			&event.ID,
			&event.Name,
			&event.StartDate,
			&event.EndDate,
			&event.CreatedAt,
		); err != nil {
			return nil, err
		}
		lead.Event = &event
		result = append(result, lead)
	}
	return result, rows.Err()
}

func (r *leadRepository) Count(ctx context.Context, filter LeadFilter) (int, error) {
	clauses, args := leadFilterClauses(filter)
	query := fmt.Sprintf(`
        SELECT COUNT(*)
        FROM leads l
        JOIN events e ON e.id = l.event_id
        WHERE %s`, strings.Join(clauses, " AND "))

	var total int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// TransitionStatus updates the lead status and appends the audit entry
// as one all-or-nothing unit. The UPDATE is guarded on the expected
// current status, so a concurrent transition on the same lead makes the
// losing transaction fail with pgx.ErrNoRows instead of silently
// overwriting.
func (r *leadRepository) TransitionStatus(ctx context.Context, leadID string, from, to domain.LeadStatus) (*domain.LeadStatusHistory, error) {
	entry := &domain.LeadStatusHistory{
		LeadID:    leadID,
		OldStatus: &from,
		NewStatus: to,
	}
	err := withinTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := guardedStatusUpdate(ctx, tx, leadID, from, to); err != nil {
			return err
		}
		return appendStatusHistory(ctx, tx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// guardedStatusUpdate moves a lead's status only when it still holds
// the expected value.
func guardedStatusUpdate(ctx context.Context, q DBTX, leadID string, expected, next domain.LeadStatus) error {
	cmd, err := q.Exec(ctx,
		`UPDATE leads SET status=$1, updated_at=NOW() WHERE id=$2 AND status=$3`,
		next, leadID, expected)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func leadFilterClauses(filter LeadFilter) ([]string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("l.status=$%d", len(args)))
	}
	if filter.EventID != nil {
		args = append(args, *filter.EventID)
		clauses = append(clauses, fmt.Sprintf("l.event_id=$%d", len(args)))
	}
	if filter.EventMonth != nil && *filter.EventMonth >= 1 && *filter.EventMonth <= 12 {
		monthStart := time.Date(monthFilterYear, time.Month(*filter.EventMonth), 1, 0, 0, 0, 0, time.UTC)
		args = append(args, monthStart)
		clauses = append(clauses, fmt.Sprintf("e.start_date >= $%d", len(args)))
		args = append(args, monthStart.AddDate(0, 1, 0))
		clauses = append(clauses, fmt.Sprintf("e.start_date < $%d", len(args)))
	}
	return clauses, args
}
