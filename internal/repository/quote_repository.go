package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matchday-travel/lead-service/internal/domain"
)

// QuoteRepository persists generated quotes.
type QuoteRepository interface {
	// CreateWithStatusAdvance inserts the quote and, when advanceFrom is
	// set, moves the lead from that status to QuoteSent with its audit
	// entry — all in the same transaction. A nil advanceFrom creates the
	// quote without touching the lead.
	CreateWithStatusAdvance(ctx context.Context, quote *domain.Quote, advanceFrom *domain.LeadStatus) error
	ListByLead(ctx context.Context, leadID string) ([]domain.Quote, error)
}

type quoteRepository struct {
	pool *pgxpool.Pool
}

// NewQuoteRepository instantiates the repository.
func NewQuoteRepository(pool *pgxpool.Pool) QuoteRepository {
	return &quoteRepository{pool: pool}
}

func (r *quoteRepository) CreateWithStatusAdvance(ctx context.Context, quote *domain.Quote, advanceFrom *domain.LeadStatus) error {
	return withinTx(ctx, r.pool, func(tx pgx.Tx) error {
		const query = `
            INSERT INTO quotes (lead_id, package_id, base_price, seasonal_adjustment,
                early_bird_adjustment, last_minute_adjustment, group_discount,
                weekend_surcharge, final_price)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
            RETURNING id, created_at`
		if err := tx.QueryRow(ctx, query,
			quote.LeadID,
			quote.PackageID,
			quote.BasePrice,
			quote.SeasonalAdjustment,
			quote.EarlyBirdAdjustment,
			quote.LastMinuteAdjustment,
			quote.GroupDiscount,
			quote.WeekendSurcharge,
			quote.FinalPrice,
		).Scan(&quote.ID, &quote.CreatedAt); err != nil {
			return err
		}

		if advanceFrom == nil {
			return nil
		}
		if err := guardedStatusUpdate(ctx, tx, quote.LeadID, *advanceFrom, domain.LeadStatusQuoteSent); err != nil {
			return err
		}
		entry := domain.LeadStatusHistory{
			LeadID:    quote.LeadID,
			OldStatus: advanceFrom,
			NewStatus: domain.LeadStatusQuoteSent,
		}
		return appendStatusHistory(ctx, tx, &entry)
	})
}

func (r *quoteRepository) ListByLead(ctx context.Context, leadID string) ([]domain.Quote, error) {
	const query = `
        SELECT id, lead_id, package_id, base_price, seasonal_adjustment,
               early_bird_adjustment, last_minute_adjustment, group_discount,
               weekend_surcharge, final_price, created_at
        FROM quotes WHERE lead_id=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Quote
	for rows.Next() {
		var quote domain.Quote
		if err := rows.Scan(
			&quote.ID,
			&quote.LeadID,
			&quote.PackageID,
			&quote.BasePrice,
			&quote.SeasonalAdjustment,
			&quote.EarlyBirdAdjustment,
			&quote.LastMinuteAdjustment,
			&quote.GroupDiscount,
			&quote.WeekendSurcharge,
			&quote.FinalPrice,
			&quote.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, quote)
	}
	return result, rows.Err()
}
