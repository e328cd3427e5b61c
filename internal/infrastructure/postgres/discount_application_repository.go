package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/pos-discount-dashboard/internal/domain/entity"
	"github.com/jhoicas/pos-discount-dashboard/internal/domain/repository"
)

var _ repository.DiscountApplicationRepository = (*DiscountApplicationRepo)(nil)

// DiscountApplicationRepo auditoría de "Apply Discount Now" en PostgreSQL.
type DiscountApplicationRepo struct {
	pool *pgxpool.Pool
	tx   *TxRunner
}

// NewDiscountApplicationRepository construye el adaptador.
func NewDiscountApplicationRepository(pool *pgxpool.Pool) *DiscountApplicationRepo {
	return &DiscountApplicationRepo{pool: pool, tx: NewTxRunner(pool)}
}

// Create inserta cabecera e ítems en una sola transacción.
func (r *DiscountApplicationRepo) Create(ctx context.Context, app *entity.DiscountApplication) error {
	if app.ID == "" {
		app.ID = uuid.New().String()
	}

	return r.tx.Run(ctx, func(q Querier) error {
		const header = `
			INSERT INTO discount_applications (id, company_id, user_id, discount_type, outcome, message, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`
		if _, err := q.Exec(ctx, header,
			app.ID, app.CompanyID, app.UserID, app.DiscountType, app.Outcome, app.Message, app.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert discount application: %w", err)
		}

		const item = `
			INSERT INTO discount_application_items (application_id, item_id, item_name, sold_count, discount_percentage)
			VALUES ($1, $2, $3, $4, $5)`
		for _, it := range app.Items {
			if _, err := q.Exec(ctx, item,
				app.ID, it.ItemID, it.ItemName, it.SoldCount, it.DiscountPercentage,
			); err != nil {
				return fmt.Errorf("insert discount application item: %w", err)
			}
		}
		return nil
	})
}

// ListByCompany devuelve las últimas aplicaciones de la empresa con sus ítems.
func (r *DiscountApplicationRepo) ListByCompany(ctx context.Context, companyID string, limit int) ([]*entity.DiscountApplication, error) {
	if limit <= 0 {
		limit = 20
	}
	const query = `
		SELECT id::TEXT, company_id, user_id, discount_type, outcome, message, created_at
		FROM discount_applications
		WHERE company_id = $1
		ORDER BY created_at DESC
		LIMIT $2`
	rows, err := r.pool.Query(ctx, query, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("discountApplications.ListByCompany: %w", err)
	}
	defer rows.Close()

	var apps []*entity.DiscountApplication
	byID := make(map[string]*entity.DiscountApplication)
	ids := make([]string, 0, limit)
	for rows.Next() {
		a := &entity.DiscountApplication{}
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.UserID, &a.DiscountType, &a.Outcome, &a.Message, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("discountApplications.ListByCompany scan: %w", err)
		}
		apps = append(apps, a)
		byID[a.ID] = a
		ids = append(ids, a.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("discountApplications.ListByCompany rows: %w", err)
	}
	if len(ids) == 0 {
		return apps, nil
	}

	const items = `
		SELECT application_id::TEXT, item_id, item_name, sold_count, discount_percentage
		FROM discount_application_items
		WHERE application_id = ANY($1::UUID[])`
	itemRows, err := r.pool.Query(ctx, items, ids)
	if err != nil {
		return nil, fmt.Errorf("discountApplications.items: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var appID string
		var it entity.DiscountApplicationItem
		if err := itemRows.Scan(&appID, &it.ItemID, &it.ItemName, &it.SoldCount, &it.DiscountPercentage); err != nil {
			return nil, fmt.Errorf("discountApplications.items scan: %w", err)
		}
		if a, ok := byID[appID]; ok {
			a.Items = append(a.Items, it)
		}
	}
	return apps, itemRows.Err()
}
