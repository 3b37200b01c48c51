package postgres

import (
	"context"
	"database/sql"
	"time"

	"charlymatloc-backend/internal/domain"
	"charlymatloc-backend/internal/logger"
	"charlymatloc-backend/internal/repository"

	"github.com/lib/pq"
)

type toolRepository struct {
	db *sql.DB
}

func NewToolRepository(db *sql.DB) repository.ToolRepository {
	return &toolRepository{db: db}
}

const toolColumns = `t.tool_id, COALESCE(t.tool_category_id, 0), COALESCE(c.name, ''), t.name,
		       COALESCE(t.description, ''), COALESCE(t.image_url, ''), t.stock`

func scanTool(s interface{ Scan(...any) error }) (domain.Tool, error) {
	var t domain.Tool
	err := s.Scan(&t.ID, &t.CategoryID, &t.CategoryName, &t.Name, &t.Description, &t.ImageURL, &t.Stock)
	return t, err
}

func (r *toolRepository) List(ctx context.Context, categoryID int32) ([]domain.Tool, error) {
	logger.EnterMethod("toolRepository.List", "categoryID", categoryID)

	query := `SELECT ` + toolColumns + `
		FROM tools t
		LEFT JOIN categories c ON t.tool_category_id = c.category_id`
	var args []interface{}
	if categoryID > 0 {
		query += ` WHERE t.tool_category_id = $1`
		args = append(args, categoryID)
	}
	query += ` ORDER BY t.name`

	logger.DatabaseCall("SELECT", "tools LEFT JOIN categories", "categoryID", categoryID)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err)
		return nil, err
	}
	defer rows.Close()

	var tools []domain.Tool
	var ids []int64
	for rows.Next() {
		t, err := scanTool(rows)
		if err != nil {
			return nil, err
		}
		tools = append(tools, t)
		ids = append(ids, int64(t.ID))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logger.DatabaseResult("SELECT", int64(len(tools)), nil)

	if len(tools) == 0 {
		return []domain.Tool{}, nil
	}

	tiers, err := loadPricingTiers(ctx, r.db, ids)
	if err != nil {
		logger.ExitMethodWithError("toolRepository.List", err)
		return nil, err
	}
	for i := range tools {
		tools[i].PricingTiers = tiers[tools[i].ID]
	}

	logger.ExitMethod("toolRepository.List", "count", len(tools))
	return tools, nil
}

func (r *toolRepository) GetByID(ctx context.Context, id int32) (*domain.Tool, error) {
	query := `SELECT ` + toolColumns + `
		FROM tools t
		LEFT JOIN categories c ON t.tool_category_id = c.category_id
		WHERE t.tool_id = $1`

	t, err := scanTool(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateError(err)
	}

	tiers, err := loadPricingTiers(ctx, r.db, []int64{int64(id)})
	if err != nil {
		return nil, err
	}
	t.PricingTiers = tiers[id]
	return &t, nil
}

func (r *toolRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT category_id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *toolRepository) GetStock(ctx context.Context, toolID int32) (int, error) {
	var stock int
	err := r.db.QueryRowContext(ctx, `SELECT stock FROM tools WHERE tool_id = $1`, toolID).Scan(&stock)
	if err != nil {
		return 0, translateError(err)
	}
	return stock, nil
}

func (r *toolRepository) ReservedQuantity(ctx context.Context, toolID int32, start, end time.Time) (int, error) {
	logger.EnterMethod("toolRepository.ReservedQuantity", "toolID", toolID, "start", start, "end", end)

	query := `
		SELECT COALESCE(SUM(ri.quantity), 0)
		FROM reservation_items ri
		JOIN reservations r ON ri.reservation_id = r.reservation_id
		WHERE ri.tool_id = $1
		  AND r.status_code = ANY($2)
		  AND NOT (ri.end_date < $3 OR ri.start_date > $4)
	`
	active := pq.Array([]int64{
		int64(domain.ReservationStatusPending.Code()),
		int64(domain.ReservationStatusConfirmed.Code()),
	})

	var reserved int
	err := r.db.QueryRowContext(ctx, query, toolID, active, start, end).Scan(&reserved)
	if err != nil {
		logger.ExitMethodWithError("toolRepository.ReservedQuantity", err, "toolID", toolID)
		return 0, err
	}

	logger.ExitMethod("toolRepository.ReservedQuantity", "toolID", toolID, "reserved", reserved)
	return reserved, nil
}

// loadPricingTiers fetches the tiers of several tools in one round trip,
// ordered by ascending minimum duration
func loadPricingTiers(ctx context.Context, db *sql.DB, toolIDs []int64) (map[int32][]domain.PricingTier, error) {
	query := `
		SELECT pricing_tier_id, pricing_tool_id, min_duration_days, max_duration_days, price_per_day
		FROM pricing_tiers
		WHERE pricing_tool_id = ANY($1)
		ORDER BY pricing_tool_id, min_duration_days ASC
	`
	logger.DatabaseCall("SELECT", "pricing_tiers", "toolCount", len(toolIDs))
	rows, err := db.QueryContext(ctx, query, pq.Array(toolIDs))
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err)
		return nil, err
	}
	defer rows.Close()

	tiers := make(map[int32][]domain.PricingTier)
	var count int64
	for rows.Next() {
		var tier domain.PricingTier
		var maxDays sql.NullInt64
		if err := rows.Scan(&tier.ID, &tier.ToolID, &tier.MinDurationDays, &maxDays, &tier.PricePerDay); err != nil {
			return nil, err
		}
		if maxDays.Valid {
			v := int(maxDays.Int64)
			tier.MaxDurationDays = &v
		}
		tiers[tier.ToolID] = append(tiers[tier.ToolID], tier)
		count++
	}
	logger.DatabaseResult("SELECT", count, rows.Err())
	return tiers, rows.Err()
}
