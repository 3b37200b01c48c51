package postgres

import (
	"context"
	"database/sql"
	"time"

	"charlymatloc-backend/internal/domain"
	"charlymatloc-backend/internal/logger"
	"charlymatloc-backend/internal/repository"
)

type cartRepository struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) repository.CartRepository {
	return &cartRepository{db: db}
}

// GetCurrentByUser loads the user's current cart with its items and the
// tool snapshot of every item. It returns repository.ErrNotFound when the
// user has no current cart.
func (r *cartRepository) GetCurrentByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	logger.EnterMethod("cartRepository.GetCurrentByUser", "userID", userID)

	cart := &domain.Cart{}
	query := `SELECT cart_id, cart_user_id, is_current, created_at
	          FROM carts WHERE cart_user_id = $1 AND is_current = true
	          ORDER BY cart_id DESC LIMIT 1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&cart.ID, &cart.UserID, &cart.IsCurrent, &cart.CreatedAt)
	if err != nil {
		err = translateError(err)
		logger.ExitMethodWithError("cartRepository.GetCurrentByUser", err, "userID", userID)
		return nil, err
	}

	items, err := r.listItems(ctx, cart.ID)
	if err != nil {
		logger.ExitMethodWithError("cartRepository.GetCurrentByUser", err, "cartID", cart.ID)
		return nil, err
	}
	cart.Items = items

	logger.ExitMethod("cartRepository.GetCurrentByUser", "cartID", cart.ID, "items", len(items))
	return cart, nil
}

func (r *cartRepository) listItems(ctx context.Context, cartID int32) ([]domain.CartItem, error) {
	query := `
		SELECT ci.cart_item_id, ci.cart_id, ci.tool_id, ci.start_date, ci.end_date, ci.quantity,
		       COALESCE(t.tool_category_id, 0), COALESCE(c.name, ''), t.name,
		       COALESCE(t.description, ''), COALESCE(t.image_url, ''), t.stock
		FROM cart_items ci
		JOIN tools t ON ci.tool_id = t.tool_id
		LEFT JOIN categories c ON t.tool_category_id = c.category_id
		WHERE ci.cart_id = $1
		ORDER BY ci.cart_item_id
	`
	logger.DatabaseCall("SELECT", "cart_items JOIN tools", "cartID", cartID)
	rows, err := r.db.QueryContext(ctx, query, cartID)
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err, "cartID", cartID)
		return nil, err
	}
	defer rows.Close()

	items := []domain.CartItem{}
	var toolIDs []int64
	for rows.Next() {
		var it domain.CartItem
		t := &domain.Tool{}
		if err := rows.Scan(&it.ID, &it.CartID, &it.ToolID, &it.StartDate, &it.EndDate, &it.Quantity,
			&t.CategoryID, &t.CategoryName, &t.Name, &t.Description, &t.ImageURL, &t.Stock); err != nil {
			return nil, err
		}
		t.ID = it.ToolID
		it.Tool = t
		items = append(items, it)
		toolIDs = append(toolIDs, int64(it.ToolID))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logger.DatabaseResult("SELECT", int64(len(items)), nil, "cartID", cartID)

	if len(items) == 0 {
		return items, nil
	}

	tiers, err := loadPricingTiers(ctx, r.db, toolIDs)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Tool.PricingTiers = tiers[items[i].ToolID]
	}
	return items, nil
}

func (r *cartRepository) Create(ctx context.Context, cart *domain.Cart) error {
	query := `INSERT INTO carts (cart_user_id, is_current, created_at) VALUES ($1, true, $2) RETURNING cart_id`
	now := time.Now()
	if err := r.db.QueryRowContext(ctx, query, cart.UserID, now).Scan(&cart.ID); err != nil {
		err = translateError(err)
		logger.ExitMethodWithError("cartRepository.Create", err, "userID", cart.UserID)
		return err
	}
	cart.IsCurrent = true
	cart.CreatedAt = now
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}
	return nil
}

func (r *cartRepository) AddItem(ctx context.Context, item *domain.CartItem) error {
	logger.EnterMethod("cartRepository.AddItem", "cartID", item.CartID, "toolID", item.ToolID)

	query := `INSERT INTO cart_items (cart_id, tool_id, start_date, end_date, quantity)
	          VALUES ($1, $2, $3, $4, $5) RETURNING cart_item_id`
	logger.DatabaseCall("INSERT", "cart_items", "cartID", item.CartID, "toolID", item.ToolID)
	err := r.db.QueryRowContext(ctx, query, item.CartID, item.ToolID, item.StartDate, item.EndDate, item.Quantity).Scan(&item.ID)
	logger.DatabaseResult("INSERT", 1, err, "cartItemID", item.ID)
	if err != nil {
		err = translateError(err)
		logger.ExitMethodWithError("cartRepository.AddItem", err, "cartID", item.CartID)
		return err
	}

	logger.ExitMethod("cartRepository.AddItem", "cartItemID", item.ID)
	return nil
}

func (r *cartRepository) GetItem(ctx context.Context, itemID int32) (*domain.CartItem, error) {
	it := &domain.CartItem{}
	query := `SELECT cart_item_id, cart_id, tool_id, start_date, end_date, quantity FROM cart_items WHERE cart_item_id = $1`
	err := r.db.QueryRowContext(ctx, query, itemID).Scan(&it.ID, &it.CartID, &it.ToolID, &it.StartDate, &it.EndDate, &it.Quantity)
	if err != nil {
		return nil, translateError(err)
	}
	return it, nil
}

func (r *cartRepository) UpdateItemQuantity(ctx context.Context, itemID int32, quantity int) error {
	res, err := r.db.ExecContext(ctx, `UPDATE cart_items SET quantity = $1 WHERE cart_item_id = $2`, quantity, itemID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

func (r *cartRepository) RemoveItem(ctx context.Context, itemID int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_item_id = $1`, itemID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

func (r *cartRepository) RemoveItemByToolAndStart(ctx context.Context, cartID, toolID int32, start time.Time) (int64, error) {
	query := `DELETE FROM cart_items WHERE cart_id = $1 AND tool_id = $2 AND start_date = $3`
	logger.DatabaseCall("DELETE", "cart_items", "cartID", cartID, "toolID", toolID)
	res, err := r.db.ExecContext(ctx, query, cartID, toolID, start)
	if err != nil {
		logger.DatabaseResult("DELETE", 0, err, "cartID", cartID)
		return 0, err
	}
	n, err := res.RowsAffected()
	logger.DatabaseResult("DELETE", n, err, "cartID", cartID)
	return n, err
}

func (r *cartRepository) ClearItems(ctx context.Context, cartID int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	return err
}

// DeleteStaleEmpty removes carts created before the cutoff that hold no
// items. A user whose empty cart is purged gets a new one on the next add.
func (r *cartRepository) DeleteStaleEmpty(ctx context.Context, olderThan time.Time) (int64, error) {
	query := `
		DELETE FROM carts c
		WHERE c.created_at < $1
		  AND NOT EXISTS (SELECT 1 FROM cart_items ci WHERE ci.cart_id = c.cart_id)
	`
	res, err := r.db.ExecContext(ctx, query, olderThan)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
