package service

import (
	"context"
	"errors"
	"time"

	"charlymatloc-backend/internal/domain"
	"charlymatloc-backend/internal/logger"
	"charlymatloc-backend/internal/repository"
	"charlymatloc-backend/internal/utils"
)

type cartService struct {
	cartRepo     repository.CartRepository
	toolRepo     repository.ToolRepository
	availability AvailabilityService
	now          func() time.Time
}

func NewCartService(cartRepo repository.CartRepository, toolRepo repository.ToolRepository, availability AvailabilityService) CartService {
	return &cartService{
		cartRepo:     cartRepo,
		toolRepo:     toolRepo,
		availability: availability,
		now:          time.Now,
	}
}

func (s *cartService) AddToCart(ctx context.Context, userID string, toolID int32, start, end time.Time, quantity int) (*domain.Cart, error) {
	logger.EnterMethod("cartService.AddToCart", "userID", userID, "toolID", toolID, "quantity", quantity)

	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	if _, err := s.toolRepo.GetByID(ctx, toolID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrToolNotFound
		}
		logger.ExitMethodWithError("cartService.AddToCart", err, "toolID", toolID)
		return nil, err
	}

	start, end = utils.TruncateToDay(start), utils.TruncateToDay(end)
	if start.Before(utils.TruncateToDay(s.now())) {
		return nil, ErrStartDateInPast
	}
	if end.Before(start) {
		return nil, ErrInvalidPeriod
	}

	ok, err := s.availability.IsAvailableForPeriod(ctx, toolID, start, end, quantity)
	if err != nil {
		logger.ExitMethodWithError("cartService.AddToCart", err, "toolID", toolID)
		return nil, err
	}
	if !ok {
		logger.ExitMethodWithError("cartService.AddToCart", ErrNotAvailable, "toolID", toolID)
		return nil, ErrNotAvailable
	}

	cart, err := s.cartRepo.GetCurrentByUser(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		cart = &domain.Cart{UserID: userID}
		err = s.cartRepo.Create(ctx, cart)
		if errors.Is(err, repository.ErrDuplicate) {
			// a concurrent add created the current cart first
			cart, err = s.cartRepo.GetCurrentByUser(ctx, userID)
		}
	}
	if err != nil {
		logger.ExitMethodWithError("cartService.AddToCart", err, "userID", userID)
		return nil, err
	}

	if existing := cart.ConflictingItem(toolID, start, end); existing != nil {
		if existing.SameDates(start, end) {
			return nil, ErrAlreadyInCart
		}
		return nil, ErrOverlappingDates
	}

	item := &domain.CartItem{
		CartID:    cart.ID,
		ToolID:    toolID,
		StartDate: start,
		EndDate:   end,
		Quantity:  quantity,
	}
	if err := s.cartRepo.AddItem(ctx, item); err != nil {
		logger.ExitMethodWithError("cartService.AddToCart", err, "cartID", cart.ID)
		return nil, err
	}

	logger.ExitMethod("cartService.AddToCart", "cartID", cart.ID, "cartItemID", item.ID)
	return s.GetCurrentCart(ctx, userID)
}

// GetCurrentCart returns the user's priced cart. A user without a cart gets
// an empty one.
func (s *cartService) GetCurrentCart(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.cartRepo.GetCurrentByUser(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return &domain.Cart{UserID: userID, IsCurrent: true, Items: []domain.CartItem{}}, nil
	}
	if err != nil {
		return nil, err
	}
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}
	if err := priceCart(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *cartService) RemoveFromCart(ctx context.Context, userID string, toolID int32, start time.Time) (*domain.Cart, error) {
	logger.EnterMethod("cartService.RemoveFromCart", "userID", userID, "toolID", toolID)

	cart, err := s.currentCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	n, err := s.cartRepo.RemoveItemByToolAndStart(ctx, cart.ID, toolID, utils.TruncateToDay(start))
	if err != nil {
		logger.ExitMethodWithError("cartService.RemoveFromCart", err, "cartID", cart.ID)
		return nil, err
	}
	if n == 0 {
		return nil, ErrCartItemNotFound
	}

	logger.ExitMethod("cartService.RemoveFromCart", "cartID", cart.ID, "removed", n)
	return s.GetCurrentCart(ctx, userID)
}

func (s *cartService) RemoveItem(ctx context.Context, userID string, itemID int32) (*domain.Cart, error) {
	if _, err := s.currentItem(ctx, userID, itemID); err != nil {
		return nil, err
	}

	if err := s.cartRepo.RemoveItem(ctx, itemID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	return s.GetCurrentCart(ctx, userID)
}

// UpdateItemQuantity changes an item's quantity after checking the new
// quantity against availability over the item's period
func (s *cartService) UpdateItemQuantity(ctx context.Context, userID string, itemID int32, quantity int) (*domain.Cart, error) {
	logger.EnterMethod("cartService.UpdateItemQuantity", "userID", userID, "itemID", itemID, "quantity", quantity)

	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	item, err := s.currentItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	ok, err := s.availability.IsAvailableForPeriod(ctx, item.ToolID, item.StartDate, item.EndDate, quantity)
	if err != nil {
		logger.ExitMethodWithError("cartService.UpdateItemQuantity", err, "itemID", itemID)
		return nil, err
	}
	if !ok {
		return nil, ErrNotAvailable
	}

	if err := s.cartRepo.UpdateItemQuantity(ctx, itemID, quantity); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCartItemNotFound
		}
		logger.ExitMethodWithError("cartService.UpdateItemQuantity", err, "itemID", itemID)
		return nil, err
	}

	logger.ExitMethod("cartService.UpdateItemQuantity", "itemID", itemID, "quantity", quantity)
	return s.GetCurrentCart(ctx, userID)
}

func (s *cartService) ClearCart(ctx context.Context, userID string) error {
	cart, err := s.cartRepo.GetCurrentByUser(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.cartRepo.ClearItems(ctx, cart.ID)
}

func (s *cartService) PurgeStaleCarts(ctx context.Context, olderThan time.Time) (int64, error) {
	logger.EnterMethod("cartService.PurgeStaleCarts", "olderThan", olderThan)
	n, err := s.cartRepo.DeleteStaleEmpty(ctx, olderThan)
	if err != nil {
		logger.ExitMethodWithError("cartService.PurgeStaleCarts", err)
		return 0, err
	}
	logger.ExitMethod("cartService.PurgeStaleCarts", "deleted", n)
	return n, nil
}

func (s *cartService) currentCart(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.cartRepo.GetCurrentByUser(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoCurrentCart
	}
	return cart, err
}

// currentItem loads a cart item and checks that it belongs to the user's
// current cart
func (s *cartService) currentItem(ctx context.Context, userID string, itemID int32) (*domain.CartItem, error) {
	cart, err := s.currentCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	item, err := s.cartRepo.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	if item.CartID != cart.ID {
		return nil, ErrCartItemNotFound
	}
	return item, nil
}

// priceCart fills in duration and prices of every item from its tool's tiers
func priceCart(cart *domain.Cart) error {
	for i := range cart.Items {
		it := &cart.Items[i]
		if it.Tool == nil {
			continue
		}
		cost, err := utils.CalculateRentalCost(it.StartDate, it.EndDate, it.Tool, it.Quantity)
		if err != nil {
			return err
		}
		it.DurationDays = cost.Days
		it.PricePerDay = cost.PricePerDay
		it.TotalPrice = cost.TotalCost
	}
	return nil
}
