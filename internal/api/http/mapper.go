package http

import (
	"time"

	"charlymatloc-backend/internal/domain"
	"charlymatloc-backend/internal/service"
	"charlymatloc-backend/internal/utils"
)

type ToolView struct {
	ID           int32                `json:"tool_id"`
	Name         string               `json:"name"`
	Description  string               `json:"description"`
	ImageURL     string               `json:"image_url"`
	CategoryID   int32                `json:"category_id"`
	CategoryName string               `json:"category_name"`
	Stock        int                  `json:"stock"`
	Price        *float64             `json:"price"`
	PricingTiers []domain.PricingTier `json:"pricing_tiers"`
}

type CatalogView struct {
	Type  string     `json:"type"`
	Count int        `json:"count"`
	Tools []ToolView `json:"tools"`
}

type CartItemView struct {
	ID           int32     `json:"cart_item_id"`
	CartID       int32     `json:"cart_id"`
	ToolID       int32     `json:"tool_id"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	Quantity     int       `json:"quantity"`
	DurationDays int       `json:"duration_days"`
	PricePerDay  float64   `json:"price_per_day"`
	TotalPrice   float64   `json:"total_price"`
	Tool         *ToolView `json:"tool"`
}

type CartView struct {
	ID     int32          `json:"cart_id"`
	UserID string         `json:"user_id"`
	Items  []CartItemView `json:"items"`
	Total  float64        `json:"total"`
}

type ReservationItemView struct {
	ID           int32   `json:"id"`
	ToolID       int32   `json:"tool_id"`
	ToolName     string  `json:"tool_name"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Quantity     int     `json:"quantity"`
	DurationDays int     `json:"duration_days"`
	UnitPrice    float64 `json:"unit_price"`
	TotalPrice   float64 `json:"total_price"`
}

type ReservationView struct {
	ID              string                `json:"id"`
	UserID          string                `json:"user_id"`
	ReservationDate string                `json:"reservation_date"`
	Status          string                `json:"status"`
	TotalAmount     float64               `json:"total_amount"`
	Items           []ReservationItemView `json:"items"`
}

type PaymentView struct {
	ID                int32   `json:"id"`
	ReservationID     string  `json:"reservation_id"`
	Amount            float64 `json:"amount"`
	Method            string  `json:"method,omitempty"`
	Status            string  `json:"status"`
	ProviderReference string  `json:"provider_reference"`
	CreatedAt         string  `json:"created_at"`
}

type AuthView struct {
	Profile      domain.Profile `json:"profile"`
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	ExpiresIn    int64          `json:"expires_in"`
}

func MapDomainToolToView(t *domain.Tool) *ToolView {
	if t == nil {
		return nil
	}
	v := &ToolView{
		ID:           t.ID,
		Name:         t.Name,
		Description:  t.Description,
		ImageURL:     t.ImageURL,
		CategoryID:   t.CategoryID,
		CategoryName: t.CategoryName,
		Stock:        t.Stock,
		PricingTiers: t.PricingTiers,
	}
	if price, ok := t.BasePrice(); ok {
		v.Price = &price
	}
	if v.PricingTiers == nil {
		v.PricingTiers = []domain.PricingTier{}
	}
	return v
}

func MapDomainToolsToCatalog(tools []domain.Tool) CatalogView {
	views := make([]ToolView, 0, len(tools))
	for i := range tools {
		views = append(views, *MapDomainToolToView(&tools[i]))
	}
	return CatalogView{Type: "collection", Count: len(views), Tools: views}
}

func MapDomainCartToView(c *domain.Cart) CartView {
	v := CartView{ID: c.ID, UserID: c.UserID, Items: make([]CartItemView, 0, len(c.Items))}
	for _, it := range c.Items {
		v.Items = append(v.Items, CartItemView{
			ID:           it.ID,
			CartID:       it.CartID,
			ToolID:       it.ToolID,
			StartDate:    utils.FormatDate(it.StartDate),
			EndDate:      utils.FormatDate(it.EndDate),
			Quantity:     it.Quantity,
			DurationDays: it.DurationDays,
			PricePerDay:  it.PricePerDay,
			TotalPrice:   it.TotalPrice,
			Tool:         MapDomainToolToView(it.Tool),
		})
	}
	v.Total = utils.RoundCents(c.Total())
	return v
}

func MapDomainReservationToView(r *domain.Reservation) ReservationView {
	v := ReservationView{
		ID:              r.ID,
		UserID:          r.UserID,
		ReservationDate: r.ReservationDate.UTC().Format(time.RFC3339),
		Status:          string(r.Status),
		TotalAmount:     r.TotalAmount,
		Items:           make([]ReservationItemView, 0, len(r.Items)),
	}
	for _, it := range r.Items {
		v.Items = append(v.Items, ReservationItemView{
			ID:           it.ID,
			ToolID:       it.ToolID,
			ToolName:     it.ToolName,
			StartDate:    utils.FormatDate(it.StartDate),
			EndDate:      utils.FormatDate(it.EndDate),
			Quantity:     it.Quantity,
			DurationDays: it.DurationDays,
			UnitPrice:    it.UnitPrice,
			TotalPrice:   it.TotalPrice,
		})
	}
	return v
}

func MapDomainReservationsToView(list []domain.Reservation) []ReservationView {
	views := make([]ReservationView, 0, len(list))
	for i := range list {
		views = append(views, MapDomainReservationToView(&list[i]))
	}
	return views
}

func MapDomainPaymentToView(p *domain.Payment) PaymentView {
	return PaymentView{
		ID:                p.ID,
		ReservationID:     p.ReservationID,
		Amount:            p.Amount,
		Method:            p.Method,
		Status:            p.Status.String(),
		ProviderReference: p.ProviderReference,
		CreatedAt:         p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func MapAuthResultToView(res *service.AuthResult) AuthView {
	return AuthView{
		Profile:      res.Profile,
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		ExpiresIn:    int64(res.ExpiresIn.Seconds()),
	}
}
