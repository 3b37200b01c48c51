package http

import (
	"net/http"

	"charlymatloc-backend/internal/service"
)

type CartHandler struct {
	cartSvc service.CartService
}

func NewCartHandler(cartSvc service.CartService) *CartHandler {
	return &CartHandler{cartSvc: cartSvc}
}

type AddItemRequest struct {
	ToolID    int32  `json:"tool_id" validate:"required,gt=0"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Quantity  *int   `json:"quantity"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userId")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	cart, err := h.cartSvc.GetCurrentCart(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, MapDomainCartToView(cart))
}

// AddItem adds a tool for a period. The end date defaults to the start date
// and the quantity to one.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userId")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	var req AddItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, err)
		return
	}
	if err := validateRequest(req); err != nil {
		respondServiceError(w, r, err)
		return
	}
	if req.EndDate == "" {
		req.EndDate = req.StartDate
	}
	start, err := parseDate(req.StartDate, "start_date")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	end, err := parseDate(req.EndDate, "end_date")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	cart, err := h.cartSvc.AddToCart(r.Context(), userID, req.ToolID, start, end, quantity)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, MapDomainCartToView(cart))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userId")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	itemID, err := pathID(r, "itemId")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	cart, err := h.cartSvc.RemoveItem(r.Context(), userID, itemID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, MapDomainCartToView(cart))
}

func (h *CartHandler) RemoveByTool(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userId")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	q := r.URL.Query()
	toolID, err := parseID(q.Get("tool_id"), "tool_id")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	start, err := parseDate(q.Get("start_date"), "start_date")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	cart, err := h.cartSvc.RemoveFromCart(r.Context(), userID, toolID, start)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, MapDomainCartToView(cart))
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userId")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	itemID, err := pathID(r, "itemId")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	var req UpdateQuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, err)
		return
	}

	cart, err := h.cartSvc.UpdateItemQuantity(r.Context(), userID, itemID, req.Quantity)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, MapDomainCartToView(cart))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userId")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	if err := h.cartSvc.ClearCart(r.Context(), userID); err != nil {
		respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
