package http

import (
	"net/http"

	"charlymatloc-backend/internal/service"
)

type ReservationHandler struct {
	reservationSvc service.ReservationService
	paymentSvc     service.PaymentService
}

func NewReservationHandler(reservationSvc service.ReservationService, paymentSvc service.PaymentService) *ReservationHandler {
	return &ReservationHandler{reservationSvc: reservationSvc, paymentSvc: paymentSvc}
}

type ProcessPaymentRequest struct {
	Amount        *float64 `json:"amount" validate:"required,gt=0"`
	PaymentMethod string   `json:"payment_method"`
	CardHolder    string   `json:"card_holder"`
}

func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userId")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	res, err := h.reservationSvc.CreateFromCart(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, MapDomainReservationToView(res))
}

func (h *ReservationHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userId")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	list, err := h.reservationSvc.GetReservationsByUserID(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, MapDomainReservationsToView(list))
}

func (h *ReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "reservationId")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	res, err := h.reservationSvc.GetReservationByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, MapDomainReservationToView(res))
}

func (h *ReservationHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "reservationId")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	caller, ok := ProfileFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing user authentication")
		return
	}

	res, err := h.reservationSvc.CancelReservation(r.Context(), caller, id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, MapDomainReservationToView(res))
}

func (h *ReservationHandler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userId")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	reservationID, err := pathUUID(r, "reservationId")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	var req ProcessPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, err)
		return
	}
	if err := validateRequest(req); err != nil {
		respondServiceError(w, r, err)
		return
	}

	payment, err := h.paymentSvc.ProcessPayment(r.Context(), userID, reservationID, service.PaymentRequest{
		Amount:     *req.Amount,
		Method:     req.PaymentMethod,
		CardHolder: req.CardHolder,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, MapDomainPaymentToView(payment))
}

func (h *ReservationHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userId")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	reservationID, err := pathUUID(r, "reservationId")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	payments, err := h.paymentSvc.ListPayments(r.Context(), userID, reservationID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	views := make([]PaymentView, 0, len(payments))
	for i := range payments {
		views = append(views, MapDomainPaymentToView(&payments[i]))
	}
	respondJSON(w, http.StatusOK, views)
}
