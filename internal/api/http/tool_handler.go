package http

import (
	"net/http"

	"charlymatloc-backend/internal/domain"
	"charlymatloc-backend/internal/service"
)

type ToolHandler struct {
	toolSvc         service.ToolService
	availabilitySvc service.AvailabilityService
}

func NewToolHandler(toolSvc service.ToolService, availabilitySvc service.AvailabilityService) *ToolHandler {
	return &ToolHandler{toolSvc: toolSvc, availabilitySvc: availabilitySvc}
}

type AvailabilityView struct {
	ToolID         int32  `json:"tool_id"`
	StartDate      string `json:"start_date,omitempty"`
	EndDate        string `json:"end_date,omitempty"`
	AvailableStock int    `json:"available_stock"`
}

func (h *ToolHandler) ListTools(w http.ResponseWriter, r *http.Request) {
	var filter domain.ToolFilter
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		id, err := parseID(raw, "category_id")
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		filter.CategoryID = id
	}

	start, end, err := queryPeriod(r)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	filter.StartDate, filter.EndDate = start, end

	tools, err := h.toolSvc.ListTools(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, MapDomainToolsToCatalog(tools))
}

func (h *ToolHandler) GetTool(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	tool, err := h.toolSvc.GetTool(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, MapDomainToolToView(tool))
}

func (h *ToolHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	start, end, err := queryPeriod(r)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	available, err := h.availabilitySvc.AvailableStock(r.Context(), id, start, end)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	view := AvailabilityView{ToolID: id, AvailableStock: available}
	if start != nil {
		view.StartDate = r.URL.Query().Get("start_date")
		view.EndDate = r.URL.Query().Get("end_date")
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *ToolHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.toolSvc.ListCategories(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	respondJSON(w, http.StatusOK, categories)
}
