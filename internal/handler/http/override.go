package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/override"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/handler/http/response"
)

type OverrideHandler interface {
	CreateChange(w http.ResponseWriter, r *http.Request)
	GetChange(w http.ResponseWriter, r *http.Request)
	ListChanges(w http.ResponseWriter, r *http.Request)
	UpdateChange(w http.ResponseWriter, r *http.Request)
	DeleteChange(w http.ResponseWriter, r *http.Request)

	CreateException(w http.ResponseWriter, r *http.Request)
	GetException(w http.ResponseWriter, r *http.Request)
	ListExceptions(w http.ResponseWriter, r *http.Request)
	UpdateException(w http.ResponseWriter, r *http.Request)
	DeleteException(w http.ResponseWriter, r *http.Request)
}

type OverrideHandlerImpl struct {
	overrideService override.OverrideService
}

func NewOverrideHandler(overrideService override.OverrideService) OverrideHandler {
	return &OverrideHandlerImpl{overrideService: overrideService}
}

func overrideFilterFromQuery(r *http.Request, companyID string) override.OverrideFilter {
	return override.OverrideFilter{
		ScopeKind: getStrQueryParam(r, "scope_kind"),
		EntityID:  getStrQueryParam(r, "entity_id"),
		StartDate: getStrQueryParam(r, "start_date"),
		EndDate:   getStrQueryParam(r, "end_date"),
		Page:      getIntQueryParam(r, "page", 1),
		Limit:     getIntQueryParam(r, "limit", 20),
		CompanyID: companyID,
	}
}

// ==================== SCHEDULE CHANGE OPERATIONS ====================

// CreateChange implements OverrideHandler.
func (h *OverrideHandlerImpl) CreateChange(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req override.CreateChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateChange decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CompanyID = companyID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.overrideService.CreateChange(r.Context(), req)
	if err != nil {
		slog.Error("CreateChange service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Schedule change created", created)
}

// GetChange implements OverrideHandler.
func (h *OverrideHandlerImpl) GetChange(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	result, err := h.overrideService.GetChange(r.Context(), id, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListChanges implements OverrideHandler.
func (h *OverrideHandlerImpl) ListChanges(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	filter := overrideFilterFromQuery(r, companyID)
	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.overrideService.ListChanges(r.Context(), filter)
	if err != nil {
		slog.Error("ListChanges service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateChange implements OverrideHandler.
func (h *OverrideHandlerImpl) UpdateChange(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req override.UpdateChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateChange decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.CompanyID = companyID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.overrideService.UpdateChange(r.Context(), req)
	if err != nil {
		slog.Error("UpdateChange service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, updated)
}

// DeleteChange implements OverrideHandler.
func (h *OverrideHandlerImpl) DeleteChange(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.overrideService.DeleteChange(r.Context(), id, companyID); err != nil {
		slog.Error("DeleteChange service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule change deleted", nil)
}

// ==================== SCHEDULE EXCEPTION OPERATIONS ====================

// CreateException implements OverrideHandler.
func (h *OverrideHandlerImpl) CreateException(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req override.CreateExceptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateException decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CompanyID = companyID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.overrideService.CreateException(r.Context(), req)
	if err != nil {
		slog.Error("CreateException service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Schedule exception created", created)
}

// GetException implements OverrideHandler.
func (h *OverrideHandlerImpl) GetException(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	result, err := h.overrideService.GetException(r.Context(), id, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListExceptions implements OverrideHandler.
func (h *OverrideHandlerImpl) ListExceptions(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	filter := overrideFilterFromQuery(r, companyID)
	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.overrideService.ListExceptions(r.Context(), filter)
	if err != nil {
		slog.Error("ListExceptions service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateException implements OverrideHandler.
func (h *OverrideHandlerImpl) UpdateException(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req override.UpdateExceptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateException decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.CompanyID = companyID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.overrideService.UpdateException(r.Context(), req)
	if err != nil {
		slog.Error("UpdateException service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, updated)
}

// DeleteException implements OverrideHandler.
func (h *OverrideHandlerImpl) DeleteException(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.overrideService.DeleteException(r.Context(), id, companyID); err != nil {
		slog.Error("DeleteException service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule exception deleted", nil)
}
