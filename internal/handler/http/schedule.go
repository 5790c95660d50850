package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/schedule"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/handler/http/response"
)

type ScheduleHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	CreateRange(w http.ResponseWriter, r *http.Request)
	UpdateRange(w http.ResponseWriter, r *http.Request)
	DeleteRange(w http.ResponseWriter, r *http.Request)
}

type ScheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
}

func NewScheduleHandler(scheduleService schedule.ScheduleService) ScheduleHandler {
	return &ScheduleHandlerImpl{scheduleService: scheduleService}
}

// getCompanyIDFromContext extracts company_id from JWT context
func getCompanyIDFromContext(r *http.Request) (string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}

	companyID, ok := claims["company_id"].(string)
	return companyID, ok && companyID != ""
}

// getUserIDFromContext extracts user_id from JWT context
func getUserIDFromContext(r *http.Request) string {
	_, claims, _ := jwtauth.FromContext(r.Context())
	if userID, ok := claims["user_id"].(string); ok {
		return userID
	}
	return ""
}

// getIntQueryParam gets an int query parameter with a default value
func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}

// getStrQueryParam gets an optional string query parameter
func getStrQueryParam(r *http.Request, key string) *string {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil
	}
	return &val
}

// Create implements ScheduleHandler.
func (h *ScheduleHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req schedule.CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateSchedule decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CompanyID = companyID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.scheduleService.CreateSchedule(r.Context(), req)
	if err != nil {
		slog.Error("CreateSchedule service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Schedule created", created)
}

// Get implements ScheduleHandler.
func (h *ScheduleHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	result, err := h.scheduleService.GetSchedule(r.Context(), id, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements ScheduleHandler.
func (h *ScheduleHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	filter := schedule.ScheduleFilter{
		Name:      getStrQueryParam(r, "name"),
		Page:      getIntQueryParam(r, "page", 1),
		Limit:     getIntQueryParam(r, "limit", 20),
		CompanyID: companyID,
	}
	if activeStr := r.URL.Query().Get("active"); activeStr != "" {
		active := activeStr == "true" || activeStr == "1"
		filter.Active = &active
	}

	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.scheduleService.ListSchedules(r.Context(), filter)
	if err != nil {
		slog.Error("ListSchedules service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements ScheduleHandler.
func (h *ScheduleHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req schedule.UpdateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateSchedule decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.CompanyID = companyID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.scheduleService.UpdateSchedule(r.Context(), req)
	if err != nil {
		slog.Error("UpdateSchedule service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, updated)
}

// Delete implements ScheduleHandler.
func (h *ScheduleHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.scheduleService.DeleteSchedule(r.Context(), id, companyID); err != nil {
		slog.Error("DeleteSchedule service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule deleted", nil)
}

// CreateRange implements ScheduleHandler.
func (h *ScheduleHandlerImpl) CreateRange(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req schedule.CreateScheduleRangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateScheduleRange decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ScheduleID = chi.URLParam(r, "id")
	req.CompanyID = companyID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.scheduleService.CreateRange(r.Context(), req)
	if err != nil {
		slog.Error("CreateScheduleRange service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Schedule range created", created)
}

// UpdateRange implements ScheduleHandler.
func (h *ScheduleHandlerImpl) UpdateRange(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req schedule.UpdateScheduleRangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateScheduleRange decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "rangeID")
	req.CompanyID = companyID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.scheduleService.UpdateRange(r.Context(), req); err != nil {
		slog.Error("UpdateScheduleRange service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule range updated", nil)
}

// DeleteRange implements ScheduleHandler.
func (h *ScheduleHandlerImpl) DeleteRange(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "rangeID")
	if err := h.scheduleService.DeleteRange(r.Context(), id, companyID); err != nil {
		slog.Error("DeleteScheduleRange service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule range deleted", nil)
}
