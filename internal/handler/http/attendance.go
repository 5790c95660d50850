package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/attendance"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// CheckIn implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	userID := getUserIDFromContext(r)
	if !ok || userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	// The body is optional; mobile clients send coordinates, web clients send nothing.
	var req attendance.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Error("CheckIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = userID
	req.CompanyID = companyID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		slog.Error("CheckIn service error", "error", err, "user_id", userID)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in", created)
}

// CheckOut implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	userID := getUserIDFromContext(r)
	if !ok || userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req attendance.CheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Error("CheckOut decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = userID
	req.CompanyID = companyID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		slog.Error("CheckOut service error", "error", err, "user_id", userID)
		response.HandleError(w, err)
		return
	}

	response.Success(w, updated)
}

func attendanceFilterFromQuery(r *http.Request, companyID string) attendance.AttendanceFilter {
	return attendance.AttendanceFilter{
		UserID:         getStrQueryParam(r, "user_id"),
		ScheduleID:     getStrQueryParam(r, "schedule_id"),
		Date:           getStrQueryParam(r, "date"),
		StartDate:      getStrQueryParam(r, "start_date"),
		EndDate:        getStrQueryParam(r, "end_date"),
		TypeAssistance: getStrQueryParam(r, "type_assistance"),
		Page:           getIntQueryParam(r, "page", 1),
		Limit:          getIntQueryParam(r, "limit", 20),
		CompanyID:      companyID,
	}
}

// GetMyAttendance implements AttendanceHandler.
func (h *AttendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	userID := getUserIDFromContext(r)
	if !ok || userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	filter := attendanceFilterFromQuery(r, companyID)
	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.GetMyAttendance(r.Context(), userID, filter)
	if err != nil {
		slog.Error("GetMyAttendance service error", "error", err, "user_id", userID)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	result, err := h.attendanceService.GetAttendance(r.Context(), id, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements AttendanceHandler.
func (h *AttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	filter := attendanceFilterFromQuery(r, companyID)
	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.ListAttendance(r.Context(), filter)
	if err != nil {
		slog.Error("ListAttendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req attendance.UpdateAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateAttendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.CompanyID = companyID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.attendanceService.UpdateAttendance(r.Context(), req)
	if err != nil {
		slog.Error("UpdateAttendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, updated)
}
