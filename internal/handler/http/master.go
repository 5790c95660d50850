package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/company"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/master/position"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/master/workplace"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/user"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/handler/http/response"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/service/master"
)

type MasterHandler interface {
	CreateCompany(w http.ResponseWriter, r *http.Request)
	GetCompany(w http.ResponseWriter, r *http.Request)
	ListCompanies(w http.ResponseWriter, r *http.Request)
	UpdateCompany(w http.ResponseWriter, r *http.Request)
	DeleteCompany(w http.ResponseWriter, r *http.Request)

	CreateWorkplace(w http.ResponseWriter, r *http.Request)
	GetWorkplace(w http.ResponseWriter, r *http.Request)
	ListWorkplaces(w http.ResponseWriter, r *http.Request)
	UpdateWorkplace(w http.ResponseWriter, r *http.Request)
	DeleteWorkplace(w http.ResponseWriter, r *http.Request)

	CreatePosition(w http.ResponseWriter, r *http.Request)
	GetPosition(w http.ResponseWriter, r *http.Request)
	ListPositions(w http.ResponseWriter, r *http.Request)
	UpdatePosition(w http.ResponseWriter, r *http.Request)
	DeletePosition(w http.ResponseWriter, r *http.Request)

	CreateUser(w http.ResponseWriter, r *http.Request)
	GetUser(w http.ResponseWriter, r *http.Request)
	ListUsers(w http.ResponseWriter, r *http.Request)
	UpdateUser(w http.ResponseWriter, r *http.Request)
	DeleteUser(w http.ResponseWriter, r *http.Request)
}

type MasterHandlerImpl struct {
	masterService master.MasterService
}

func NewMasterHandler(masterService master.MasterService) MasterHandler {
	return &MasterHandlerImpl{masterService: masterService}
}

// ==================== COMPANY OPERATIONS ====================

// CreateCompany implements MasterHandler.
func (h *MasterHandlerImpl) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var req company.CreateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateCompany decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.masterService.CreateCompany(r.Context(), req)
	if err != nil {
		slog.Error("CreateCompany service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Company created", created)
}

// GetCompany implements MasterHandler.
func (h *MasterHandlerImpl) GetCompany(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.GetCompany(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListCompanies implements MasterHandler.
func (h *MasterHandlerImpl) ListCompanies(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.ListCompanies(r.Context())
	if err != nil {
		slog.Error("ListCompanies service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateCompany implements MasterHandler.
func (h *MasterHandlerImpl) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	var req company.UpdateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateCompany decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.masterService.UpdateCompany(r.Context(), req); err != nil {
		slog.Error("UpdateCompany service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Company updated", nil)
}

// DeleteCompany implements MasterHandler.
func (h *MasterHandlerImpl) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.DeleteCompany(r.Context(), chi.URLParam(r, "id")); err != nil {
		slog.Error("DeleteCompany service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Company deleted", nil)
}

// ==================== WORKPLACE OPERATIONS ====================

// CreateWorkplace implements MasterHandler.
func (h *MasterHandlerImpl) CreateWorkplace(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req workplace.CreateWorkplaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateWorkplace decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CompanyID = companyID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.masterService.CreateWorkplace(r.Context(), req)
	if err != nil {
		slog.Error("CreateWorkplace service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Workplace created", created)
}

// GetWorkplace implements MasterHandler.
func (h *MasterHandlerImpl) GetWorkplace(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	result, err := h.masterService.GetWorkplace(r.Context(), chi.URLParam(r, "id"), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListWorkplaces implements MasterHandler.
func (h *MasterHandlerImpl) ListWorkplaces(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	result, err := h.masterService.ListWorkplaces(r.Context(), companyID)
	if err != nil {
		slog.Error("ListWorkplaces service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateWorkplace implements MasterHandler.
func (h *MasterHandlerImpl) UpdateWorkplace(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req workplace.UpdateWorkplaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateWorkplace decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.CompanyID = companyID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.masterService.UpdateWorkplace(r.Context(), req); err != nil {
		slog.Error("UpdateWorkplace service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Workplace updated", nil)
}

// DeleteWorkplace implements MasterHandler.
func (h *MasterHandlerImpl) DeleteWorkplace(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	if err := h.masterService.DeleteWorkplace(r.Context(), chi.URLParam(r, "id"), companyID); err != nil {
		slog.Error("DeleteWorkplace service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Workplace deleted", nil)
}

// ==================== POSITION OPERATIONS ====================

// CreatePosition implements MasterHandler.
func (h *MasterHandlerImpl) CreatePosition(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req position.CreatePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreatePosition decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CompanyID = companyID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.masterService.CreatePosition(r.Context(), req)
	if err != nil {
		slog.Error("CreatePosition service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Position created", created)
}

// GetPosition implements MasterHandler.
func (h *MasterHandlerImpl) GetPosition(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	result, err := h.masterService.GetPosition(r.Context(), chi.URLParam(r, "id"), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListPositions implements MasterHandler.
func (h *MasterHandlerImpl) ListPositions(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	result, err := h.masterService.ListPositions(r.Context(), companyID)
	if err != nil {
		slog.Error("ListPositions service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdatePosition implements MasterHandler.
func (h *MasterHandlerImpl) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req position.UpdatePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdatePosition decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.CompanyID = companyID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.masterService.UpdatePosition(r.Context(), req); err != nil {
		slog.Error("UpdatePosition service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Position updated", nil)
}

// DeletePosition implements MasterHandler.
func (h *MasterHandlerImpl) DeletePosition(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	if err := h.masterService.DeletePosition(r.Context(), chi.URLParam(r, "id"), companyID); err != nil {
		slog.Error("DeletePosition service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Position deleted", nil)
}

// ==================== USER OPERATIONS ====================

// CreateUser implements MasterHandler.
func (h *MasterHandlerImpl) CreateUser(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req user.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateUser decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CompanyID = companyID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.masterService.CreateUser(r.Context(), req)
	if err != nil {
		slog.Error("CreateUser service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "User created", created)
}

// GetUser implements MasterHandler.
func (h *MasterHandlerImpl) GetUser(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	result, err := h.masterService.GetUser(r.Context(), chi.URLParam(r, "id"), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListUsers implements MasterHandler.
func (h *MasterHandlerImpl) ListUsers(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	result, err := h.masterService.ListUsers(r.Context(), companyID)
	if err != nil {
		slog.Error("ListUsers service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateUser implements MasterHandler.
func (h *MasterHandlerImpl) UpdateUser(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req user.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateUser decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.CompanyID = companyID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.masterService.UpdateUser(r.Context(), req); err != nil {
		slog.Error("UpdateUser service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User updated", nil)
}

// DeleteUser implements MasterHandler.
func (h *MasterHandlerImpl) DeleteUser(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	if err := h.masterService.DeleteUser(r.Context(), chi.URLParam(r, "id"), companyID); err != nil {
		slog.Error("DeleteUser service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User deleted", nil)
}
