package master

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/company"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/master/position"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/master/workplace"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

type MasterService interface {
	// Company operations
	CreateCompany(ctx context.Context, req company.CreateCompanyRequest) (company.CompanyResponse, error)
	GetCompany(ctx context.Context, id string) (company.CompanyResponse, error)
	ListCompanies(ctx context.Context) ([]company.CompanyResponse, error)
	UpdateCompany(ctx context.Context, req company.UpdateCompanyRequest) error
	DeleteCompany(ctx context.Context, id string) error

	// Workplace operations
	CreateWorkplace(ctx context.Context, req workplace.CreateWorkplaceRequest) (workplace.WorkplaceResponse, error)
	GetWorkplace(ctx context.Context, id string, companyID string) (workplace.WorkplaceResponse, error)
	ListWorkplaces(ctx context.Context, companyID string) ([]workplace.WorkplaceResponse, error)
	UpdateWorkplace(ctx context.Context, req workplace.UpdateWorkplaceRequest) error
	DeleteWorkplace(ctx context.Context, id string, companyID string) error

	// Position operations
	CreatePosition(ctx context.Context, req position.CreatePositionRequest) (position.PositionResponse, error)
	GetPosition(ctx context.Context, id string, companyID string) (position.PositionResponse, error)
	ListPositions(ctx context.Context, companyID string) ([]position.PositionResponse, error)
	UpdatePosition(ctx context.Context, req position.UpdatePositionRequest) error
	DeletePosition(ctx context.Context, id string, companyID string) error

	// User operations
	CreateUser(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error)
	GetUser(ctx context.Context, id string, companyID string) (user.UserResponse, error)
	ListUsers(ctx context.Context, companyID string) ([]user.UserResponse, error)
	UpdateUser(ctx context.Context, req user.UpdateUserRequest) error
	DeleteUser(ctx context.Context, id string, companyID string) error
}

type masterServiceImpl struct {
	companyRepo   company.CompanyRepository
	workplaceRepo workplace.WorkplaceRepository
	positionRepo  position.PositionRepository
	userRepo      user.UserRepository
}

func NewMasterService(
	companyRepo company.CompanyRepository,
	workplaceRepo workplace.WorkplaceRepository,
	positionRepo position.PositionRepository,
	userRepo user.UserRepository,
) MasterService {
	return &masterServiceImpl{
		companyRepo:   companyRepo,
		workplaceRepo: workplaceRepo,
		positionRepo:  positionRepo,
		userRepo:      userRepo,
	}
}

// ==================== COMPANY OPERATIONS ====================

func (s *masterServiceImpl) CreateCompany(ctx context.Context, req company.CreateCompanyRequest) (company.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}

	created, err := s.companyRepo.Create(ctx, company.Company{
		Name:     req.Name,
		Timezone: req.Timezone,
	})
	if err != nil {
		return company.CompanyResponse{}, fmt.Errorf("failed to create company: %w", err)
	}

	return mapCompanyToResponse(created), nil
}

func (s *masterServiceImpl) GetCompany(ctx context.Context, id string) (company.CompanyResponse, error) {
	c, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return company.CompanyResponse{}, company.ErrCompanyNotFound
		}
		return company.CompanyResponse{}, fmt.Errorf("failed to get company: %w", err)
	}
	return mapCompanyToResponse(c), nil
}

func (s *masterServiceImpl) ListCompanies(ctx context.Context) ([]company.CompanyResponse, error) {
	companies, err := s.companyRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	responses := make([]company.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		responses = append(responses, mapCompanyToResponse(c))
	}
	return responses, nil
}

func (s *masterServiceImpl) UpdateCompany(ctx context.Context, req company.UpdateCompanyRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	c, err := s.companyRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return company.ErrCompanyNotFound
		}
		return fmt.Errorf("failed to get company: %w", err)
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Timezone != nil {
		c.Timezone = *req.Timezone
	}

	if err := s.companyRepo.Update(ctx, c); err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}
	return nil
}

func (s *masterServiceImpl) DeleteCompany(ctx context.Context, id string) error {
	if err := s.companyRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return company.ErrCompanyNotFound
		}
		return fmt.Errorf("failed to delete company: %w", err)
	}
	return nil
}

// ==================== WORKPLACE OPERATIONS ====================

func (s *masterServiceImpl) CreateWorkplace(ctx context.Context, req workplace.CreateWorkplaceRequest) (workplace.WorkplaceResponse, error) {
	if err := req.Validate(); err != nil {
		return workplace.WorkplaceResponse{}, err
	}

	created, err := s.workplaceRepo.Create(ctx, workplace.Workplace{
		CompanyID: req.CompanyID,
		Name:      req.Name,
		Active:    true,
	})
	if err != nil {
		return workplace.WorkplaceResponse{}, fmt.Errorf("failed to create workplace: %w", err)
	}

	return mapWorkplaceToResponse(created), nil
}

func (s *masterServiceImpl) GetWorkplace(ctx context.Context, id string, companyID string) (workplace.WorkplaceResponse, error) {
	w, err := s.workplaceRepo.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, workplace.ErrWorkplaceNotFound) {
			return workplace.WorkplaceResponse{}, workplace.ErrWorkplaceNotFound
		}
		return workplace.WorkplaceResponse{}, fmt.Errorf("failed to get workplace: %w", err)
	}
	return mapWorkplaceToResponse(w), nil
}

func (s *masterServiceImpl) ListWorkplaces(ctx context.Context, companyID string) ([]workplace.WorkplaceResponse, error) {
	workplaces, err := s.workplaceRepo.List(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workplaces: %w", err)
	}

	responses := make([]workplace.WorkplaceResponse, 0, len(workplaces))
	for _, w := range workplaces {
		responses = append(responses, mapWorkplaceToResponse(w))
	}
	return responses, nil
}

func (s *masterServiceImpl) UpdateWorkplace(ctx context.Context, req workplace.UpdateWorkplaceRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	w, err := s.workplaceRepo.GetByID(ctx, req.ID, req.CompanyID)
	if err != nil {
		if errors.Is(err, workplace.ErrWorkplaceNotFound) {
			return workplace.ErrWorkplaceNotFound
		}
		return fmt.Errorf("failed to get workplace: %w", err)
	}

	if req.Name != nil {
		w.Name = *req.Name
	}
	if req.Active != nil {
		w.Active = *req.Active
	}

	if err := s.workplaceRepo.Update(ctx, w); err != nil {
		return fmt.Errorf("failed to update workplace: %w", err)
	}
	return nil
}

func (s *masterServiceImpl) DeleteWorkplace(ctx context.Context, id string, companyID string) error {
	if err := s.workplaceRepo.SoftDelete(ctx, id, companyID); err != nil {
		if errors.Is(err, workplace.ErrWorkplaceNotFound) {
			return workplace.ErrWorkplaceNotFound
		}
		return fmt.Errorf("failed to delete workplace: %w", err)
	}
	return nil
}

// ==================== POSITION OPERATIONS ====================

func (s *masterServiceImpl) CreatePosition(ctx context.Context, req position.CreatePositionRequest) (position.PositionResponse, error) {
	if err := req.Validate(); err != nil {
		return position.PositionResponse{}, err
	}

	created, err := s.positionRepo.Create(ctx, position.Position{
		CompanyID: req.CompanyID,
		Name:      req.Name,
		Active:    true,
	})
	if err != nil {
		return position.PositionResponse{}, fmt.Errorf("failed to create position: %w", err)
	}

	return mapPositionToResponse(created), nil
}

func (s *masterServiceImpl) GetPosition(ctx context.Context, id string, companyID string) (position.PositionResponse, error) {
	p, err := s.positionRepo.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, position.ErrPositionNotFound) {
			return position.PositionResponse{}, position.ErrPositionNotFound
		}
		return position.PositionResponse{}, fmt.Errorf("failed to get position: %w", err)
	}
	return mapPositionToResponse(p), nil
}

func (s *masterServiceImpl) ListPositions(ctx context.Context, companyID string) ([]position.PositionResponse, error) {
	positions, err := s.positionRepo.List(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}

	responses := make([]position.PositionResponse, 0, len(positions))
	for _, p := range positions {
		responses = append(responses, mapPositionToResponse(p))
	}
	return responses, nil
}

func (s *masterServiceImpl) UpdatePosition(ctx context.Context, req position.UpdatePositionRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	p, err := s.positionRepo.GetByID(ctx, req.ID, req.CompanyID)
	if err != nil {
		if errors.Is(err, position.ErrPositionNotFound) {
			return position.ErrPositionNotFound
		}
		return fmt.Errorf("failed to get position: %w", err)
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Active != nil {
		p.Active = *req.Active
	}

	if err := s.positionRepo.Update(ctx, p); err != nil {
		return fmt.Errorf("failed to update position: %w", err)
	}
	return nil
}

func (s *masterServiceImpl) DeletePosition(ctx context.Context, id string, companyID string) error {
	if err := s.positionRepo.SoftDelete(ctx, id, companyID); err != nil {
		if errors.Is(err, position.ErrPositionNotFound) {
			return position.ErrPositionNotFound
		}
		return fmt.Errorf("failed to delete position: %w", err)
	}
	return nil
}

// ==================== USER OPERATIONS ====================

func (s *masterServiceImpl) CreateUser(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.userRepo.Create(ctx, user.User{
		CompanyID:    req.CompanyID,
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         user.Role(req.Role),
		WorkplaceID:  req.WorkplaceID,
		PositionID:   req.PositionID,
		ScheduleID:   req.ScheduleID,
		Active:       true,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.UserResponse{}, user.ErrEmailExists
		}
		return user.UserResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	return mapUserToResponse(created), nil
}

func (s *masterServiceImpl) GetUser(ctx context.Context, id string, companyID string) (user.UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.UserResponse{}, user.ErrUserNotFound
		}
		return user.UserResponse{}, fmt.Errorf("failed to get user: %w", err)
	}
	return mapUserToResponse(u), nil
}

func (s *masterServiceImpl) ListUsers(ctx context.Context, companyID string) ([]user.UserResponse, error) {
	users, err := s.userRepo.List(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, mapUserToResponse(u))
	}
	return responses, nil
}

func (s *masterServiceImpl) UpdateUser(ctx context.Context, req user.UpdateUserRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := s.userRepo.GetByID(ctx, req.ID, req.CompanyID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if req.FullName != nil {
		u.FullName = *req.FullName
	}
	if req.WorkplaceID != nil {
		u.WorkplaceID = req.WorkplaceID
	}
	if req.PositionID != nil {
		u.PositionID = req.PositionID
	}
	if req.ScheduleID != nil {
		u.ScheduleID = req.ScheduleID
	}
	if req.Active != nil {
		u.Active = *req.Active
	}

	if err := s.userRepo.Update(ctx, u); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func (s *masterServiceImpl) DeleteUser(ctx context.Context, id string, companyID string) error {
	if err := s.userRepo.SoftDelete(ctx, id, companyID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func mapCompanyToResponse(c company.Company) company.CompanyResponse {
	return company.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Timezone:  c.Timezone,
		CreatedAt: c.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: c.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func mapWorkplaceToResponse(w workplace.Workplace) workplace.WorkplaceResponse {
	return workplace.WorkplaceResponse{
		ID:        w.ID,
		CompanyID: w.CompanyID,
		Name:      w.Name,
		Active:    w.Active,
		CreatedAt: w.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: w.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func mapPositionToResponse(p position.Position) position.PositionResponse {
	return position.PositionResponse{
		ID:        p.ID,
		CompanyID: p.CompanyID,
		Name:      p.Name,
		Active:    p.Active,
		CreatedAt: p.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: p.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func mapUserToResponse(u user.User) user.UserResponse {
	return user.UserResponse{
		ID:          u.ID,
		CompanyID:   u.CompanyID,
		Email:       u.Email,
		FullName:    u.FullName,
		Role:        string(u.Role),
		WorkplaceID: u.WorkplaceID,
		PositionID:  u.PositionID,
		ScheduleID:  u.ScheduleID,
		Active:      u.Active,
		CreatedAt:   u.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:   u.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
