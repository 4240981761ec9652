package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/johangly/gpu/internal/domain/employee"
	"github.com/johangly/gpu/internal/domain/group"
	"github.com/johangly/gpu/internal/pkg/jwt"
	"github.com/johangly/gpu/internal/pkg/validator"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	groupRepo    group.GroupRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository, groupRepo group.GroupRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		groupRepo:    groupRepo,
	}
}

// HashPassword is shared with the bootstrap commands.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.NewEmployeeResponse(e))
	}
	return responses, nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id int64) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(e), nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	g, err := s.resolveGroup(ctx, req.GroupID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	newEmployee := employee.Employee{
		Cedula:    req.Cedula,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		GroupID:   g.ID,
		GroupName: g.Name,
		Role:      req.Role,
		Active:    true,
	}

	if req.Username != nil && req.Password != nil {
		hash, err := HashPassword(*req.Password)
		if err != nil {
			return employee.EmployeeResponse{}, err
		}
		username := strings.TrimSpace(*req.Username)
		newEmployee.Username = &username
		newEmployee.PasswordHash = &hash
	}

	created, err := s.employeeRepo.Create(ctx, newEmployee)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	created.GroupName = g.Name

	slog.Info("employee created", "employee_id", created.ID, "group_id", created.GroupID)
	return employee.NewEmployeeResponse(created), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	existing, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.Cedula != nil {
		existing.Cedula = *req.Cedula
	}
	if req.FirstName != nil {
		existing.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		existing.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.GroupID != nil && *req.GroupID != existing.GroupID {
		g, err := s.resolveGroup(ctx, *req.GroupID)
		if err != nil {
			return employee.EmployeeResponse{}, err
		}
		existing.GroupID = g.ID
		existing.GroupName = g.Name
	}
	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		existing.Username = &username
	}
	if req.Password != nil {
		hash, err := HashPassword(*req.Password)
		if err != nil {
			return employee.EmployeeResponse{}, err
		}
		existing.PasswordHash = &hash
	}
	if req.Role != nil {
		existing.Role = *req.Role
	}
	if req.Active != nil {
		existing.Active = *req.Active
	}

	if existing.Role == employee.RoleAdmin && (existing.Username == nil || existing.PasswordHash == nil) {
		return employee.EmployeeResponse{}, validator.ValidationErrors{{
			Field:   "usuario",
			Message: "an admin needs usuario and clave",
		}}
	}

	updated, err := s.employeeRepo.Update(ctx, existing)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("employee updated", "employee_id", updated.ID, "active", updated.Active)
	return employee.NewEmployeeResponse(updated), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id int64) error {
	if claims, err := jwt.ClaimsFromContext(ctx); err == nil && claims.EmployeeID == id {
		return employee.ErrCannotDeleteSelf
	}

	if _, err := s.employeeRepo.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.employeeRepo.CountAttendance(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d attendance record(s)", employee.ErrEmployeeHasAttendance, count)
	}

	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}

	slog.Info("employee deleted", "employee_id", id)
	return nil
}

func (s *EmployeeServiceImpl) resolveGroup(ctx context.Context, groupID int64) (group.Group, error) {
	g, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, group.ErrGroupNotFound) {
			return group.Group{}, validator.ValidationErrors{{
				Field:   "id_grupo",
				Message: "id_grupo does not exist",
			}}
		}
		return group.Group{}, err
	}
	return g, nil
}
