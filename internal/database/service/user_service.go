package service

import (
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/ikubinfo/enrollment-engine/internal/config"
	"github.com/ikubinfo/enrollment-engine/internal/database/models"
	"github.com/ikubinfo/enrollment-engine/internal/database/repository"
)

// UserInput carries the validated fields for creating or updating a student.
type UserInput struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Phone     string `json:"phone" validate:"required,phone"`
	Email     string `json:"email" validate:"required,email"`
	Status    string `json:"status" validate:"omitempty,oneof=ENROLLED WITHDRAWN COMPLETED"`
	Role      string `json:"role" validate:"omitempty,oneof=STUDENT ADMIN"`
}

// UserService defines the interface for student business logic
type UserService interface {
	Filter(criteria repository.UserCriteria) (repository.Page[UserView], error)
	Get(id uint) (*UserView, error)
	ListUnfiltered() ([]UserView, error)
	Save(input UserInput) (*UserView, error)
	Update(input UserInput) (*UserView, error)
	Delete(id uint) error
}

type userService struct {
	userRepo       repository.UserRepository
	enrollmentRepo repository.EnrollmentRepository
	cfg            *config.Config
	logger         *slog.Logger
	validate       *validator.Validate
}

// NewUserService creates a new user service instance
func NewUserService(
	userRepo repository.UserRepository,
	enrollmentRepo repository.EnrollmentRepository,
	cfg *config.Config,
	logger *slog.Logger,
) UserService {
	return &userService{
		userRepo:       userRepo,
		enrollmentRepo: enrollmentRepo,
		cfg:            cfg,
		logger:         logger,
		validate:       newValidator(),
	}
}

func (s *userService) Filter(criteria repository.UserCriteria) (repository.Page[UserView], error) {
	if err := checkCriteria(criteria, criteria.Size, s.cfg); err != nil {
		return repository.Page[UserView]{}, err
	}

	users, total, err := s.userRepo.Filter(criteria)
	if err != nil {
		return repository.Page[UserView]{}, fmt.Errorf("failed to filter users: %w", err)
	}

	views := make([]UserView, 0, len(users))
	for i := range users {
		views = append(views, newUserView(&users[i]))
	}
	return repository.NewPage(views, total, criteria.Page, criteria.Size), nil
}

func (s *userService) Get(id uint) (*UserView, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	view := newUserView(user)
	return &view, nil
}

func (s *userService) ListUnfiltered() ([]UserView, error) {
	users, err := s.userRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	views := make([]UserView, 0, len(users))
	for i := range users {
		views = append(views, newUserView(&users[i]))
	}
	return views, nil
}

func (s *userService) Save(input UserInput) (*UserView, error) {
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}

	roleName := input.Role
	if roleName == "" {
		roleName = models.RoleStudent
	}
	role, err := s.userRepo.FindRoleByName(roleName)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		Email:     input.Email,
		Status:    input.Status,
		RoleID:    role.ID,
		Role:      *role,
	}
	if user.Status == "" {
		user.Status = models.UserStatusEnrolled
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("✅ [User] Student created", "user_id", user.ID, "email", user.Email)

	view := newUserView(user)
	return &view, nil
}

func (s *userService) Update(input UserInput) (*UserView, error) {
	user, err := s.userRepo.FindByID(input.ID)
	if err != nil {
		return nil, err
	}

	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}

	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.Phone = input.Phone
	user.Email = input.Email
	if input.Status != "" {
		user.Status = input.Status
	}
	if input.Role != "" && input.Role != user.Role.Name {
		role, err := s.userRepo.FindRoleByName(input.Role)
		if err != nil {
			return nil, err
		}
		user.RoleID = role.ID
		user.Role = *role
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("✅ [User] Student updated", "user_id", user.ID)

	view := newUserView(user)
	return &view, nil
}

// Delete soft-deletes a student and every enrollment held by the student,
// mirroring the course cascade: no active enrollment may reference a
// deleted user.
func (s *userService) Delete(id uint) error {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return err
	}

	user.Deleted = true
	user.Status = models.UserStatusWithdrawn
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if err := s.enrollmentRepo.SoftDeleteByUser(id); err != nil {
		return fmt.Errorf("failed to cascade user deletion: %w", err)
	}

	s.logger.Info("🗑️ [User] Student soft-deleted with enrollments", "user_id", id)
	return nil
}
