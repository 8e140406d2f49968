package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"smart-dine/internal/data/entity"
	"smart-dine/internal/data/repository"
	"smart-dine/internal/dto/request"
	"smart-dine/internal/dto/response"
	"smart-dine/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService covers the caller's own profile and back-office user moderation.
type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error)

	ListUsers(ctx context.Context, filter entity.UserFilter) ([]response.UserResponse, error)
	GetUser(ctx context.Context, id uuid.UUID) (*response.UserResponse, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req *request.UpdateUserRequest) (*response.UserResponse, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	ToggleStatus(ctx context.Context, id uuid.UUID) (*response.ToggleStatusResponse, error)
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  clock
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
		now:  time.Now,
	}
}

func (s *userService) findUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.ErrNotFound("User not found")
	}
	return user, nil
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	return s.GetUser(ctx, userID)
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.ErrBadRequest(utils.CodeValidation, "Failed to update profile.").WithDetails(errs)
	}

	return s.applyUpdate(ctx, userID, &request.UpdateUserRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Address:   req.Address,
	})
}

func (s *userService) ListUsers(ctx context.Context, filter entity.UserFilter) ([]response.UserResponse, error) {
	users, err := s.repo.User.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	profiles, err := s.repo.Profile.FindByUserIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	return response.UsersToResponse(users, profiles), nil
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*response.UserResponse, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	profile, err := s.repo.Profile.GetOrCreate(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user, profile)
	return &resp, nil
}

func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.ErrBadRequest(utils.CodeValidation, utils.FirstValidationMessage(errs)).WithDetails(errs)
	}
	return s.applyUpdate(ctx, id, req)
}

// applyUpdate writes the non-nil fields of req to the user and its profile.
func (s *userService) applyUpdate(ctx context.Context, id uuid.UUID, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.IsStaff != nil {
		user.IsStaff = *req.IsStaff
	}
	user.UpdatedAt = s.now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, utils.ErrBadRequest(utils.CodeDuplicate, "A user with this username or email already exists.")
		}
		return nil, err
	}

	if req.IsActive != nil && !*req.IsActive {
		if err := s.repo.Session.DeleteAllByUser(ctx, user.ID); err != nil {
			return nil, err
		}
	}

	profile, err := s.repo.Profile.GetOrCreate(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if req.Phone != nil || req.Address != nil {
		if req.Phone != nil {
			profile.Phone = req.Phone
		}
		if req.Address != nil {
			profile.Address = req.Address
		}
		profile.UpdatedAt = s.now()
		if err := s.repo.Profile.Update(ctx, profile); err != nil {
			return nil, err
		}
	}

	s.log.Info("User updated", zap.String("user_id", user.ID.String()))

	resp := response.UserToResponse(user, profile)
	return &resp, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return err
	}
	if user.IsSuperuser {
		return utils.ErrForbidden(utils.CodeForbidden, "Cannot delete superuser")
	}

	if err := s.repo.User.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("User deleted", zap.String("user_id", id.String()))
	return nil
}

func (s *userService) ToggleStatus(ctx context.Context, id uuid.UUID) (*response.ToggleStatusResponse, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.IsSuperuser {
		return nil, utils.NewAppError(http.StatusForbidden, utils.CodeForbidden, "Cannot modify superuser")
	}

	user.IsActive = !user.IsActive
	user.UpdatedAt = s.now()
	if err := s.repo.User.Update(ctx, user); err != nil {
		return nil, err
	}

	if !user.IsActive {
		if err := s.repo.Session.DeleteAllByUser(ctx, user.ID); err != nil {
			return nil, err
		}
	}

	s.log.Info("User status toggled",
		zap.String("user_id", user.ID.String()),
		zap.Bool("is_active", user.IsActive))

	return &response.ToggleStatusResponse{IsActive: user.IsActive}, nil
}
