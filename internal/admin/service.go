package admin

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"NGOConnect/internal/apperr"
	"NGOConnect/internal/auth"
	"NGOConnect/internal/policy"
)

// UserStore is the slice of auth.UserRepository the admin service needs.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*auth.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*auth.User, error)
	CreateUser(ctx context.Context, user *auth.User) error
	UpdateUser(ctx context.Context, user *auth.User) error
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) (bool, error)
	FindActiveByRole(ctx context.Context, role string, limit int64) ([]*auth.User, error)
}

type AdminService struct {
	users  UserStore
	logger *zap.Logger
}

func NewAdminService(users *auth.UserRepository, logger *zap.Logger) *AdminService {
	return &AdminService{users: users, logger: logger}
}

type CreateNGORequest struct {
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	Password string        `json:"password"`
	NGOInfo  *auth.NGOInfo `json:"ngoInfo"`
}

type CreateFrontlinerRequest struct {
	Name           string               `json:"name"`
	Email          string               `json:"email"`
	Password       string               `json:"password"`
	FrontlinerInfo *auth.FrontlinerInfo `json:"frontlinerInfo"`
}

type UpdateSettingsRequest struct {
	ProjectNotificationCount *int  `json:"projectNotificationCount"`
	NotificationsEnabled     *bool `json:"notificationsEnabled"`
}

type ToggleStatusRequest struct {
	IsActive bool `json:"isActive"`
}

// createUser backs both admin creation endpoints. Admin-created accounts are
// pre-verified: there is no email round trip to wait for.
func (s *AdminService) createUser(ctx context.Context, name, email, password string, build func(*auth.User)) (*auth.Identity, error) {
	if name == "" || email == "" || password == "" {
		return nil, apperr.BadRequest("All fields are required")
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.BadRequest("User with this email already exists")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &auth.User{
		ID:           primitive.NewObjectID(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
		IsVerified:   true,
	}
	build(user)

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created by admin", zap.String("email", email), zap.String("role", user.Role))
	identity := user.Identity()
	return &identity, nil
}

func (s *AdminService) CreateNGO(ctx context.Context, req CreateNGORequest) (*auth.Identity, error) {
	return s.createUser(ctx, req.Name, req.Email, req.Password, func(u *auth.User) {
		u.Role = auth.RolePartnerNGO
		u.NGOInfo = req.NGOInfo
		if u.NGOInfo == nil {
			u.NGOInfo = &auth.NGOInfo{Name: req.Name}
		} else if u.NGOInfo.Name == "" {
			u.NGOInfo.Name = req.Name
		}
	})
}

func (s *AdminService) CreateFrontliner(ctx context.Context, req CreateFrontlinerRequest) (*auth.Identity, error) {
	return s.createUser(ctx, req.Name, req.Email, req.Password, func(u *auth.User) {
		u.Role = auth.RoleFrontliner
		u.FrontlinerInfo = req.FrontlinerInfo
		if u.FrontlinerInfo == nil {
			u.FrontlinerInfo = &auth.FrontlinerInfo{}
		}
	})
}

func identities(users []*auth.User) []auth.Identity {
	out := make([]auth.Identity, 0, len(users))
	for _, u := range users {
		out = append(out, u.Identity())
	}
	return out
}

func (s *AdminService) ListNGOs(ctx context.Context) ([]auth.Identity, error) {
	users, err := s.users.FindActiveByRole(ctx, auth.RolePartnerNGO, 0)
	if err != nil {
		return nil, err
	}
	return identities(users), nil
}

func (s *AdminService) ListFrontliners(ctx context.Context) ([]auth.Identity, error) {
	users, err := s.users.FindActiveByRole(ctx, auth.RoleFrontliner, 0)
	if err != nil {
		return nil, err
	}
	return identities(users), nil
}

// UpdateSettings is self-only: admins manage their own notification
// preferences, nobody else's.
func (s *AdminService) UpdateSettings(ctx context.Context, adminID primitive.ObjectID, targetID string, req UpdateSettingsRequest) (*auth.Identity, error) {
	if policy.SelfOnly(adminID.Hex(), targetID) != policy.Allowed {
		return nil, apperr.Forbidden("You can only update your own settings.")
	}

	user, err := s.users.FindByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}

	if user.AdminSettings == nil {
		user.AdminSettings = &auth.AdminSettings{NotificationsEnabled: true}
	}
	if req.ProjectNotificationCount != nil {
		user.AdminSettings.ProjectNotificationCount = *req.ProjectNotificationCount
	}
	if req.NotificationsEnabled != nil {
		user.AdminSettings.NotificationsEnabled = *req.NotificationsEnabled
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	identity := user.Identity()
	return &identity, nil
}

// ToggleStatus soft-(de)activates a user. Repeating the same call leaves the
// same final state.
func (s *AdminService) ToggleStatus(ctx context.Context, targetID string, active bool) (*auth.Identity, error) {
	id, err := primitive.ObjectIDFromHex(targetID)
	if err != nil {
		return nil, apperr.NotFound("User not found")
	}

	matched, err := s.users.SetActive(ctx, id, active)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, apperr.NotFound("User not found")
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}
	identity := user.Identity()
	return &identity, nil
}
