package auth

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"NGOConnect/internal/apperr"
	"NGOConnect/internal/config"
)

// UserStore is the slice of UserRepository the service needs. Tests swap in
// an in-memory implementation.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	FindByVerificationToken(ctx context.Context, token string) (*User, error)
	CreateUser(ctx context.Context, user *User) error
	UpdateUser(ctx context.Context, user *User) error
	UpdateLastLogin(ctx context.Context, id primitive.ObjectID) error
}

// Mailer sends the verification email. Dispatch failure on register never
// rolls the user back; the account stays unverified until a resend succeeds.
type Mailer interface {
	SendVerificationEmail(to, name, token string) error
}

type UserService struct {
	store  UserStore
	mailer Mailer
	logger *zap.Logger
}

func NewUserService(repo *UserRepository, mailer *config.EmailService, logger *zap.Logger) *UserService {
	return &UserService{store: repo, mailer: mailer, logger: logger}
}

// RegisterResult reports the created identity and whether the verification
// email actually went out.
type RegisterResult struct {
	Identity  Identity
	EmailSent bool
}

func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		return nil, apperr.BadRequest("All fields are required")
	}
	if !ValidRole(req.Role) {
		return nil, apperr.BadRequest("Invalid role")
	}

	existing, err := s.store.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.BadRequest("User already exists")
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	token, err := NewVerificationToken()
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:                      primitive.NewObjectID(),
		Name:                    req.Name,
		Email:                   req.Email,
		PasswordHash:            hash,
		Role:                    req.Role,
		IsActive:                true,
		IsVerified:              false,
		VerificationToken:       token,
		VerificationTokenExpiry: time.Now().Add(VerificationTokenTTL),
	}
	switch req.Role {
	case RolePartnerNGO:
		user.NGOInfo = req.NGOInfo
		if user.NGOInfo == nil {
			user.NGOInfo = &NGOInfo{Name: req.Name}
		}
	case RoleFrontliner:
		user.FrontlinerInfo = req.FrontlinerInfo
		if user.FrontlinerInfo == nil {
			user.FrontlinerInfo = &FrontlinerInfo{}
		}
	case RoleAdmin:
		user.AdminSettings = &AdminSettings{NotificationsEnabled: true}
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	result := &RegisterResult{Identity: user.Identity(), EmailSent: true}
	if err := s.mailer.SendVerificationEmail(user.Email, user.Name, token); err != nil {
		s.logger.Warn("verification email dispatch failed", zap.String("email", user.Email), zap.Error(err))
		result.EmailSent = false
	}
	return result, nil
}

// Authenticate checks credentials and returns a signed session token plus the
// identity. Unknown email and wrong password are indistinguishable to callers.
func (s *UserService) Authenticate(ctx context.Context, cred Credential) (string, *Identity, error) {
	if cred.Email == "" || cred.Password == "" {
		return "", nil, apperr.BadRequest("All fields are required")
	}

	user, err := s.store.FindByEmail(ctx, cred.Email)
	if err != nil {
		return "", nil, err
	}
	if user == nil || !CheckPasswordHash(cred.Password, user.PasswordHash) {
		return "", nil, apperr.Unauthorized("Invalid credentials")
	}
	if !user.IsVerified {
		return "", nil, apperr.Unauthorized("Please verify your email address before logging in")
	}
	if !user.IsActive {
		return "", nil, apperr.Unauthorized("Account is deactivated")
	}

	token, err := GenerateJWT(user.ID.Hex(), user.Role, TokenTTL)
	if err != nil {
		return "", nil, err
	}

	if err := s.store.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn("failed to stamp last login", zap.Error(err))
	}

	identity := user.Identity()
	return token, &identity, nil
}

func (s *UserService) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.store.FindByVerificationToken(ctx, token)
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.BadRequest("Invalid or expired verification token")
	}

	user.IsVerified = true
	user.VerificationToken = ""
	user.VerificationTokenExpiry = time.Time{}
	return s.store.UpdateUser(ctx, user)
}

func (s *UserService) ResendVerification(ctx context.Context, email string) error {
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.NotFound("User not found")
	}
	if user.IsVerified {
		return apperr.BadRequest("Email is already verified")
	}

	token, err := NewVerificationToken()
	if err != nil {
		return err
	}
	user.VerificationToken = token
	user.VerificationTokenExpiry = time.Now().Add(VerificationTokenTTL)
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return err
	}

	// Unlike register, a resend exists only to deliver the email, so a
	// dispatch failure is surfaced as an error.
	if err := s.mailer.SendVerificationEmail(user.Email, user.Name, token); err != nil {
		s.logger.Error("resend verification email failed", zap.String("email", user.Email), zap.Error(err))
		return err
	}
	return nil
}

func (s *UserService) Profile(ctx context.Context, userID primitive.ObjectID) (*Identity, error) {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}
	identity := user.Identity()
	return &identity, nil
}

// UpdateProfileRequest carries the self-editable profile fields. Email, role
// and the account flags are not representable here on purpose.
type UpdateProfileRequest struct {
	Name           *string         `json:"name"`
	NGOInfo        *NGOInfo        `json:"ngoInfo"`
	FrontlinerInfo *FrontlinerInfo `json:"frontlinerInfo"`
}

// UpdateProfile lets a user edit their own name and role-specific block. The
// role block is only applied when it matches the caller's role.
func (s *UserService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, req UpdateProfileRequest) (*Identity, error) {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, apperr.BadRequest("Name cannot be empty")
		}
		user.Name = *req.Name
	}
	if req.NGOInfo != nil && user.Role == RolePartnerNGO {
		user.NGOInfo = req.NGOInfo
	}
	if req.FrontlinerInfo != nil && user.Role == RoleFrontliner {
		user.FrontlinerInfo = req.FrontlinerInfo
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	identity := user.Identity()
	return &identity, nil
}
