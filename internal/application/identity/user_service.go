package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nexkart/backend/internal/domain/identity"
	"github.com/nexkart/backend/internal/domain/shared"
	"github.com/nexkart/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// RegisterInput carries a new account registration
type RegisterInput struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	Name       string `json:"name"`
	Role       string `json:"role" binding:"required,shoprole"`
	BusinessID string `json:"business_id"`
}

// LoginInput carries login credentials
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileInput carries editable profile fields
type UpdateProfileInput struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	AvatarURL string `json:"avatar_url"`
}

// UserView is the API projection of a user
type UserView struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	AvatarURL  string    `json:"avatar_url"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"is_verified"`
	BusinessID string    `json:"business_id,omitempty"`
	CreatedAt  string    `json:"created_at"`
}

// AuthOutput is a user plus a fresh token
type AuthOutput struct {
	User      UserView  `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func newUserView(u *identity.User) UserView {
	return UserView{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Phone:      u.Phone,
		Address:    u.Address,
		AvatarURL:  u.AvatarURL,
		Role:       string(u.Role),
		IsVerified: u.IsVerified,
		BusinessID: u.BusinessID,
		CreatedAt:  u.CreatedAt.Format(time.RFC3339),
	}
}

// UserService handles registration, login and profile management
type UserService struct {
	users  identity.UserRepository
	tokens *auth.JWTService
	logger *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(users identity.UserRepository, tokens *auth.JWTService, logger *zap.Logger) *UserService {
	return &UserService{users: users, tokens: tokens, logger: logger}
}

// Register creates an account and returns it with a token
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*AuthOutput, error) {
	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, shared.ErrAlreadyExists
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	user, err := identity.NewUser(input.Email, input.Password, identity.Role(input.Role))
	if err != nil {
		return nil, err
	}
	user.Name = input.Name
	user.BusinessID = input.BusinessID

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)),
	)
	return s.issue(user)
}

// Login authenticates credentials and returns the user with a token
func (s *UserService) Login(ctx context.Context, input LoginInput) (*AuthOutput, error) {
	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrInvalidCredential
		}
		return nil, err
	}
	if !user.CheckPassword(input.Password) {
		return nil, shared.ErrInvalidCredential
	}
	return s.issue(user)
}

// Profile returns the caller's own account
func (s *UserService) Profile(ctx context.Context, userID uuid.UUID) (*UserView, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	view := newUserView(user)
	return &view, nil
}

// UpdateProfile updates editable fields and re-issues the token so
// the client's claims stay current
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*AuthOutput, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.UpdateProfile(input.Name, input.Phone, input.Address, input.AvatarURL)
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return s.issue(user)
}

// ListUsers returns all accounts, newest first
func (s *UserService) ListUsers(ctx context.Context) ([]UserView, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]UserView, len(users))
	for i := range users {
		views[i] = newUserView(&users[i])
	}
	return views, nil
}

// VerifyWholesaler marks a wholesaler account as verified
func (s *UserService) VerifyWholesaler(ctx context.Context, userID uuid.UUID) (*UserView, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := user.Verify(); err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Wholesaler verified", zap.String("email", user.Email))
	view := newUserView(user)
	return &view, nil
}

func (s *UserService) issue(user *identity.User) (*AuthOutput, error) {
	token, expiresAt, err := s.tokens.GenerateToken(auth.GenerateTokenInput{
		UserID:     user.ID,
		Email:      user.Email,
		Role:       string(user.Role),
		IsVerified: user.IsVerified,
	})
	if err != nil {
		return nil, err
	}
	return &AuthOutput{
		User:      newUserView(user),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
