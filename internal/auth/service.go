package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/frahmantamala/finance-tracker/internal"
	userDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/user"
	"github.com/frahmantamala/finance-tracker/internal/user"
	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	GetByID(ctx context.Context, userID int64) (*userDatamodel.User, error)
	GetByUsername(ctx context.Context, username string) (*userDatamodel.User, error)
	Create(ctx context.Context, u *userDatamodel.User) error
	TouchLastLogin(ctx context.Context, userID int64, at time.Time) error
}

// Service is the main auth service with dependencies
type Service struct {
	userRepo       UserRepository
	tokenGenerator TokenGenerator
	bcryptCost     int
	now            func() time.Time
	logger         *slog.Logger
}

func NewService(userRepo UserRepository, tokenGen TokenGenerator, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		userRepo:       userRepo,
		tokenGenerator: tokenGen,
		bcryptCost:     bcryptCost,
		now:            time.Now,
		logger:         logger,
	}
}

// Register creates an active account and signs it in.
func (s *Service) Register(ctx context.Context, dto RegisterDTO) (*user.User, AuthTokens, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, AuthTokens{}, err
	}

	existing, err := s.userRepo.GetByUsername(ctx, dto.Username)
	if err != nil {
		return nil, AuthTokens{}, s.internalError("failed to look up username", err)
	}
	if existing != nil {
		return nil, AuthTokens{}, errUsernameTaken()
	}

	hash, err := s.HashPassword(dto.Password)
	if err != nil {
		return nil, AuthTokens{}, s.internalError("failed to hash password", err)
	}

	model := &userDatamodel.User{
		Username:     dto.Username,
		Email:        dto.Email,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, model); err != nil {
		if errors.Is(err, user.ErrUsernameTaken) {
			return nil, AuthTokens{}, errUsernameTaken()
		}
		return nil, AuthTokens{}, s.internalError("failed to create user", err)
	}

	tokens, err := s.issue(model.ID, model.Username)
	if err != nil {
		return nil, AuthTokens{}, err
	}

	s.logger.Info("user registered", "user_id", model.ID)
	return user.FromDataModel(model), tokens, nil
}

// Authenticate validates credentials and returns tokens
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	u, err := s.userRepo.GetByUsername(ctx, dto.Username)
	if err != nil {
		return AuthTokens{}, s.internalError("failed to look up user", err)
	}
	if u == nil {
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.Password)); err != nil {
		return AuthTokens{}, internal.ErrInvalidCredentials
	}
	if !u.IsActive {
		return AuthTokens{}, internal.ErrUserInactive
	}

	if err := s.userRepo.TouchLastLogin(ctx, u.ID, s.now().UTC()); err != nil {
		s.logger.Warn("failed to record last login", "error", err, "user_id", u.ID)
	}

	return s.issue(u.ID, u.Username)
}

// RefreshTokens validates refresh token and returns new tokens
func (s *Service) RefreshTokens(ctx context.Context, refreshToken string) (AuthTokens, error) {
	claims, err := s.tokenGenerator.Validate(refreshToken, RefreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	u, err := s.activeUser(ctx, claims.UserID)
	if err != nil {
		return AuthTokens{}, err
	}

	return s.issue(u.ID, u.Username)
}

// Authorize resolves an access token to the id of an active user.
func (s *Service) Authorize(ctx context.Context, accessToken string) (int64, error) {
	claims, err := s.tokenGenerator.Validate(accessToken, AccessToken)
	if err != nil {
		return 0, err
	}

	u, err := s.activeUser(ctx, claims.UserID)
	if err != nil {
		return 0, err
	}
	return u.ID, nil
}

// Logout checks the access token. Tokens are stateless; the client discards them.
func (s *Service) Logout(ctx context.Context, accessToken string) error {
	userID, err := s.Authorize(ctx, accessToken)
	if err != nil {
		return err
	}
	s.logger.Info("user logged out", "user_id", userID)
	return nil
}

// HashPassword creates a bcrypt hash of the password
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *Service) activeUser(ctx context.Context, userID int64) (*userDatamodel.User, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, s.internalError("failed to load user", err)
	}
	if u == nil {
		return nil, internal.ErrInvalidToken
	}
	if !u.IsActive {
		return nil, internal.ErrUserInactive
	}
	return u, nil
}

func (s *Service) issue(userID int64, username string) (AuthTokens, error) {
	accessToken, err := s.tokenGenerator.Generate(userID, username, AccessToken)
	if err != nil {
		return AuthTokens{}, s.internalError("failed to sign access token", err)
	}

	refreshToken, err := s.tokenGenerator.Generate(userID, username, RefreshToken)
	if err != nil {
		return AuthTokens{}, s.internalError("failed to sign refresh token", err)
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.tokenGenerator.AccessTTL().Seconds()),
	}, nil
}

func (s *Service) internalError(message string, err error) error {
	s.logger.Error(message, "error", err)
	return internal.NewInternalError(message, err)
}

func errUsernameTaken() error {
	return internal.NewValidationFieldError("username", "a user with that username already exists", internal.ErrCodeUsernameTaken)
}
