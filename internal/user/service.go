package user

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/finance-tracker/internal"
	userDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/user"
)

type Repository interface {
	GetByID(ctx context.Context, userID int64) (*userDatamodel.User, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetByID returns the active account with the given id.
func (s *Service) GetByID(ctx context.Context, userID int64) (*User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to get user", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to get user", err)
	}
	if u == nil || !u.IsActive {
		return nil, internal.ErrUserNotFound
	}
	return FromDataModel(u), nil
}
