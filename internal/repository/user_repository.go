package repository

import (
	"context"

	"github.com/pappi-team/pappi-matching/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int) (*domain.User, error)
}
