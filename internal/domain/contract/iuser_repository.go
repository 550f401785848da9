package contract

import (
	"context"

	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
)

type IUserRepository interface {
	CreateUser(ctx context.Context, user *entity.User) error
	GetUserByID(ctx context.Context, id string) (*entity.User, error)
	// GetUserByPhone retrieves a user by phone number.
	GetUserByPhone(ctx context.Context, phone string) (*entity.User, error)
}

// IHasher hashes and verifies passwords.
type IHasher interface {
	HashPassword(password string) (string, error)
	ComparePasswordHash(password, hashedPassword string) error
}

// IUUIDGenerator generates opaque identifiers.
type IUUIDGenerator interface {
	NewUUID() string
}
