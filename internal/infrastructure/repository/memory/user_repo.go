package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/mikiasgoitom/traceblog/internal/domain/contract"
	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
)

var ErrPhoneTaken = errors.New("phone number already registered")

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]entity.User
}

var _ contract.IUserRepository = (*UserRepository)(nil)

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]entity.User)}
}

func (r *UserRepository) CreateUser(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.PhoneNumber == user.PhoneNumber {
			return ErrPhoneTaken
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) GetUserByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, contract.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetUserByPhone(_ context.Context, phone string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.PhoneNumber == phone {
			return &u, nil
		}
	}
	return nil, contract.ErrUserNotFound
}
