package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskdeck/apiserver/internal/events"
	"github.com/taskdeck/apiserver/types"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByPublicID(ctx context.Context, publicID string) (types.User, error)
	GetByName(ctx context.Context, name string) (types.User, error)
	List(ctx context.Context) ([]types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	Promote(ctx context.Context, publicID string) error
	Delete(ctx context.Context, publicID string) error
}

// UserService encapsulates user use-cases.
type UserService struct {
	repo      UserRepository
	tasks     TaskRepository
	publisher *events.Publisher
}

func NewUserService(repo UserRepository, tasks TaskRepository, publisher *events.Publisher) *UserService {
	return &UserService{
		repo:      repo,
		tasks:     tasks,
		publisher: publisher,
	}
}

// Register hashes the password, assigns a fresh public identifier and stores
// the account. admin is false for every account created through the HTTP
// surface; only the bootstrap CLI passes true.
func (s *UserService) Register(ctx context.Context, name, password string, admin bool) (types.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return types.User{}, err
	}

	user, err := s.repo.Create(ctx, types.User{
		PublicID:     uuid.NewString(),
		Name:         name,
		PasswordHash: string(hashed),
		IsAdmin:      admin,
	})
	if err != nil {
		return types.User{}, err
	}

	s.publisher.UserEvent(ctx, events.UserCreated, user.PublicID)
	return user, nil
}

func (s *UserService) GetByPublicID(ctx context.Context, publicID string) (types.User, error) {
	return s.repo.GetByPublicID(ctx, publicID)
}

func (s *UserService) GetByName(ctx context.Context, name string) (types.User, error) {
	return s.repo.GetByName(ctx, name)
}

func (s *UserService) List(ctx context.Context) ([]types.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Promote(ctx context.Context, publicID string) error {
	if err := s.repo.Promote(ctx, publicID); err != nil {
		return err
	}
	s.publisher.UserEvent(ctx, events.UserPromoted, publicID)
	return nil
}

// Delete removes the account and its task rows. The two store calls are not
// transactional; a failure between them can leave task rows behind.
func (s *UserService) Delete(ctx context.Context, publicID string) error {
	user, err := s.repo.GetByPublicID(ctx, publicID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, publicID); err != nil {
		return err
	}

	if _, err := s.tasks.DeleteByUser(ctx, user.ID); err != nil {
		return err
	}

	s.publisher.UserEvent(ctx, events.UserDeleted, publicID)
	return nil
}
