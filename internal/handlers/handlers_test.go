package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/taskdeck/apiserver/internal/auth"
	"github.com/taskdeck/apiserver/internal/events"
	"github.com/taskdeck/apiserver/internal/handlers"
	"github.com/taskdeck/apiserver/internal/logger"
	"github.com/taskdeck/apiserver/internal/services"
	"github.com/taskdeck/apiserver/internal/store"
	"github.com/taskdeck/apiserver/types"
)

const testSecret = "test-secret"

type fakeUserRepo struct {
	users  []types.User
	nextID int
}

func (r *fakeUserRepo) GetByPublicID(ctx context.Context, publicID string) (types.User, error) {
	for _, user := range r.users {
		if user.PublicID == publicID {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (r *fakeUserRepo) GetByName(ctx context.Context, name string) (types.User, error) {
	for _, user := range r.users {
		if user.Name == name {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (r *fakeUserRepo) List(ctx context.Context) ([]types.User, error) {
	return append([]types.User(nil), r.users...), nil
}

func (r *fakeUserRepo) Create(ctx context.Context, user types.User) (types.User, error) {
	r.nextID++
	user.ID = r.nextID
	r.users = append(r.users, user)
	return user, nil
}

func (r *fakeUserRepo) Promote(ctx context.Context, publicID string) error {
	for i, user := range r.users {
		if user.PublicID == publicID {
			r.users[i].IsAdmin = true
			return nil
		}
	}
	return store.ErrNotFound
}

func (r *fakeUserRepo) Delete(ctx context.Context, publicID string) error {
	for i, user := range r.users {
		if user.PublicID == publicID {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

type fakeTaskRepo struct {
	tasks []types.Task
}

func (r *fakeTaskRepo) Create(ctx context.Context, task types.Task) (types.Task, error) {
	task.ID = len(r.tasks) + 1
	r.tasks = append(r.tasks, task)
	return task, nil
}

func (r *fakeTaskRepo) ListByUser(ctx context.Context, userID int) ([]types.Task, error) {
	var out []types.Task
	for _, task := range r.tasks {
		if task.UserID == userID {
			out = append(out, task)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) DeleteByUser(ctx context.Context, userID int) (int64, error) {
	var kept []types.Task
	var deleted int64
	for _, task := range r.tasks {
		if task.UserID == userID {
			deleted++
			continue
		}
		kept = append(kept, task)
	}
	r.tasks = kept
	return deleted, nil
}

type env struct {
	router *chi.Mux
	repo   *fakeUserRepo
	users  *services.UserService
	tokens *auth.Service
}

func newEnv(t *testing.T) *env {
	t.Helper()

	repo := &fakeUserRepo{}
	tasks := &fakeTaskRepo{}
	log := logger.New(0)
	publisher := events.NewPublisher(events.NoopBackend{}, "user-events", log)
	userService := services.NewUserService(repo, tasks, publisher)
	tokens := auth.New(testSecret, 30*time.Minute)
	authHandler := handlers.NewAuthHandler(userService, tokens, log)

	router := chi.NewRouter()
	router.Post("/login", authHandler.Login)
	router.Route("/user", func(r chi.Router) {
		handlers.UserRouter(r, userService, authHandler.RequireToken)
	})

	return &env{
		router: router,
		repo:   repo,
		users:  userService,
		tokens: tokens,
	}
}

// register seeds an account through the service and returns it.
func (e *env) register(t *testing.T, name, password string, admin bool) types.User {
	t.Helper()

	user, err := e.users.Register(context.Background(), name, password, admin)
	if err != nil {
		t.Fatalf("register %s: %v", name, err)
	}
	return user
}

func (e *env) tokenFor(t *testing.T, user types.User) string {
	t.Helper()

	token, err := e.tokens.Issue(user.PublicID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func (e *env) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set(handlers.TokenHeader, token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *env) login(t *testing.T, name, password string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.SetBasicAuth(name, password)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}
