package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/taskdeck/apiserver/internal/services"
	"github.com/taskdeck/apiserver/internal/store"
	"github.com/taskdeck/apiserver/types"
)

const maxNameLength = 50

// UserHandler provides HTTP handlers for user management.
type UserHandler struct {
	users *services.UserService
}

// NewUserHandler constructs a handler with the provided service.
func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// UserRouter registers user routes on the given router. Every route sits
// behind the token gate; admin checks happen inside the handlers that need
// them.
func UserRouter(r chi.Router, users *services.UserService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewUserHandler(users)

	r.Use(authMiddleware)
	r.Post("/", handler.CreateUser)
	r.Get("/", handler.ListUsers)
	r.Route("/{publicID}", func(r chi.Router) {
		r.Get("/", handler.GetUser)
		r.Put("/", handler.PromoteUser)
		r.Delete("/", handler.DeleteUser)
	})
}

// CreateUser registers a new non-admin account. Any authenticated caller may
// do this.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "name and password are required")
		return
	}
	if len(req.Name) > maxNameLength {
		writeMessage(w, http.StatusBadRequest, "name is too long")
		return
	}

	user, err := h.users.Register(r.Context(), req.Name, req.Password, false)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	writeJSON(w, http.StatusCreated, CreateUserResponse{
		Message:  "new user created",
		PublicID: user.PublicID,
	})
}

// ListUsers returns every account, full records included. Admin only.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "token is invalid")
		return
	}
	if !caller.IsAdmin {
		writeMessage(w, http.StatusForbidden, "admin privileges required")
		return
	}

	users, err := h.users.List(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	records := make([]UserRecord, 0, len(users))
	for _, user := range users {
		records = append(records, newUserRecord(user))
	}

	writeJSON(w, http.StatusOK, UserListResponse{Users: records})
}

// GetUser returns one account by public identifier. Any authenticated caller.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	publicID := chi.URLParam(r, "publicID")

	user, err := h.users.GetByPublicID(r.Context(), publicID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMessage(w, http.StatusOK, "no such user")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}

	writeJSON(w, http.StatusOK, newUserRecord(user))
}

// PromoteUser flips the admin flag on the target account. Admin only.
func (h *UserHandler) PromoteUser(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "token is invalid")
		return
	}
	if !caller.IsAdmin {
		writeMessage(w, http.StatusForbidden, "admin privileges required")
		return
	}

	publicID := chi.URLParam(r, "publicID")
	if err := h.users.Promote(r.Context(), publicID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMessage(w, http.StatusOK, "no such user")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "failed to promote user")
		return
	}

	writeMessage(w, http.StatusOK, "user has been promoted")
}

// DeleteUser removes the target account and its tasks. Admin only.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "token is invalid")
		return
	}
	if !caller.IsAdmin {
		writeMessage(w, http.StatusForbidden, "admin privileges required")
		return
	}

	publicID := chi.URLParam(r, "publicID")
	if err := h.users.Delete(r.Context(), publicID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMessage(w, http.StatusOK, "no such user")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "failed to delete user")
		return
	}

	writeMessage(w, http.StatusOK, "user has been deleted")
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type CreateUserResponse struct {
	Message  string `json:"message"`
	PublicID string `json:"public_id"`
}

// UserRecord is the full account representation returned by list/get.
// PasswordHash is exposed on purpose to match the upstream contract.
type UserRecord struct {
	PublicID     string    `json:"public_id"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"password_hash"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

type UserListResponse struct {
	Users []UserRecord `json:"users"`
}

func newUserRecord(user types.User) UserRecord {
	return UserRecord{
		PublicID:     user.PublicID,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		IsAdmin:      user.IsAdmin,
		CreatedAt:    user.CreatedAt,
	}
}
