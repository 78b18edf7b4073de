package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/taskdeck/apiserver/internal/auth"
	"github.com/taskdeck/apiserver/internal/logger"
	"github.com/taskdeck/apiserver/internal/services"
	"github.com/taskdeck/apiserver/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// TokenHeader carries the bearer token on protected requests.
const TokenHeader = "X-Access-Token"

const basicChallenge = `Basic realm="login required"`

// AuthHandler provides the login endpoint and the token gate.
type AuthHandler struct {
	users  *services.UserService
	tokens *auth.Service
	log    *logger.Logger
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(users *services.UserService, tokens *auth.Service, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		users:  users,
		tokens: tokens,
		log:    log,
	}
}

// RequireToken enforces token authentication on wrapped handlers. The token
// is verified, its public identifier is resolved to a live user, and the
// caller is injected into the request context. All failures collapse into a
// uniform 401 before the wrapped handler runs.
func (h *AuthHandler) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimSpace(r.Header.Get(TokenHeader))
		if token == "" {
			writeMessage(w, http.StatusUnauthorized, "token is missing")
			return
		}

		publicID, err := h.tokens.Verify(token)
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "token is invalid")
			return
		}

		caller, err := h.users.GetByPublicID(r.Context(), publicID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				// Token outlived its user.
				writeMessage(w, http.StatusUnauthorized, "token is invalid")
				return
			}
			writeMessage(w, http.StatusInternalServerError, "failed to resolve caller")
			return
		}

		ctx := context.WithValue(r.Context(), contextCallerKey, caller)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Login exchanges HTTP Basic credentials for a bearer token. Unknown user
// and wrong password produce identical responses; the reason appears only in
// the log.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	name, password, ok := r.BasicAuth()
	if !ok || name == "" || password == "" {
		challenge(w, "credentials required")
		return
	}

	user, err := h.users.GetByName(r.Context(), name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.log.Info("login rejected", "name", name, "reason", "unknown user")
			challenge(w, "invalid credentials")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "failed to authenticate")
		return
	}

	if err := verifyPassword(user.PasswordHash, password); err != nil {
		h.log.Info("login rejected", "name", name, "reason", "password mismatch")
		challenge(w, "invalid credentials")
		return
	}

	token, err := h.tokens.Issue(user.PublicID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to create token")
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{Token: token})
}

// TokenResponse is the successful login payload.
type TokenResponse struct {
	Token string `json:"token"`
}

func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// challenge writes a 401 with the basic-auth challenge header, as a
// plain-text body for basic-auth-compatible clients.
func challenge(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", basicChallenge)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(message))
}
