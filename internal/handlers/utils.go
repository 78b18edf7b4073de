package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/taskdeck/apiserver/types"
)

type contextKey string

const contextCallerKey contextKey = "caller"

// MessageResponse is the uniform message payload.
type MessageResponse struct {
	Message string `json:"message"`
}

func callerFromContext(ctx context.Context) (types.User, error) {
	caller, ok := ctx.Value(contextCallerKey).(types.User)
	if !ok {
		return types.User{}, errors.New("missing caller")
	}
	return caller, nil
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, MessageResponse{Message: message})
}

// Healthz reports process liveness.
func Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
