package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/apiserver/internal/auth"
)

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	e := newEnv(t)
	alice := e.register(t, "alice", "pw1", false)

	rec := e.login(t, "alice", "pw1")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	publicID, err := e.tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, alice.PublicID, publicID)
}

func TestLogin_WrongPassword(t *testing.T) {
	e := newEnv(t)
	e.register(t, "alice", "pw1", false)

	rec := e.login(t, "alice", "wrongpw")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "Basic realm=")
	assert.NotContains(t, rec.Body.String(), "token")
}

func TestLogin_UnknownUserIndistinguishableFromWrongPassword(t *testing.T) {
	e := newEnv(t)
	e.register(t, "alice", "pw1", false)

	wrongPassword := e.login(t, "alice", "nope")
	unknownUser := e.login(t, "mallory", "nope")

	assert.Equal(t, wrongPassword.Code, unknownUser.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
	assert.Equal(t, wrongPassword.Header().Get("WWW-Authenticate"), unknownUser.Header().Get("WWW-Authenticate"))
}

func TestLogin_MissingCredentials(t *testing.T) {
	e := newEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "Basic realm=")
}

func TestGate_MissingToken(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodGet, "/user/some-id", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"token is missing"}`, rec.Body.String())
}

func TestGate_GarbageToken(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodGet, "/user/some-id", "not.a.jwt", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"token is invalid"}`, rec.Body.String())
}

func TestGate_ExpiredToken(t *testing.T) {
	e := newEnv(t)
	alice := e.register(t, "alice", "pw1", false)

	expired := auth.New(testSecret, -time.Minute)
	token, err := expired.Issue(alice.PublicID)
	require.NoError(t, err)

	rec := e.do(t, http.MethodGet, "/user/"+alice.PublicID, token, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"token is invalid"}`, rec.Body.String())
}

func TestGate_ForeignSignature(t *testing.T) {
	e := newEnv(t)
	alice := e.register(t, "alice", "pw1", false)

	forged := auth.New("other-secret", 30*time.Minute)
	token, err := forged.Issue(alice.PublicID)
	require.NoError(t, err)

	rec := e.do(t, http.MethodGet, "/user/"+alice.PublicID, token, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGate_TokenForDeletedUser(t *testing.T) {
	e := newEnv(t)
	alice := e.register(t, "alice", "pw1", false)
	token := e.tokenFor(t, alice)

	// Remove the account after issuance; the token now dangles.
	require.NoError(t, e.repo.Delete(context.Background(), alice.PublicID))

	rec := e.do(t, http.MethodGet, "/user/"+alice.PublicID, token, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"token is invalid"}`, rec.Body.String())
}
