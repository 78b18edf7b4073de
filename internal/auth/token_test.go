package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	svc := New("super-secret", 30*time.Minute)

	token, err := svc.Issue("4f2c6f0e-6a5f-4f8d-9c26-2b2a1f6f9a31")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	publicID, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "4f2c6f0e-6a5f-4f8d-9c26-2b2a1f6f9a31", publicID)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	svc := New("secret", -1*time.Second)

	token, err := svc.Issue("u1")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := New("right-secret", time.Hour)
	verifier := New("wrong-secret", time.Hour)

	token, err := issuer.Issue("u2")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	svc := New("k", time.Hour)

	for _, raw := range []string{"", "not.a.jwt", "garbage"} {
		_, err := svc.Verify(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestVerify_MissingPublicID(t *testing.T) {
	t.Parallel()

	svc := New("k", time.Hour)

	token, err := svc.Issue("")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
