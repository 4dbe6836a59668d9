package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return New("access-secret-123", "refresh-secret-456", 15*time.Minute, 7*24*time.Hour)
}

func TestTTLAccessors(t *testing.T) {
	// Cookie lifetimes are derived from these, so they must echo the
	// configured durations exactly.
	svc := newTestService()
	assert.Equal(t, 15*time.Minute, svc.AccessTTL())
	assert.Equal(t, 7*24*time.Hour, svc.RefreshTTL())
}

func TestIssueAndVerifyAccess(t *testing.T) {
	svc := newTestService()

	tok, err := svc.IssueAccess(42, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := svc.VerifyAccess(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestIssueAndVerifyRefresh(t *testing.T) {
	svc := newTestService()

	tok, err := svc.IssueRefresh(7)
	require.NoError(t, err)

	claims, err := svc.VerifyRefresh(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
}

func TestVerifyAccess_RejectsRefreshToken(t *testing.T) {
	// The two kinds are signed with distinct secrets; one class must
	// never verify as the other.
	svc := newTestService()

	refresh, err := svc.IssueRefresh(42)
	require.NoError(t, err)

	_, err = svc.VerifyAccess(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRefresh_RejectsAccessToken(t *testing.T) {
	svc := newTestService()

	access, err := svc.IssueAccess(42, "user")
	require.NoError(t, err)

	_, err = svc.VerifyRefresh(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAccess_Expired(t *testing.T) {
	svc := New("access-secret-123", "refresh-secret-456", -1*time.Minute, time.Hour)

	tok, err := svc.IssueAccess(42, "user")
	require.NoError(t, err)

	_, err = svc.VerifyAccess(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAccess_WrongSecret(t *testing.T) {
	svc := newTestService()
	other := New("completely-different", "refresh-secret-456", 15*time.Minute, time.Hour)

	tok, err := svc.IssueAccess(42, "user")
	require.NoError(t, err)

	_, err = other.VerifyAccess(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAccess_Malformed(t *testing.T) {
	svc := newTestService()

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.VerifyAccess(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestVerifyAccess_Tampered(t *testing.T) {
	svc := newTestService()

	tok, err := svc.IssueAccess(42, "user")
	require.NoError(t, err)

	tampered := tok[:len(tok)-2] + "xx"
	_, err = svc.VerifyAccess(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
