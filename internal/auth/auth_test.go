package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	req := require.New(t)
	password := "ChuySorteos2804#"

	hash, err := HashPassword(password)
	req.NoError(err)
	req.True(strings.HasPrefix(hash, "$argon2id$"))

	match, err := ComparePassword(password, hash)
	req.NoError(err)
	req.True(match)

	match, err = ComparePassword("wrong", hash)
	req.NoError(err)
	req.False(match)

	_, err = ComparePassword(password, "plaintext")
	req.ErrorIs(err, ErrInvalidHash)

	for _, bad := range []string{
		"$argon2id$v=19$m=65536,t=3,p=2$not*base64$AAAA",
		"$argon2id$v=19$m=65536,t=3,p=2$AAAAAAAAAAAAAAAAAAAAAA$%%%",
		"$argon2id$v=19$m=65536,t=3,p=2$AAAAAAAAAAAAAAAAAAAAAA$",
		"$argon2id$v=19$m=0,t=3,p=2$AAAAAAAAAAAAAAAAAAAAAA$AAAA",
	} {
		_, err = ComparePassword(password, bad)
		req.ErrorIs(err, ErrInvalidHash, bad)
	}
}

func TestTokenIssuer(t *testing.T) {
	req := require.New(t)
	issuer := NewTokenIssuer("a-test-secret-long-enough", time.Hour)

	token, expiresAt, err := issuer.Issue(AdminRole)
	req.NoError(err)
	req.WithinDuration(time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := issuer.Validate(token)
	req.NoError(err)
	req.Equal(AdminRole, claims.Role)

	t.Run("Rejects another secret", func(t *testing.T) {
		_, err := NewTokenIssuer("another-secret", time.Hour).Validate(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Rejects expired tokens", func(t *testing.T) {
		issuer.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		defer func() { issuer.now = time.Now }()
		_, err := issuer.Validate(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Rejects garbage", func(t *testing.T) {
		_, err := issuer.Validate("not.a.token")
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestAdmin(t *testing.T) {
	req := require.New(t)
	tokens := NewTokenIssuer("a-test-secret-long-enough", time.Hour)

	_, err := NewAdmin("", "", tokens)
	req.Error(err)

	admin, err := NewAdmin("", "ChuySorteos2804#", tokens)
	req.NoError(err)

	_, _, err = admin.Login("nope")
	req.ErrorIs(err, ErrInvalidCredentials)

	token, _, err := admin.Login("ChuySorteos2804#")
	req.NoError(err)
	req.NoError(admin.Authorize(token))

	other, _, err := tokens.Issue("viewer")
	req.NoError(err)
	req.ErrorIs(admin.Authorize(other), ErrInvalidToken)

	hash, err := HashPassword("from-hash")
	req.NoError(err)
	fromHash, err := NewAdmin(hash, "ignored", tokens)
	req.NoError(err)
	_, _, err = fromHash.Login("from-hash")
	req.NoError(err)

	_, err = NewAdmin("$argon2id$v=19$m=65536,t=3,p=2$AAAA$!!!", "", tokens)
	req.ErrorIs(err, ErrInvalidHash)
	_, err = NewAdmin("not-a-hash", "fallback", tokens)
	req.ErrorIs(err, ErrInvalidHash)
}
