package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/staffdesk-io/staffdesk/internal/common"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	identity := Identity{ID: 123, Username: "alice"}

	tok, err := GenerateToken(identity, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	got, err := GetIdentityFromToken(tok, secret)
	if err != nil {
		t.Fatalf("GetIdentityFromToken error: %v", err)
	}
	if got != identity {
		t.Fatalf("identity mismatch: got %+v want %+v", got, identity)
	}
}

func TestGetIdentityFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := GenerateToken(Identity{ID: 1, Username: "u1"}, secret, -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = GetIdentityFromToken(tok, secret)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestGetIdentityFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(Identity{ID: 2, Username: "u2"}, []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = GetIdentityFromToken(tok, []byte("wrong-secret"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestGetIdentityFromToken_DifferentSecrets(t *testing.T) {
	t.Parallel()

	// A refresh token must never verify against the access secret.
	access := []byte("access-secret")
	refresh := []byte("refresh-secret")

	tok, err := GenerateToken(Identity{ID: 3, Username: "u3"}, refresh, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := GetIdentityFromToken(tok, access); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
	if _, err := GetIdentityFromToken(tok, refresh); err != nil {
		t.Fatalf("verify with refresh secret: %v", err)
	}
}

func TestGetIdentityFromToken_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := GetIdentityFromToken("not.a.jwt", []byte("k"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}
