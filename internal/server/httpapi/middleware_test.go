package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/staffdesk-io/staffdesk/internal/server/auth"
)

func protectedRouter() (*gin.Engine, *auth.Identity) {
	seen := &auth.Identity{}
	r := gin.New()
	r.GET("/protected", AuthMiddleware(testAccessSecret), func(c *gin.Context) {
		identity, _ := identityFromContext(c)
		*seen = identity
		c.Status(http.StatusOK)
	})
	return r, seen
}

func callProtected(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	router, _ := protectedRouter()

	for _, header := range []string{"", "Basic abc", "Bearer "} {
		w := callProtected(router, header)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: status = %d, want 401", header, w.Code)
		}
		if !strings.Contains(w.Body.String(), "token not found") {
			t.Fatalf("header %q: body = %s", header, w.Body.String())
		}
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	router, _ := protectedRouter()

	token, err := auth.GenerateToken(auth.Identity{ID: 7}, testAccessSecret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	w := callProtected(router, "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "expired") {
		t.Fatalf("body = %s, expected an expiry message", w.Body.String())
	}
}

func TestAuthMiddleware_InvalidSignature(t *testing.T) {
	router, _ := protectedRouter()

	token, err := auth.GenerateToken(auth.Identity{ID: 7}, []byte("some-other-secret"), time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	w := callProtected(router, "Bearer "+token)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestAuthMiddleware_Garbage(t *testing.T) {
	router, _ := protectedRouter()

	w := callProtected(router, "Bearer not.a.jwt")
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestAuthMiddleware_InjectsIdentity(t *testing.T) {
	router, seen := protectedRouter()

	token, err := auth.GenerateToken(auth.Identity{ID: 7, Username: "alice"}, testAccessSecret, time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	w := callProtected(router, "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if seen.ID != 7 || seen.Username != "alice" {
		t.Fatalf("identity = %+v", seen)
	}
}
