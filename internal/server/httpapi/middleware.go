package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/staffdesk-io/staffdesk/internal/common"
	"github.com/staffdesk-io/staffdesk/internal/server/auth"
)

const identityKey = "identity"

// AuthMiddleware verifies the bearer access token and stores the decoded
// identity in the request context. Status mapping:
//   - missing token        -> 401
//   - expired token        -> 401 (message distinguishes it from missing)
//   - invalid token        -> 403
//
// Access tokens are pure signature+expiry checks; the refresh registry is
// never consulted, so an access token cannot be revoked before expiry.
func AuthMiddleware(accessSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "token not found"})
			return
		}

		identity, err := auth.GetIdentityFromToken(token, accessSecret)
		if err != nil {
			if errors.Is(err, common.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "token expired, please refresh your token or log in again"})
				return
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "invalid token"})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

func identityFromContext(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return auth.Identity{}, false
	}
	identity, ok := v.(auth.Identity)
	return identity, ok
}
