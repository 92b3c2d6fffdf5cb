package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lalith-99/luxgrid/internal/auth"
)

// ContextKeyDomainID is where the middleware stores the authenticated tenant.
// Handlers read it through GetDomainID, never from request content.
const ContextKeyDomainID = "domain_id"

// AuthMiddleware validates the Bearer token and stashes the domain claim in
// the gin context. Invalid or missing tokens abort the chain with a 401; the
// handler never runs.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing authorization header",
			})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid authorization format, expected: Bearer <token>",
			})
			return
		}

		claims, err := auth.ParseToken(parts[1], secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
			})
			return
		}

		c.Set(ContextKeyDomainID, claims.DomainID)
		c.Next()
	}
}

// GetDomainID extracts the authenticated domain. uuid.Nil means the
// middleware did not run; no row carries a nil domain, so queries made with
// it match nothing.
func GetDomainID(c *gin.Context) uuid.UUID {
	val, exists := c.Get(ContextKeyDomainID)
	if !exists {
		return uuid.Nil
	}
	id, ok := val.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
