package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"daily-diet-api/internal/auth"
	"daily-diet-api/internal/model"
	"daily-diet-api/internal/service"
)

const accountContextKey = "account"

type SessionResolver interface {
	Authenticate(ctx context.Context, sessionID string) (model.Account, error)
}

func SetAccount(c *gin.Context, account model.Account) {
	c.Set(accountContextKey, account)
}

func AccountFromContext(c *gin.Context) (model.Account, bool) {
	value, ok := c.Get(accountContextKey)
	if !ok {
		return model.Account{}, false
	}
	account, ok := value.(model.Account)
	return account, ok && account.ID != ""
}

// RequireSession rejects the request with 401 unless its session cookie is
// signed by us and names an existing account. The account is stored on the
// context for the handlers that follow.
func RequireSession(resolver SessionResolver, cfg auth.TokenConfig, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(auth.CookieName)
		if err != nil || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized."})
			return
		}

		sessionID, err := auth.VerifySession(raw, cfg)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized."})
			return
		}

		account, err := resolver.Authenticate(c.Request.Context(), sessionID)
		if err != nil {
			if errors.Is(err, service.ErrUnauthenticated) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized."})
				return
			}
			log.WithError(err).Error("resolve session")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		SetAccount(c, account)
		c.Next()
	}
}
