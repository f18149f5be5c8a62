package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"daily-diet-api/internal/auth"
	"daily-diet-api/internal/service"
)

type UserHandler struct {
	Accounts     *service.Accounts
	TokenConfig  auth.TokenConfig
	SecureCookie bool
	Log          logrus.FieldLogger
}

func (h *UserHandler) Register(c *gin.Context) {
	var body service.UsernameInput
	if err := c.ShouldBindJSON(&body); err != nil {
		writeBindError(c)
		return
	}

	account, err := h.Accounts.Register(c.Request.Context(), body)
	if err != nil {
		writeError(c, h.Log, err)
		return
	}

	h.Log.WithField("account_id", account.ID).Info("account registered")
	c.Status(http.StatusCreated)
}

// Login sets the session cookie for the named account. There is no
// password: knowing a username is enough.
func (h *UserHandler) Login(c *gin.Context) {
	var body service.UsernameInput
	if err := c.ShouldBindJSON(&body); err != nil {
		writeBindError(c)
		return
	}

	account, err := h.Accounts.Login(c.Request.Context(), body)
	if err != nil {
		writeError(c, h.Log, err)
		return
	}

	value, err := auth.SignSession(account.SessionID, h.TokenConfig)
	if err != nil {
		writeError(c, h.Log, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, value, int(h.TokenConfig.MaxAge.Seconds()), "/", "", h.SecureCookie, true)
	c.Status(http.StatusOK)
}
