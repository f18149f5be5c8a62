package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"daily-diet-api/internal/auth"
	"daily-diet-api/internal/model"
	"daily-diet-api/internal/service"
)

type resolverFunc func(ctx context.Context, sessionID string) (model.Account, error)

func (f resolverFunc) Authenticate(ctx context.Context, sessionID string) (model.Account, error) {
	return f(ctx, sessionID)
}

var testTokenCfg = auth.TokenConfig{Secret: "secret", MaxAge: time.Hour, Issuer: "test"}

func newAuthRouter(resolver SessionResolver, logBuf *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logrus.New()
	log.SetOutput(logBuf)

	r := gin.New()
	r.GET("/", RequireSession(resolver, testTokenCfg, log), func(c *gin.Context) {
		account, ok := AccountFromContext(c)
		if !ok || account.ID != "user-1" {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})
	return r
}

func requestWithCookie(value string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if value != "" {
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: value})
	}
	return req
}

func TestRequireSession_SetsAccount(t *testing.T) {
	resolver := resolverFunc(func(_ context.Context, sessionID string) (model.Account, error) {
		if sessionID != "session-1" {
			return model.Account{}, service.ErrUnauthenticated
		}
		return model.Account{ID: "user-1", SessionID: sessionID, Username: "John Doe"}, nil
	})
	tok, err := auth.SignSession("session-1", testTokenCfg)
	if err != nil {
		t.Fatalf("SignSession: %v", err)
	}

	w := httptest.NewRecorder()
	newAuthRouter(resolver, &bytes.Buffer{}).ServeHTTP(w, requestWithCookie(tok))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRequireSession_Rejects(t *testing.T) {
	resolver := resolverFunc(func(context.Context, string) (model.Account, error) {
		return model.Account{}, service.ErrUnauthenticated
	})
	unknown, err := auth.SignSession("session-unknown", testTokenCfg)
	if err != nil {
		t.Fatalf("SignSession: %v", err)
	}
	forged, err := auth.SignSession("session-1", auth.TokenConfig{Secret: "other", MaxAge: time.Hour, Issuer: "test"})
	if err != nil {
		t.Fatalf("SignSession: %v", err)
	}

	for name, cookie := range map[string]string{"missing": "", "garbage": "abc", "forged": forged, "unknown": unknown} {
		w := httptest.NewRecorder()
		newAuthRouter(resolver, &bytes.Buffer{}).ServeHTTP(w, requestWithCookie(cookie))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, w.Code)
		}
	}
}

func TestRequireSession_StoreFailure(t *testing.T) {
	resolver := resolverFunc(func(context.Context, string) (model.Account, error) {
		return model.Account{}, errors.New("db down")
	})
	tok, err := auth.SignSession("session-1", testTokenCfg)
	if err != nil {
		t.Fatalf("SignSession: %v", err)
	}

	var logBuf bytes.Buffer
	w := httptest.NewRecorder()
	newAuthRouter(resolver, &logBuf).ServeHTTP(w, requestWithCookie(tok))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if !bytes.Contains(logBuf.Bytes(), []byte("db down")) {
		t.Fatalf("expected error to be logged, got %q", logBuf.String())
	}
}

func TestRequestLogger_IncludesAccount(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var logBuf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&logBuf)
	log.SetFormatter(&logrus.JSONFormatter{})

	r := gin.New()
	r.Use(RequestLogger(log))
	r.GET("/", func(c *gin.Context) {
		c.Set(accountContextKey, model.Account{ID: "user-1"})
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	for _, want := range []string{`"account_id":"user-1"`, `"status":204`, `"method":"GET"`} {
		if !bytes.Contains(logBuf.Bytes(), []byte(want)) {
			t.Fatalf("expected %s in log line, got %q", want, logBuf.String())
		}
	}
}
