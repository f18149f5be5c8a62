package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"daily-diet-api/internal/middleware"
	"daily-diet-api/internal/model"
	"daily-diet-api/internal/service"
)

func TestWriteError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := logrus.New()
	log.SetOutput(io.Discard)

	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"validation", &service.ValidationError{Field: "name", Reason: service.ReasonRequired}, http.StatusBadRequest, `{"error":"name is required"}`},
		{"unauthenticated", service.ErrUnauthenticated, http.StatusUnauthorized, `{"error":"Unauthorized."}`},
		{"unknown user", service.ErrAccountNotFound, http.StatusNotFound, `{"error":"User not found."}`},
		{"unknown meal", service.ErrMealNotFound, http.StatusNotFound, `{"error":"Meal not found."}`},
		{"taken", service.ErrUsernameTaken, http.StatusConflict, `{"error":"Username exists."}`},
		{"wrapped", fmt.Errorf("update: %w", service.ErrMealNotFound), http.StatusNotFound, `{"error":"Meal not found."}`},
		{"internal", errors.New("pq: connection refused"), http.StatusInternalServerError, `{"error":"Internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			writeError(c, log, tt.err)

			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, w.Code)
			}
			if w.Body.String() != tt.body {
				t.Fatalf("expected body %s, got %s", tt.body, w.Body.String())
			}
		})
	}
}

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := logrus.New()
	log.SetOutput(io.Discard)

	for _, tc := range []struct {
		err    error
		status int
	}{{nil, http.StatusOK}, {errors.New("down"), http.StatusServiceUnavailable}} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

		h := &HealthHandler{DB: pingerFunc(func() error { return tc.err }), Log: log}
		h.Check(c)

		if w.Code != tc.status {
			t.Fatalf("expected %d, got %d", tc.status, w.Code)
		}
	}
}

type pingerFunc func() error

func (f pingerFunc) Ping(_ context.Context) error { return f() }

func TestAccountOrAbort(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/meals", nil)

	if _, ok := accountOrAbort(c); ok {
		t.Fatalf("expected no account")
	}
	if w.Code != http.StatusUnauthorized || !c.IsAborted() {
		t.Fatalf("expected aborted 401, got %d", w.Code)
	}
	if w.Body.String() != `{"error":"Unauthorized."}` {
		t.Fatalf("unexpected body %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/meals", nil)
	middleware.SetAccount(c, model.Account{ID: "account-1", Username: "John Doe"})

	account, ok := accountOrAbort(c)
	if !ok || account.ID != "account-1" {
		t.Fatalf("expected account-1, got %+v", account)
	}
	if c.IsAborted() {
		t.Fatalf("did not expect abort")
	}
}

func TestMealHandler_WithoutSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := logrus.New()
	log.SetOutput(io.Discard)

	h := &MealHandler{Meals: service.NewMeals(nil, nil), Log: log}
	r := gin.New()
	r.GET("/meals", h.List)
	r.GET("/meals/metrics", h.Metrics)
	r.DELETE("/meals/:id", h.Delete)

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/meals", nil),
		httptest.NewRequest(http.MethodGet, "/meals/metrics", nil),
		httptest.NewRequest(http.MethodDelete, "/meals/0b0c2b8e-1c1a-4d1e-9a3b-1f2e3d4c5b6a", nil),
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", req.Method, req.URL.Path, w.Code)
		}
	}
}
