package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/jigardalal/engageNinja-sub004/internal/model"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"unauthenticated", model.ErrUnauthenticated, http.StatusUnauthorized},
		{"wrapped unauthenticated", fmt.Errorf("session: %w", model.ErrUnauthenticated), http.StatusUnauthorized},
		{"forbidden", model.ErrForbidden, http.StatusForbidden},
		{"wrapped forbidden", fmt.Errorf("tenant 9: %w", model.ErrForbidden), http.StatusForbidden},
		{"not found", model.ErrNotFound, http.StatusNotFound},
		{"validation", model.ErrValidation, http.StatusBadRequest},
		{"conflict", model.ErrConflict, http.StatusConflict},
		{"audit write failure", model.ErrAuditWrite, http.StatusInternalServerError},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	e := echo.New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			if err := respondError(c, zap.NewNop(), tc.err); err != nil {
				t.Fatalf("respondError: %v", err)
			}
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestUnauthenticatedAndForbiddenAreDistinct(t *testing.T) {
	e := echo.New()

	status := func(err error) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		_ = respondError(e.NewContext(req, rec), zap.NewNop(), err)
		return rec.Code
	}

	if status(model.ErrUnauthenticated) == status(model.ErrForbidden) {
		t.Fatal("unauthenticated and forbidden must map to different statuses")
	}
}
