package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/chronolog/timetrack-system/internal/core/domain"
)

func TestHTTPErrorHandler_DomainKinds(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"bad request", domain.BadRequestf("ID zzz is not valid"), http.StatusBadRequest, "ID zzz is not valid"},
		{"unauthorized", domain.Unauthorized("not logged in"), http.StatusUnauthorized, "not logged in"},
		{"forbidden", domain.Forbidden("not allowed to delete users"), http.StatusForbidden, "not allowed to delete users"},
		{"not found", domain.NotFoundf("no user with ID %s found", "abc"), http.StatusNotFound, "no user with ID abc found"},
		{"conflict", domain.Conflict("email already exists"), http.StatusConflict, "email already exists"},
		{"invalid", domain.ValidationError("minutes", "date"), http.StatusUnprocessableEntity, "Validation error on field(s): date,minutes"},
		{"echo error", echo.NewHTTPError(http.StatusNotFound, "Not Found"), http.StatusNotFound, "Not Found"},
		{"unexpected", errors.New("database exploded"), http.StatusInternalServerError, "Internal Server Error"},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())
	e := echo.New()

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler(tc.err, c)

			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
			var resp map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp["message"] != tc.msg {
				t.Fatalf("expected message %q, got %q", tc.msg, resp["message"])
			}
		})
	}
}

func TestHTTPErrorHandler_CommittedResponseUntouched(t *testing.T) {
	handler := NewHTTPErrorHandler(zerolog.Nop())
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Response().WriteHeader(http.StatusOK)

	handler(domain.Forbidden("nope"), c)

	if rec.Code != http.StatusOK {
		t.Fatalf("committed response was rewritten: %d", rec.Code)
	}
}
