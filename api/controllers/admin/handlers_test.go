package admin

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/flagsapp/flags-backend/internal/questions"
	"github.com/flagsapp/flags-backend/internal/users"
	apperrors "github.com/flagsapp/flags-backend/pkg/errors"
	"github.com/flagsapp/flags-backend/pkg/logger"
)

type fakeQuestionService struct {
	questions.Service

	deleted   string
	deleteErr error
}

func (f *fakeQuestionService) AdminDelete(ctx context.Context, id string) error {
	f.deleted = id
	return f.deleteErr
}

type fakeUserService struct {
	users.Service

	listed  []users.UserDTO
	total   int64
	setID   string
	setFlag bool
}

func (f *fakeUserService) ListUsers(ctx context.Context, limit, offset int) ([]users.UserDTO, int64, error) {
	return f.listed, f.total, nil
}

func (f *fakeUserService) SetAdmin(ctx context.Context, userID string, isAdmin bool) error {
	f.setID = userID
	f.setFlag = isAdmin
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.ErrorLevel, Output: io.Discard})
}

func requestWithID(method, target, body, id string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestDeleteQuestionReturnsNoContent(t *testing.T) {
	svc := &fakeQuestionService{}
	handler := DeleteQuestion(svc, testLogger())

	rec := httptest.NewRecorder()
	handler(rec, requestWithID(http.MethodDelete, "/api/admin/v1/questions/q1", "", "q1"))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	if svc.deleted != "q1" {
		t.Fatalf("deleted = %q", svc.deleted)
	}
}

func TestDeleteQuestionMapsNotFound(t *testing.T) {
	svc := &fakeQuestionService{deleteErr: apperrors.New(apperrors.CodeNotFound, "question not found")}
	handler := DeleteQuestion(svc, testLogger())

	rec := httptest.NewRecorder()
	handler(rec, requestWithID(http.MethodDelete, "/api/admin/v1/questions/missing", "", "missing"))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestListUsersIncludesMeta(t *testing.T) {
	svc := &fakeUserService{listed: []users.UserDTO{{ID: "u1"}}, total: 7}
	handler := ListUsers(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/users?limit=5", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"total":7`) || !strings.Contains(body, `"limit":5`) {
		t.Fatalf("meta missing: %s", body)
	}
}

func TestSetUserAdmin(t *testing.T) {
	svc := &fakeUserService{}
	handler := SetUserAdmin(svc, testLogger())

	rec := httptest.NewRecorder()
	handler(rec, requestWithID(http.MethodPatch, "/api/admin/v1/users/u2", `{"isAdmin":true}`, "u2"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if svc.setID != "u2" || !svc.setFlag {
		t.Fatalf("set %q=%v", svc.setID, svc.setFlag)
	}
}

func TestSetUserAdminRequiresFlag(t *testing.T) {
	handler := SetUserAdmin(&fakeUserService{}, testLogger())

	rec := httptest.NewRecorder()
	handler(rec, requestWithID(http.MethodPatch, "/api/admin/v1/users/u2", `{}`, "u2"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}
