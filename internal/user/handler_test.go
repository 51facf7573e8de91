package user

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"gotalk/internal/common"
	"gotalk/internal/dbmysql"
	"gotalk/internal/user/mocks"
)

// The handler tests exercise the service through the HTTP surface with a
// mocked repository, same seam the chat handler tests use.

func newTestHandler(t *testing.T, setup func(repo *mocks.MockUserRepository)) *Handler {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := mocks.NewMockUserRepository(ctrl)
	setup(mockRepo)
	return NewHandler(NewUserService(mockRepo))
}

func TestHandler_Register(t *testing.T) {
	h := newTestHandler(t, func(repo *mocks.MockUserRepository) {
		repo.EXPECT().CheckUserExists(gomock.Any(), "alice").Return(false, nil)
		repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, u *dbmysql.User) error {
				u.UserID = 1
				return nil
			})
	})

	req := httptest.NewRequest("POST", "/api/register",
		strings.NewReader(`{"handle":"alice","password":"secret123"}`))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"success"`)
	assert.Contains(t, rec.Body.String(), `"token"`)
	assert.Contains(t, rec.Body.String(), `"alice"`)
	// Password hash must never appear in the response
	assert.NotContains(t, rec.Body.String(), "password_hash")
}

func TestHandler_Register_InvalidHandle(t *testing.T) {
	h := newTestHandler(t, func(repo *mocks.MockUserRepository) {})

	req := httptest.NewRequest("POST", "/api/register",
		strings.NewReader(`{"handle":"a!","password":"secret123"}`))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"error"`)
}

func TestHandler_Login_BadCredentials(t *testing.T) {
	h := newTestHandler(t, func(repo *mocks.MockUserRepository) {
		repo.EXPECT().GetUserByHandle(gomock.Any(), "alice").Return(nil, assert.AnError)
	})

	req := httptest.NewRequest("POST", "/api/login",
		strings.NewReader(`{"handle":"alice","password":"wrong"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid handle or password")
}

func TestHandler_ListUsers(t *testing.T) {
	h := newTestHandler(t, func(repo *mocks.MockUserRepository) {
		repo.EXPECT().ListOthers(gomock.Any(), uint64(1)).
			Return([]*dbmysql.User{{UserID: 2, Handle: "bob"}}, nil)
	})

	req := httptest.NewRequest("GET", "/api/users", nil)
	req = req.WithContext(common.ContextWithIdentity(req.Context(), 1, "alice"))
	rec := httptest.NewRecorder()
	h.ListUsers(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"bob"`)
}

func TestHandler_ListUsers_Unauthenticated(t *testing.T) {
	h := newTestHandler(t, func(repo *mocks.MockUserRepository) {})

	req := httptest.NewRequest("GET", "/api/users", nil)
	rec := httptest.NewRecorder()
	h.ListUsers(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
