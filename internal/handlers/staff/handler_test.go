package staff_test

import (
	"net/http"
	"net/http/httptest"
	"salon/infras/otel/mocks"
	staffMocks "salon/internal/domains/staff/mocks"
	"salon/internal/domains/staff/model/dto"
	"salon/internal/handlers/staff"
	"salon/shared/failure"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T) (*staffMocks.MockAuth, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := staffMocks.NewMockAuth(ctrl)

	handler := staff.New(svc, mocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	return svc, router
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(svc *staffMocks.MockAuth)
		wantCode  int
		wantBody  string
	}{
		{
			name: "token issued",
			body: `{"email":"reception@salon.test","password":"front-desk-1"}`,
			setupMock: func(svc *staffMocks.MockAuth) {
				svc.EXPECT().Login(gomock.Any(), dto.LoginRequest{Email: "reception@salon.test", Password: "front-desk-1"}).
					Return(dto.LoginResponse{AccessToken: "abc", TokenType: "Bearer", ExpiresIn: 3600}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: `"access_token":"abc"`,
		},
		{
			name:      "malformed email",
			body:      `{"email":"reception","password":"front-desk-1"}`,
			setupMock: func(*staffMocks.MockAuth) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "bad credentials",
			body: `{"email":"reception@salon.test","password":"guess"}`,
			setupMock: func(svc *staffMocks.MockAuth) {
				svc.EXPECT().Login(gomock.Any(), gomock.Any()).Return(dto.LoginResponse{}, failure.Unauthorized("invalid email or password"))
			},
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := newRouter(t)
			tt.setupMock(svc)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestRegister(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Register(gomock.Any(), gomock.Any()).Return(dto.StaffResponse{ID: "st-2", Role: "staff"}, nil)

		body := `{"email":"new@salon.test","password":"front-desk-1","name":"New","role":"staff"}`
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/staff", strings.NewReader(body)))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":"st-2"`)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, router := newRouter(t)

		body := `{"email":"new@salon.test","password":"front-desk-1","name":"New","role":"owner"}`
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/staff", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestChangePassword(t *testing.T) {
	t.Run("changed", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().ChangePassword(gomock.Any(), dto.ChangePasswordRequest{CurrentPassword: "front-desk-1", NewPassword: "front-desk-2"}).Return(nil)

		body := `{"current_password":"front-desk-1","new_password":"front-desk-2"}`
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/password", strings.NewReader(body)))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("new password equals the current one", func(t *testing.T) {
		_, router := newRouter(t)

		body := `{"current_password":"front-desk-1","new_password":"front-desk-1"}`
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/password", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
