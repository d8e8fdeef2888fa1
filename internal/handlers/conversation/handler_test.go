package conversation_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"salon/infras/otel/mocks"
	conversationMocks "salon/internal/domains/conversation/mocks"
	"salon/internal/domains/conversation/model"
	"salon/internal/domains/conversation/model/dto"
	"salon/internal/domains/conversation/service"
	"salon/internal/handlers/conversation"
	"salon/shared/failure"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type body struct {
	Data   *dto.SessionResponse `json:"data"`
	Error  *string              `json:"error"`
	Reason *string              `json:"reason"`
}

func newRouter(t *testing.T) (*conversationMocks.MockConversation, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := conversationMocks.NewMockConversation(ctrl)

	handler := conversation.New(svc, mocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	return svc, router
}

func serve(router http.Handler, method, target, payload string) (*httptest.ResponseRecorder, body) {
	req := httptest.NewRequest(method, target, strings.NewReader(payload))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	res := body{}
	_ = json.Unmarshal(rec.Body.Bytes(), &res)

	return rec, res
}

func TestStartConversation(t *testing.T) {
	t.Run("creates the session", func(t *testing.T) {
		svc, router := newRouter(t)

		session := model.NewSession("c-1", "client-1", time.Now())
		svc.EXPECT().
			Start(gomock.Any(), dto.StartRequest{ConversationID: "c-1", ClientID: "client-1"}).
			Return(dto.SessionResponse{Session: session, Prompt: dto.Prompt{State: session.State}}, nil)

		rec, res := serve(router, http.MethodPost, "/conversations", `{"conversation_id":"c-1","client_id":"client-1"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, res.Data)
		assert.Equal(t, "c-1", res.Data.Session.ID)
		assert.Equal(t, model.StateServiceSelection, res.Data.Prompt.State)
	})

	t.Run("rejects a missing client", func(t *testing.T) {
		_, router := newRouter(t)

		rec, res := serve(router, http.MethodPost, "/conversations", `{"conversation_id":"c-1"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		require.NotNil(t, res.Reason)
		assert.Equal(t, failure.ReasonValidation, *res.Reason)
	})
}

func TestGetConversation(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Get(gomock.Any(), "missing").Return(dto.SessionResponse{}, failure.NotFound("conversation"))

	rec, res := serve(router, http.MethodGet, "/conversations/missing", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Nil(t, res.Data)
}

func TestPostEvent(t *testing.T) {
	tests := []struct {
		name       string
		payload    string
		handle     bool
		result     dto.SessionResponse
		err        error
		wantCode   int
		wantReason string
		wantData   bool
	}{
		{
			name:     "advances the session",
			payload:  `{"type":"toggle_service","service_id":"s-1"}`,
			handle:   true,
			result:   dto.SessionResponse{Session: model.Session{ID: "c-1", State: model.StateServiceSelection}},
			wantCode: http.StatusOK,
			wantData: true,
		},
		{
			name:       "unknown event type",
			payload:    `{"type":"jump"}`,
			wantCode:   http.StatusBadRequest,
			wantReason: failure.ReasonValidation,
		},
		{
			name:       "select_time without a time",
			payload:    `{"type":"select_time"}`,
			wantCode:   http.StatusBadRequest,
			wantReason: failure.ReasonValidation,
		},
		{
			name:       "slot taken keeps the session in the payload",
			payload:    `{"type":"confirm"}`,
			handle:     true,
			result:     dto.SessionResponse{Session: model.Session{ID: "c-1", State: model.StateTimeSelection}},
			err:        service.ErrSlotTaken,
			wantCode:   http.StatusConflict,
			wantReason: failure.ReasonSlotUnavailable,
			wantData:   true,
		},
		{
			name:       "missing session",
			payload:    `{"type":"back"}`,
			handle:     true,
			err:        failure.NotFound("conversation"),
			wantCode:   http.StatusNotFound,
			wantReason: failure.ReasonNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := newRouter(t)

			if tt.handle {
				svc.EXPECT().Handle(gomock.Any(), "c-1", gomock.Any()).Return(tt.result, tt.err)
			}

			rec, res := serve(router, http.MethodPost, "/conversations/c-1/events", tt.payload)

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantReason != "" {
				require.NotNil(t, res.Reason)
				assert.Equal(t, tt.wantReason, *res.Reason)
			}

			if tt.wantData {
				require.NotNil(t, res.Data)
				assert.Equal(t, tt.result.Session.State, res.Data.Session.State)
			} else {
				assert.Nil(t, res.Data)
			}
		})
	}
}

func TestDiscardConversation(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Discard(gomock.Any(), "c-1").Return(nil)

	rec, _ := serve(router, http.MethodDelete, "/conversations/c-1", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}
