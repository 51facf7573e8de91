package handler

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"gotalk/internal/chat/handler/mocks"
	"gotalk/internal/chat/registry"
	"gotalk/internal/common"
	"gotalk/internal/dbmysql"
)

func TestChatHandler_Stream_DeliversMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reg := registry.NewConnectionRegistry()
	h := NewChatHandler(mocks.NewMockChatService(ctrl), reg)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest("GET", "/api/stream", nil)
	req = req.WithContext(common.ContextWithIdentity(ctx, 7, "bob"))
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		h.Stream(rec, req)
		close(done)
	}()

	// Wait for the live channel to be registered before delivering
	require.Eventually(t, func() bool {
		return reg.Online() == 1
	}, time.Second, 5*time.Millisecond)

	outcome := reg.Deliver(&dbmysql.Message{ID: 9, FromUserID: 3, ToUserID: 7, Content: "hi", MessageType: "text"})
	assert.Equal(t, registry.Delivered, outcome)

	// Give the handler a moment to flush, then disconnect the client
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stream handler did not stop after client disconnect")
	}

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "data: ")
	assert.Contains(t, rec.Body.String(), `"content":"hi"`)
	assert.Contains(t, rec.Body.String(), `"from_user_id":3`)

	// Disconnect released the registration
	assert.Equal(t, 0, reg.Online())
}

func TestChatHandler_Stream_ReplacedRegistrationTerminates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reg := registry.NewConnectionRegistry()
	h := NewChatHandler(mocks.NewMockChatService(ctrl), reg)

	req := httptest.NewRequest("GET", "/api/stream", nil)
	req = req.WithContext(common.ContextWithIdentity(context.Background(), 7, "bob"))
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		h.Stream(rec, req)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return reg.Online() == 1
	}, time.Second, 5*time.Millisecond)

	// A second registration for the same user closes the first channel,
	// which ends the first stream
	reg.Register(7)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("replaced stream handler did not terminate")
	}

	// The successor's registration survives the old handler's exit
	assert.Equal(t, 1, reg.Online())
}

func TestChatHandler_Stream_RequiresIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewChatHandler(mocks.NewMockChatService(ctrl), registry.NewConnectionRegistry())

	req := httptest.NewRequest("GET", "/api/stream", nil)
	rec := httptest.NewRecorder()
	h.Stream(rec, req)

	assert.Equal(t, 401, rec.Code)
}
