// Package handler exposes the chat endpoints over HTTP.
package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"gotalk/internal/chat/registry"
	"gotalk/internal/chat/service"
	"gotalk/internal/common"
	"gotalk/internal/dbmysql"
)

type ChatHandler struct {
	chatService service.ChatService
	registry    *registry.ConnectionRegistry
}

func NewChatHandler(chatService service.ChatService, reg *registry.ConnectionRegistry) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		registry:    reg,
	}
}

type sendMessageRequest struct {
	FromUserID  uint64 `json:"from_user_id"`
	ToUserID    uint64 `json:"to_user_id"`
	Content     string `json:"content"`
	MessageType string `json:"message_type"`
	MediaRef    string `json:"media_ref,omitempty"`
}

// SendMessage handles POST /api/message. Success means the message is stored;
// whether the recipient was online never changes the response.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	senderID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg := &dbmysql.Message{
		FromUserID:  req.FromUserID,
		ToUserID:    req.ToUserID,
		Content:     req.Content,
		MessageType: req.MessageType,
		MediaRef:    req.MediaRef,
	}

	saved, _, err := h.chatService.SendMessage(r.Context(), senderID, msg)
	if err != nil {
		writeSendError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": saved,
	})
}

// History handles GET /api/messages/{other_user_id}, newest first.
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}

	otherID, err := strconv.ParseUint(mux.Vars(r)["other_user_id"], 10, 64)
	if err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	messages, err := h.chatService.History(r.Context(), userID, otherID, limit)
	if err != nil {
		common.WriteError(w, http.StatusInternalServerError, "failed to fetch messages")
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"messages": messages,
	})
}

// Conversations handles GET /api/chats.
func (h *ChatHandler) Conversations(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}

	partners, err := h.chatService.Conversations(r.Context(), userID)
	if err != nil {
		common.WriteError(w, http.StatusInternalServerError, "failed to fetch chats")
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"chats": partners,
	})
}

// Stream handles GET /api/stream. It registers a live channel for the
// authenticated user and pushes stored messages down it as server-sent
// events until the client goes away. Reconnecting replaces the previous
// channel, last registration wins.
func (h *ChatHandler) Stream(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		common.WriteError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	ch := h.registry.Register(userID)
	replaced := false
	defer func() {
		// A replaced stream must not unregister its successor's channel.
		if !replaced {
			h.registry.Unregister(userID)
		}
	}()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, open := <-ch:
			if !open {
				// Replaced by a newer registration for the same user.
				replaced = true
				return
			}
			payload, err := json.Marshal(msg)
			if err != nil {
				log.Printf("failed to encode message %d for stream: %v", msg.ID, err)
				continue
			}
			if _, err := w.Write([]byte("data: " + string(payload) + "\n\n")); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeSendError(w http.ResponseWriter, err error) {
	var vErr *common.ValidationError
	switch {
	case errors.Is(err, common.ErrUnauthorizedSender):
		common.WriteError(w, http.StatusForbidden, "unauthorized sender")
	case errors.As(err, &vErr):
		common.WriteError(w, http.StatusBadRequest, vErr.Reason)
	default:
		// Storage failures stay opaque to the caller.
		common.WriteError(w, http.StatusInternalServerError, "failed to save message")
	}
}
