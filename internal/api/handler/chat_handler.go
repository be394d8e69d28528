package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/chatterly/chat-service/internal/api/metrics"
	"github.com/chatterly/chat-service/internal/core/domain"
	"github.com/chatterly/chat-service/internal/core/ports"
)

type ChatHandler struct {
	credentials   ports.CredentialService
	conversations ports.ConversationService
}

func NewChatHandler(credentials ports.CredentialService, conversations ports.ConversationService) *ChatHandler {
	return &ChatHandler{credentials: credentials, conversations: conversations}
}

// messageView is a message rendered for the authenticated viewer, with sender
// ids resolved to usernames.
type messageView struct {
	ID        int64     `json:"id"`
	Sender    string    `json:"sender"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type conversationResponse struct {
	User     string        `json:"user"`
	Peers    []string      `json:"peers"`
	Peer     string        `json:"peer,omitempty"`
	Messages []messageView `json:"messages,omitempty"`
}

type sendMessageRequest struct {
	Receiver string `json:"receiver" validate:"required"`
	Body     string `json:"body" validate:"required"`
}

type sendMessageResponse struct {
	Peer    string      `json:"peer"`
	Message messageView `json:"message"`
}

// Index points authenticated clients at the conversation view.
//
// @Summary      Entry point
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  errorResponse
// @Router       / [get]
func (h *ChatHandler) Index(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"chat": "/chat"})
}

// Conversation renders the peer picker and, when a peer is selected, the full
// thread with that peer, oldest first.
//
// @Summary      Conversation view
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Param        peer  query     string  false  "Peer username"
// @Success      200   {object}  conversationResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /chat [get]
func (h *ChatHandler) Conversation(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	others, err := h.credentials.ListOtherUsers(ctx, identity.UserID)
	if err != nil {
		return err
	}
	peers := make([]string, 0, len(others))
	for _, u := range others {
		peers = append(peers, u.Username)
	}

	resp := conversationResponse{User: identity.Username, Peers: peers}

	if peerName := c.QueryParam("peer"); peerName != "" {
		timer := prometheus.NewTimer(metrics.ThreadFetchDuration)
		peer, msgs, err := h.conversations.ThreadWith(ctx, identity.UserID, peerName)
		timer.ObserveDuration()
		if err != nil {
			return err
		}

		resp.Peer = peer.Username
		resp.Messages = make([]messageView, 0, len(msgs))
		for _, m := range msgs {
			resp.Messages = append(resp.Messages, h.renderMessage(m, identity, peer.Username))
		}
	}

	return c.JSON(http.StatusOK, resp)
}

// SendMessage persists one message and responds scoped to the receiver, so
// the client can return to that thread.
//
// @Summary      Send a message
// @Tags         chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sendMessageRequest  true  "Message"
// @Success      201   {object}  sendMessageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /chat/messages [post]
func (h *ChatHandler) SendMessage(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.conversations.Send(c.Request().Context(), ports.SendMessageInput{
		SenderID:         identity.UserID,
		ReceiverUsername: req.Receiver,
		Body:             req.Body,
	})
	if err != nil {
		return err
	}

	metrics.MessagesSentTotal.Inc()

	return c.JSON(http.StatusCreated, sendMessageResponse{
		Peer:    req.Receiver,
		Message: h.renderMessage(*msg, identity, req.Receiver),
	})
}

// renderMessage maps sender ids to usernames. Within one thread the sender is
// either the viewer or the peer.
func (h *ChatHandler) renderMessage(m domain.Message, viewer *domain.Identity, peerName string) messageView {
	sender := peerName
	if m.SenderID == viewer.UserID {
		sender = viewer.Username
	}
	return messageView{
		ID:        m.ID,
		Sender:    sender,
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
	}
}
