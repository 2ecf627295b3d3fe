package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"mentconnect/auth"
	"mentconnect/domain"
	"mentconnect/domain/event"
	apperrors "mentconnect/errors"
	"mentconnect/infrastructure/realtime"
	"mentconnect/sink"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Session auth happens in the middleware; cross-origin browser clients
	// are expected.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type openConversationRequest struct {
	CounterpartID   string `json:"counterpart_id" binding:"required"`
	CounterpartName string `json:"counterpart_name"`
}

type sendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// openConversation resolves (or lazily creates) the caller's conversation
// with a mentor and returns its history plus the feed cursor.
func (s *Server) openConversation(c *gin.Context) {
	userID := auth.CurrentUserID(c)
	if !s.limiter.Allow(userID, "conversation_open") {
		s.fail(c, apperrors.ErrRateLimited)
		return
	}

	var req openConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, apperrors.ErrInvalidInput)
		return
	}

	handle, err := s.conversations.OpenConversation(c.Request.Context(), userID, req.CounterpartID, req.CounterpartName)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"conversation": handle.Conversation,
		"messages":     handle.Messages,
		"cursor":       handle.Cursor,
	})
}

// sendMessage accepts the message for delivery. 202: the caller's view gains
// the row through the feed, not from this response.
func (s *Server) sendMessage(c *gin.Context) {
	userID := auth.CurrentUserID(c)
	if !s.limiter.Allow(userID, "message_send") {
		s.fail(c, apperrors.ErrRateLimited)
		return
	}

	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.fail(c, apperrors.ErrInvalidInput)
		return
	}
	var req sendMessageRequest
	if err = c.ShouldBindJSON(&req); err != nil {
		s.fail(c, apperrors.ErrInvalidInput)
		return
	}

	err = s.conversations.SendMessage(c.Request.Context(), domain.SendMessageCommand{
		ConversationID: conversationID,
		SenderID:       userID,
		Content:        req.Content,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}

// uploadAttachment stores the file and posts a message of kind image/file
// whose content is the attachment path.
func (s *Server) uploadAttachment(c *gin.Context) {
	userID := auth.CurrentUserID(c)
	if !s.limiter.Allow(userID, "message_send") {
		s.fail(c, apperrors.ErrRateLimited)
		return
	}

	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.fail(c, apperrors.ErrInvalidInput)
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		s.fail(c, apperrors.ErrInvalidInput)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		s.fail(c, err)
		return
	}
	defer file.Close()

	attachment, err := s.attachments.Save(conversationID, fileHeader.Filename, file)
	if err != nil {
		s.fail(c, err)
		return
	}
	err = s.conversations.SendMessage(c.Request.Context(), domain.SendMessageCommand{
		ConversationID: conversationID,
		SenderID:       userID,
		Content:        attachment.Path,
		Kind:           attachment.Kind,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{
		"path": attachment.Path,
		"mime": attachment.Mime,
		"kind": attachment.Kind,
	})
}

func (s *Server) serveAttachment(c *gin.Context) {
	relPath := strings.TrimPrefix(c.Param("path"), "/")
	file, err := s.attachments.Open(relPath)
	if err != nil {
		s.fail(c, apperrors.ErrInvalidInput)
		return
	}
	defer file.Close()
	http.ServeContent(c.Writer, c.Request, relPath, time.Time{}, file)
}

// feed upgrades to WebSocket and streams message events for the
// conversation. `after` resumes strictly past a cursor from a previous
// open, replaying anything missed without duplicates.
func (s *Server) feed(c *gin.Context) {
	userID := auth.CurrentUserID(c)
	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.fail(c, apperrors.ErrInvalidInput)
		return
	}
	var after *string
	if cursor := c.Query("after"); cursor != "" {
		after = &cursor
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		return
	}
	connection := realtime.NewConnection(ws, s.connectionBufferSize)
	connection.Start()
	go connection.ReadUntilClosed()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// The pump starts before Subscribe so the history replay drains into the
	// socket as it is produced instead of piling into the sink buffer.
	channelSink := sink.NewChannelSink(s.connectionBufferSize)
	go s.pump(ctx, connection, channelSink)

	subscription, err := s.conversations.Subscribe(ctx, conversationID, userID, after, channelSink)
	if err != nil {
		payload, _ := json.Marshal(gin.H{"error": err.Error()})
		_ = connection.Send(payload)
		connection.Close(websocket.ClosePolicyViolation, "subscription rejected")
		return
	}
	defer subscription.Cancel()

	<-connection.Wait()
}

func (s *Server) pump(ctx context.Context, connection *realtime.Connection, channelSink *sink.ChannelSink) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-connection.Wait():
			return
		case evt := <-channelSink.Events:
			created, ok := evt.(event.MessageCreated)
			if !ok {
				continue
			}
			payload, err := json.Marshal(gin.H{"type": "message", "message": created.Message})
			if err != nil {
				continue
			}
			if err = connection.Send(payload); err != nil {
				return
			}
		}
	}
}
