package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
	"real-time-messenger/apperror"
	"real-time-messenger/config/logger"
	"real-time-messenger/dto"
	"real-time-messenger/dto/req"
	"real-time-messenger/dto/res"
	"real-time-messenger/middleware"
	"real-time-messenger/realtime"
	"real-time-messenger/usecase"
)

const eventTimeout = 10 * time.Second

type WebSocketConfig struct {
	SendBuffer int
	Rate       float64
	Burst      int
}

type WebSocketHandler struct {
	usecase.ChatUsecase
	usecase.MessageUsecase
	Presence *realtime.Presence
	Rooms    *realtime.Rooms
	Hub      *realtime.Hub
	Engine   *realtime.Engine
	Log      *logger.AppLogger
	Config   WebSocketConfig
}

func NewWebSocketHandler(chatUsecase usecase.ChatUsecase, messageUsecase usecase.MessageUsecase, presence *realtime.Presence, rooms *realtime.Rooms, hub *realtime.Hub, engine *realtime.Engine, log *logger.AppLogger, config WebSocketConfig) *WebSocketHandler {
	return &WebSocketHandler{
		ChatUsecase:    chatUsecase,
		MessageUsecase: messageUsecase,
		Presence:       presence,
		Rooms:          rooms,
		Hub:            hub,
		Engine:         engine,
		Log:            log,
		Config:         config,
	}
}

// HandleWebSocket serves one authenticated connection: register, go online, send the chat
// list, then read frames until the peer leaves.
func (handler *WebSocketHandler) HandleWebSocket(c *websocket.Conn) {
	userID, _ := c.Locals(middleware.UserIDKey).(string)
	client := newWSClient(uuid.NewString(), userID, c, handler.Config.SendBuffer)

	handler.Hub.Attach(client)
	pumpDone := make(chan struct{})
	go func() {
		defer close(pumpDone)
		client.writePump()
	}()

	defer func() {
		_ = client.Close()
		<-pumpDone
		handler.Rooms.LeaveAll(client.ID())
		handler.Hub.Detach(client.ID())
		ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
		defer cancel()
		if _, err := handler.Presence.SetOffline(ctx, userID, client.ID()); err != nil {
			handler.Log.WS.Error.Error().Err(err).Str("userId", userID).Msg("failed to set offline")
		}
	}()

	handler.goOnline(client)
	handler.readLoop(client)
}

func (handler *WebSocketHandler) readLoop(client *wsClient) {
	client.prepareRead()
	limit := rate.Inf
	if handler.Config.Rate > 0 {
		limit = rate.Limit(handler.Config.Rate)
	}
	limiter := rate.NewLimiter(limit, handler.Config.Burst)

	for {
		_, frame, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				handler.Log.WS.Warning.Warn().Err(err).Str("conn", client.ID()).Msg("read error")
			}
			return
		}
		_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))

		if !limiter.Allow() {
			handler.replyError(client, apperror.ErrRateLimited, "")
			continue
		}

		var inbound dto.InboundEvent
		if err := json.Unmarshal(frame, &inbound); err != nil {
			handler.replyError(client, apperror.ErrMalformedFrame, "")
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
		handler.dispatch(ctx, client, inbound)
		cancel()
	}
}

func (handler *WebSocketHandler) dispatch(ctx context.Context, client *wsClient, inbound dto.InboundEvent) {
	handler.Log.WS.Trace.Trace().Str("conn", client.ID()).Str("event", inbound.Event).Msg("inbound event")

	switch inbound.Event {
	case dto.EventUserOnline:
		handler.goOnline(client)

	case dto.EventJoinChats:
		if _, err := handler.Rooms.JoinAllChats(ctx, client.ID(), client.UserID()); err != nil {
			handler.replyError(client, apperror.Internal(err), "")
		}

	case dto.EventGetChats:
		handler.sendChats(ctx, client)

	case dto.EventGetMessages:
		var ref dto.ChatRef
		if !handler.decode(client, inbound.Data, &ref) {
			return
		}
		messages, err := handler.MessageUsecase.GetMessagesByChatID(ctx, ref.ChatID, client.UserID())
		if err != nil {
			handler.replyError(client, err, "")
			return
		}
		handler.Engine.Reply(client, dto.EventMessagesHistory, res.MessagesHistoryResponse{ChatId: ref.ChatID, Messages: messages})

	case dto.EventSendMessage:
		request := new(req.MessageRequest)
		if !handler.decode(client, inbound.Data, request) {
			return
		}
		request.SenderID = client.UserID()
		message, err := handler.MessageUsecase.PostMessage(ctx, request)
		if err != nil {
			handler.replyError(client, err, request.ClientID)
			return
		}
		handler.Engine.Reply(client, dto.EventMessageSent, message)

	case dto.EventTyping, dto.EventStopTyping:
		var ref dto.ChatRef
		if !handler.decode(client, inbound.Data, &ref) {
			return
		}
		handler.Engine.Typing(client, ref.ChatID, inbound.Event == dto.EventTyping)

	case dto.EventMarkRead:
		var ref dto.ChatRef
		if !handler.decode(client, inbound.Data, &ref) {
			return
		}
		if err := handler.ChatUsecase.MarkRead(ctx, ref.ChatID, client.UserID()); err != nil {
			handler.replyError(client, err, "")
		}

	case dto.EventDeleteMessage:
		request := new(req.DeleteMessageRequest)
		if !handler.decode(client, inbound.Data, request) {
			return
		}
		if err := handler.MessageUsecase.DeleteMessage(ctx, client.UserID(), request); err != nil {
			handler.replyError(client, err, "")
		}

	case dto.EventAddReaction, dto.EventRemoveReaction:
		request := new(req.ReactionRequest)
		if !handler.decode(client, inbound.Data, request) {
			return
		}
		var err error
		if inbound.Event == dto.EventAddReaction {
			err = handler.MessageUsecase.AddReaction(ctx, client.UserID(), request)
		} else {
			err = handler.MessageUsecase.RemoveReaction(ctx, client.UserID(), request)
		}
		if err != nil {
			handler.replyError(client, err, "")
		}

	default:
		handler.replyError(client, apperror.ErrUnknownEvent, "")
	}
}

// goOnline is idempotent: a repeated user_online just re-joins rooms and resends the list.
func (handler *WebSocketHandler) goOnline(client *wsClient) {
	ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
	defer cancel()

	if err := handler.Presence.SetOnline(ctx, client.UserID(), client.ID()); err != nil {
		handler.replyError(client, apperror.Internal(err), "")
		return
	}
	handler.sendChats(ctx, client)
}

func (handler *WebSocketHandler) sendChats(ctx context.Context, client *wsClient) {
	chats, err := handler.ChatUsecase.GetChatsByUser(ctx, client.UserID())
	if err != nil {
		handler.replyError(client, err, "")
		return
	}
	handler.Engine.Reply(client, dto.EventChatsList, chats)
}

func (handler *WebSocketHandler) decode(client *wsClient, data json.RawMessage, target any) bool {
	if len(data) == 0 {
		handler.replyError(client, apperror.ErrMalformedFrame, "")
		return false
	}
	if err := json.Unmarshal(data, target); err != nil {
		handler.replyError(client, apperror.ErrMalformedFrame, "")
		return false
	}
	return true
}

func (handler *WebSocketHandler) replyError(client *wsClient, err error, clientID string) {
	if apperror.HasCode(err, apperror.CodeInternal) {
		handler.Log.WS.Error.Error().Err(err).Str("conn", client.ID()).Msg("event failed")
	}
	handler.Engine.Reply(client, dto.EventMessageError, dto.MessageErrorPayload{
		Code:     string(apperror.CodeOf(err)),
		Error:    apperror.PublicMessage(err),
		ClientID: clientID,
	})
}
