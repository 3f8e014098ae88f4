package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
	wsReadLimit  = 512
)

func (h *MainHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	_, ok := h.origins[origin]
	return ok
}

// GetLiveOrdersSSE godoc
//
// @Summary Stream order events via Server-Sent Events (SSE)
// @Tags live
// @Produce text/event-stream
// @Success 200 {object} OrderEvent
// @Router /v1/app/orders/live [get]
func (h *MainHandler) GetLiveOrdersSSE(c echo.Context) error {
	ctx := c.Request().Context()
	flusher, ok := c.Response().Writer.(http.Flusher)
	if !ok {
		slog.ErrorContext(ctx, "streaming unsupported by response writer")
		return respondErr(c, fmt.Errorf("streaming unsupported"))
	}

	subID, ch, err := h.pubsub.SubLiveOrders(ctx)
	if err != nil {
		return respondErr(c, fmt.Errorf("subscribe to live orders: %w", err))
	}
	defer func() {
		if err := h.pubsub.UnsubLiveOrders(ctx, subID); err != nil {
			slog.WarnContext(ctx, "failed to unsubscribe from live orders", slog.Any("err", err))
		}
	}()

	c.Response().Header().Set(echo.HeaderContentType, "text/event-stream")
	c.Response().Header().Set("Cache-Control", "no-cache")
	c.Response().Header().Set("Connection", "keep-alive")
	c.Response().WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "client closed live feed")
			return nil
		case event := <-ch:
			data, err := json.Marshal(event)
			if err != nil {
				slog.ErrorContext(ctx, "marshal order event for SSE", slog.Any("err", err))
				continue
			}
			if _, err := fmt.Fprintf(c.Response(), "event: %s\ndata: %s\n\n", event.Kind, data); err != nil {
				slog.ErrorContext(ctx, "write SSE", slog.Any("err", err))
				return nil
			}
			flusher.Flush()
		}
	}
}

// GetLiveOrdersWS godoc
//
// @Summary Stream order events over a WebSocket
// @Tags live
// @Success 101 {object} OrderEvent
// @Failure 403 {object} ErrorResponse
// @Router /v1/app/orders/live/ws [get]
func (h *MainHandler) GetLiveOrdersWS(c echo.Context) error {
	ctx := c.Request().Context()

	if !h.checkOrigin(c.Request()) {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "origin not allowed"})
	}

	// Subscribe before upgrading so no event published after the handshake is missed.
	subID, ch, err := h.pubsub.SubLiveOrders(ctx)
	if err != nil {
		return respondErr(c, fmt.Errorf("subscribe to live orders: %w", err))
	}
	defer func() {
		if err := h.pubsub.UnsubLiveOrders(ctx, subID); err != nil {
			slog.WarnContext(ctx, "failed to unsubscribe from live orders", slog.Any("err", err))
		}
	}()

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// The upgrader has already answered the client.
		slog.WarnContext(ctx, "websocket upgrade failed", slog.Any("err", err))
		return nil
	}
	defer conn.Close()

	// Clients never talk back; reading only surfaces disconnects and pongs.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(wsReadLimit)
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					slog.WarnContext(ctx, "websocket read failed", slog.Any("err", err))
				}
				return
			}
		}
	}()

	writeWait := time.Duration(h.live.WriteTimeoutInSeconds) * time.Second
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			slog.InfoContext(ctx, "client closed live feed")
			return nil
		case <-ctx.Done():
			return nil
		case event := <-ch:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(event); err != nil {
				slog.ErrorContext(ctx, "write websocket", slog.Any("err", err))
				return nil
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}
		}
	}
}
