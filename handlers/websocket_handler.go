package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/germarr/static-worldcup/brackets"
	"github.com/germarr/static-worldcup/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	hub         *brackets.Hub
	poolService services.PoolService
}

func NewWebSocketHandler(hub *brackets.Hub, ps services.PoolService) *WebSocketHandler {
	return &WebSocketHandler{
		hub:         hub,
		poolService: ps,
	}
}

// ServeWs handles GET /ws/pools/{code}: it upgrades the connection and joins
// the client to the pool's room. Clients only listen; all mutations go
// through the REST API and are broadcast back here.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		http.Error(w, "Missing pool code", http.StatusBadRequest)
		return
	}

	// Reject rooms for pools that do not exist.
	if _, err := h.poolService.Get(r.Context(), code, 1); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade websocket connection", slog.String("pool", code), slog.Any("error", err))
		return
	}

	client := &brackets.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: services.PoolRoomID(code),
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
