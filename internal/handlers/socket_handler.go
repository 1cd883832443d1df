package handlers

import (
	"log"
	"mgMessenger/internal/errs"
	"mgMessenger/internal/interfaces"
	"mgMessenger/internal/realtime"
	"mgMessenger/internal/utils"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const maxRoomIDLength = 128

// SocketHandler serves the events and call signaling websocket endpoints.
// Connections are accepted before the token is checked so that a rejected
// client gets a close code instead of a failed handshake.
type SocketHandler struct {
	hub          *realtime.Hub
	resolver     interfaces.IdentityResolver
	upgrader     websocket.Upgrader
	clientConfig realtime.ClientConfig
}

func NewSocketHandler(hub *realtime.Hub, resolver interfaces.IdentityResolver, clientConfig realtime.ClientConfig) *SocketHandler {
	return &SocketHandler{
		hub:          hub,
		resolver:     resolver,
		clientConfig: clientConfig,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleEventsRoute godoc
// @Summary      Realtime events
// @Description  Websocket that receives message:new, message:update, message:delete, chat:update and call:invite
// @Tags         realtime
// @Param        token  query  string  true  "Bearer token"
// @Router       /api/ws/events [get]
func (sh *SocketHandler) HandleEventsRoute(ctx *gin.Context) {
	ws, identity, ok := sh.accept(ctx)
	if !ok {
		return
	}

	client := realtime.NewClient(ws, sh.clientConfig)
	sh.hub.ConnectEvents(identity, client)

	// inbound frames carry nothing for this endpoint
	err := client.ReadLoop(nil)

	sh.hub.DisconnectEvents(identity, client)
	closeClient(client, err)
}

// HandleCallRoute godoc
// @Summary      Call signaling
// @Description  Websocket whose text frames are forwarded verbatim to the other participants of the room
// @Tags         realtime
// @Param        roomId  path   string  true  "Room id"
// @Param        token   query  string  true  "Bearer token"
// @Router       /api/ws/calls/{roomId} [get]
func (sh *SocketHandler) HandleCallRoute(ctx *gin.Context) {
	roomID := strings.TrimSpace(ctx.Param("roomId"))
	if roomID == "" || len(roomID) > maxRoomIDLength {
		abortWithErrors(ctx, http.StatusBadRequest, []error{errs.ErrInvalidRoomID})
		return
	}

	ws, identity, ok := sh.accept(ctx)
	if !ok {
		return
	}

	client := realtime.NewClient(ws, sh.clientConfig)
	sh.hub.ConnectCall(roomID, client)
	log.Printf("%v joined call room %v", identity, roomID)

	err := client.ReadLoop(func(msg []byte) {
		sh.hub.RelayCall(roomID, client, msg)
	})

	sh.hub.DisconnectCall(roomID, client)
	closeClient(client, err)
}

// accept upgrades the request and resolves its token. Unauthenticated sockets
// are closed with a policy violation and never reach the hub.
func (sh *SocketHandler) accept(ctx *gin.Context) (*websocket.Conn, string, bool) {
	ws, err := sh.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return nil, "", false
	}

	identity, err := sh.resolver.ResolveIdentity(utils.TokenFromRequest(ctx))
	if err != nil {
		log.Printf("Rejected websocket from %v: %v", ws.RemoteAddr(), err)
		closeMessage := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, errs.ErrUnauthorized.Error())
		if err := ws.WriteControl(websocket.CloseMessage, closeMessage, time.Now().Add(time.Second)); err != nil {
			log.Printf("Error writing close frame: %v", err)
		}
		ws.Close()
		return nil, "", false
	}
	return ws, identity, true
}

// closeClient waits for the write pump to flush the close frame so the
// handler returns only after the socket is gone.
func closeClient(client *realtime.Client, readErr error) {
	if !realtime.IsExpectedCloseError(readErr) {
		log.Printf("Client %v read stopped: %v", client.ID(), readErr)
	}
	client.Close()
	<-client.Done()
	log.Printf("Client %v closed", client.ID())
}
