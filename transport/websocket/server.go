package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/supertictactoe/internal/apperror"
	"github.com/rocketscienceinc/supertictactoe/internal/entity"
	"github.com/rocketscienceinc/supertictactoe/internal/usecase"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 4096
	sendBuffer     = 16
)

type gameUseCase interface {
	State() entity.Session
	Subscribe(listener usecase.Listener) func()

	StartGame(ctx context.Context, options usecase.GameOptions) (entity.Session, error)
	SelectSquare(ctx context.Context, playerID string, index int) (entity.Session, error)
	SelectSquareWithMiniGame(ctx context.Context, playerID string, index int, gameType entity.MiniGameType) (entity.Session, error)
	StartMiniGame(ctx context.Context, gameType entity.MiniGameType, index int) (entity.Session, error)
	EndMiniGame(ctx context.Context, winnerID string) (entity.Session, error)
	PlayAITurn(ctx context.Context) (entity.Session, error)
	Restart(ctx context.Context) (entity.Session, error)
	Reset(ctx context.Context) (entity.Session, error)
}

type handlerFunc func(ctx context.Context, c *client, msg *Message) error

// Server pushes every session change to all connected clients and accepts
// game commands over the same socket.
type Server struct {
	logger   *slog.Logger
	game     gameUseCase
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc

	clientsMutex sync.Mutex
	clients      map[*client]struct{}

	unsubscribe func()
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (that *client) close() {
	that.once.Do(func() { close(that.send) })
}

func New(logger *slog.Logger, game gameUseCase) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		game:   game,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// the renderer is served from anywhere during development
			CheckOrigin: func(*http.Request) bool { return true },
		},
		handlers: make(map[string]handlerFunc),
		clients:  make(map[*client]struct{}),
	}

	server.handlers[actionState] = server.handleState
	server.handlers[actionGameStart] = server.handleStart
	server.handlers[actionGameSelect] = server.handleSelect
	server.handlers[actionMiniGameStart] = server.handleMiniGameStart
	server.handlers[actionMiniGameEnd] = server.handleMiniGameEnd
	server.handlers[actionGameAITurn] = server.handleAITurn
	server.handlers[actionGameRestart] = server.handleRestart
	server.handlers[actionGameReset] = server.handleReset

	server.unsubscribe = game.Subscribe(server.Broadcast)

	return server
}

// Close detaches the server from the game and drops every client.
func (that *Server) Close() {
	that.unsubscribe()

	that.clientsMutex.Lock()
	defer that.clientsMutex.Unlock()

	for c := range that.clients {
		c.close()
		delete(that.clients, c)
	}
}

// ServeHTTP upgrades the request and serves the connection until it closes.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("websocket upgrade failed", "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	that.register(c)
	that.sendState(c)
	log.Info("websocket connection established", "remote", conn.RemoteAddr().String())

	go that.writePump(c)
	that.readPump(req.Context(), c)
}

// Broadcast queues session for every client. Clients that can't keep up are dropped.
func (that *Server) Broadcast(session entity.Session) {
	log := that.logger.With("method", "Broadcast")

	data, err := encode(actionState, session)
	if err != nil {
		log.Error("failed to encode state", "error", err)
		return
	}

	that.clientsMutex.Lock()
	defer that.clientsMutex.Unlock()

	for c := range that.clients {
		select {
		case c.send <- data:
		default:
			log.Warn("client too slow, dropping", "remote", c.conn.RemoteAddr().String())
			c.close()
			delete(that.clients, c)
		}
	}
}

func (that *Server) register(c *client) {
	that.clientsMutex.Lock()
	defer that.clientsMutex.Unlock()

	that.clients[c] = struct{}{}
}

func (that *Server) unregister(c *client) {
	that.clientsMutex.Lock()
	defer that.clientsMutex.Unlock()

	if _, ok := that.clients[c]; ok {
		delete(that.clients, c)
		c.close()
	}
}

func (that *Server) readPump(ctx context.Context, c *client) {
	log := that.logger.With("method", "readPump")

	defer func() {
		that.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("websocket closed unexpectedly", "error", err)
			}
			return
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Debug("failed to unmarshal message", "error", err)
			that.sendError(c, "", fmt.Errorf("%w: malformed message", apperror.ErrInvalidArgument))
			continue
		}

		that.dispatch(ctx, c, &message)
	}
}

func (that *Server) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
