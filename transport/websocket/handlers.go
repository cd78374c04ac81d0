package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/supertictactoe/internal/apperror"
	"github.com/rocketscienceinc/supertictactoe/internal/usecase"
)

// dispatch runs the handler for msg. Successful commands answer through the
// broadcast; failures are reported to the sender only.
func (that *Server) dispatch(ctx context.Context, c *client, msg *Message) {
	log := that.logger.With("method", "dispatch", "action", msg.Action)

	handler, ok := that.handlers[msg.Action]
	if !ok {
		that.sendError(c, msg.Action, fmt.Errorf("%w: unknown action %q", apperror.ErrInvalidArgument, msg.Action))
		return
	}

	if err := handler(ctx, c, msg); err != nil {
		log.Debug("command rejected", "error", err)
		that.sendError(c, msg.Action, err)
	}
}

func (that *Server) handleState(_ context.Context, c *client, _ *Message) error {
	that.sendState(c)
	return nil
}

func (that *Server) handleStart(ctx context.Context, _ *client, msg *Message) error {
	var payload StartPayload
	if err := decode(msg, &payload); err != nil {
		return err
	}

	_, err := that.game.StartGame(ctx, usecase.GameOptions{
		Mark:       payload.Mark,
		Opponent:   payload.Opponent,
		Difficulty: payload.Difficulty,
	})

	return err
}

func (that *Server) handleSelect(ctx context.Context, _ *client, msg *Message) error {
	var payload SelectPayload
	if err := decode(msg, &payload); err != nil {
		return err
	}

	if payload.MiniGame != "" {
		_, err := that.game.SelectSquareWithMiniGame(ctx, payload.PlayerID, payload.Square, payload.MiniGame)
		return err
	}

	_, err := that.game.SelectSquare(ctx, payload.PlayerID, payload.Square)

	return err
}

func (that *Server) handleMiniGameStart(ctx context.Context, _ *client, msg *Message) error {
	var payload MiniGameStartPayload
	if err := decode(msg, &payload); err != nil {
		return err
	}

	_, err := that.game.StartMiniGame(ctx, payload.Type, payload.Square)

	return err
}

func (that *Server) handleMiniGameEnd(ctx context.Context, _ *client, msg *Message) error {
	var payload MiniGameEndPayload
	if err := decode(msg, &payload); err != nil {
		return err
	}

	_, err := that.game.EndMiniGame(ctx, payload.WinnerID)

	return err
}

func (that *Server) handleAITurn(ctx context.Context, _ *client, _ *Message) error {
	_, err := that.game.PlayAITurn(ctx)
	return err
}

func (that *Server) handleRestart(ctx context.Context, _ *client, _ *Message) error {
	_, err := that.game.Restart(ctx)
	return err
}

func (that *Server) handleReset(ctx context.Context, _ *client, _ *Message) error {
	_, err := that.game.Reset(ctx)
	return err
}

func (that *Server) sendState(c *client) {
	data, err := encode(actionState, that.game.State())
	if err != nil {
		that.logger.Error("failed to encode state", "error", err)
		return
	}

	that.enqueue(c, data)
}

func (that *Server) sendError(c *client, request string, cause error) {
	data, err := encode(actionError, ErrorPayload{Request: request, Error: cause.Error()})
	if err != nil {
		that.logger.Error("failed to encode error", "error", err)
		return
	}

	that.enqueue(c, data)
}

func (that *Server) enqueue(c *client, data []byte) {
	that.clientsMutex.Lock()
	defer that.clientsMutex.Unlock()

	if _, ok := that.clients[c]; !ok {
		return
	}

	select {
	case c.send <- data:
	default:
		that.logger.Warn("client too slow, dropping", "remote", c.conn.RemoteAddr().String())
		c.close()
		delete(that.clients, c)
	}
}

func decode(msg *Message, target any) error {
	if len(msg.Payload) == 0 {
		return fmt.Errorf("%w: payload is required", apperror.ErrInvalidArgument)
	}

	if err := json.Unmarshal(msg.Payload, target); err != nil {
		return fmt.Errorf("%w: failed to unmarshal payload: %v", apperror.ErrInvalidArgument, err)
	}

	return nil
}
