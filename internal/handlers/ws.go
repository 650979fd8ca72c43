package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/repository"
)

type gameExecutor struct {
	*GameHandler
	gameSessionId int64
}

func (game gameExecutor) execute(
	ctx context.Context, line string,
) (*repository.GameSession, error) {
	c, err := parseCommand(line)
	if err != nil {
		return nil, err
	}
	switch c.name {
	case wsNoop:
		return game.repo.FetchGameSession(ctx, game.gameSessionId)
	case wsNew:
		return game.repo.UpdateGameSession(ctx, game.gameSessionId, reset(c.difficulty))
	default:
		return game.repo.UpdateGameSession(
			ctx, game.gameSessionId, applyMove(game.logger, c.move, c.pos),
		)
	}
}

// wsRunGameLoop answers every text message with the game view after all of
// its newline-separated commands ran. A bad command is answered with an
// error message and the rest of that message is skipped.
func (game gameExecutor) wsRunGameLoop(ctx context.Context, conn *websocket.Conn) error {
	for {
		mt, buf, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if mt != websocket.TextMessage {
			return nil
		}

		var session *repository.GameSession
		var cmdErr error
		for _, line := range strings.Split(strings.TrimSpace(string(buf)), "\n") {
			session, cmdErr = game.execute(ctx, strings.TrimSpace(line))
			if cmdErr != nil {
				break
			}
		}

		if cmdErr != nil {
			if errors.Is(cmdErr, repository.ErrNotFound) {
				return cmdErr
			}
			game.logger.Debug("bad ws command", slog.Any("error", cmdErr))
			if err := conn.WriteJSON(wrapError(cmdErr)); err != nil {
				return fmt.Errorf("unable to write json: %w", err)
			}
			continue
		}

		if err := conn.WriteJSON(NewGameSessionDTO(session, game.debug)); err != nil {
			return fmt.Errorf("unable to write json: %w", err)
		}
	}
}

func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.SessionClaims(r)
	if !ok {
		SendErrorOrLog(w, g.logger, http.StatusNotFound, ErrNoGame)
		return
	}

	if _, err := g.repo.FetchGameSession(r.Context(), claims.GameSessionId); err != nil {
		g.handleRepoError(w, err)
		return
	}

	// the socket cannot set cookies later, so the handshake refreshes it
	header, err := g.cookies.RefreshHeader(claims.GameSessionId)
	if err != nil {
		internalError(w, g.logger, "unable to refresh session cookie", err)
		return
	}

	conn, err := g.ws.Upgrader.Upgrade(w, r, header) // headers sent here
	if err != nil {
		g.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}
	defer conn.Close()

	g.logger.Debug("established WS connection",
		slog.Int64("gameSessionId", claims.GameSessionId))

	game := gameExecutor{&g, claims.GameSessionId}
	err = game.wsRunGameLoop(r.Context(), conn)
	if err != nil && !websocket.IsCloseError(
		err, websocket.CloseNormalClosure, websocket.CloseGoingAway,
	) {
		g.logger.Warn("error in ws loop", slog.Any("error", err))
	}
}
