package handlers

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/repository"
)

type GameHandler struct {
	logger  *slog.Logger
	repo    *repository.Queries
	cookies *config.Cookies
	ws      *config.WebSocket
	newRand func() *rand.Rand
	debug   bool
}

// NewGameHandler serves one game per browser session. newRand supplies
// each new game with its own random source; debug exposes mine positions
// in every response.
func NewGameHandler(
	logger *slog.Logger,
	repo *repository.Queries,
	cookies *config.Cookies,
	ws *config.WebSocket,
	newRand func() *rand.Rand,
	debug bool,
) *GameHandler {
	handler := &GameHandler{
		logger:  logger,
		repo:    repo,
		cookies: cookies,
		ws:      ws,
		newRand: newRand,
		debug:   debug,
	}
	return handler
}

func (g GameHandler) Difficulties(w http.ResponseWriter, r *http.Request) {
	SendJSONOrLog(w, g.logger, NewDifficultyDTOs())
}

// NewGame resets the session's game, creating the session first when the
// browser has none.
func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	difficulty, err := ParseNewGameDTO(r.URL.Query())
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	if claims, ok := middleware.SessionClaims(r); ok {
		session, err := g.repo.UpdateGameSession(
			r.Context(), claims.GameSessionId, reset(difficulty),
		)
		if err == nil {
			g.logger.Debug("reset game",
				slog.Int64("gameSessionId", session.GameSessionId),
				slog.String("difficulty", string(session.State.Difficulty)),
			)
			g.replyWithSession(w, session)
			return
		}
		if !errors.Is(err, repository.ErrNotFound) {
			internalError(w, g.logger, "unable to reset game", err)
			return
		}
		g.logger.Debug("session expired - creating a new one",
			slog.Int64("gameSessionId", claims.GameSessionId))
	}

	if difficulty == "" {
		difficulty = mines.Easy
	}

	session, err := g.repo.CreateGameSession(
		r.Context(), mines.NewGame(difficulty, g.newRand()),
	)
	if err != nil {
		internalError(w, g.logger, "unable to create game session", err)
		return
	}

	g.logger.Debug("created game session",
		slog.Int64("gameSessionId", session.GameSessionId),
		slog.String("difficulty", string(difficulty)),
	)

	g.replyWithSession(w, session)
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.SessionClaims(r)
	if !ok {
		SendErrorOrLog(w, g.logger, http.StatusNotFound, ErrNoGame)
		return
	}

	session, err := g.repo.FetchGameSession(r.Context(), claims.GameSessionId)
	if err != nil {
		g.handleRepoError(w, err)
		return
	}

	g.replyWithSession(w, session)
}

func (g GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	pos, err := ParsePosition(r.URL.Query())
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}
	g.makeAMove(w, r, mines.Reveal, pos)
}

func (g GameHandler) Flag(w http.ResponseWriter, r *http.Request) {
	pos, err := ParsePosition(r.URL.Query())
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}
	g.makeAMove(w, r, mines.Flag, pos)
}

func (g GameHandler) Press(w http.ResponseWriter, r *http.Request) {
	pos, press, err := ParsePressDTO(r.URL.Query())
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}
	g.makeAMove(w, r, press.Move(), pos)
}

func (g GameHandler) makeAMove(
	w http.ResponseWriter, r *http.Request, move mines.Move, pos Position,
) {
	claims, ok := middleware.SessionClaims(r)
	if !ok {
		SendErrorOrLog(w, g.logger, http.StatusNotFound, ErrNoGame)
		return
	}

	session, err := g.repo.UpdateGameSession(
		r.Context(), claims.GameSessionId, applyMove(g.logger, move, pos),
	)
	if err != nil {
		g.handleRepoError(w, err)
		return
	}

	g.replyWithSession(w, session)
}

func (g GameHandler) handleRepoError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		g.cookies.Clear(w)
		SendErrorOrLog(w, g.logger, http.StatusNotFound, ErrNoGame)
	case errors.Is(err, ErrOutOfBounds):
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, ErrOutOfBounds)
	default:
		internalError(w, g.logger, "unable to access game session", err)
	}
}

// replyWithSession refreshes the session cookie and sends the game view.
func (g GameHandler) replyWithSession(w http.ResponseWriter, session *repository.GameSession) {
	if err := g.cookies.Refresh(w, session.GameSessionId); err != nil {
		internalError(w, g.logger, "unable to refresh session cookie", err)
		return
	}
	SendJSONOrLog(w, g.logger, NewGameSessionDTO(session, g.debug))
}
