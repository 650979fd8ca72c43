package app

import (
	"hash/maphash"
	"math/rand/v2"

	"github.com/vancomm/minesweeper/internal/handlers"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes(basePath string) {
	game := handlers.NewGameHandler(
		a.logger, a.repo, a.cookies, a.ws, createRand, a.debug,
	)

	a.router.HandleFunc("GET "+basePath+"/difficulties", game.Difficulties)
	a.router.HandleFunc("POST "+basePath+"/game", game.NewGame)
	a.router.HandleFunc("GET "+basePath+"/game", game.Fetch)
	a.router.HandleFunc("POST "+basePath+"/game/reveal", game.Reveal)
	a.router.HandleFunc("POST "+basePath+"/game/flag", game.Flag)
	a.router.HandleFunc("POST "+basePath+"/game/press", game.Press)
	a.router.HandleFunc("GET "+basePath+"/game/connect", game.ConnectWS)
}
