package server

import (
	"fmt"
	"net/http"

	"github.com/unisonhq/unison-backend/internal/config"
	"github.com/unisonhq/unison-backend/internal/game"
	"github.com/unisonhq/unison-backend/internal/store"
)

type Server struct {
	port string
	hub  *game.Hub
}

// New builds the HTTP server. No read/write timeouts here: the websocket
// route hijacks its connections, and a server-level deadline would survive
// the hijack and kill long-lived sockets.
func New(cfg config.Config, st store.Store) *http.Server {
	s := &Server{
		port: cfg.Port,
		hub:  game.NewHub(st),
	}

	return &http.Server{
		Addr:    fmt.Sprintf(":%s", s.port),
		Handler: s.RegisterRoutes(),
	}
}
