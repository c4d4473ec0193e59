package bootstrap

import (
	"errors"
	"sync"

	"github.com/studyhive/collab-service/internal/config"
	"github.com/studyhive/collab-service/internal/domain"
	"github.com/studyhive/collab-service/internal/gate"
	"github.com/studyhive/collab-service/internal/handler"
	"github.com/studyhive/collab-service/internal/hub"
	"github.com/studyhive/collab-service/internal/middleware"
	"github.com/studyhive/collab-service/internal/registry"
	"github.com/studyhive/collab-service/internal/service"
	"github.com/studyhive/collab-service/pkg/log"
)

// Deps are the collaborators the collab server is built around.
type Deps struct {
	Sessions  *gate.SessionStore
	Documents service.DocumentChecker
	Auth      *middleware.AuthMiddleware
}

// Server bundles the fully wired collaboration layer for one process.
type Server struct {
	Registry *registry.Registry
	Hub      *hub.Hub
	Service  service.PresenceService
	WS       *handler.WSHandler
	HTTP     *handler.HTTPHandler
}

var (
	mu       sync.Mutex
	instance *Server
)

// Ensure returns the process-wide collab server, constructing it on first
// call. Concurrent cold-start calls are serialized; exactly one instance is
// ever created. A failed construction leaves no instance behind, so the
// next caller retries initialization.
//
// The guard is deliberately a mutex plus nil-check rather than sync.Once:
// sync.Once would latch a failed initialization forever.
func Ensure(wsCfg config.WebSocketConfig, deps Deps) (*Server, error) {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance, nil
	}

	if err := validate(wsCfg, deps); err != nil {
		return nil, err
	}

	reg := registry.New()
	h := hub.NewHub(reg)
	svc := service.NewPresenceService(h, deps.Sessions, deps.Documents)

	instance = &Server{
		Registry: reg,
		Hub:      h,
		Service:  svc,
		WS:       handler.NewWSHandler(h, svc, deps.Sessions, wsCfg),
		HTTP:     handler.NewHTTPHandler(Snapshot, deps.Sessions, deps.Auth),
	}

	l := log.L()
	l.Info().Msg("collab server initialized")

	return instance, nil
}

// Snapshot returns the read-only diagnostic view of the collaboration
// layer. Safe to call before initialization.
func Snapshot() domain.CollabStatus {
	mu.Lock()
	srv := instance
	mu.Unlock()

	if srv == nil {
		return domain.CollabStatus{
			ActiveSessions: []domain.RoomStatus{},
		}
	}

	rooms := srv.Registry.Rooms()
	return domain.CollabStatus{
		SocketServerInitialized: true,
		ActiveSessions:          rooms,
		SessionsCount:           len(rooms),
	}
}

func validate(wsCfg config.WebSocketConfig, deps Deps) error {
	if deps.Sessions == nil {
		return errors.New("bootstrap: session store is required")
	}
	if wsCfg.PingInterval <= 0 || wsCfg.PongWait <= 0 || wsCfg.WriteWait <= 0 {
		return errors.New("bootstrap: websocket keepalive intervals must be positive")
	}
	if wsCfg.MaxMessageSize <= 0 {
		return errors.New("bootstrap: websocket max message size must be positive")
	}
	return nil
}

// reset clears the process-wide instance. Tests only.
func reset() {
	mu.Lock()
	instance = nil
	mu.Unlock()
}
