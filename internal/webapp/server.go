package webapp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/vk/webstage/internal/ctxlog"
)

// CreationHook is invoked with every freshly created handler instance,
// exactly once per instance and before the instance serves any request. It
// returns the (possibly mutated) instance.
type CreationHook func(ctx context.Context, handler any) any

// Server hosts one App on a local TCP port.
type Server struct {
	app  *App
	hook CreationHook

	listener   net.Listener
	httpServer *http.Server
}

// NewServer creates a server for the given app. A nil hook disables
// handler interception.
func NewServer(app *App, hook CreationHook) *Server {
	if hook == nil {
		hook = func(_ context.Context, h any) any { return h }
	}
	return &Server{app: app, hook: hook}
}

// Start binds the listener and begins serving in a background goroutine.
// Port 0 picks a free ephemeral port; Addr reports the bound address.
func (s *Server) Start(ctx context.Context, host string, port int) error {
	logger := ctxlog.FromContext(ctx)

	addr := fmt.Sprintf("%s:%d", host, port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener

	s.httpServer = &http.Server{
		Handler: s.requestID(s.mux()),
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("🚀 Application server starting",
			"app", s.app.Name, "address", fmt.Sprintf("http://%s%s", listener.Addr(), s.app.ContextPath))
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Application server failed unexpectedly", "error", err)
		}
	}()

	return nil
}

// Addr returns the bound listener address, e.g. "127.0.0.1:49152".
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown stops the server gracefully, waiting up to five seconds for
// in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	if s.httpServer == nil {
		logger.Debug("Application server was not running.")
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	logger.Info("Shutting down application server...", "app", s.app.Name)
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Application server shutdown failed", "error", err)
		return err
	}

	logger.Debug("Application server shut down gracefully.")
	return nil
}

// mux builds the route table: health endpoint, dynamic handlers under the
// context path, and static content as the fallback.
func (s *Server) mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.healthHandler)

	for pattern, factory := range s.app.routes {
		mux.Handle(s.app.ContextPath+pattern, s.dynamic(factory))
	}

	if s.app.StaticDir != "" {
		prefix := s.app.ContextPath + "/"
		mux.Handle(prefix, http.StripPrefix(prefix, http.FileServer(http.Dir(s.app.StaticDir))))
	}

	return mux
}

// dynamic wraps a handler factory: each request gets a fresh instance,
// passed through the creation hook before dispatch.
func (s *Server) dynamic(factory HandlerFactory) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		instance := factory()
		wired, ok := s.hook(r.Context(), instance).(http.Handler)
		if !ok {
			ctxlog.FromContext(r.Context()).Error("Creation hook returned a non-handler instance.",
				"app", s.app.Name, "path", r.URL.Path)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		wired.ServeHTTP(w, r)
	})
}

// healthHandler answers readiness probes from the test driver.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	ctxlog.FromContext(r.Context()).Debug("Health check endpoint hit.",
		"remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// requestID injects a unique X-Request-Id header into every request/response.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r)
	})
}
