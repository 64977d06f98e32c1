package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/canopyhq/canopy/pkg/buildinfo"
	cerrors "github.com/canopyhq/canopy/pkg/errors"
	"github.com/canopyhq/canopy/pkg/graphio"
	"github.com/canopyhq/canopy/pkg/layout"
	"github.com/canopyhq/canopy/pkg/observability"
	"github.com/canopyhq/canopy/pkg/seed"
	"github.com/canopyhq/canopy/pkg/tidy"
)

// defaultAddr is the listen address when neither flag nor config sets one.
const defaultAddr = "localhost:8787"

// serveCommand creates the serve command running the local layout service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local HTTP layout service",
		Long: `Run a local HTTP layout service.

The service keeps one layout engine per session, so editors can send
incremental node batches and get back only the positions that changed
tree shape. Sessions are identified by the "session_id" request field;
omit it to start a fresh session.

Endpoints:
  POST /v1/layout   compute or extend a session's tree layout
  POST /v1/seed     radially place unpositioned nodes of a graph
  GET  /v1/health   liveness and version info`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Serve.Addr
			}
			if addr == "" {
				addr = defaultAddr
			}
			return c.runServe(cmd.Context(), addr, cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default localhost:8787)")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: user config dir)")

	return cmd
}

// runServe starts the HTTP server and blocks until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, addr string, cfg Config) error {
	srv, err := newServer(c, cfg)
	if err != nil {
		return err
	}

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// session pairs a layout engine with a lock. Engines are not safe for
// concurrent use, so every request against a session serializes here.
type session struct {
	mu     sync.Mutex
	engine *layout.Engine
}

// server holds the per-session engines and the layout defaults.
type server struct {
	cli     *CLI
	spacing tidy.Spacing

	mu       sync.Mutex
	sessions map[string]*session
}

func newServer(c *CLI, cfg Config) (*server, error) {
	spacing, err := tidy.DefaultSpacing()
	if err != nil {
		return nil, err
	}
	if cfg.Layout.ParentChildMargin > 0 {
		spacing.ParentChildMargin = cfg.Layout.ParentChildMargin
	}
	if cfg.Layout.PeerMargin > 0 {
		spacing.PeerMargin = cfg.Layout.PeerMargin
	}
	return &server{
		cli:      c,
		spacing:  spacing,
		sessions: make(map[string]*session),
	}, nil
}

// routes builds the chi router with logging and recovery middleware.
func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/v1/health", s.handleHealth)
	r.Post("/v1/layout", s.handleLayout)
	r.Post("/v1/seed", s.handleSeed)

	return r
}

// observe attaches the logger to the request context, reports requests to
// the observability hooks, and logs them.
func (s *server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		r = r.WithContext(withLogger(r.Context(), s.cli.Logger))
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), elapsed)
		s.cli.Logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"elapsed", elapsed.Round(time.Microsecond),
		)
	})
}

// layoutRequest is the body of POST /v1/layout.
type layoutRequest struct {
	SessionID   string             `json:"session_id,omitempty"`
	Orientation string             `json:"orientation,omitempty"`
	Nodes       []graphio.NodeJSON `json:"nodes"`
	NewNodes    []graphio.NodeJSON `json:"new_nodes,omitempty"`
}

// layoutResponse is the body of a successful POST /v1/layout.
type layoutResponse struct {
	SessionID string                 `json:"session_id"`
	Positions []graphio.PositionJSON `json:"positions"`
}

// errorResponse is the body of any non-2xx response.
type errorResponse struct {
	Code  cerrors.Code `json:"code,omitempty"`
	Error string       `json:"error"`
}

// writeError maps an error's code to an HTTP status and writes the body.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusUnprocessableEntity
	switch code := cerrors.GetCode(err); code {
	case cerrors.ErrCodeInvalidInput, cerrors.ErrCodeInvalidNode, cerrors.ErrCodeInvalidOrientation:
		status = http.StatusBadRequest
	case cerrors.ErrCodeNotFound, cerrors.ErrCodeNodeNotFound, cerrors.ErrCodeSessionNotFound:
		status = http.StatusNotFound
	case cerrors.ErrCodeInternal:
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, errorResponse{Code: cerrors.GetCode(err), Error: cerrors.UserMessage(err)})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, cerrors.Wrap(cerrors.ErrCodeInvalidInput, err, "invalid JSON body"))
		return
	}
	if err := cerrors.ValidateSessionID(req.SessionID); err != nil {
		writeError(w, err)
		return
	}
	if err := graphio.ValidateNodeSet(graphio.NodeSet{Nodes: req.Nodes, NewNodes: req.NewNodes}); err != nil {
		writeError(w, err)
		return
	}

	sess, id, err := s.session(req.SessionID, req.Orientation)
	if err != nil {
		writeError(w, err)
		return
	}

	sess.mu.Lock()
	positions, err := sess.engine.Position(layout.Request{
		Nodes:    graphio.ToNodeInfos(req.Nodes),
		NewNodes: graphio.ToNodeInfos(req.NewNodes),
	})
	sess.mu.Unlock()
	if err != nil {
		loggerFromContext(r.Context()).Error("layout failed", "session", id, "err", err)
		writeError(w, cerrors.Wrap(cerrors.ErrCodeLayout, err, "layout failed"))
		return
	}

	writeJSON(w, http.StatusOK, layoutResponse{
		SessionID: id,
		Positions: graphio.FromPositions(positions).Positions,
	})
}

func (s *server) handleSeed(w http.ResponseWriter, r *http.Request) {
	var g seed.Graph
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		writeError(w, cerrors.Wrap(cerrors.ErrCodeInvalidInput, err, "invalid JSON body"))
		return
	}
	if err := graphio.ValidateSeedGraph(g); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, seed.Apply(g))
}

// session returns the engine registered under id, creating one when id is
// empty or unknown. New sessions honor the requested orientation; existing
// sessions keep the orientation they were created with.
func (s *server) session(id, orientation string) (*session, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if sess, ok := s.sessions[id]; ok {
			return sess, id, nil
		}
	}

	opts := []layout.Option{
		layout.WithSpacing(s.spacing),
		layout.WithLogger(s.cli.Logger),
	}
	if orientation != "" {
		o, err := layout.ParseOrientation(orientation)
		if err != nil {
			return nil, "", cerrors.Wrap(cerrors.ErrCodeInvalidOrientation, err, "orientation %q", orientation)
		}
		opts = append(opts, layout.WithOrientation(o))
	}
	engine, err := layout.New(opts...)
	if err != nil {
		return nil, "", cerrors.Wrap(cerrors.ErrCodeInternal, err, "create layout engine")
	}

	if id == "" {
		id = uuid.NewString()
	}
	sess := &session{engine: engine}
	s.sessions[id] = sess
	return sess, id, nil
}

// writeJSON encodes v as the response body with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
