// Package preview provides a development server that mirrors an editing
// session: it serves the live document, the catalog panel, the properties
// panel, and the filtered export, and pushes change notifications to
// connected browsers over websocket.
package preview

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/ankitkaran99/tinymce-components/internal/config"
	"github.com/ankitkaran99/tinymce-components/internal/dom"
	"github.com/ankitkaran99/tinymce-components/internal/logging"
	"github.com/ankitkaran99/tinymce-components/internal/session"
)

const writeWait = 10 * time.Second

// Server mirrors one editing session over HTTP.
type Server struct {
	cfg     *config.Config
	session *session.Session
	logger  logging.Logger

	mu       sync.Mutex
	clients  map[*websocket.Conn]struct{}
	extraCSS string

	httpServer *http.Server
}

// ChangeMessage is what the server pushes to connected clients.
type ChangeMessage struct {
	Type string `json:"type"`
}

// NewServer creates a preview server over the session. The session's host
// must be the in-memory dom.Host so the server can subscribe to change
// notifications.
func NewServer(cfg *config.Config, sess *session.Session, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		cfg:     cfg,
		session: sess,
		logger:  logger.WithComponent("preview"),
		clients: make(map[*websocket.Conn]struct{}),
	}
	if host, ok := sess.Host().(*dom.Host); ok {
		host.OnContentChanged(func() { s.Broadcast("content") })
		host.OnStructureChanged(func() { s.Broadcast("structure") })
	}
	return s
}

// SetExtraCSS replaces the CSS aggregated from the configured catalog style
// files and notifies clients.
func (s *Server) SetExtraCSS(css string) {
	s.mu.Lock()
	s.extraCSS = css
	s.mu.Unlock()
	s.Broadcast("styles")
}

// Start runs the server until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	// late registrations refresh connected catalog panels
	events := s.session.Registry().Watch()
	go func() {
		for range events {
			s.Broadcast("catalog")
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/catalog", s.handleCatalog)
	mux.HandleFunc("/panel", s.handlePanel)
	mux.HandleFunc("/export", s.handleExport)
	mux.HandleFunc("/diagnostics", s.handleDiagnostics)
	mux.HandleFunc("/ws", s.handleWebSocket)

	addr := net.JoinHostPort(s.cfg.Server.Host, fmt.Sprint(s.cfg.Server.Port))
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "preview server listening", "addr", addr)
		errc <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.session.Registry().UnWatch(events)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.closeClients()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errc:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	host, ok := s.session.Host().(*dom.Host)
	if !ok {
		http.Error(w, "document unavailable", http.StatusServiceUnavailable)
		return
	}
	s.mu.Lock()
	extra := s.extraCSS
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Component Preview</title>
<style>%s
%s</style>
</head>
<body>
<div class="tmce-preview-catalog">%s</div>
<div class="tmce-preview-document">%s</div>
<div class="tmce-preview-panel">%s</div>
<script>
(function(){
  var ws = new WebSocket("ws://" + location.host + "/ws");
  ws.onmessage = function(){ location.reload(); };
})();
</script>
</body>
</html>`,
		s.session.EditorStyles(), extra,
		s.session.RenderCatalog(), host.OuterHTML(), s.session.PanelHTML())
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, s.session.RenderCatalog())
}

func (s *Server) handlePanel(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, s.session.PanelHTML())
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, s.session.ExportHTML(s.cfg.Export.KeepInstanceIDs))
}

func (s *Server) handleDiagnostics(w http.ResponseWriter, r *http.Request) {
	diags := s.session.Diagnostics().All()
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Error())
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.cfg.Server.AllowedOrigins,
	})
	if err != nil {
		s.logger.Warn(r.Context(), err, "websocket upgrade failed")
		return
	}

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
		conn.Close(websocket.StatusNormalClosure, "")
	}()

	// Read loop exists only to observe the close; clients never send.
	for {
		if _, _, err := conn.Read(r.Context()); err != nil {
			return
		}
	}
}

// Broadcast pushes a change message to every connected client.
func (s *Server) Broadcast(changeType string) {
	data, err := json.Marshal(ChangeMessage{Type: changeType})
	if err != nil {
		return
	}
	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for c := range s.clients {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		ctx, cancel := context.WithTimeout(context.Background(), writeWait)
		if err := c.Write(ctx, websocket.MessageText, data); err != nil {
			s.logger.Debug(ctx, "dropping unreachable client", "error", err.Error())
			s.mu.Lock()
			delete(s.clients, c)
			s.mu.Unlock()
			c.Close(websocket.StatusGoingAway, "write failed")
		}
		cancel()
	}
}

func (s *Server) closeClients() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		c.Close(websocket.StatusGoingAway, "server shutting down")
	}
	s.clients = make(map[*websocket.Conn]struct{})
}
