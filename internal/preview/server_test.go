package preview

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankitkaran99/tinymce-components/internal/catalog"
	"github.com/ankitkaran99/tinymce-components/internal/config"
	"github.com/ankitkaran99/tinymce-components/internal/dom"
	"github.com/ankitkaran99/tinymce-components/internal/logging"
	"github.com/ankitkaran99/tinymce-components/internal/session"
)

func newPreview(t *testing.T, markup string) (*Server, *session.Session) {
	t.Helper()
	host, err := dom.NewHost(markup)
	require.NoError(t, err)
	sess := session.New(host, session.WithLogger(logging.NewNop()))
	require.NoError(t, catalog.RegisterAll(sess.Registry()))
	cfg := &config.Config{}
	cfg.Server.Port = 8120
	cfg.Server.Host = "localhost"
	return NewServer(cfg, sess, logging.NewNop()), sess
}

func TestHandleIndex(t *testing.T) {
	srv, sess := newPreview(t, `<p>hello</p>`)
	srv.SetExtraCSS(".extra{color:red;}")

	rec := httptest.NewRecorder()
	srv.handleIndex(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<p>hello</p>")
	assert.Contains(t, body, ".extra{color:red;}")
	assert.Contains(t, body, ".btn{", "registered editor styles are injected")
	assert.Contains(t, body, sess.RenderCatalog())
}

func TestHandleIndex_UnknownPathIs404(t *testing.T) {
	srv, _ := newPreview(t, ``)
	rec := httptest.NewRecorder()
	srv.handleIndex(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleExportStripsMetadata(t *testing.T) {
	srv, sess := newPreview(t, ``)
	host := sess.Host().(*dom.Host)
	_, err := sess.InsertComponent("button", host.DocumentRoot())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.handleExport(rec, httptest.NewRequest(http.MethodGet, "/export", nil))

	body := rec.Body.String()
	assert.Contains(t, body, "btn-primary")
	assert.NotContains(t, body, dom.AttrComponent)
	assert.NotContains(t, body, dom.AttrInstanceID)
}

func TestHandlePanelReflectsSelection(t *testing.T) {
	srv, sess := newPreview(t, ``)
	host := sess.Host().(*dom.Host)
	btn, err := sess.InsertComponent("button", host.DocumentRoot())
	require.NoError(t, err)
	sess.SelectElement(btn)

	rec := httptest.NewRecorder()
	srv.handlePanel(rec, httptest.NewRequest(http.MethodGet, "/panel", nil))
	assert.Contains(t, rec.Body.String(), `data-prop="btnStyle"`)
}

func TestHandleDiagnostics(t *testing.T) {
	srv, sess := newPreview(t, ``)
	sess.Diagnostics().Add(assert.AnError)

	rec := httptest.NewRecorder()
	srv.handleDiagnostics(rec, httptest.NewRequest(http.MethodGet, "/diagnostics", nil))

	var out []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Contains(t, out[0], assert.AnError.Error())
}

func TestBroadcastWithoutClients(t *testing.T) {
	srv, sess := newPreview(t, ``)
	host := sess.Host().(*dom.Host)
	assert.NotPanics(t, func() {
		host.NotifyContentChanged()
		host.NotifyStructureChanged()
		srv.Broadcast("content")
	})
}

func TestStyleWatcherLoadsOnStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.css")
	require.NoError(t, os.WriteFile(path, []byte(".theme{background:#eee;}"), 0o644))

	srv, _ := newPreview(t, ``)
	w := NewStyleWatcher([]string{path}, srv, logging.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	srv.SetExtraCSS(w.load(ctx))

	rec := httptest.NewRecorder()
	srv.handleIndex(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, rec.Body.String(), ".theme{background:#eee;}")
}
