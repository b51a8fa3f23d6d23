package handlers_test

import (
	"SpindleTracker/internal/config"
	"SpindleTracker/internal/handlers"
	"SpindleTracker/internal/middleware"
	"SpindleTracker/internal/repo"
	"SpindleTracker/internal/service"
	"SpindleTracker/internal/session"
	"SpindleTracker/internal/view"
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

type testEnv struct {
	router   http.Handler
	sessions *session.MemoryStore
	spindles *repo.RecordStore
	spares   *repo.RecordStore
}

func today() string {
	return time.Date(2026, 10, 14, 12, 0, 0, 0, time.Local).Format(service.DateLayout)
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := &config.Config{AuthSecret: testSecret, Username: "BAKIM", Password: "MAXIME", SessionTTL: time.Hour}
	logger := zap.NewNop().Sugar()
	clock := func() time.Time { return time.Date(2026, 10, 14, 12, 0, 0, 0, time.Local) }

	spindleStore, spareStore, err := repo.OpenStores(t.TempDir())
	require.NoError(t, err)
	spindleRepo := repo.NewSpindleRepository(spindleStore)
	spareRepo := repo.NewSpareRepository(spareStore)

	sessions := session.NewMemoryStore(cfg.SessionTTL)
	auth, err := service.NewAuthService(cfg.Username, cfg.Password, sessions)
	require.NoError(t, err)
	renderer, err := view.New()
	require.NoError(t, err)

	h := handlers.NewHandler(handlers.Services{
		Spindles: service.NewSpindleService(spindleRepo, logger).WithClock(clock),
		Spares:   service.NewSpareService(spareRepo, logger).WithClock(clock),
		Export:   service.NewExportService(spindleRepo, spareRepo),
		Auth:     auth,
	}, sessions, renderer, logger, cfg)

	return &testEnv{router: h.Router, sessions: sessions, spindles: spindleStore, spares: spareStore}
}

// addAuth создаёт сессию и прикладывает её cookie к запросу
func (e *testEnv) addAuth(t *testing.T, req *http.Request) session.Session {
	t.Helper()
	s, err := e.sessions.Create("BAKIM")
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	require.NoError(t, middleware.SetLoginCookie(rr, s, testSecret))
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
	return s
}

func (e *testEnv) do(t *testing.T, req *http.Request, auth bool) *httptest.ResponseRecorder {
	t.Helper()
	if auth {
		e.addAuth(t, req)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, httptest.NewRequest(http.MethodGet, path, nil), true)
}

func (e *testEnv) postForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(t, req, true)
}

func gunzipBody(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	zr, err := gzip.NewReader(bytes.NewReader(rr.Body.Bytes()))
	require.NoError(t, err)
	defer zr.Close()
	data, err := io.ReadAll(zr)
	require.NoError(t, err)
	return string(data)
}
