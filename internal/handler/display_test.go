package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orhanozan33/menuslide-sub001/internal/cache"
	"github.com/orhanozan33/menuslide-sub001/internal/config"
	"github.com/orhanozan33/menuslide-sub001/internal/display"
	"github.com/orhanozan33/menuslide-sub001/internal/model"
	"github.com/orhanozan33/menuslide-sub001/internal/queue"
	"github.com/orhanozan33/menuslide-sub001/internal/ratelimit"
	"github.com/orhanozan33/menuslide-sub001/internal/repository"
	"github.com/orhanozan33/menuslide-sub001/internal/viewer"
)

// handlerStore is a minimal display.Store for handler tests. Only the methods
// a test exercises carry fixture data; the rest return empty results.
type handlerStore struct {
	screens      map[string]uint64 // identifier -> screen id
	streamTarget string
	resolveCalls int
}

func (s *handlerStore) ResolveScreen(_ context.Context, identifier string) (*model.Screen, error) {
	s.resolveCalls++
	id, ok := s.screens[identifier]
	if !ok {
		return nil, repository.ErrScreenNotFound
	}
	return &model.Screen{ID: id, Name: "Lobby"}, nil
}

func (s *handlerStore) ScreenIDByPublicID(_ context.Context, identifier string) (uint64, error) {
	id, ok := s.screens[identifier]
	if !ok {
		return 0, repository.ErrScreenNotFound
	}
	return id, nil
}

func (s *handlerStore) ResolveStreamTarget(_ context.Context, code string) (string, error) {
	if s.streamTarget == "" {
		return "", repository.ErrScreenNotFound
	}
	return s.streamTarget, nil
}

func (s *handlerStore) DefaultLanguageCode(context.Context) (string, error) { return "", nil }
func (s *handlerStore) ActiveMenuID(context.Context, uint64) (uint64, bool, error) {
	return 0, false, nil
}
func (s *handlerStore) FallbackMenuID(context.Context, uint64) (uint64, bool, error) {
	return 0, false, nil
}
func (s *handlerStore) MenuWithItems(context.Context, uint64, string) (*model.Menu, error) {
	return nil, nil
}
func (s *handlerStore) ListMenuSchedules(context.Context, uint64) ([]model.MenuSchedule, error) {
	return nil, nil
}
func (s *handlerStore) ListRotations(context.Context, uint64) ([]model.TemplateRotation, error) {
	return nil, nil
}
func (s *handlerStore) TemplateWithBlocks(context.Context, uint64) (*model.Template, error) {
	return nil, repository.ErrTemplateNotFound
}
func (s *handlerStore) ListScreenBlocks(context.Context, uint64) ([]model.ScreenBlock, error) {
	return nil, nil
}
func (s *handlerStore) ListScreenBlockContents(context.Context, []uint64) ([]model.BlockContent, error) {
	return nil, nil
}
func (s *handlerStore) ListTemplateBlockContents(context.Context, []uint64) ([]model.BlockContent, error) {
	return nil, nil
}
func (s *handlerStore) ItemsByID(context.Context, []uint64, string) ([]model.MenuItem, error) {
	return nil, nil
}
func (s *handlerStore) ItemsByMenu(context.Context, []uint64, string) ([]model.MenuItem, error) {
	return nil, nil
}
func (s *handlerStore) MenuIDByBusinessAndName(context.Context, uint64, string) (uint64, bool, error) {
	return 0, false, nil
}

func newTestHandler(store *handlerStore, maxRequests int) *DisplayHandler {
	return &DisplayHandler{
		Store:      store,
		Assembler:  display.NewAssembler(store),
		Cache:      cache.New(25 * time.Second),
		Limiter:    ratelimit.New(time.Minute, maxRequests),
		Arbitrator: viewer.New(5 * time.Minute),
		CacheCfg:   config.DisplayCacheConfig{TTL: 25 * time.Second, SMaxAge: 20, StaleWhileRevalidate: 40},
		ViewerCfg:  config.ViewerConfig{StaleAfter: 5 * time.Minute, MaxSessionIDLen: 64},
		FrontendURL: "https://screens.example.com",
	}
}

func getDisplay(t *testing.T, h *DisplayHandler, identifier, query string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/display/"+identifier+query, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/display/:identifier")
	c.SetParamNames("identifier")
	c.SetParamValues(identifier)

	require.NoError(t, h.GetDisplay(c))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func postHeartbeat(t *testing.T, h *DisplayHandler, identifier, payload string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/display/"+identifier+"/heartbeat", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/display/:identifier/heartbeat")
	c.SetParamNames("identifier")
	c.SetParamValues(identifier)

	require.NoError(t, h.Heartbeat(c))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestGetDisplay_NotFoundIsSuccessPayload(t *testing.T) {
	h := newTestHandler(&handlerStore{screens: map[string]uint64{}}, 100)

	rec, body := getDisplay(t, h, "gone", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["not_found"])
	assert.Nil(t, body["screen"])
}

func TestGetDisplay_CacheHitSkipsAssembly(t *testing.T) {
	store := &handlerStore{screens: map[string]uint64{"lobby": 1}}
	h := newTestHandler(store, 100)

	rec, _ := getDisplay(t, h, "lobby", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, body := getDisplay(t, h, "lobby", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 1, store.resolveCalls, "second request must come from cache")
	screen, ok := body["screen"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Lobby", screen["name"])
}

func TestGetDisplay_RotationIndexIsPartOfCacheKey(t *testing.T) {
	store := &handlerStore{screens: map[string]uint64{"lobby": 1}}
	h := newTestHandler(store, 100)

	getDisplay(t, h, "lobby", "")
	getDisplay(t, h, "lobby", "?rotation_index=2")

	assert.Equal(t, 2, store.resolveCalls)
}

func TestGetDisplay_CacheControlHeader(t *testing.T) {
	h := newTestHandler(&handlerStore{screens: map[string]uint64{"lobby": 1}}, 100)

	rec, _ := getDisplay(t, h, "lobby", "")
	assert.Equal(t, "public, s-maxage=20, stale-while-revalidate=40", rec.Header().Get("Cache-Control"))
}

func TestGetDisplay_RateLimited(t *testing.T) {
	h := newTestHandler(&handlerStore{screens: map[string]uint64{"lobby": 1}}, 1)

	rec, _ := getDisplay(t, h, "lobby", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, body := getDisplay(t, h, "lobby", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "too_many_requests", body["error"])
	retryAfter, ok := body["retry_after"].(float64)
	require.True(t, ok)
	assert.GreaterOrEqual(t, retryAfter, float64(1))
	assert.Equal(t, strconv.Itoa(int(retryAfter)), rec.Header().Get("Retry-After"))
}

func TestGetDisplay_RateLimitIsPerIdentifier(t *testing.T) {
	h := newTestHandler(&handlerStore{screens: map[string]uint64{"lobby": 1, "bar": 2}}, 1)

	rec, _ := getDisplay(t, h, "lobby", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = getDisplay(t, h, "bar", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHeartbeat_FirstSessionAllowed(t *testing.T) {
	h := newTestHandler(&handlerStore{screens: map[string]uint64{"lobby": 1}}, 100)

	rec, body := postHeartbeat(t, h, "lobby", `{"session_id":"session-a"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, true, body["allowed"])
}

func TestHeartbeat_SecondSessionDenied(t *testing.T) {
	h := newTestHandler(&handlerStore{screens: map[string]uint64{"lobby": 1}}, 100)

	postHeartbeat(t, h, "lobby", `{"session_id":"session-a"}`)
	_, body := postHeartbeat(t, h, "lobby", `{"session_id":"session-b"}`)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, false, body["allowed"])

	// The incumbent keeps winning.
	_, body = postHeartbeat(t, h, "lobby", `{"session_id":"session-a"}`)
	assert.Equal(t, true, body["allowed"])
}

func TestHeartbeat_InvalidSessionIDRejectedWithoutSideEffects(t *testing.T) {
	h := newTestHandler(&handlerStore{screens: map[string]uint64{"lobby": 1}}, 100)

	for _, payload := range []string{
		`{"session_id":""}`,
		`{"session_id":"   "}`,
		`{"session_id":"` + strings.Repeat("x", 65) + `"}`,
		`{broken`,
	} {
		rec, body := postHeartbeat(t, h, "lobby", payload)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, false, body["ok"])
		assert.Equal(t, false, body["allowed"])
	}
	assert.Equal(t, 0, h.Arbitrator.SessionCount(1), "rejected beats must not register sessions")
}

func TestHeartbeat_UnknownScreen(t *testing.T) {
	h := newTestHandler(&handlerStore{screens: map[string]uint64{}}, 100)

	rec, body := postHeartbeat(t, h, "gone", `{"session_id":"session-a"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["ok"])
}

func TestHeartbeat_DuplicatePublishesAlert(t *testing.T) {
	h := newTestHandler(&handlerStore{screens: map[string]uint64{"lobby": 1}}, 100)
	events := make(chan queue.DuplicateViewerEvent, 1)
	h.PublishAlert = func(_ context.Context, ev queue.DuplicateViewerEvent) error {
		events <- ev
		return nil
	}

	postHeartbeat(t, h, "lobby", `{"session_id":"session-a"}`)
	postHeartbeat(t, h, "lobby", `{"session_id":"session-b"}`)

	select {
	case ev := <-events:
		assert.Equal(t, uint64(1), ev.ScreenID)
		assert.Equal(t, "lobby", ev.PublicID)
		assert.Equal(t, 2, ev.Sessions)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a duplicate-viewer alert")
	}
}

func TestHeartbeat_SingleSessionPublishesNothing(t *testing.T) {
	h := newTestHandler(&handlerStore{screens: map[string]uint64{"lobby": 1}}, 100)
	events := make(chan queue.DuplicateViewerEvent, 1)
	h.PublishAlert = func(_ context.Context, ev queue.DuplicateViewerEvent) error {
		events <- ev
		return nil
	}

	postHeartbeat(t, h, "lobby", `{"session_id":"session-a"}`)
	postHeartbeat(t, h, "lobby", `{"session_id":"session-a"}`)

	select {
	case <-events:
		t.Fatal("no alert expected for a single session")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestResolveStream(t *testing.T) {
	e := echo.New()
	h := newTestHandler(&handlerStore{streamTarget: "lobby-slug"}, 100)

	req := httptest.NewRequest(http.MethodGet, "/v1/display/resolve/ABC123", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/display/resolve/:code")
	c.SetParamNames("code")
	c.SetParamValues("ABC123")

	require.NoError(t, h.ResolveStream(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "https://screens.example.com/display/lobby-slug", body["stream_url"])
}

func TestResolveStream_UnknownCode(t *testing.T) {
	e := echo.New()
	h := newTestHandler(&handlerStore{}, 100)

	req := httptest.NewRequest(http.MethodGet, "/v1/display/resolve/NOPE", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/display/resolve/:code")
	c.SetParamNames("code")
	c.SetParamValues("NOPE")

	require.NoError(t, h.ResolveStream(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
