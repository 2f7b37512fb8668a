package web

import (
	"context"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/girder/internal/state"
	"github.com/rook-computer/girder/internal/transport"
	"github.com/rook-computer/girder/internal/widget"
)

type injected struct {
	topic   string
	payload string
}

type injector struct {
	mu  sync.Mutex
	got []injected
}

func (i *injector) inject(_ context.Context, topic string, payload []byte) error {
	i.mu.Lock()
	i.got = append(i.got, injected{topic, string(payload)})
	i.mu.Unlock()
	return nil
}

func (i *injector) events() []injected {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]injected(nil), i.got...)
}

func newTestServer(t *testing.T) (*httptest.Server, *state.Store, *injector) {
	t.Helper()
	store := state.NewStore()
	inj := &injector{}
	srv := &HTTPServer{API: APIV1Deps{Status: store, Inject: inj.inject}, DevMode: true}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, store, inj
}

func TestStatus(t *testing.T) {
	ts, store, _ := newTestServer(t)
	store.SetPhase(state.RUNNING)
	store.Publish(state.Status{Brightness: 25, Events: 7, LastTopic: "weather/sun"})

	resp, err := http.Get(ts.URL + "/api/v1/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "running", body["phase"])
	assert.Equal(t, float64(25), body["brightness"])
	assert.Equal(t, float64(7), body["events"])
	assert.Equal(t, "weather/sun", body["last_topic"])
}

func TestWidgets(t *testing.T) {
	ts, store, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/widgets")
	require.NoError(t, err)
	var empty []widget.Info
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&empty))
	resp.Body.Close()
	assert.Empty(t, empty)

	store.Publish(state.Status{Widgets: []widget.Info{{Name: "houseTemp", Active: true, Text: "72°"}}})
	resp, err = http.Get(ts.URL + "/api/v1/widgets")
	require.NoError(t, err)
	defer resp.Body.Close()
	var widgets []widget.Info
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&widgets))
	require.Len(t, widgets, 1)
	assert.Equal(t, "72°", widgets[0].Text)
}

func TestFrame(t *testing.T) {
	ts, store, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/frame.png")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	store.UpdateFrame(image.NewRGBA(image.Rect(0, 0, 128, 64)))
	resp, err = http.Get(ts.URL + "/api/v1/frame.png?scale=2")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	img, err := png.Decode(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 256, 128), img.Bounds())

	resp, err = http.Get(ts.URL + "/api/v1/frame.png?scale=99")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPostEvent(t *testing.T) {
	ts, _, got := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/v1/events", "application/json",
		strings.NewReader(`{"topic":"weather/sun","payload":"below_horizon"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, []injected{{"weather/sun", "below_horizon"}}, got.events())

	resp, err = http.Post(ts.URL+"/api/v1/events", "application/json", strings.NewReader(`{"payload":"x"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/api/v1/events")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestPostBrightness(t *testing.T) {
	ts, _, got := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/v1/brightness", "application/json", strings.NewReader(`{"percent":40}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, []injected{{transport.TopicSignBrightness, "40"}}, got.events())

	resp, err = http.Post(ts.URL+"/api/v1/brightness", "application/json", strings.NewReader(`{"percent":140}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDevCORSPreflight(t *testing.T) {
	ts, _, _ := newTestServer(t)
	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/v1/events", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestEmbeddedUI(t *testing.T) {
	ts, _, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServerConfigFromEnv(t *testing.T) {
	t.Setenv(EnvListenAddr, ":9999")
	t.Setenv(EnvDevMode, "true")
	cfg, err := DefaultServerConfigFromEnv(":80")
	require.NoError(t, err)
	assert.Equal(t, ServerConfig{ListenAddr: ":9999", DevMode: true}, cfg)

	t.Setenv(EnvDevMode, "maybe")
	_, err = DefaultServerConfigFromEnv(":80")
	assert.Error(t, err)
}

func TestMountExtraRoutes(t *testing.T) {
	srv := &HTTPServer{Mount: func(mux *http.ServeMux) {
		mux.HandleFunc("/extra", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, okResponse{OK: true})
		})
	}}
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/extra")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
