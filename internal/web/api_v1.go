package web

import (
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"net/http"
	"strconv"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/rook-computer/girder/internal/state"
	"github.com/rook-computer/girder/internal/transport"
	"github.com/rook-computer/girder/internal/widget"
)

const (
	maxEventBody = 4 << 10
	maxScale     = 8
)

// StatusReader is implemented by state.Store.
type StatusReader interface {
	Snapshot() state.Status
	Frame() *image.RGBA
}

// APIV1Deps are the collaborators of the API handlers. The API never
// touches widgets; everything it changes goes through Inject.
type APIV1Deps struct {
	Status StatusReader
	Inject func(ctx context.Context, topic string, payload []byte) error
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type statusResponse struct {
	Phase      string    `json:"phase"`
	Brightness int       `json:"brightness"`
	Daytime    bool      `json:"daytime"`
	Events     uint64    `json:"events"`
	LastTopic  string    `json:"last_topic"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type eventRequest struct {
	Topic   string `json:"topic"`
	Payload string `json:"payload"`
}

type brightnessRequest struct {
	Percent int `json:"percent"`
}

func apiV1Router(deps APIV1Deps) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) { handleStatus(w, r, deps) })
	mux.HandleFunc("/widgets", func(w http.ResponseWriter, r *http.Request) { handleWidgets(w, r, deps) })
	mux.HandleFunc("/frame.png", func(w http.ResponseWriter, r *http.Request) { handleFrame(w, r, deps) })
	mux.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) { handleEvent(w, r, deps) })
	mux.HandleFunc("/brightness", func(w http.ResponseWriter, r *http.Request) { handleBrightness(w, r, deps) })
	return mux
}

func handleStatus(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if !requireMethod(w, r, http.MethodGet) || !requireStatus(w, deps) {
		return
	}
	snap := deps.Status.Snapshot()
	writeJSON(w, http.StatusOK, statusResponse{
		Phase:      snap.Phase.String(),
		Brightness: snap.Brightness,
		Daytime:    snap.Daytime,
		Events:     snap.Events,
		LastTopic:  snap.LastTopic,
		UpdatedAt:  snap.UpdatedAt,
	})
}

func handleWidgets(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if !requireMethod(w, r, http.MethodGet) || !requireStatus(w, deps) {
		return
	}
	widgets := deps.Status.Snapshot().Widgets
	if widgets == nil {
		widgets = []widget.Info{}
	}
	writeJSON(w, http.StatusOK, widgets)
}

// handleFrame serves the last presented canvas as PNG, optionally
// enlarged with ?scale=N.
func handleFrame(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if !requireMethod(w, r, http.MethodGet) || !requireStatus(w, deps) {
		return
	}
	frame := deps.Status.Frame()
	if frame == nil {
		writeAPIError(w, http.StatusServiceUnavailable, "no_frame", "no frame rendered yet")
		return
	}

	scale := 1
	if raw := r.URL.Query().Get("scale"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxScale {
			writeAPIError(w, http.StatusBadRequest, "bad_scale", "scale must be between 1 and 8")
			return
		}
		scale = n
	}

	var img image.Image = frame
	if scale > 1 {
		b := frame.Bounds()
		dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
		xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), frame, b, xdraw.Src, nil)
		img = dst
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_ = png.Encode(w, img)
}

func handleEvent(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if !requireMethod(w, r, http.MethodPost) || !requireInject(w, deps) {
		return
	}
	var req eventRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxEventBody)).Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if req.Topic == "" {
		writeAPIError(w, http.StatusBadRequest, "bad_request", "topic is required")
		return
	}
	inject(w, r, deps, req.Topic, []byte(req.Payload))
}

func handleBrightness(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if !requireMethod(w, r, http.MethodPost) || !requireInject(w, deps) {
		return
	}
	var req brightnessRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxEventBody)).Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if req.Percent < 0 || req.Percent > 100 {
		writeAPIError(w, http.StatusBadRequest, "bad_request", "percent must be between 0 and 100")
		return
	}
	inject(w, r, deps, transport.TopicSignBrightness, []byte(strconv.Itoa(req.Percent)))
}

func inject(w http.ResponseWriter, r *http.Request, deps APIV1Deps, topic string, payload []byte) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := deps.Inject(ctx, topic, payload); err != nil {
		writeAPIError(w, http.StatusServiceUnavailable, "queue_full", err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, okResponse{OK: true})
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return false
	}
	return true
}

func requireStatus(w http.ResponseWriter, deps APIV1Deps) bool {
	if deps.Status == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "status not configured")
		return false
	}
	return true
}

func requireInject(w http.ResponseWriter, deps APIV1Deps) bool {
	if deps.Inject == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "event injection not configured")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
