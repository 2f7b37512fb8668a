package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rook-computer/girder/internal/transport"
)

type step struct {
	topic   string
	payload string
}

// scenarios are canned event sequences that put the sign into a
// recognisable state without a broker.
var scenarios = map[string][]step{
	"day": {
		{transport.TopicSun, "above_horizon"},
		{transport.TopicWeatherCurrent, "sunny"},
		{transport.TopicOutdoorTemp, "71.4"},
		{transport.TopicOutdoorDewPoint, "12.5"},
		{transport.TopicOutdoorPM25, "4.2"},
		{transport.TopicLivingRoomTemp, "21.0"},
		{transport.TopicLivingRoomDew, "9.8"},
		{transport.TopicWindSpeed, "3.1"},
		{transport.TopicRainfall, "0.0"},
		{transport.TopicThermostatState, "idle (cool)"},
		{transport.TopicCalendarEvent, "10:00 standup\n12:30 lunch"},
	},
	"night": {
		{transport.TopicSun, "below_horizon"},
		{transport.TopicWeatherCurrent, "partlycloudy"},
		{transport.TopicOutdoorTemp, "48.9"},
		{transport.TopicThermostatState, "heating"},
		{transport.TopicCalendarEvent, "no events"},
	},
	"rain": {
		{transport.TopicWeatherCurrent, "rainy"},
		{transport.TopicRainfall, "0.42"},
		{transport.TopicWindSpeed, "11.7"},
	},
	"snow": {
		{transport.TopicWeatherCurrent, "snowy"},
		{transport.TopicOutdoorTemp, "27.0"},
		{transport.TopicThermostatState, "heating"},
	},
	"storm": {
		{transport.TopicWeatherCurrent, "lightning-rainy"},
		{transport.TopicWindSpeed, "28.3"},
		{transport.TopicOutdoorPM25, "31.0"},
	},
	"forecast": {
		{transport.TopicForecastState, "cloudy"},
		{transport.TopicForecastTemp, "64°"},
	},
	"qr": {
		{transport.TopicSignQR, "WIFI:T:WPA;S:guest;P:welcome;;"},
	},
}

func scenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SimControl plays scenarios into the sign through inject.
type SimControl struct {
	inject          func(ctx context.Context, topic string, payload []byte) error
	startupScenario string
	currentScenario atomic.Value // string
}

func NewSimControl(inject func(context.Context, string, []byte) error, startupScenario string) *SimControl {
	c := &SimControl{inject: inject, startupScenario: strings.TrimSpace(startupScenario)}
	if c.startupScenario == "" {
		c.startupScenario = "day"
	}
	c.currentScenario.Store("")
	return c
}

func (c *SimControl) Current() string {
	return c.currentScenario.Load().(string)
}

// ApplyScenario injects every step of the named scenario in order.
func (c *SimControl) ApplyScenario(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		name = c.startupScenario
	}
	steps, ok := scenarios[name]
	if !ok {
		return fmt.Errorf("unknown scenario %q (have %s)", name, strings.Join(scenarioNames(), ", "))
	}
	for _, s := range steps {
		if err := c.inject(ctx, s.topic, []byte(s.payload)); err != nil {
			return fmt.Errorf("scenario %s: %s: %w", name, s.topic, err)
		}
	}
	c.currentScenario.Store(name)
	return nil
}

func (c *SimControl) Reset(ctx context.Context) error {
	return c.ApplyScenario(ctx, c.startupScenario)
}

// Drift is an event source that random-walks the outdoor sensors so
// the text boosts and alert colors can be watched.
type Drift struct {
	Period time.Duration

	rng  *rand.Rand
	temp float64
	pm25 float64
	wind float64
}

func NewDrift(period time.Duration, seed uint64) *Drift {
	return &Drift{
		Period: period,
		rng:    rand.New(rand.NewPCG(seed, seed>>1|1)),
		temp:   60,
		pm25:   10,
		wind:   5,
	}
}

func (d *Drift) Run(ctx context.Context, events chan<- transport.Event) error {
	if d.Period <= 0 {
		<-ctx.Done()
		return nil
	}
	ticker := time.NewTicker(d.Period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		for _, ev := range d.next() {
			if err := transport.Send(ctx, events, ev); err != nil {
				return nil
			}
		}
	}
}

func (d *Drift) next() []transport.Event {
	d.temp = clamp(d.temp+d.rng.Float64()*4-2, -20, 110)
	d.pm25 = clamp(d.pm25+d.rng.Float64()*6-3, 0, 60)
	d.wind = clamp(d.wind+d.rng.Float64()*4-2, 0, 40)
	now := time.Now()
	return []transport.Event{
		{Topic: transport.TopicOutdoorTemp, Payload: formatFloat(d.temp), Received: now},
		{Topic: transport.TopicOutdoorPM25, Payload: formatFloat(d.pm25), Received: now},
		{Topic: transport.TopicWindSpeed, Payload: formatFloat(d.wind), Received: now},
	}
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}

func formatFloat(v float64) []byte {
	return []byte(strconv.FormatFloat(v, 'f', 1, 64))
}

func registerSimEndpoints(mux *http.ServeMux, control *SimControl) {
	mux.HandleFunc("/sim/reset", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		if err := control.Reset(r.Context()); err != nil {
			writeSimError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeSimJSON(w, http.StatusOK, map[string]any{"ok": true, "scenario": control.Current()})
	})

	mux.HandleFunc("/sim/scenarios", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		writeSimJSON(w, http.StatusOK, map[string]any{"scenarios": scenarioNames(), "current": control.Current()})
	})

	mux.HandleFunc("/sim/scenario/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		name := strings.Trim(strings.TrimPrefix(r.URL.Path, "/sim/scenario/"), "/")
		if err := control.ApplyScenario(r.Context(), name); err != nil {
			writeSimError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeSimJSON(w, http.StatusOK, map[string]any{"ok": true, "scenario": control.Current()})
	})
}

func writeSimJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSimError(w http.ResponseWriter, status int, message string) {
	writeSimJSON(w, status, map[string]any{"error": message})
}
