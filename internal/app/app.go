package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rook-computer/girder/internal/assets"
	"github.com/rook-computer/girder/internal/font"
	"github.com/rook-computer/girder/internal/render"
	"github.com/rook-computer/girder/internal/state"
	"github.com/rook-computer/girder/internal/transport"
	"github.com/rook-computer/girder/internal/web"
)

const (
	// DefaultPollInterval bounds how long the loop waits for an event
	// before ticking.
	DefaultPollInterval = 200 * time.Millisecond

	eventQueueSize = 64
)

// App wires the event sources and the web server to the single driver
// loop that owns the dashboard and the device.
type App struct {
	Store     *state.Store
	Device    render.Device
	Dashboard *Dashboard
	Sources   []transport.Source
	Web       web.Server
	Logger    Logger

	PollInterval time.Duration

	// Now is replaced in tests.
	Now func() time.Time

	events chan transport.Event
}

// Options collects what New needs besides the device.
type Options struct {
	Icons  assets.IconResolver
	Fonts  font.Set
	Levels BrightnessLevels
	Seed   uint64
	Debug  bool
}

func New(store *state.Store, device render.Device, opts Options) *App {
	if opts.Icons == nil {
		opts.Icons = &assets.Resolver{}
	}
	if opts.Fonts.Default == nil {
		opts.Fonts = font.Builtin()
	}
	if opts.Levels == (BrightnessLevels{}) {
		opts.Levels = DefaultBrightnessLevels()
	}
	if opts.Seed == 0 {
		opts.Seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed>>1|1))
	dash := NewDashboard(opts.Icons, opts.Fonts, opts.Levels, rng)
	dash.Output = device
	if opts.Debug {
		for _, e := range dash.Manager.Widgets() {
			e.Base().SetDebug(true)
		}
	}
	return &App{
		Store:        store,
		Device:       device,
		Dashboard:    dash,
		Logger:       NoopLogger{},
		PollInterval: DefaultPollInterval,
		Now:          time.Now,
		events:       make(chan transport.Event, eventQueueSize),
	}
}

// Events is where sources and the web API push inbound messages.
func (app *App) Events() chan<- transport.Event { return app.events }

// Inject queues one event, blocking until there is room or ctx is done.
func (app *App) Inject(ctx context.Context, topic string, payload []byte) error {
	return transport.Send(ctx, app.events, transport.Event{Topic: topic, Payload: payload})
}

// Run starts the device, the sources and the web server and drives the
// dashboard until ctx is cancelled or a component fails fatally.
func (app *App) Run(ctx context.Context) error {
	app.Dashboard.Logger = app.Logger
	if err := app.Device.Start(ctx); err != nil {
		app.Logger.Errorf("app", "device start error: %v", err)
		app.Store.SetPhase(state.ERROR)
		return err
	}
	defer func() {
		if err := app.Device.Stop(); err != nil {
			app.Logger.Errorf("app", "device stop error: %v", err)
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	for _, src := range app.Sources {
		g.Go(func() error {
			if err := src.Run(gctx, app.events); err != nil {
				app.Logger.Errorf("app", "event source stopped: %v", err)
				return err
			}
			return nil
		})
	}
	if app.Web != nil {
		g.Go(func() error {
			if err := app.Web.Start(gctx); err != nil {
				return fmt.Errorf("web: %w", err)
			}
			<-gctx.Done()
			return app.Web.Stop()
		})
	}
	g.Go(func() error { return app.loop(gctx) })

	err := g.Wait()
	app.Store.SetPhase(state.STOPPED)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		app.Store.SetPhase(state.ERROR)
	}
	return err
}

func (app *App) loop(ctx context.Context) error {
	rctx := app.Dashboard.Context(app.Device, app.Now())
	if err := app.Dashboard.Setup(rctx); err != nil {
		app.Logger.Errorf("app", "dashboard setup: %v", err)
	}
	app.Store.SetPhase(state.RUNNING)
	app.present()

	timer := time.NewTimer(app.PollInterval)
	defer timer.Stop()
	for {
		var ev *transport.Event
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e := <-app.events:
			ev = &e
		case <-timer.C:
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(app.PollInterval)

		rctx = app.Dashboard.Context(app.Device, app.Now())
		if ev != nil {
			app.Dashboard.OnEvent(rctx, *ev)
		}
		app.Dashboard.Tick(rctx)
		app.present()
	}
}

// present flushes the device and publishes the status snapshot.
func (app *App) present() {
	if err := app.Device.Flush(); err != nil {
		app.Logger.Errorf("app", "flush: %v", err)
	}
	d := app.Dashboard
	app.Store.Publish(state.Status{
		Brightness: d.Brightness(),
		Daytime:    d.Daytime(),
		Events:     d.Events(),
		LastTopic:  d.LastTopic(),
		UpdatedAt:  app.Now(),
		Widgets:    d.Manager.Infos(),
	})
	app.Store.UpdateFrame(app.Device.Snapshot())
}
