package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rook-computer/girder/internal/app"
	"github.com/rook-computer/girder/internal/assets"
	"github.com/rook-computer/girder/internal/render"
	"github.com/rook-computer/girder/internal/state"
	"github.com/rook-computer/girder/internal/transport"
	"github.com/rook-computer/girder/internal/web"
)

const simLogPath = "./girder-sim.log"

type options struct {
	ListenAddr string
	DevMode    bool
	StaticDir  string
	IconDir    string
	Scenario   string
	Broker     string
	Drift      time.Duration
	Seed       uint64
	Headless   bool
	Debug      bool
}

func main() {
	defaults, err := web.DefaultServerConfigFromEnv(":8080")
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}

	opts := options{ListenAddr: defaults.ListenAddr, DevMode: defaults.DevMode}
	rootCmd := &cobra.Command{
		Use:   "girder-sim",
		Short: "Run the sign in a terminal with scripted events",
		Long: `girder-sim renders the sign into the terminal and feeds it canned
scenarios, so layouts and animations can be checked without hardware.
Press q or Esc to quit.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}
	flags := rootCmd.Flags()
	flags.StringVar(&opts.ListenAddr, "listen", opts.ListenAddr, "http listen address; also configurable via "+web.EnvListenAddr)
	flags.BoolVar(&opts.DevMode, "dev", opts.DevMode, "enable dev mode; also configurable via "+web.EnvDevMode)
	flags.StringVar(&opts.StaticDir, "static-dir", "", "serve static UI from this directory (optional); when empty, embedded web UI assets are served")
	flags.StringVar(&opts.IconDir, "icon-dir", "", "directory with icon image files")
	flags.StringVar(&opts.Scenario, "scenario", "day", "startup scenario: "+fmt.Sprint(scenarioNames()))
	flags.StringVar(&opts.Broker, "broker", "", "also subscribe to this MQTT broker, e.g. tcp://localhost:1883")
	flags.DurationVar(&opts.Drift, "drift", 5*time.Second, "interval of the random sensor walk (0 disables it)")
	flags.Uint64Var(&opts.Seed, "seed", 1, "seed for animations and the sensor walk")
	flags.BoolVar(&opts.Headless, "headless", false, "do not draw into the terminal; watch /api/v1/frame.png instead")
	flags.BoolVarP(&opts.Debug, "debug", "d", false, "enable debug logging")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "girder-sim:", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		device render.Device
		logger app.Logger
	)
	if opts.Headless {
		device = render.NewNoopDevice()
		logger = app.NewSlogLogger(os.Stderr, opts.Debug)
	} else {
		// The terminal belongs to the preview, so logs go to a file.
		f, err := os.OpenFile(simLogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("open %s: %w", simLogPath, err)
		}
		defer f.Close()
		logger = app.NewFileLogger(f, opts.Debug)
		term := render.NewTermSink()
		term.OnQuit = cancel
		device = term
	}

	store := state.NewStore()
	a := app.New(store, device, app.Options{
		Icons: &assets.Resolver{Dir: opts.IconDir, Logger: logger},
		Seed:  opts.Seed,
		Debug: opts.Debug,
	})
	a.Logger = logger
	a.Sources = append(a.Sources, NewDrift(opts.Drift, opts.Seed))
	if opts.Broker != "" {
		cfg := transport.DefaultMQTTConfig()
		cfg.Broker = opts.Broker
		cfg.ClientIDPrefix = "girder-sim"
		a.Sources = append(a.Sources, transport.NewMQTT(cfg, logger))
	}

	control := NewSimControl(a.Inject, opts.Scenario)

	server := web.NewHTTPServer(web.ServerConfig{ListenAddr: opts.ListenAddr, DevMode: opts.DevMode},
		web.APIV1Deps{Status: store, Inject: a.Inject})
	server.StaticDir = opts.StaticDir
	server.Logger = logger
	server.Mount = func(mux *http.ServeMux) { registerSimEndpoints(mux, control) }
	a.Web = server

	if err := control.Reset(ctx); err != nil {
		return err
	}

	logger.Infof("sim", "girder simulator listening on %s, scenario %s", opts.ListenAddr, control.Current())
	logger.Infof("sim", "API: http://%s/api/v1/", displayAddr(opts.ListenAddr))
	return a.Run(ctx)
}

func displayAddr(addr string) string {
	if addr == "" {
		return "127.0.0.1:8080"
	}
	if addr[0] == ':' {
		return "127.0.0.1" + addr
	}
	return addr
}
