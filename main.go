package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rook-computer/girder/internal/app"
	"github.com/rook-computer/girder/internal/assets"
	"github.com/rook-computer/girder/internal/config"
	"github.com/rook-computer/girder/internal/render"
	"github.com/rook-computer/girder/internal/state"
	"github.com/rook-computer/girder/internal/system"
	"github.com/rook-computer/girder/internal/transport"
	"github.com/rook-computer/girder/internal/web"
)

const (
	envStdioLog  = "GIRDER_STDIO_LOG"
	debugLogPath = "./girder-debug.log"

	brightnessStep = 10
)

type options struct {
	ConfigPath string
	Debug      bool
	StdioLog   string
	NoMQTT     bool
	IconDir    string
	StaticDir  string
	Seed       uint64
}

func main() {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "girder",
		Short: "Drive the pixel-matrix status sign",
		Long: `girder subscribes to home sensor topics and renders them on a 128x64
LED matrix attached as a Linux framebuffer.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}
	rootCmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", os.Getenv(config.EnvConfigPath), "TOML config file; also configurable via "+config.EnvConfigPath)
	rootCmd.Flags().BoolVarP(&opts.Debug, "debug", "d", false, "enable debug logging and append it to "+debugLogPath)
	rootCmd.Flags().StringVar(&opts.StdioLog, "stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via "+envStdioLog)
	rootCmd.Flags().BoolVar(&opts.NoMQTT, "no-mqtt", false, "do not connect to the broker; events arrive through the web API only")
	rootCmd.Flags().StringVar(&opts.IconDir, "icon-dir", "", "directory with icon image files that override or extend the builtin icons")
	rootCmd.Flags().StringVar(&opts.StaticDir, "static-dir", "", "serve the web UI from this directory instead of the embedded assets")
	rootCmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "seed for the weather animations (0 picks one from the clock)")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "girder:", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	// Panics and stray prints go to a file so crashes are diagnosable while
	// the console is in graphics mode.
	stdioPath := opts.StdioLog
	if stdioPath == "" {
		stdioPath = os.Getenv(envStdioLog)
	}
	if err := redirectStdIO(stdioPath); err != nil {
		fmt.Fprintln(os.Stderr, "stdio log redirect error:", err)
	}

	logger := newLogger(opts.Debug)

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	fonts, err := cfg.FontSet()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	render.CanvasWidth, render.CanvasHeight = cfg.Display.Width, cfg.Display.Height
	device := render.NewFBSink(cfg.Display.Device)

	store := state.NewStore()
	a := app.New(store, device, app.Options{
		Icons: &assets.Resolver{Dir: opts.IconDir, Logger: logger},
		Fonts: fonts,
		Levels: app.BrightnessLevels{
			Initial: cfg.Display.Brightness.Initial,
			Day:     cfg.Display.Brightness.Day,
			Night:   cfg.Display.Brightness.Night,
		},
		Seed:  opts.Seed,
		Debug: opts.Debug,
	})
	a.Logger = logger

	if cfg.MQTT.Enabled && !opts.NoMQTT {
		a.Sources = append(a.Sources, transport.NewMQTT(cfg.MQTTConfig(), logger))
	} else {
		logger.Infof("main", "mqtt disabled")
	}

	server := web.NewHTTPServer(cfg.ServerConfig(), web.APIV1Deps{Status: store, Inject: a.Inject})
	server.StaticDir = opts.StaticDir
	server.Logger = logger
	a.Web = server

	console := system.Console{Logger: logger}
	console.Acquire()
	defer console.Release()

	system.WatchKeys(ctx, logger, map[uint16]func(){
		system.KeyF4: func() {
			logger.Infof("main", "F4 pressed, exiting")
			cancel()
		},
		system.KeyF5: func() { inject(ctx, a, logger, transport.TopicDebugWidget, "*") },
		system.KeyF6: func() { stepBrightness(ctx, a, store, logger, -brightnessStep) },
		system.KeyF7: func() { stepBrightness(ctx, a, store, logger, brightnessStep) },
	})

	logger.Infof("main", "girder starting on %s (%dx%d)", cfg.Display.Device, cfg.Display.Width, cfg.Display.Height)
	return a.Run(ctx)
}

func newLogger(debug bool) app.Logger {
	var logger app.Logger = app.NewSlogLogger(os.Stderr, debug)
	if !debug {
		return logger
	}
	f, err := os.OpenFile(debugLogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		logger.Errorf("main", "debug log open error: %v", err)
		return logger
	}
	logger = app.MultiLogger{logger, app.NewFileLogger(f, true)}
	logger.Infof("main", "debug logging enabled")
	return logger
}

// stepBrightness injects the current brightness moved by delta. The
// dashboard clamps the result.
func stepBrightness(ctx context.Context, a *app.App, store *state.Store, logger app.Logger, delta int) {
	level := store.Snapshot().Brightness + delta
	if level < 0 {
		level = 0
	}
	inject(ctx, a, logger, transport.TopicSignBrightness, strconv.Itoa(level))
}

func inject(ctx context.Context, a *app.App, logger app.Logger, topic, payload string) {
	if err := a.Inject(ctx, topic, []byte(payload)); err != nil {
		logger.Warnf("main", "inject %s: %v", topic, err)
	}
}
