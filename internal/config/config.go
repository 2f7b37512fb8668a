// Package config loads the sign configuration from a TOML file and the
// GIRDER_* environment.
package config

import (
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/rook-computer/girder/internal/font"
	"github.com/rook-computer/girder/internal/transport"
	"github.com/rook-computer/girder/internal/web"
)

const (
	EnvConfigPath   = "GIRDER_CONFIG"
	EnvDevice       = "GIRDER_FB_DEVICE"
	EnvBroker       = "GIRDER_MQTT_BROKER"
	EnvMQTTUser     = "GIRDER_MQTT_USERNAME"
	EnvMQTTPassword = "GIRDER_MQTT_PASSWORD"
)

// Config is the decoded configuration file.
type Config struct {
	Display Display         `toml:"display"`
	MQTT    MQTT            `toml:"mqtt"`
	Web     Web             `toml:"web"`
	Fonts   map[string]Font `toml:"fonts"`
}

type Display struct {
	Device     string     `toml:"device"`
	Width      int        `toml:"width"`
	Height     int        `toml:"height"`
	Brightness Brightness `toml:"brightness"`
}

// Brightness holds the global levels in percent.
type Brightness struct {
	Initial int `toml:"initial"`
	Day     int `toml:"day"`
	Night   int `toml:"night"`
}

type MQTT struct {
	Enabled        bool          `toml:"enabled"`
	Broker         string        `toml:"broker"`
	ClientIDPrefix string        `toml:"client_id_prefix"`
	Username       string        `toml:"username"`
	Password       string        `toml:"password"`
	KeepAlive      time.Duration `toml:"keepalive"`
	ConnectWait    time.Duration `toml:"connect_wait"`
	ConnectWaitMax time.Duration `toml:"connect_wait_max"`
}

type Web struct {
	Listen string `toml:"listen"`
	Dev    bool   `toml:"dev"`
}

// Font replaces the face of one of the builtin fonts. The metrics table
// stays the builtin one.
type Font struct {
	Path string  `toml:"path"`
	Size float64 `toml:"size"`
}

// Default is the configuration used when no file is given.
func Default() Config {
	m := transport.DefaultMQTTConfig()
	return Config{
		Display: Display{
			Device:     "/dev/fb0",
			Width:      128,
			Height:     64,
			Brightness: Brightness{Initial: 10, Day: 50, Night: 25},
		},
		MQTT: MQTT{
			Enabled:        true,
			Broker:         m.Broker,
			ClientIDPrefix: m.ClientIDPrefix,
			KeepAlive:      m.KeepAlive,
			ConnectWait:    m.ConnectWait,
			ConnectWaitMax: m.ConnectWaitMax,
		},
		Web: Web{Listen: ":80"},
	}
}

// Load decodes path over the defaults and then applies the environment.
// An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, errors.Wrapf(err, "parse %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}
			return Config{}, errors.Errorf("%s: unknown keys %s", path, strings.Join(keys, ", "))
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with the GIRDER_* variables that are set.
func (cfg *Config) ApplyEnv() error {
	if v := os.Getenv(EnvDevice); v != "" {
		cfg.Display.Device = v
	}
	if v := os.Getenv(EnvBroker); v != "" {
		cfg.MQTT.Broker = v
	}
	if v := os.Getenv(EnvMQTTUser); v != "" {
		cfg.MQTT.Username = v
	}
	if v := os.Getenv(EnvMQTTPassword); v != "" {
		cfg.MQTT.Password = v
	}
	if v := os.Getenv(web.EnvListenAddr); v != "" {
		cfg.Web.Listen = v
	}
	if v := os.Getenv(web.EnvDevMode); v != "" {
		dev, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(err, "%s must be a boolean (got %q)", web.EnvDevMode, v)
		}
		cfg.Web.Dev = dev
	}
	return nil
}

// Validate rejects values the sign cannot run with.
func (cfg Config) Validate() error {
	if cfg.Display.Width <= 0 || cfg.Display.Height <= 0 {
		return errors.Errorf("display size %dx%d", cfg.Display.Width, cfg.Display.Height)
	}
	b := cfg.Display.Brightness
	for name, v := range map[string]int{"initial": b.Initial, "day": b.Day, "night": b.Night} {
		if v < 0 || v > 100 {
			return errors.Errorf("brightness %s %d out of range 0..100", name, v)
		}
	}
	if cfg.MQTT.Enabled && cfg.MQTT.Broker == "" {
		return errors.New("mqtt broker is empty")
	}
	if cfg.MQTT.ConnectWaitMax < cfg.MQTT.ConnectWait {
		return errors.Errorf("mqtt connect_wait_max %s below connect_wait %s", cfg.MQTT.ConnectWaitMax, cfg.MQTT.ConnectWait)
	}
	for name, f := range cfg.Fonts {
		if font.ByName(name) == nil {
			return errors.Errorf("unknown font %q", name)
		}
		if f.Path == "" {
			return errors.Errorf("font %q has no path", name)
		}
	}
	return nil
}

// MQTTConfig converts the [mqtt] section for the transport.
func (cfg Config) MQTTConfig() transport.MQTTConfig {
	m := transport.DefaultMQTTConfig()
	m.Broker = cfg.MQTT.Broker
	m.ClientIDPrefix = cfg.MQTT.ClientIDPrefix
	m.Username = cfg.MQTT.Username
	m.Password = cfg.MQTT.Password
	if cfg.MQTT.KeepAlive > 0 {
		m.KeepAlive = cfg.MQTT.KeepAlive
	}
	if cfg.MQTT.ConnectWait > 0 {
		m.ConnectWait = cfg.MQTT.ConnectWait
	}
	if cfg.MQTT.ConnectWaitMax > 0 {
		m.ConnectWaitMax = cfg.MQTT.ConnectWaitMax
	}
	return m
}

// ServerConfig converts the [web] section for the HTTP server.
func (cfg Config) ServerConfig() web.ServerConfig {
	return web.ServerConfig{ListenAddr: cfg.Web.Listen, DevMode: cfg.Web.Dev}
}

// FontSet returns the builtin fonts with the configured faces swapped in.
func (cfg Config) FontSet() (font.Set, error) {
	set := font.Builtin()
	names := make([]string, 0, len(cfg.Fonts))
	for name := range cfg.Fonts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		f := cfg.Fonts[name]
		face, err := font.LoadFace(f.Path, f.Size)
		if err != nil {
			return font.Set{}, errors.Wrapf(err, "font %s", name)
		}
		var target *font.Font
		switch name {
		case font.NameDefault:
			target = set.Default
		case font.NameSmall:
			target = set.Small
		case font.NameLarge:
			target = set.Large
		case font.NameClock:
			target = set.Clock
		}
		target.Face = face
	}
	return set, nil
}
