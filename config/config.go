// Package config loads game and application settings from defaults, an
// optional invaders.yaml, INVADERS_* environment variables and flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/phanxgames/invaders"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Front ends selectable with --frontend.
const (
	FrontendEbiten   = "ebiten"
	FrontendTerminal = "terminal"
	FrontendHeadless = "headless"
)

// ErrUnknownFrontend is returned for a frontend name outside the constants
// above.
var ErrUnknownFrontend = errors.New("unknown frontend")

// Settings is the resolved configuration.
type Settings struct {
	Game invaders.Config

	LogLevel string
	LogFile  string
	Frontend string

	AudioEnabled bool
	Volume       float64

	ShowFPS       bool
	Debug         bool
	Script        string
	ScreenshotDir string
	TPS           int

	// ConfigFile is the file that was read, empty when none was found.
	ConfigFile string
}

func setDefaults(v *viper.Viper) {
	d := invaders.DefaultConfig()

	v.SetDefault("logLevel", "info")
	v.SetDefault("logFile", "")
	v.SetDefault("frontend", FrontendEbiten)
	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.volume", 0.0)
	v.SetDefault("showFPS", false)
	v.SetDefault("debug", false)
	v.SetDefault("script", "")
	v.SetDefault("screenshotDir", "screenshots")
	v.SetDefault("tps", 60)

	v.SetDefault("game.screenWidth", d.ScreenWidth)
	v.SetDefault("game.screenHeight", d.ScreenHeight)
	v.SetDefault("game.playerWidth", d.PlayerWidth)
	v.SetDefault("game.playerHeight", d.PlayerHeight)
	v.SetDefault("game.playerSpeed", d.PlayerSpeed)
	v.SetDefault("game.bulletWidth", d.BulletWidth)
	v.SetDefault("game.bulletHeight", d.BulletHeight)
	v.SetDefault("game.bulletSpeed", d.BulletSpeed)
	v.SetDefault("game.enemyWidth", d.EnemyWidth)
	v.SetDefault("game.enemyHeight", d.EnemyHeight)
	v.SetDefault("game.enemySpeed", d.EnemySpeed)
	v.SetDefault("game.enemyCount", d.EnemyCount)
	v.SetDefault("game.enemyColumns", d.EnemyColumns)
	v.SetDefault("game.margin", d.Margin)
	v.SetDefault("game.padding", d.Padding)
	v.SetDefault("game.fireCooldown", d.FireCooldown.String())
	v.SetDefault("game.freezeOnLoss", d.FreezeOnLoss)
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"log-level":      "logLevel",
	"log-file":       "logFile",
	"frontend":       "frontend",
	"audio":          "audio.enabled",
	"volume":         "audio.volume",
	"fps":            "showFPS",
	"debug":          "debug",
	"script":         "script",
	"screenshot-dir": "screenshotDir",
	"tps":            "tps",
	"enemies":        "game.enemyCount",
	"columns":        "game.enemyColumns",
	"freeze-on-loss": "game.freezeOnLoss",
}

// NewFlagSet declares the command-line flags. Flag defaults only document
// usage; unset flags never override the config file.
func NewFlagSet(name string) *pflag.FlagSet {
	d := invaders.DefaultConfig()
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringP("config", "c", "", "config file (default: invaders.yaml in . or $HOME/.config/invaders)")
	fs.String("log-level", "info", "trace, debug, info, warn or error")
	fs.String("log-file", "", "also write logs to this file")
	fs.StringP("frontend", "f", FrontendEbiten, "ebiten, terminal or headless")
	fs.Bool("audio", true, "play sound effects")
	fs.Float64("volume", 0, "volume offset in beep units (0 is unchanged, -1 halves)")
	fs.Bool("fps", false, "show the FPS counter")
	fs.Bool("debug", false, "scene debug checks and per-frame stats")
	fs.StringP("script", "s", "", "JSON input script to replay")
	fs.String("screenshot-dir", "screenshots", "directory for F12 screenshots")
	fs.Int("tps", 60, "simulation ticks per second")
	fs.Int("enemies", d.EnemyCount, "number of enemies")
	fs.Int("columns", d.EnemyColumns, "enemies per row")
	fs.Bool("freeze-on-loss", d.FreezeOnLoss, "stop the grid once the round is lost")
	return fs
}

// Load resolves settings. fs must already be parsed; it may be nil. When
// searchPaths is empty the working directory and $HOME/.config/invaders are
// searched for invaders.yaml. A missing file is fine; a malformed one is
// not.
func Load(fs *pflag.FlagSet, searchPaths ...string) (Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("INVADERS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for flag, key := range flagKeys {
			if f := fs.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Settings{}, fmt.Errorf("bind flag %s: %w", flag, err)
				}
			}
		}
	}

	explicit := ""
	if fs != nil {
		explicit, _ = fs.GetString("config")
	}
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName("invaders")
		v.SetConfigType("yaml")
		if len(searchPaths) == 0 {
			searchPaths = []string{".", "$HOME/.config/invaders"}
		}
		for _, p := range searchPaths {
			v.AddConfigPath(p)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return decode(v)
}

func decode(v *viper.Viper) (Settings, error) {
	s := Settings{
		LogLevel:      v.GetString("logLevel"),
		LogFile:       v.GetString("logFile"),
		Frontend:      strings.ToLower(v.GetString("frontend")),
		AudioEnabled:  v.GetBool("audio.enabled"),
		Volume:        v.GetFloat64("audio.volume"),
		ShowFPS:       v.GetBool("showFPS"),
		Debug:         v.GetBool("debug"),
		Script:        v.GetString("script"),
		ScreenshotDir: v.GetString("screenshotDir"),
		TPS:           v.GetInt("tps"),
		ConfigFile:    v.ConfigFileUsed(),
		Game: invaders.Config{
			ScreenWidth:  v.GetFloat64("game.screenWidth"),
			ScreenHeight: v.GetFloat64("game.screenHeight"),
			PlayerWidth:  v.GetFloat64("game.playerWidth"),
			PlayerHeight: v.GetFloat64("game.playerHeight"),
			PlayerSpeed:  v.GetFloat64("game.playerSpeed"),
			BulletWidth:  v.GetFloat64("game.bulletWidth"),
			BulletHeight: v.GetFloat64("game.bulletHeight"),
			BulletSpeed:  v.GetFloat64("game.bulletSpeed"),
			EnemyWidth:   v.GetFloat64("game.enemyWidth"),
			EnemyHeight:  v.GetFloat64("game.enemyHeight"),
			EnemySpeed:   v.GetFloat64("game.enemySpeed"),
			EnemyCount:   v.GetInt("game.enemyCount"),
			EnemyColumns: v.GetInt("game.enemyColumns"),
			Margin:       v.GetFloat64("game.margin"),
			Padding:      v.GetFloat64("game.padding"),
			FireCooldown: v.GetDuration("game.fireCooldown"),
			FreezeOnLoss: v.GetBool("game.freezeOnLoss"),
		},
	}

	switch s.Frontend {
	case FrontendEbiten, FrontendTerminal, FrontendHeadless:
	default:
		return Settings{}, fmt.Errorf("%w: %q", ErrUnknownFrontend, s.Frontend)
	}
	if s.Frontend == FrontendHeadless && s.Script == "" {
		return Settings{}, errors.New("headless frontend needs --script")
	}
	if s.TPS <= 0 {
		return Settings{}, fmt.Errorf("tps must be positive, got %d", s.TPS)
	}
	if err := s.Game.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// TickDuration is the fixed simulation step.
func (s Settings) TickDuration() time.Duration {
	return time.Second / time.Duration(s.TPS)
}
