// Command invaders runs the game in a window, a terminal or headless from
// an input script.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/invaders"
	"github.com/phanxgames/invaders/assets"
	"github.com/phanxgames/invaders/audio"
	"github.com/phanxgames/invaders/config"
	"github.com/phanxgames/invaders/ecs"
	"github.com/phanxgames/invaders/game"
	"github.com/phanxgames/invaders/logging"
	"github.com/phanxgames/invaders/term"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/yohamta/donburi"
)

const windowTitle = "Invaders"

func main() {
	boot := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	fs := config.NewFlagSet("invaders")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		boot.Fatal().Err(err).Msg("parse flags")
	}
	settings, err := config.Load(fs)
	if err != nil {
		boot.Fatal().Err(err).Msg("load config")
	}

	log, closer, err := logging.Setup(logging.Options{
		Level:    settings.LogLevel,
		File:     settings.LogFile,
		Console:  settings.Frontend != config.FrontendTerminal,
		Frontend: settings.Frontend,
	})
	if err != nil {
		closer.Close()
		boot.Fatal().Err(err).Msg("set up logging")
	}

	if settings.ConfigFile != "" {
		log.Info().Str("file", settings.ConfigFile).Msg("config loaded")
	}

	os.Exit(finish(log, closer, run(settings, log)))
}

// finish logs a run error and releases the log file. It returns the
// process exit code.
func finish(log zerolog.Logger, closer io.Closer, err error) int {
	code := 0
	if err != nil {
		log.Error().Err(err).Msg("invaders")
		code = 1
	}
	if cerr := closer.Close(); cerr != nil {
		fmt.Fprintf(os.Stderr, "close log file: %v\n", cerr)
	}
	return code
}

func run(settings config.Settings, log zerolog.Logger) error {
	world, err := invaders.NewWorld(settings.Game)
	if err != nil {
		return err
	}
	world.SetLogger(logging.Sampled(log).With().Str("component", "world").Logger())

	ecsWorld := donburi.NewWorld()
	world.SetEventSink(ecs.NewDonburiSink(ecsWorld))
	board := ecs.NewScoreboard(ecsWorld)
	defer board.Close()

	// The terminal owns stdout until it shuts down, so results wait.
	results := &announcer{out: os.Stdout, deferred: settings.Frontend == config.FrontendTerminal}
	world.On(invaders.EventWin, func(invaders.Event) { results.say("You win!") })
	world.On(invaders.EventLose, func(invaders.Event) { results.say("You lose!") })
	defer results.flush()

	defer func() {
		board.Process()
		s := board.Score()
		log.Info().
			Int("points", s.Points).
			Int("kills", s.Kills).
			Int("shots", s.Shots).
			Str("result", s.Result.String()).
			Msg("game over")
	}()

	switch settings.Frontend {
	case config.FrontendHeadless:
		return runHeadless(settings, world, log)
	case config.FrontendTerminal:
		sound := startAudio(settings, log)
		defer sound.Cleanup()
		sound.Attach(world)
		return runTerminal(settings, world, board, log)
	default:
		sound := startAudio(settings, log)
		defer sound.Cleanup()
		return runWindow(settings, world, board, sound, log)
	}
}

func startAudio(settings config.Settings, log zerolog.Logger) *audio.SoundManager {
	sound := audio.NewSoundManager(log, settings.AudioEnabled, settings.Volume)
	if err := sound.Initialize(); err != nil {
		log.Debug().Err(err).Msg("audio init")
	}
	return sound
}

func runHeadless(settings config.Settings, world *invaders.World, log zerolog.Logger) error {
	data, err := os.ReadFile(settings.Script)
	if err != nil {
		return fmt.Errorf("read input script: %w", err)
	}
	runner, err := invaders.LoadScript(data)
	if err != nil {
		return err
	}
	ticks := invaders.RunHeadless(world, runner, settings.TickDuration().Seconds())
	log.Info().Int("ticks", ticks).Str("script", settings.Script).Msg("script finished")
	return nil
}

func runTerminal(settings config.Settings, world *invaders.World, board *ecs.Scoreboard, log zerolog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fe := term.New(screen, world, term.Options{
		Tick:   settings.TickDuration(),
		Logger: log,
		Status: func() string {
			board.Process()
			return fmt.Sprintf("SCORE %d", board.Score().Points)
		},
		OnReset: board.Reset,
	})
	err = fe.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runWindow(settings config.Settings, world *invaders.World, board *ecs.Scoreboard, sound *audio.SoundManager, log zerolog.Logger) error {
	images, err := assets.Load()
	if err != nil {
		return err
	}
	g := game.New(world, images, game.Options{
		TPS:           settings.TPS,
		ShowFPS:       settings.ShowFPS,
		Debug:         settings.Debug,
		ScreenshotDir: settings.ScreenshotDir,
		Logger:        log,
		Sound:         sound,
		Score:         board,
	})
	defer g.Close()
	return game.Run(g, windowTitle, settings.TPS)
}

// announcer prints round results, holding them back while deferred.
type announcer struct {
	out      io.Writer
	deferred bool
	pending  []string
}

func (a *announcer) say(msg string) {
	if a.deferred {
		a.pending = append(a.pending, msg)
		return
	}
	fmt.Fprintln(a.out, msg)
}

func (a *announcer) flush() {
	for _, msg := range a.pending {
		fmt.Fprintln(a.out, msg)
	}
	a.pending = nil
}
