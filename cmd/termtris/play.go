package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/termtris/internal/audio"
	"github.com/KirkDiggler/termtris/internal/entities/tetromino"
	"github.com/KirkDiggler/termtris/internal/orchestrators/game"
	"github.com/KirkDiggler/termtris/internal/pkg/clock"
	"github.com/KirkDiggler/termtris/internal/pkg/idgen"
	"github.com/KirkDiggler/termtris/internal/services/progression"
	"github.com/KirkDiggler/termtris/internal/services/spawner"
	"github.com/KirkDiggler/termtris/internal/ui/terminal"
)

var (
	playWidth     int
	playHeight    int
	playPlayer    string
	playRedisAddr string
	playLogFile   string
	playNoSound   bool
	playDebug     bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game in the terminal",
	Long: `Play a game in the terminal. Arrows or h/l move, down or j drops,
up or x rotates clockwise, z rotates anti-clockwise, q quits.`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&playWidth, "width", game.DefaultWidth, "well width in cells")
	playCmd.Flags().IntVar(&playHeight, "height", game.DefaultHeight, "well height in cells")
	playCmd.Flags().StringVar(&playPlayer, "player", defaultPlayerName(), "name recorded on the leaderboard")
	playCmd.Flags().StringVar(&playRedisAddr, "redis-addr", "", "Redis address for the leaderboard (in-memory when empty)")
	playCmd.Flags().StringVar(&playLogFile, "log-file", "", "write logs to this file")
	playCmd.Flags().BoolVar(&playNoSound, "no-sound", false, "disable sound")
	playCmd.Flags().BoolVar(&playDebug, "debug", false, "log at debug level")
}

func defaultPlayerName() string {
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return game.DefaultPlayer
}

func runPlay(cmd *cobra.Command, args []string) error {
	closeLog, err := setupLogging(playLogFile, playDebug)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	repo, closeRepo := openPlayScores(ctx, playRedisAddr)
	defer closeRepo()

	bus := events.NewBus()

	randomizer, err := spawner.NewDiceRandomizer(&spawner.Config{
		Roller:        dice.DefaultRoller,
		RerollRepeats: true,
	})
	if err != nil {
		return err
	}

	orchestrator, err := game.NewOrchestrator(&game.Config{
		Width:       playWidth,
		Height:      playHeight,
		SpawnPivot:  tetromino.Cell{Row: game.DefaultSpawnPivot.Row, Col: playWidth / 2},
		Progression: progression.DefaultConfig(),
		Randomizer:  randomizer,
		EventBus:    bus,
		ScoreRepo:   repo,
		Clock:       clock.New(),
		IDGenerator: idgen.NewUUID("game"),
	})
	if err != nil {
		return err
	}

	player := openPlayer(playNoSound)
	defer player.Close()
	detach := audio.Attach(bus, player)
	defer detach()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	finish := sync.OnceFunc(screen.Fini)
	defer finish()
	screen.HideCursor()

	final, err := runLoop(ctx, &loopConfig{
		Game:     orchestrator,
		Input:    terminal.NewInput(screen),
		Drawer:   terminal.NewRenderer(screen),
		Player:   playPlayer,
		Tick:     frameTick,
		OnResize: screen.Sync,
	})
	finish()
	if err != nil {
		return err
	}

	if final != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: score %d, lines %d, level %d\n",
			final.Player, final.Progression.Score, final.Progression.LinesCleared, final.Progression.Level)
	}
	return nil
}

func openPlayer(disabled bool) audio.Player {
	if disabled {
		return audio.Nop{}
	}

	speaker, err := audio.NewSpeaker(-1)
	if err != nil {
		slog.Warn("Audio unavailable, playing silently", "error", err)
		return audio.Nop{}
	}
	return speaker
}
