package main

import (
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/plus3/refocus/internal/config"
	rlog "github.com/plus3/refocus/internal/log"
	"github.com/plus3/refocus/protocol"
	"github.com/plus3/refocus/session"
	"github.com/plus3/refocus/session/debugui"
	debugui_ebiten "github.com/plus3/refocus/session/debugui/ebiten"
)

const windowTitle = "Refocus"

var (
	configFile string
	v          = config.New()
)

var rootCmd = &cobra.Command{
	Use:   "refocus",
	Short: "Guided memory reactivation session with a falling-block puzzle",
	Long: `refocus walks through one session: a short memory reactivation,
three mental rotation questions, a timed puzzle round and a self-report.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&configFile, "config", "", "config file (yaml, toml or json)")
	flags.Int("rows", 0, "board rows")
	flags.Int("cols", 0, "board columns")
	flags.Int("gravity", 0, "gravity interval in milliseconds")
	flags.Int("target", 0, "round length in minutes")
	flags.Int("reactivation", 0, "reactivation length in seconds (20, 30 or 40)")
	flags.Uint64("seed", 0, "piece supply seed, 0 picks one at random")
	flags.String("emergency-note", "", "note shown before the session starts")
	flags.Bool("debug", false, "enable the ImGui debug overlay (F1 toggles)")
	flags.String("log-level", "", "log level: debug, info, warn or error")

	bind := map[string]string{
		"engine.rows":              "rows",
		"engine.cols":              "cols",
		"engine.gravity_ms":        "gravity",
		"engine.seed":              "seed",
		"session.target_min":       "target",
		"session.reactivation_sec": "reactivation",
		"session.emergency_note":   "emergency-note",
		"ui.debug":                 "debug",
		"log.level":                "log-level",
	}
	for key, name := range bind {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(v, configFile)
	if err != nil {
		return err
	}

	logger := rlog.New("refocus", cfg.Log.Level, os.Stdout)
	logger.Info("config loaded", "config", fmt.Sprintf("%+v", cfg))

	flow, err := protocol.NewFlow(cfg.ProtocolSettings(), protocol.WithLogger(logger))
	if err != nil {
		return err
	}

	game := newGame(cfg, flow, logger, time.Now)
	if err := game.start(); err != nil {
		return err
	}

	width, height := windowSize(cfg.Engine.Rows, cfg.Engine.Cols, cfg.UI.CellSize)
	if cfg.UI.Debug {
		current := func() *session.Round { return game.currentRound() }
		overlay := debugui.NewOverlay(
			debugui.NewRoundInspector(current).Item(),
			debugui.NewPerformanceStats(240, current).Item(debugui.NewFrameTimer()),
		)
		game.imgui = debugui_ebiten.NewImguiBackend(windowTitle, width, height, overlay)
	} else {
		ebiten.SetWindowSize(width, height)
		ebiten.SetWindowTitle(windowTitle)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("run game: %w", err)
	}

	if status := flow.Status(); status.InProgress() {
		if err := flow.Cancel(protocol.CancelUser); err != nil {
			return err
		}
	}
	logger.Info("exiting", "records", len(flow.Records()))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		rlog.New("refocus", "error", os.Stderr).Error("refocus failed", "err", err)
		os.Exit(1)
	}
}
