package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	rlog "github.com/plus3/refocus/internal/log"
	"github.com/plus3/refocus/session"
	"github.com/plus3/refocus/tetris"
)

type options struct {
	rounds         int
	seed           uint64
	target         time.Duration
	interval       time.Duration
	rows           int
	cols           int
	gcPauseMetrics bool
	logLevel       string
}

var opts options

var rootCmd = &cobra.Command{
	Use:   "refocus-stress",
	Short: "Plays bot rounds against the puzzle engine and reports timings",
	Long: `refocus-stress drives session rounds with a greedy placement bot on a
simulated clock, then prints a markdown report with outcomes, per tick
timings and memory usage.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if opts.target <= 0 || opts.interval <= 0 {
			return fmt.Errorf("duration and interval must be positive, got %s and %s", opts.target, opts.interval)
		}
		logger := rlog.New("stress", opts.logLevel, os.Stderr)
		report := runStress(opts, logger)

		fmt.Println("\n\n--- Stress Test Report ---")
		if err := report.Generate(os.Stdout); err != nil {
			return fmt.Errorf("generate report: %w", err)
		}
		fmt.Println("--- End of Report ---")
		return nil
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.IntVar(&opts.rounds, "rounds", 20, "number of rounds to play")
	flags.Uint64Var(&opts.seed, "seed", 1, "seed of the first round, later rounds add their index")
	flags.DurationVar(&opts.target, "duration", 2*time.Minute, "simulated length of each round")
	flags.DurationVar(&opts.interval, "interval", 50*time.Millisecond, "simulated time per tick")
	flags.IntVar(&opts.rows, "rows", tetris.DefaultRows, "board rows")
	flags.IntVar(&opts.cols, "cols", tetris.DefaultCols, "board columns")
	flags.BoolVar(&opts.gcPauseMetrics, "gc-pause-metrics", false, "include GC pause metrics in the report")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")
}

// simClock advances only when told to, so rounds run as fast as the CPU
// allows.
type simClock struct {
	now time.Time
}

func (c *simClock) Now() time.Time { return c.now }

func runStress(o options, logger *log.Logger) *Report {
	report := newReport()
	report.Rounds = o.rounds
	report.Seed = o.seed
	report.Target = o.target
	report.Interval = o.interval
	report.Rows = o.rows
	report.Cols = o.cols
	report.GCPauseMetrics = o.gcPauseMetrics

	runtime.ReadMemStats(&report.MemStatsStart)
	logger.Info("starting stress run", "rounds", o.rounds, "target", o.target, "interval", o.interval)

	startTime := time.Now()
	for i := range o.rounds {
		seed := o.seed + uint64(i)
		out, stats := playRound(o, seed, report)
		report.AddRound(out, stats)

		logger.Debug("round done",
			"round", i+1,
			"seed", seed,
			"reason", out.Reason,
			"pieces", out.Result.PiecesLocked,
			"lines", out.Result.LinesCleared)
	}

	report.TotalTime = time.Since(startTime)
	report.TickTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	logger.Info("stress run finished", "took", report.TotalTime, "ticks", report.TotalTicks)
	return report
}

// playRound runs one round to completion: every tick the bot places the
// active piece and the round advances by one interval.
func playRound(o options, seed uint64, report *Report) (session.Outcome, *session.RoundStats) {
	clock := &simClock{now: time.Unix(0, 0)}
	round := session.NewRound(session.RoundConfig{
		Engine: tetris.Config{Rows: o.rows, Cols: o.cols, Seed: seed},
		Target: o.target,
	}, session.WithClock(clock.Now))

	for !round.Done() {
		tickStart := time.Now()

		for _, cmd := range bestPlan(round.State()).commands {
			round.Queue(cmd)
		}
		clock.now = clock.now.Add(o.interval)
		round.Once(o.interval.Seconds())

		report.TickTime.Samples = append(report.TickTime.Samples, time.Since(tickStart))
		report.TotalTicks++
	}

	out, _ := round.Outcome()
	return out, round.Stats()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		rlog.New("stress", "error", os.Stderr).Error("stress run failed", "err", err)
		os.Exit(1)
	}
}
