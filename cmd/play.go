package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bep/debounce"
	"github.com/charmbracelet/log"
	"github.com/jsphweid/maestro/constants"
	"github.com/jsphweid/maestro/file"
	"github.com/jsphweid/maestro/midi"
	"github.com/jsphweid/maestro/model"
	"github.com/jsphweid/maestro/player"
	"github.com/jsphweid/maestro/status"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

var (
	flagIn          string
	flagOutName     string
	flagSensitivity float64
	flagDebounce    time.Duration
	flagDryRun      bool
	flagLoop        bool
	flagStatusAddr  string
)

func init() {
	playCmd.Flags().StringVar(&flagDir, "dir", constants.GetMidiDir(), "Directory searched for .mid/.midi files")
	playCmd.Flags().StringVar(&flagIn, "in", "", "Input port number or name fragment (default: first port)")
	playCmd.Flags().StringVar(&flagOutName, "out-name", constants.GetVirtualPortName(), "Name of the virtual output port")
	playCmd.Flags().Float64Var(&flagSensitivity, "sensitivity", constants.GetSensitivity(), "Largest gap in seconds between notes of one chord")
	playCmd.Flags().DurationVar(&flagDebounce, "debounce", constants.GetDebounce(), "Input ignored after each chord")
	playCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print chords instead of sending them")
	playCmd.Flags().BoolVar(&flagLoop, "loop", false, "Start over after the last piece")
	playCmd.Flags().StringVar(&flagStatusAddr, "status-addr", "", "Serve playback status over HTTP on this address")
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play [piece...]",
	Short: "Plays pieces chord by chord from a MIDI keyboard",
	Long: `Plays the given pieces (catalog numbers or names, see "pieces") one after
another. Without arguments every piece in the library is played.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return play(ctx, newLogger(), args)
	},
}

// progressReporter logs where the performer is once they pause.
type progressReporter struct {
	logger    *log.Logger
	debounced func(f func())
}

func newProgressReporter(logger *log.Logger, quiet time.Duration) *progressReporter {
	return &progressReporter{logger: logger, debounced: debounce.New(quiet)}
}

func (p *progressReporter) Observe(s player.Snapshot) {
	if s.State != player.AwaitingTrigger || s.Chords == 0 {
		return
	}
	p.debounced(func() {
		p.logger.Info("progress", "piece", s.Piece, "chords", s.Chords, "cursor", s.Cursor, "total", s.Total)
	})
}

func play(ctx context.Context, logger *log.Logger, args []string) error {
	lib, err := midi.NewLibrary(flagDir)
	if err != nil {
		return err
	}
	queue, err := selectPieces(lib, args)
	if err != nil {
		return err
	}
	logger.Info("library loaded", "dir", lib.Dir(), "pieces", len(lib.Pieces()), "queued", len(queue))

	drv, err := rtmididrv.New()
	if err != nil {
		return errors.Wrap(err, "opening midi driver")
	}
	driver := midi.NewDriver(drv, logger)
	defer driver.Close()

	var out player.Output
	if flagDryRun {
		out = midi.NewDryRunOutput(os.Stdout)
	} else {
		port, err := driver.OpenVirtualOutput(flagOutName)
		if err != nil {
			return err
		}
		defer port.Close()
		logger.Info("opened virtual output port, set it as your instrument's input", "port", flagOutName)
		out = port
	}

	in, err := driver.OpenInput(flagIn, flagOutName)
	if err != nil {
		return err
	}
	defer in.Close()
	logger.Info("using input port", "port", in.Name())

	tracker := status.NewTracker()
	if flagStatusAddr != "" {
		srv := &http.Server{Addr: flagStatusAddr, Handler: status.NewRouter(tracker, lib.Pieces)}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("status server stopped", "err", err)
			}
		}()
		defer srv.Close()
		logger.Info("serving status", "addr", flagStatusAddr)
	}

	seq := player.New(in, out, player.Config{
		Sensitivity: flagSensitivity,
		Debounce:    flagDebounce,
	},
		player.WithLogger(logger),
		player.WithObserver(tracker),
		player.WithObserver(newProgressReporter(logger, constants.ProgressQuietPeriod)),
	)

	metas := lookupMetadata(logger, queue)
	for {
		played, err := playQueue(ctx, logger, seq, queue, metas)
		if errors.Is(err, context.Canceled) {
			logger.Info("stopped, closing ports")
			return nil
		}
		if err != nil {
			return err
		}
		if played == 0 {
			return errors.Wrap(midi.ErrSourceNotFound, "no playable pieces")
		}
		if !flagLoop {
			return nil
		}
	}
}

func playQueue(ctx context.Context, logger *log.Logger, seq *player.Sequencer, queue []file.Entry, metas map[string]model.PieceMetadata) (int, error) {
	var played int
	for _, entry := range queue {
		if err := ctx.Err(); err != nil {
			return played, err
		}
		piece, err := midi.LoadFile(entry.Path)
		if err != nil {
			logger.Error("skipping piece", "piece", entry.Name, "err", err)
			continue
		}
		title := entry.Name
		if meta, ok := metas[entry.Name]; ok {
			title = meta.Title
		}
		logger.Info("start playing (ctrl+c to stop)", "piece", title)
		if err := seq.Play(ctx, piece); err != nil {
			return played, err
		}
		played++
	}
	return played, nil
}
