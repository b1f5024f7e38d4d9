package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeanim"
	"github.com/SeamusWaldron/cubeanim/internal/observer"
	"github.com/SeamusWaldron/cubeanim/internal/recorder"
	"github.com/SeamusWaldron/cubeanim/internal/solver"
)

var (
	serveAddr    string
	serveJournal bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Stream the animation to websocket observers",
	Long: `Run the animation loop headlessly and stream a snapshot of every piece
to websocket clients once per frame. Clients on the loopback interface may
also send solve, shuffle and move triggers.

Endpoints:
  GET /bootstrap   protocol version, frame rate and flagged centers
  GET /ws          SUBSCRIBE, then SNAPSHOT frames; TRIGGER gets a RESULT`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: observer_addr from config)")
	serveCmd.Flags().BoolVar(&serveJournal, "journal", true, "Record dispatches to the database")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger()

	addr := serveAddr
	if addr == "" {
		addr = cfg.ObserverAddr
	}

	opts := append(cfg.Options(), cubeanim.WithLogger(logger))
	if serveJournal {
		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		session := recorder.NewSession(db, nil, logger)
		if _, err := session.Start("serve", cfg.FixRequired.Flags(), cfg.Speed); err != nil {
			return err
		}
		defer session.End()
		opts = append(opts, cubeanim.WithDispatchHook(session.Hook()))
	}

	ctrl := cubeanim.NewController(solver.NewHistorySolver(), opts...)
	loop := observer.NewLoop(ctrl, cfg.FrameRate, logger)
	srv := observer.NewServer(loop, cfg.FixRequired.Flags(), logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	loopErr := make(chan error, 1)
	go func() { loopErr <- loop.Run(ctx) }()

	go func() {
		<-ctx.Done()
		ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel2()
		_ = httpSrv.Shutdown(ctx2)
	}()

	logger.Info("listening", "addr", addr, "frame_rate", cfg.FrameRate)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		stop()
		<-loopErr
		return fmt.Errorf("listen: %w", err)
	}

	if err := <-loopErr; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
