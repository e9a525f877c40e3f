package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lazypower/leitner/internal/digest"
	"github.com/lazypower/leitner/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()
	s.sched.AddObserver(digest.NewAchievements(s.log))

	srv := server.New(s.db, s.sched, s.profile, VersionString(), s.log)
	addr := s.cfg.ListenAddr()

	if s.cfg.Digest.Enabled {
		d := digest.New(s.cfg.Digest.Interval, s.profile, srv.Stats, digest.LogNotifier{Log: s.log}, s.log)
		if err := d.Start(); err != nil {
			s.log.Warn().Err(err).Msg("digest disabled")
		} else {
			defer d.Stop()
		}
	}

	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.log.Info().
			Str("addr", addr).
			Str("db", s.db.Path).
			Str("profile", s.profile).
			Msg("leitner serving")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-done
	s.log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return httpServer.Shutdown(ctx)
}
