package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/quotetiles/assets"
	"github.com/robalobadob/quotetiles/internal/config"
	"github.com/robalobadob/quotetiles/internal/database"
	"github.com/robalobadob/quotetiles/internal/game"
	"github.com/robalobadob/quotetiles/internal/httpserver"
	"github.com/robalobadob/quotetiles/internal/puzzle"
	"github.com/robalobadob/quotetiles/internal/quotes"
	"github.com/robalobadob/quotetiles/internal/store"
)

var cfgFile string

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           "quotetiles",
		Short:         "Daily two-quote tile puzzle server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
	setupFlags(rootCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	})
	rootCmd.AddCommand(newPuzzleCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("quotetiles exited")
		os.Exit(1)
	}
}

func setupFlags(cmd *cobra.Command) {
	config.ApplyDefaults(viper.GetViper())
	defaults := config.NewViper()
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to configuration file")
	cmd.PersistentFlags().String("port", defaults.GetString("http.port"), "HTTP listen port")
	cmd.PersistentFlags().String("log-level", defaults.GetString("log.level"), "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("database-path", defaults.GetString("database.path"), "SQLite database path")
	cmd.PersistentFlags().String("session-backend", defaults.GetString("sessions.backend"), "Session store: sqlite, memory or badger")
	cmd.PersistentFlags().String("quotes-file", defaults.GetString("quotes.file"), "JSON quote catalog (defaults to the embedded one)")
	cmd.PersistentFlags().String("timezone", defaults.GetString("puzzle.timezone"), "IANA zone that decides the puzzle day")

	bindFlag(cmd, "http.port", "port")
	bindFlag(cmd, "log.level", "log-level")
	bindFlag(cmd, "database.path", "database-path")
	bindFlag(cmd, "sessions.backend", "session-backend")
	bindFlag(cmd, "quotes.file", "quotes-file")
	bindFlag(cmd, "puzzle.timezone", "timezone")
}

func bindFlag(cmd *cobra.Command, key, flag string) {
	if err := viper.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
	if err := viper.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if cfgFile != "" && errors.As(err, &configNotFound) {
			return err
		}
	}
	return nil
}

// loadConfig reads configuration and applies the log level.
func loadConfig() (config.AppConfig, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return config.AppConfig{}, err
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.DevSecret() {
		log.Warn().Msg("TILE_SECRET not set; tile ids use the development secret")
	}
	return cfg, nil
}

func runServer(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := database.Migrate(db, assets.FS, assets.MigrationsDir); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	list, err := quotes.Load(cfg.QuotesFile)
	if err != nil {
		return fmt.Errorf("load quotes: %w", err)
	}
	catalog := quotes.NewSQLCatalog(db)
	if _, err := catalog.Seed(ctx, list); err != nil {
		return fmt.Errorf("seed quotes: %w", err)
	}

	sessions, closeSessions, err := openSessions(cfg, db)
	if err != nil {
		return err
	}
	defer closeSessions()

	svc, err := game.New(game.Config{
		Engine:       puzzle.NewEngine(catalog, puzzle.NewHasher(cfg.TileSecret)),
		Sessions:     sessions,
		Clock:        time.Now,
		Location:     cfg.Location,
		MaxGuesses:   cfg.MaxGuesses,
		StoreTimeout: cfg.StoreTimeout,
	})
	if err != nil {
		return err
	}

	srv := httpserver.New(svc, cfg.ClientOrigin)
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(signalCtx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("sessions", cfg.SessionBackend).Int64("seed", svc.Seed()).Msg("starting quotetiles")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		purgeLoop(gctx, svc, cfg.PurgeInterval)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// openSessions builds the configured session store. The returned func
// releases whatever the store holds open.
func openSessions(cfg config.AppConfig, db *sql.DB) (store.Store, func(), error) {
	switch cfg.SessionBackend {
	case config.BackendMemory:
		return store.NewMemoryStore(), func() {}, nil
	case config.BackendBadger:
		kv, err := store.OpenBadger(store.BadgerOptions(cfg.BadgerPath))
		if err != nil {
			return nil, nil, fmt.Errorf("open badger: %w", err)
		}
		return store.NewBadgerStore(kv), func() { _ = kv.Close() }, nil
	default:
		return store.NewSQLStore(db), func() {}, nil
	}
}

// purgeLoop drops expired sessions every interval until ctx ends.
func purgeLoop(ctx context.Context, svc *game.Service, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := svc.Purge(ctx)
			if err != nil {
				log.Error().Err(err).Msg("purge sessions")
				continue
			}
			if n > 0 {
				log.Info().Int("purged", n).Msg("expired sessions removed")
			}
		}
	}
}
