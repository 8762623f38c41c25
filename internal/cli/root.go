// Package cli holds the mockcenter command line: serve (default) and migrate.
package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"mockcenter/internal/config"
	intdb "mockcenter/internal/db"
	api "mockcenter/internal/http"
	"mockcenter/internal/http/handlers"
	"mockcenter/internal/http/middleware"
	"mockcenter/internal/repositories"
	"mockcenter/internal/services"
	"mockcenter/internal/session"
	"mockcenter/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// NewRootCmd builds the command tree. Flags override env vars, which
// override the optional config file.
func NewRootCmd() *cobra.Command {
	v := config.NewViper()
	var cfgFile string

	root := &cobra.Command{
		Use:           "mockcenter",
		Short:         "Admin backend for mock-API definitions and users",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgFile != "" {
				v.SetConfigFile(cfgFile)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("read config %s: %w", cfgFile, err)
				}
			}
			env := config.FromViper(v)
			utils.SetupLogger(env.LogLevel, env.LogFormat, cmd.ErrOrStderr())
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), config.FromViper(v))
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	root.PersistentFlags().String("db-driver", "", "database driver: mysql, sqlite or postgres")
	root.PersistentFlags().String("db-dsn", "", "database DSN")
	root.PersistentFlags().String("log-level", "", "log level")
	bindFlag(v, root.PersistentFlags(), "db_driver", "db-driver")
	bindFlag(v, root.PersistentFlags(), "db_dsn", "db-dsn")
	bindFlag(v, root.PersistentFlags(), "log_level", "log-level")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), config.FromViper(v))
		},
	}
	serve.Flags().String("addr", "", "listen address, e.g. :8080")
	serve.Flags().Bool("migrate", true, "apply the schema before serving")
	bindFlag(v, serve.Flags(), "app_addr", "addr")
	bindFlag(v, serve.Flags(), "auto_migrate", "migrate")

	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Create tables and seed default roles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.Context(), config.FromViper(v))
		},
	}

	root.AddCommand(serve, migrate)
	return root
}

func bindFlag(v *viper.Viper, flags *pflag.FlagSet, key, flag string) {
	if f := flags.Lookup(flag); f != nil {
		_ = v.BindPFlag(key, f)
	}
}

// Execute runs the root command with a context cancelled on SIGINT/SIGTERM.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		utils.Event("", "cli", "execute").WithError(err).Error("command failed")
		return 1
	}
	return 0
}

func runMigrate(ctx context.Context, env config.Env) error {
	x, err := config.ConnectDB(env)
	if err != nil {
		return err
	}
	defer config.CloseDB()

	if err := intdb.Migrate(ctx, x); err != nil {
		return err
	}
	utils.LogEvent("", "cli", "migrate", "schema applied driver="+x.DriverName())
	return nil
}

// NewSessionStore selects the session store named by env.SessionStore.
func NewSessionStore(ctx context.Context, env config.Env) (session.Store, func(), error) {
	switch strings.ToLower(env.SessionStore) {
	case "", "memory":
		return session.NewMemoryStore(), func() {}, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     env.RedisAddr,
			Password: env.RedisPassword,
			DB:       env.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("ping redis %s: %w", env.RedisAddr, err)
		}
		return session.NewRedisStore(client), func() { _ = client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown session store %q", env.SessionStore)
	}
}

// NewAPI wires repositories and services over the shared DB.
func NewAPI(env config.Env, store session.Store) *handlers.API {
	repo := repositories.Store{}
	users := repositories.UserRepository{Store: repo}
	apps := repositories.AppRepository{Store: repo}

	auth := services.AuthService{
		Users:    users,
		Apps:     apps,
		Sessions: store,
		Tokens:   services.NewTokenIssuer(env.SessionLifetime),
	}
	userSvc := services.UserService{Users: users, Apps: apps, Sessions: store}
	mockSvc := services.MockService{Mocks: repositories.MockRepository{Store: repo}}
	return handlers.NewAPI(env, auth, userSvc, mockSvc)
}

func runServe(ctx context.Context, env config.Env) error {
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	x, err := config.ConnectDB(env)
	if err != nil {
		return err
	}
	defer config.CloseDB()

	if env.AutoMigrate {
		if err := intdb.Migrate(ctx, x); err != nil {
			return err
		}
	}

	store, closeStore, err := NewSessionStore(ctx, env)
	if err != nil {
		return err
	}
	defer closeStore()

	limiter := middleware.NewRateLimiter(env.LoginRate, env.LoginBurst)
	stopCleanup := make(chan struct{})
	defer close(stopCleanup)
	limiter.StartCleanup(time.Minute, stopCleanup)

	r := api.NewRouter(env, api.Deps{API: NewAPI(env, store), LoginLimit: limiter, ExposeStats: true})

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.LogEvent("", "cli", "serve", "listening on "+env.AppAddr+" store="+env.SessionStore)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen %s: %w", env.AppAddr, err)
		}
		return nil
	case <-ctx.Done():
	}

	utils.LogEvent("", "cli", "serve", "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	utils.LogEvent("", "cli", "serve", "server stopped")
	return nil
}
