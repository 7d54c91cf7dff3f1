package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"warehouse-dashboard/internal/config"
	"warehouse-dashboard/internal/core/container"
	"warehouse-dashboard/internal/core/logger"
	"warehouse-dashboard/internal/core/routes"
	"warehouse-dashboard/internal/database"
	"warehouse-dashboard/internal/middleware"
	"warehouse-dashboard/pkg/security"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

const shutdownTimeout = 10 * time.Second

var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard HTTP service.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		log, err := logger.NewLogger(cfg.IsDevelopment(), cfg.App.LogLevel)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		autoMigrate, _ := cmd.Flags().GetBool("migrate")
		return serve(cmd.Context(), cfg, log, autoMigrate)
	},
}

var MigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run migrations manually.",
	Long:  `Applies the SQL migrations for dashboard_state and audit_logs.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		migrationDir, _ := cmd.Flags().GetString("dir")
		if migrationDir == "" {
			migrationDir = cfg.Database.MigrationsDir
		}

		log, err := logger.NewLogger(cfg.IsDevelopment(), cfg.App.LogLevel)
		if err != nil {
			return err
		}

		if err := database.RunMigrations(cfg.Database.URL, migrationDir, log); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}

		return nil
	},
}

var TokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Sign a dashboard token for local development.",
	Long:  `Command that exists and should be used only for development purposes.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if !cfg.IsDevelopment() {
			return errors.New("token command is only available when APP_ENV=development")
		}

		userID, _ := cmd.Flags().GetInt("user-id")
		username, _ := cmd.Flags().GetString("username")
		role, _ := cmd.Flags().GetString("role")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		token, err := security.GenerateJWT([]byte(cfg.JWT.Secret), userID, role, username, ttl)
		if err != nil {
			return fmt.Errorf("sign token: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger, autoMigrate bool) error {
	var db *sql.DB
	if cfg.Database.URL != "" {
		if autoMigrate {
			if err := database.RunMigrations(cfg.Database.URL, cfg.Database.MigrationsDir, log); err != nil {
				return fmt.Errorf("migrate database: %w", err)
			}
		}

		conn, err := database.NewPostgresConnection(ctx, cfg.Database.URL)
		if err != nil {
			return err
		}
		defer conn.Close()
		db = conn
		log.Info("Connected to the database successfully")
	}

	app := container.NewAppContainer(cfg, db, log)
	defer app.Close()

	middleware.SetVersion(version)
	if err := app.Notifications.Hydrate(ctx); err != nil {
		log.Warn("Unable to hydrate notification state, changes will not be persisted", zap.Error(err))
		middleware.UpdateHealthStatus(middleware.StatusDegraded)
	}

	go app.Dashboard.Run(ctx, cfg.Dashboard.RefreshInterval)

	srv := &http.Server{
		Addr:              cfg.App.Host,
		Handler:           routes.NewRouter(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("addr", cfg.App.Host), zap.String("version", version))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func Execute(ctx context.Context) {
	rootCmd := &cobra.Command{
		Use:     "dashboard",
		Short:   "Inventory dashboard sync service",
		Version: version,
	}

	ServeCmd.Flags().Bool("migrate", false, "Apply migrations before serving")
	MigrateCmd.Flags().String("dir", "", "Directory containing the migration files (defaults to DATABASE_MIGRATIONS_DIR)")
	TokenCmd.Flags().Int("user-id", 1, "Operator id put in the token")
	TokenCmd.Flags().String("username", "dev", "Operator name put in the token")
	TokenCmd.Flags().String("role", "admin", "Role put in the token")
	TokenCmd.Flags().Duration("ttl", 12*time.Hour, "Token lifetime")

	rootCmd.AddCommand(ServeCmd, MigrateCmd, TokenCmd)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
