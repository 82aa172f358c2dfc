package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"p9e.in/fabtrack/config"
	"p9e.in/fabtrack/handlers"
	"p9e.in/fabtrack/middleware"
	"p9e.in/fabtrack/models"
	"p9e.in/fabtrack/pkg/drawings"
	"p9e.in/fabtrack/pkg/records"
	"p9e.in/fabtrack/routes"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the database and start the HTTP server",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		db, err := config.Connect(cfg.Database, log)
		if err != nil {
			return err
		}
		return closeDB(db)
	},
}

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create a login",
	RunE:  runCreateUser,
}

func init() {
	createUserCmd.Flags().String("username", "", "login name")
	createUserCmd.Flags().String("password", "", "password, at least 6 characters")
	createUserCmd.Flags().String("role", models.RoleStaff, "admin or staff")
	createUserCmd.MarkFlagRequired("username")
	createUserCmd.MarkFlagRequired("password")
}

func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	log, err := config.NewLogger(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init logger: %w", err)
	}
	return cfg, log, nil
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func newServices(db *gorm.DB, cfg *config.Config, log *zap.Logger) *records.Services {
	return records.NewServices(db, records.Options{
		EnquiryPrefix:      cfg.Enquiry.Prefix,
		EnquiryMaxAttempts: cfg.Enquiry.MaxAttempts,
	}, log)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := config.Connect(cfg.Database, log)
	if err != nil {
		return err
	}
	defer closeDB(db)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc := newServices(db, cfg, log)
	if err := bootstrapAdmin(ctx, svc.Credentials, cfg.Admin, log); err != nil {
		return err
	}

	store, err := drawings.New(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to init drawing storage: %w", err)
	}

	tokens := middleware.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Expire)
	h := handlers.New(db, svc, store, tokens, log, handlers.Options{MaxUploadMB: cfg.Server.MaxUploadMB})

	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Server.Port),
		Handler:      routes.RegisterRoutes(h, tokens, log),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server starting",
			zap.Int("port", cfg.Server.Port),
			zap.String("version", Version),
			zap.String("storage", cfg.Storage.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info("Server exited")
	return nil
}

// bootstrapAdmin creates the configured admin login when no users exist yet.
func bootstrapAdmin(ctx context.Context, creds *records.CredentialService, admin config.AdminConfig, log *zap.Logger) error {
	if admin.Username == "" || admin.Password == "" {
		return nil
	}
	n, err := creds.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if _, err := creds.Register(ctx, nil, admin.Username, admin.Password, models.RoleAdmin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	log.Info("Created admin user", zap.String("username", admin.Username))
	return nil
}

func runCreateUser(cmd *cobra.Command, args []string) error {
	username, _ := cmd.Flags().GetString("username")
	password, _ := cmd.Flags().GetString("password")
	role, _ := cmd.Flags().GetString("role")

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := config.Connect(cfg.Database, log)
	if err != nil {
		return err
	}
	defer closeDB(db)

	cred, err := records.NewCredentialService(db).Register(cmd.Context(), nil, username, password, role)
	if err != nil {
		return err
	}
	fmt.Printf("Created %s user %s (id %d)\n", cred.Role, cred.Username, cred.ID)
	return nil
}
