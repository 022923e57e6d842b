package commands

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/greenfund/core/internal/adapters/repository"
	"github.com/greenfund/core/internal/adapters/upload"
	"github.com/greenfund/core/internal/application/services"
	"github.com/greenfund/core/internal/infrastructure/config"
	"github.com/greenfund/core/internal/infrastructure/jsonstore"
	"github.com/greenfund/core/internal/infrastructure/logger"
	"github.com/greenfund/core/internal/infrastructure/metrics"
	"github.com/greenfund/core/internal/infrastructure/server"
	"github.com/greenfund/core/internal/ports"
)

// Build information, set with -ldflags
var (
	Version   = "1.0.0"
	BuildDate = "unknown"
	GitCommit = "development"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the GreenFund API server",
		Long:  "Seed the data directory if needed and serve the API, uploads and the static site",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

// NewSeedCommand creates the seed command
func NewSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write default documents into the data directory",
		Long:  "Create any missing or unreadable data document with its default content. Existing documents are left alone.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, appLogger, store, err := bootstrap()
			if err != nil {
				return err
			}
			defer appLogger.Close()

			seeded, err := repository.Seed(cmd.Context(), store, appLogger)
			if err != nil {
				return err
			}

			if len(seeded) == 0 {
				fmt.Printf("Nothing to seed in %s\n", cfg.Storage.DataDir)
				return nil
			}
			for _, name := range seeded {
				fmt.Printf("Seeded %s\n", name)
			}
			return nil
		},
	}
}

// NewUserCommand creates the user management command
func NewUserCommand() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "User management commands",
		Long:  "Create member accounts in the data directory",
	}

	createUserCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new member account",
		RunE: func(cmd *cobra.Command, args []string) error {
			var req ports.RegisterRequest
			req.Email, _ = cmd.Flags().GetString("email")
			req.Password, _ = cmd.Flags().GetString("password")
			req.FirstName, _ = cmd.Flags().GetString("first-name")
			req.LastName, _ = cmd.Flags().GetString("last-name")
			req.Phone, _ = cmd.Flags().GetString("phone")

			return createUser(cmd.Context(), req)
		},
	}

	createUserCmd.Flags().String("email", "", "User email (required)")
	createUserCmd.Flags().String("password", "", "User password (required)")
	createUserCmd.Flags().String("first-name", "", "User first name")
	createUserCmd.Flags().String("last-name", "", "User last name")
	createUserCmd.Flags().String("phone", "", "User phone number")
	_ = createUserCmd.MarkFlagRequired("email")
	_ = createUserCmd.MarkFlagRequired("password")

	userCmd.AddCommand(createUserCmd)
	return userCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print GreenFund version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("GreenFund v%s\n", Version)
			fmt.Printf("Build Date: %s\n", BuildDate)
			fmt.Printf("Git Commit: %s\n", GitCommit)
		},
	}
}

func bootstrap() (*config.Config, *logger.Logger, *jsonstore.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	store, err := jsonstore.New(cfg.Storage.DataDir, appLogger.WithComponent("store"))
	if err != nil {
		appLogger.Close()
		return nil, nil, nil, fmt.Errorf("failed to open data directory: %w", err)
	}

	return cfg, appLogger, store, nil
}

func runServer(ctx context.Context) error {
	cfg, appLogger, store, err := bootstrap()
	if err != nil {
		return err
	}
	defer appLogger.Close()

	if _, err := repository.Seed(ctx, store, appLogger.WithComponent("seed")); err != nil {
		return err
	}

	uploader, err := upload.New(ctx, cfg.Upload, appLogger.WithComponent("upload"))
	if err != nil {
		return fmt.Errorf("failed to initialize uploads: %w", err)
	}

	srv, err := server.New(cfg, store, uploader, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appLogger.Infow("Starting GreenFund API server",
		"address", cfg.Server.Address(),
		"environment", cfg.App.Environment,
		"data_dir", cfg.Storage.DataDir,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(cfg.Server.Address())
	})
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		appLogger.Errorw("Server stopped with error", "error", err)
		return err
	}

	appLogger.Info("Server stopped")
	return nil
}

func createUser(ctx context.Context, req ports.RegisterRequest) error {
	_, appLogger, store, err := bootstrap()
	if err != nil {
		return err
	}
	defer appLogger.Close()

	authService := services.NewAuthService(
		repository.NewUserRepository(store),
		repository.NewAdminRepository(store),
		config.JWTConfig{},
		metrics.New(),
		appLogger.WithComponent("auth"),
	)

	resp, err := authService.Register(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("User created: id=%d email=%s", resp.ID, resp.Email)
	return nil
}
