package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/monasabatlabs/monasabat/internal/admin"
	"github.com/monasabatlabs/monasabat/internal/auth"
	"github.com/monasabatlabs/monasabat/internal/booking"
	"github.com/monasabatlabs/monasabat/internal/clock"
	"github.com/monasabatlabs/monasabat/internal/config"
	"github.com/monasabatlabs/monasabat/internal/contact"
	"github.com/monasabatlabs/monasabat/internal/eventitem"
	"github.com/monasabatlabs/monasabat/internal/joinrequest"
	"github.com/monasabatlabs/monasabat/internal/migration"
	"github.com/monasabatlabs/monasabat/internal/notification"
	"github.com/monasabatlabs/monasabat/internal/observability"
	"github.com/monasabatlabs/monasabat/internal/otp"
	"github.com/monasabatlabs/monasabat/internal/quota"
	"github.com/monasabatlabs/monasabat/internal/redis"
	"github.com/monasabatlabs/monasabat/internal/scheduler"
	"github.com/monasabatlabs/monasabat/internal/server"
	"github.com/monasabatlabs/monasabat/internal/subscription"
	"github.com/monasabatlabs/monasabat/internal/supplier"
	"github.com/monasabatlabs/monasabat/internal/usage"
	"github.com/monasabatlabs/monasabat/pkg/db"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "monasabat",
		Short:   "Monasabat CLI",
		Version: readVersionFromEnv(),
	}
	root.AddCommand(newMigrateCmd(), newServeCmd(), newAllCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate()
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the API server and background scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			runServe()
			return nil
		},
	}
}

func newAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run migrations, then start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runMigrate(); err != nil {
				return err
			}
			runServe()
			return nil
		},
	}
}

func runMigrate() error {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		migration.Module,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("migrate failed: %w", err)
	}
	_ = app.Stop(context.Background())
	return nil
}

func runServe() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,
		redis.Module,
		quota.Module,
		usage.Module,
		notification.Module,
		supplier.Module,
		subscription.Module,
		eventitem.Module,
		booking.Module,
		contact.Module,
		joinrequest.Module,
		auth.Module,
		otp.Module,
		admin.Module,
		scheduler.Module,
		server.Module,
		fx.Invoke(startScheduler),
	)
	app.Run()
}

func registerSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

func readVersionFromEnv() string {
	if v := strings.TrimSpace(os.Getenv("APP_VERSION")); v != "" {
		return v
	}
	return "dev"
}

func startScheduler(lc fx.Lifecycle, s *scheduler.Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go s.RunForever(context.Background())
			return nil
		},
	})
}
