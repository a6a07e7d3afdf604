package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"medicue/internal/config"
	"medicue/internal/domain/model"
	"medicue/internal/infra/ai"
	"medicue/internal/infra/db"
	"medicue/internal/infra/logger"
	infraRepo "medicue/internal/infra/repository"
	"medicue/internal/repository"
	"medicue/internal/server"
	"medicue/internal/usecase"
	auth "medicue/internal/usecase/auth_usecase"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	//.envは任意（無ければ環境変数だけ）
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:   "medicue",
		Short: "Symptom intake API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(pruneRevokedCmd())
	rootCmd.AddCommand(auditCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// 設定・ロガー・DBを用意（必須の設定が無ければ起動しない）
func bootstrap() (config.Config, zerolog.Logger, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, zerolog.Nop(), nil, err
	}

	log := logger.New(cfg.LogLevel, cfg.GoEnv)

	gormDB, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		return config.Config{}, log, nil, err
	}
	return cfg, log, gormDB, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run migrations and start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, gormDB, err := bootstrap()
			if err != nil {
				return err
			}

			if err := db.Migrate(gormDB); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app := server.NewApp(cfg, log, server.Deps{
				Users:         infraRepo.NewUserGormRepository(gormDB),
				RevokedTokens: infraRepo.NewRevokedTokenRepository(gormDB),
				AuditLogs:     infraRepo.NewAuditLogGormRepository(gormDB),
				Tx:            infraRepo.NewTxManagerGorm(gormDB),
				Generator:     newGenerator(ctx, cfg, log),
				Clock:         auth.SystemClock{},
				IDGen:         auth.UUIDGenerator{},
			})

			return server.Start(ctx, app)
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the users and revoked_tokens tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, gormDB, err := bootstrap()
			if err != nil {
				return err
			}
			if err := db.Migrate(gormDB); err != nil {
				return err
			}
			log.Info().Msg("migration completed")
			return nil
		},
	}
}

func pruneRevokedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune-revoked",
		Short: "Delete revoked token rows whose natural expiry has passed",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, gormDB, err := bootstrap()
			if err != nil {
				return err
			}

			uc := auth.NewPruneRevokedUsecase(infraRepo.NewRevokedTokenRepository(gormDB), auth.SystemClock{})
			n, err := uc.Execute(cmd.Context())
			if err != nil {
				return err
			}
			log.Info().Int64("deleted", n).Msg("revoked tokens pruned")
			return nil
		},
	}
}

func auditCmd() *cobra.Command {
	var (
		userID int64
		action string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "List recent register/login/logout events",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, gormDB, err := bootstrap()
			if err != nil {
				return err
			}

			filter := repository.AuditLogFilter{Limit: limit}
			if userID > 0 {
				filter.ActorUserID = &userID
			}
			if action != "" {
				a := model.AuditAction(strings.ToUpper(action))
				filter.Action = &a
			}

			logs, err := infraRepo.NewAuditLogGormRepository(gormDB).List(cmd.Context(), filter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, l := range logs {
				fmt.Fprintf(out, "%s\t%d\t%s\t%s:%s\n",
					l.CreatedAt.UTC().Format(time.RFC3339), l.ActorUserID, l.Action, l.ResourceType, l.ResourceID)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user-id", 0, "only events of this user")
	cmd.Flags().StringVar(&action, "action", "", "REGISTER, LOGIN or LOGOUT")
	cmd.Flags().IntVar(&limit, "limit", 50, "max rows (up to 200)")
	return cmd
}

// APIキーが無ければ常に失敗するgeneratorにする
func newGenerator(ctx context.Context, cfg config.Config, log zerolog.Logger) usecase.TextGenerator {
	gen, err := ai.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Warn().Err(err).Msg("symptom analysis disabled")
		return ai.DisabledGenerator{}
	}
	return gen
}
