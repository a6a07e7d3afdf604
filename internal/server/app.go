package server

import (
	"medicue/internal/config"
	"medicue/internal/handler"
	"medicue/internal/repository"
	"medicue/internal/usecase"
	auth "medicue/internal/usecase/auth_usecase"
	"medicue/internal/validator"

	"github.com/rs/zerolog"
)

// 起動時に1回だけ組み立てて各handlerに渡す（グローバル変数は使わない）
type App struct {
	Config   config.Config
	Logger   zerolog.Logger
	Sessions *auth.SessionValidator

	Auth     *handler.AuthHandler
	Analysis *handler.AnalysisHandler
	Health   *handler.HealthHandler
}

// 外から差し替える部品（本番はGORM/Gemini、テストはfake）
type Deps struct {
	Users         repository.UserRepository
	RevokedTokens repository.RevokedTokenRepository
	AuditLogs     repository.AuditLogRepository
	Tx            repository.TransactionManager
	Generator     usecase.TextGenerator
	Hasher        auth.PasswordHasher
	Clock         auth.Clock
	IDGen         auth.IDGenerator
}

func NewApp(cfg config.Config, logger zerolog.Logger, d Deps) *App {
	hasher := d.Hasher
	if hasher == nil {
		//bcrypt（会員登録：Hash / ログイン：Verify）
		hasher = auth.NewBcryptPasswordHasher(cfg.BcryptCost)
	}
	clock := d.Clock
	if clock == nil {
		clock = auth.SystemClock{}
	}
	idGen := d.IDGen
	if idGen == nil {
		//jtiはuuid v4
		idGen = auth.UUIDGenerator{}
	}
	verifier := auth.NewBcryptPasswordVerifier()
	inputValidator := validator.NewAuthValidator()

	//JWT（発行と検証）
	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL, idGen)

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(d.Users, d.Tx, inputValidator, hasher, clock)
	loginUC := auth.NewLoginUsecase(d.Users, d.AuditLogs, inputValidator, verifier, tokens, clock)
	profileUC := auth.NewProfileUsecase(d.Users)
	logoutUC := auth.NewLogoutUsecase(d.Tx, clock)
	sessions := auth.NewSessionValidator(tokens, d.RevokedTokens, clock)
	analysisUC := usecase.NewAnalysisUsecase(d.Generator, logger)

	return &App{
		Config:   cfg,
		Logger:   logger,
		Sessions: sessions,
		Auth:     handler.NewAuthHandler(registerUC, loginUC, profileUC, logoutUC, logger),
		Analysis: handler.NewAnalysisHandler(analysisUC),
		Health:   handler.NewHealthHandler(clock.Now),
	}
}
