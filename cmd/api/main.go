package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "librarium-backend/internal/adapter/http"
	mw "librarium-backend/internal/adapter/middleware"
	"librarium-backend/internal/adapter/repository/mysql"
	"librarium-backend/internal/config"
	"librarium-backend/internal/domain/user"
	"librarium-backend/internal/infrastructure/cache"
	"librarium-backend/internal/infrastructure/db"
	"librarium-backend/internal/security"
	catalogUC "librarium-backend/internal/usecase/catalog"
	loanUC "librarium-backend/internal/usecase/loan"
	sessionUC "librarium-backend/internal/usecase/session"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	rdb, err := cache.OpenRedis(context.Background(), cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	loanRepo := mysql.NewLoanRepository(gdb)
	materialRepo := mysql.NewMaterialRepository(gdb)
	copyRepo := mysql.NewCopyRepository(gdb)
	userRepo := mysql.NewUserRepository(gdb)
	guow := mysql.NewGormUoW(gdb)

	tokenTTL := time.Duration(cfg.TokenTTLMins) * time.Minute
	tokens := security.NewTokenManager(cfg.JWTSecret, tokenTTL)

	loanPeriod := time.Duration(cfg.LoanPeriodDays) * 24 * time.Hour
	loans := loanUC.NewUsecase(loanRepo, materialRepo, copyRepo, guow, loanPeriod)
	materials := catalogUC.NewUsecase(materialRepo)
	sessions := sessionUC.NewUsecase(userRepo, tokens)

	h := httpadp.NewHandler()
	lh := httpadp.NewLoanHandler(loans)
	mh := httpadp.NewMaterialHandler(materials)
	sh := httpadp.NewSessionHandler(sessions, tokenTTL)

	guard := mw.NewGuard(tokens)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover(), guard.Middleware())

	e.GET("/health", h.Health)

	idem := mw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)
	librarianOnly := mw.RequireRole(user.RoleLibrarian, user.RoleAdmin)

	api := e.Group("/api")
	api.POST("/sessions", sh.Login)
	api.DELETE("/sessions", sh.Logout)

	api.GET("/materials", mh.ListMaterials)
	api.GET("/materials/:material_id", mh.GetMaterial)

	api.POST("/loans", lh.RequestLoan, idem)
	api.GET("/loans", lh.ListLoans)
	api.GET("/loans/:loan_id", lh.GetLoan)
	api.POST("/loans/:loan_id/approve", lh.ApproveLoan, librarianOnly, idem)
	api.POST("/loans/:loan_id/reject", lh.RejectLoan, librarianOnly, idem)
	api.POST("/loans/:loan_id/return", lh.ReturnLoan, librarianOnly, idem)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
