package main

import (
	"net/http"
	"os"
	"time"

	"gatekeeper/api/handler"
	apiMiddleware "gatekeeper/api/middleware"
	"gatekeeper/api/routes"
	"gatekeeper/config"
	"gatekeeper/internal/feed"
	"gatekeeper/internal/repository"
	"gatekeeper/internal/service"
	"gatekeeper/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	db, err := config.ConnectDB()
	if err != nil {
		logger.WithError(err).Fatal("database connection failed")
	}
	validate := validator.New()

	accessSecret := []byte(os.Getenv("JWT_SECRET"))
	issuer := os.Getenv("JWT_ISSUER")
	if len(accessSecret) == 0 {
		logger.Fatal("JWT_SECRET is required")
	}

	accessManager := utils.JWTManager{
		Secret:         accessSecret,
		Issuer:         issuer,
		AccessTokenTTL: 15 * time.Minute,
	}
	accessIssuer := service.JWTAccessIssuer{Manager: &accessManager}

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	codeRepo := repository.NewVerificationCodeRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	emailSender := service.NewResendEmailSender(
		os.Getenv("RESEND_API_KEY"),
		os.Getenv("EMAIL_FROM"),
		os.Getenv("APP_NAME"),
	)
	hub := feed.NewHub()
	clock := service.RealClock{}
	authConfig := service.AuthConfig{
		AccessTokenTTL:      15 * time.Minute,
		RefreshTokenTTL:     30 * 24 * time.Hour,
		VerificationCodeTTL: 5 * time.Minute,
	}

	verificationService := service.NewVerificationService(
		codeRepo,
		userRepo,
		auditRepo,
		emailSender,
		clock,
		authConfig,
	)
	authService := service.NewAuthService(
		userRepo,
		profileRepo,
		sessionRepo,
		roleRepo,
		auditRepo,
		verificationService,
		service.BcryptPasswordHasher{},
		accessIssuer,
		clock,
		authConfig,
	)
	appService := service.NewAppService(userRepo, profileRepo, roleRepo, settingsRepo, messageRepo)
	appService.DefaultToolkitURL = os.Getenv("TOOLKIT_URL")
	adminService := service.NewAdminService(profileRepo, settingsRepo, messageRepo, auditRepo, hub, clock)

	authHandler := handler.NewAuthHandler(authService, verificationService, validate)
	authHandler.CookieDomain = os.Getenv("COOKIE_DOMAIN")
	authHandler.SecureCookies = os.Getenv("COOKIE_SECURE") != "false"
	appHandler := handler.NewAppHandler(appService, hub)
	adminHandler := handler.NewAdminHandler(adminService, validate)

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	app.Use(echoMiddleware.Recover())
	app.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"status": v.Status,
				"method": v.Method,
				"uri":    v.URI,
				"ip":     v.RemoteIP,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))

	authMiddleware := apiMiddleware.AuthMiddleware{JWT: &accessManager}
	router := routes.NewRouter(app, authHandler, appHandler, adminHandler, authMiddleware)
	router.RegisterRoutes()

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	server := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.WithField("addr", addr).Info("server started")
	if err := app.StartServer(server); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
