package main

import (
	"context"
	"crypto/rand"
	"log"
	"net/http"
	"time"

	firebase "firebase.google.com/go"
	"github.com/tinlanh/church-admin/internal/api"
	discipleship_service "github.com/tinlanh/church-admin/internal/business/discipleship"
	events_service "github.com/tinlanh/church-admin/internal/business/events"
	"github.com/tinlanh/church-admin/internal/config"
	"github.com/tinlanh/church-admin/internal/database"
	"github.com/tinlanh/church-admin/internal/database/admins"
	"github.com/tinlanh/church-admin/internal/database/contact"
	"github.com/tinlanh/church-admin/internal/database/discipleship"
	"github.com/tinlanh/church-admin/internal/database/events"
	"github.com/tinlanh/church-admin/internal/i18n"
	"github.com/tinlanh/church-admin/internal/images"
	"github.com/tinlanh/church-admin/internal/notifications"
	"github.com/tinlanh/church-admin/internal/pkg/fcm"
	"github.com/tinlanh/church-admin/internal/pkg/identity"
	"github.com/tinlanh/church-admin/internal/pkg/jwt"
	"github.com/tinlanh/church-admin/internal/pkg/oauth"
	"github.com/tinlanh/church-admin/internal/realtime"
	"github.com/tinlanh/church-admin/internal/recurrence"
	"github.com/tinlanh/church-admin/internal/redis"
	"github.com/xlab/closer"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	closer.Bind(cancel)

	conf, err := config.Load()
	if err != nil {
		log.Fatalf("unable to load config: %v", err)
	}

	logger, err := initLogger(conf.Production)
	if err != nil {
		log.Fatalf("unable to initializae logger: %v", err)
	}

	loc, err := conf.Location()
	if err != nil {
		logger.Fatalw("invalid timezone", "err", err)
	}

	if conf.RunMigrations {
		if err := database.RunMigrations(conf.PostgresURL, logger); err != nil {
			logger.Fatalw("unable to run migrations", "err", err)
		}
	}

	db, err := database.NewPGX(ctx, conf.PostgresURL)
	if err != nil {
		logger.Fatalw("unable to initializae db", "err", err)
	}

	redisPool := redis.NewRedisPool(conf.RedisURL, logger)
	refreshTokens := redis.NewRefreshTokenRepository(redisPool, conf.SessionTTL)
	adminCache := redis.NewAdminCache(redisPool, conf.AdminCacheTTL)

	broker := realtime.NewRedisBroker(redisPool, logger)
	go broker.Run(ctx)

	projector := recurrence.New(loc)
	eventsService := events_service.NewService(db, events.NewRepository(), projector, broker, logger)
	discipleshipService := discipleship_service.NewService(db, discipleship.NewRepository(), broker, logger, time.Now)

	translator, err := i18n.NewTranslator(conf.DefaultLocale)
	if err != nil {
		logger.Fatalw("unable to load translations", "err", err)
	}

	var app *firebase.App
	if conf.StorageBackend == "firebase" || conf.RemindersEnabled {
		app, err = firebase.NewApp(ctx, &firebase.Config{StorageBucket: conf.StorageBucket})
		if err != nil {
			logger.Fatalw("unable to initializae firebase", "err", err)
		}
	}

	var store images.Store
	filesDir := ""
	switch conf.StorageBackend {
	case "firebase":
		store, err = images.NewFirebaseStore(ctx, app, conf.StorageBucket)
		if err != nil {
			logger.Fatalw("unable to initializae storage", "err", err)
		}
	default:
		store = images.NewLocalStore(conf.FilesDir, conf.PublicURL)
		filesDir = conf.FilesDir
	}
	imagesService := images.NewService(store, logger, conf.MaxFileSize, conf.MaxImageWidth, time.Now)

	passwords, err := identity.NewClient(ctx, conf.FirebaseAPIKey)
	if err != nil {
		logger.Fatalw("unable to initializae identity client", "err", err)
	}

	tokenParser, err := oauth.NewParser(conf.ClientSecretPath, conf.ClientType, conf.RedirectURL)
	if err != nil {
		logger.Fatalw("unable to initializae oauth parser", "err", err)
	}

	params := api.Params{
		Logger:             logger,
		RandSource:         rand.Reader,
		Translator:         translator,
		SessionTokenLength: conf.SessionTokenLength,
		FilesDir:           filesDir,
		JWTs:               jwt.NewManager(conf.Secret, conf.JwtTTL),
		TokenParser:        tokenParser,
		Passwords:          passwords,
		RefreshTokens:      refreshTokens,
		AdminCache:         adminCache,
		DB:                 db,
		Admins:             admins.NewRepository(),
		Contact:            contact.NewRepository(),
		Events:             eventsService,
		Courses:            discipleshipService,
		Images:             imagesService,
		Broker:             broker,
	}

	if conf.RemindersEnabled {
		fcmService, err := fcm.NewService(ctx, app)
		if err != nil {
			logger.Fatalw("unable to initializae fcm service", "err", err)
		}
		params.FCM = fcmService

		sender := notifications.NewSender(logger, eventsService, projector, translator, fcmService, conf.ReminderLead)
		if err := sender.Start(ctx); err != nil {
			logger.Fatalw("unable to start reminders", "err", err)
		}
	}

	handler, err := api.NewApi(params)
	if err != nil {
		logger.Fatalw("unable to initializae api", "err", err)
	}

	errLogger, err := zap.NewStdLogAt(logger.Desugar(), zap.ErrorLevel)
	if err != nil {
		logger.Fatalw("error initiating server logger", "err", err)
	}

	server := &http.Server{
		Addr:     ":" + conf.Port,
		Handler:  handler,
		ErrorLog: errLogger,
	}

	closer.Bind(func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	})

	go func() {
		logger.Infow("Started server", "port", conf.Port, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorw("server error", "err", err)
			closer.Close()
		}
	}()

	closer.Hold()
}

func initLogger(production bool) (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error

	if production {
		logger, err = zap.NewProduction()
	} else {
		conf := zap.NewDevelopmentConfig()
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		logger, err = conf.Build()
	}

	if err != nil {
		return nil, err
	}

	closer.Bind(func() {
		_ = logger.Sync()
	})

	return logger.Sugar(), nil
}
