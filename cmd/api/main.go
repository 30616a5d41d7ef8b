package main

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/emrekarsli/tvservis_backend/internal/apperrors"
	"github.com/emrekarsli/tvservis_backend/internal/config"
	"github.com/emrekarsli/tvservis_backend/internal/db"
	"github.com/emrekarsli/tvservis_backend/internal/handlers"
	"github.com/emrekarsli/tvservis_backend/internal/middleware"
	"github.com/emrekarsli/tvservis_backend/internal/monitor"
	"github.com/emrekarsli/tvservis_backend/internal/ratelimit"
	"github.com/emrekarsli/tvservis_backend/internal/services/credit"
	"github.com/emrekarsli/tvservis_backend/internal/services/mailer"
	"github.com/emrekarsli/tvservis_backend/internal/services/paytr"
	"github.com/emrekarsli/tvservis_backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Fatal(err, "adim", "veritabani")
	}
	if err := database.Migrate(); err != nil {
		logger.Fatal(err, "adim", "migration")
	}

	mon := monitor.New()
	database.Observe = mon.Observe

	// Tek instance'da memory store yeterli; REDIS_ADDR verilirse pencere
	// instance'lar arasında paylaşılır.
	var store ratelimit.Store = ratelimit.NewMemoryStore()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Fatal(err, "adim", "redis")
		}
		store = ratelimit.NewRedisStore(rdb)
		logger.Info("rate limit store: redis", "addr", cfg.RedisAddr)
	}
	limiter := ratelimit.New(store, cfg.RateLimitMax, cfg.RateLimitWindow)

	mail := mailer.New(database, mailer.LogTransport{}, cfg.MailFrom)
	creditSvc := credit.NewService(database, mail)
	paytrSvc := paytr.NewService(cfg.PaytrMerchantID, cfg.PaytrMerchantKey, cfg.PaytrSalt,
		cfg.AppBaseURL+"/odeme", !cfg.IsProduction())

	bayiH := handlers.NewBayiHandler(database, creditSvc, cfg.BayiJWTSecret)
	adminH := handlers.NewAdminHandler(database, creditSvc, cfg.AdminJWTSecret)
	talepH := handlers.NewTalepHandler(database, creditSvc, mail)
	odemeH := handlers.NewOdemeHandler(database, creditSvc, paytrSvc)
	healthH := handlers.NewHealthHandler(database, mon)
	pagesH := handlers.NewPagesHandler("./public")

	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "http://127.0.0.1:3000, http://localhost:3000",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.Perf(mon))

	app.Static("/static", "./public/static")
	app.Get("/", pagesH.Index)
	app.Get("/admin", pagesH.Admin)
	app.Get("/bayi/login", pagesH.BayiLogin)
	app.Get("/bayi/dashboard", pagesH.BayiDashboard)

	api := app.Group("/api")

	// public
	api.Post("/talep", middleware.RateLimit(limiter), talepH.Create)
	api.Post("/bayi/login", middleware.RateLimit(limiter), bayiH.Login)
	api.Post("/admin/login", middleware.RateLimit(limiter), adminH.Login)
	api.Post("/paytr/callback", odemeH.PaytrCallback)
	api.Get("/health", healthH.Get)
	app.Get("/metrics", mon.MetricsHandler())

	// bayi (JWT + sunucu tarafı oturum)
	bayiAuth := middleware.BayiAuth(database, cfg.BayiJWTSecret, cfg.DevBypassToken, !cfg.IsProduction())

	bayi := api.Group("/bayi", bayiAuth)
	bayi.Post("/logout", bayiH.Logout)
	bayi.Get("/profil", bayiH.Profil)
	bayi.Get("/bakiye", bayiH.Bakiye)
	bayi.Get("/kredi-hareketleri", bayiH.KrediHareketleri)
	bayi.Post("/havale-bildirimi", odemeH.HavaleBildirimi)
	bayi.Post("/paytr/baslat", odemeH.PaytrBaslat)

	isler := api.Group("/is-talepleri", bayiAuth)
	isler.Get("/", talepH.List)
	isler.Get("/:id", talepH.Detail)
	isler.Post("/:id/satin-al", talepH.Purchase)
	isler.Patch("/:id/durum", talepH.UpdateStatus)

	// admin (JWT + yetki seviyesi)
	admin := api.Group("/admin", middleware.AdminAuth(cfg.AdminJWTSecret))
	admin.Get("/dashboard", middleware.RequireYetki(1), adminH.Dashboard)
	admin.Get("/odemeler", middleware.RequireYetki(2), adminH.BekleyenOdemeler)
	admin.Post("/odemeler/:id/karar", middleware.RequireYetki(2), adminH.OdemeKarar)

	logger.Info("sunucu başlıyor", "port", cfg.AppPort, "env", cfg.AppEnv)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		logger.Fatal(err, "adim", "listen")
	}
}

// errorHandler tüm hataları tek JSON zarfına indirger. SQL metni ve stack
// trace istemciye asla dönmez.
func errorHandler(c *fiber.Ctx, err error) error {
	envelope := fiber.Map{
		"timestamp": time.Now().Format(time.RFC3339),
		"requestId": c.Locals("requestid"),
	}

	if ae, ok := apperrors.AsAppError(err); ok {
		envelope["error"] = ae.Message
		envelope["statusCode"] = ae.StatusCode
		if len(ae.Details) > 0 {
			envelope["details"] = ae.Details
		}

		if ae.Operational {
			logger.Warn("operasyonel hata", "code", ae.Code, "message", ae.Message, "path", c.Path())
		} else {
			inner := ""
			if ae.Err != nil {
				inner = ae.Err.Error()
			}
			logger.Error("beklenmeyen hata", "code", ae.Code, "error", inner, "path", c.Path())
		}
		return c.Status(ae.StatusCode).JSON(envelope)
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		envelope["error"] = fe.Message
		envelope["statusCode"] = fe.Code
		logger.Warn("http hatası", "status", fe.Code, "path", c.Path())
		return c.Status(fe.Code).JSON(envelope)
	}

	logger.Error("beklenmeyen hata", "error", err.Error(), "path", c.Path())
	envelope["error"] = "Sunucu hatası"
	envelope["statusCode"] = fiber.StatusInternalServerError
	return c.Status(fiber.StatusInternalServerError).JSON(envelope)
}
