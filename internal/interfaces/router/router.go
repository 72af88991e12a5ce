package router

import (
	"github.com/redis/go-redis/v9"

	"rentdesk-backend/internal/analytics"
	"rentdesk-backend/internal/auth"
	"rentdesk-backend/internal/config"
	"rentdesk-backend/internal/health"
	"rentdesk-backend/internal/infrastructure/database"
	"rentdesk-backend/internal/middleware"
	"rentdesk-backend/internal/payments"
	"rentdesk-backend/internal/properties"
	"rentdesk-backend/internal/tenants"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateApp builds the fiber app with all middleware and routes wired.
// Returns the app plus the DB and Redis handles so main can ping and close them.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}
	sessionHandler, rdb, err := middleware.Session(sessionCfg)
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)
	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	hh := &health.Handlers{
		Rdb:            rdb,
		HealthAdminKey: cfg.HealthAdminKey,
	}
	app.Get("/health/json", hh.JSON)
	app.Get("/health/reset", hh.Reset)

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		hh.DB = &gormDBPinger{db: db}
	}

	var userFinder auth.UserFinder
	if db != nil {
		userFinder = &auth.GormUserFinder{DB: db}
	}
	ah := &auth.Handlers{
		UserFinder: userFinder,
		Rdb:        rdb,
		Config:     sessionCfg,
	}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/login", ah.Login)
	authGroup.Get("/me", ah.Me)
	authGroup.Delete("/logout", ah.Logout)

	if db != nil {
		// Properties
		ps := &properties.Service{DB: db}
		ph := &properties.Handlers{Service: ps}
		pg := app.Group("/api/v1/properties", middleware.RequireAuth())
		pg.Post("/create-property", ph.CreateProperty)
		pg.Get("/get-all-properties", ph.GetAllProperties)
		pg.Get("/get-property/:property_id", ph.GetProperty)
		pg.Put("/update-property/:property_id", ph.UpdateProperty)
		pg.Delete("/delete-property/:property_id", ph.DeleteProperty)
		pg.Post("/record-reading/:property_id", ph.RecordReading)

		// Tenants
		ts := &tenants.Service{DB: db}
		th := &tenants.Handlers{Service: ts}
		tg := app.Group("/api/v1/tenants", middleware.RequireAuth())
		tg.Post("/create-tenant", th.CreateTenant)
		tg.Get("/get-all-tenants", th.GetAllTenants)
		tg.Get("/get-tenant/:tenant_id", th.GetTenant)
		tg.Post("/assign-tenant/:tenant_id", th.AssignTenant)
		tg.Post("/vacate-tenant/:tenant_id", th.VacateTenant)
		tg.Patch("/update-status/:tenant_id", th.UpdateStatus)

		// Payments
		pays := &payments.Service{DB: db}
		payh := &payments.Handlers{Service: pays}
		payg := app.Group("/api/v1/payments", middleware.RequireAuth())
		payg.Post("/record-payment", payh.RecordPayment)
		payg.Get("/get-history", payh.GetHistory)

		// Analytics
		as := &analytics.Service{DB: db, Properties: ps, Payments: pays}
		anh := &analytics.Handlers{Service: as}
		ag := app.Group("/api/v1/analytics", middleware.RequireAuth())
		ag.Get("/get-summary", anh.GetSummary)
		ag.Get("/get-outstanding", anh.GetOutstanding)
		ag.Get("/get-upcoming-dues", anh.GetUpcomingDues)
	}

	return app, db, rdb, nil
}
