package main

import (
	"fmt"
	"os"

	"github.com/githuax/zeduno-sub008/internal/events"
	"github.com/githuax/zeduno-sub008/internal/handler"
	"github.com/githuax/zeduno-sub008/internal/middleware"
	"github.com/githuax/zeduno-sub008/internal/model"
	"github.com/githuax/zeduno-sub008/internal/order"
	"github.com/githuax/zeduno-sub008/internal/tenantadmin"
	"github.com/githuax/zeduno-sub008/internal/timeclock"
	"github.com/githuax/zeduno-sub008/pkg/config"
	"github.com/githuax/zeduno-sub008/pkg/database"
	"github.com/githuax/zeduno-sub008/pkg/jwtutil"
	"github.com/githuax/zeduno-sub008/pkg/logger"
	"github.com/githuax/zeduno-sub008/prometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	conf, err := config.Load("hospitality")
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.InitLogger(&logger.LogConfig{
		Level:       conf.Log.Level,
		Environment: conf.Server.Env,
		ServiceName: conf.ServiceName,
	})
	if err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.GetLogger()
	log.Info("Starting hospitality service", zap.String("environment", conf.Server.Env))

	// Initialize database connection
	db, err := database.Connect(&conf.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Run migrations
	err = database.Migrate(db,
		&model.Tenant{},
		&model.User{},
		&model.Employee{},
		&model.MenuItem{},
		&model.Table{},
		&model.Order{},
		&model.OrderItem{},
		&model.Shift{},
		&model.Attendance{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database models", zap.Error(err))
	}

	// Initialize JWT utility
	jwt := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{
		SigningKey:      conf.JWT.SigningKey,
		ExpirationHours: conf.JWT.ExpirationHours,
	})

	// Order event producer, optional
	var publisher events.Publisher
	if conf.Kafka.Enabled {
		producer := events.NewKafkaProducer(conf.Kafka.Brokers, conf.Kafka.Topic)
		defer producer.Close()
		publisher = producer
		log.Info("Kafka order events enabled", zap.Strings("brokers", conf.Kafka.Brokers))
	}

	// Wire services
	orderRepo := order.NewRepo(db)
	orderSvc := order.NewService(orderRepo, publisher, conf.Billing)
	tableSvc := order.NewTableService(db, orderRepo)
	timeclockSvc := timeclock.NewService(db)
	adminSvc := tenantadmin.NewService(db, conf.Billing.DefaultMaxUsers)

	orders := &handler.OrderHandler{Svc: orderSvc}
	tables := &handler.TableHandler{Svc: tableSvc}
	shifts := &handler.ShiftHandler{Svc: timeclockSvc}
	attendance := &handler.AttendanceHandler{Svc: timeclockSvc}
	tenants := &handler.TenantHandler{Svc: adminSvc}
	users := &handler.UserHandler{Svc: adminSvc}
	auth := &handler.AuthHandler{Svc: adminSvc, JWT: jwt}
	menu := &handler.MenuHandler{DB: db}
	employees := &handler.EmployeeHandler{DB: db}

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.Middleware())
	e.Use(prometheus.MetricsMiddleware())

	// Public routes
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(prometheus.Handler()))
	e.POST("/auth/register", auth.Register)
	e.POST("/auth/login", auth.Login)

	// Secured routes - require authentication
	api := e.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(jwt))

	api.POST("/orders", orders.Create)
	api.GET("/orders", orders.List)
	api.GET("/orders/:id", orders.Get)
	api.PATCH("/orders/:id/status", orders.Transition)
	api.PUT("/orders/:id/items", orders.UpdateItems)

	api.POST("/tables", tables.Create)
	api.GET("/tables", tables.List)
	api.PATCH("/tables/:id/status", tables.SetStatus)

	api.POST("/menu", menu.Create)
	api.GET("/menu", menu.List)
	api.PUT("/menu/:id", menu.Update)
	api.DELETE("/menu/:id", menu.Delete)

	api.POST("/employees", employees.Create)
	api.GET("/employees", employees.List)

	api.POST("/shifts", shifts.Create)
	api.GET("/shifts", shifts.List)
	api.POST("/shifts/:id/start", shifts.Start)
	api.POST("/shifts/:id/break/start", shifts.StartBreak)
	api.POST("/shifts/:id/break/end", shifts.EndBreak)
	api.POST("/shifts/:id/complete", shifts.Complete)
	api.POST("/shifts/:id/reopen", shifts.Reopen)

	api.POST("/attendance/clock-in", attendance.ClockIn)
	api.POST("/attendance/:id/clock-out", attendance.ClockOut)
	api.POST("/attendance/:id/break", attendance.RecordBreak)
	api.GET("/attendance", attendance.List)

	api.POST("/tenants", tenants.Create)
	api.GET("/tenants", tenants.List)
	api.GET("/tenants/:id", tenants.Get)
	api.POST("/tenants/reconcile-user-counts", tenants.Reconcile)

	api.POST("/users", users.Create)
	api.GET("/users", users.List)
	api.PATCH("/users/:id/active", users.SetActive)
	api.DELETE("/users/:id", users.Delete)

	// Start server
	log.Info("Starting hospitality service on port " + conf.Server.Port)
	e.Logger.Fatal(e.Start(":" + conf.Server.Port))
}
