// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"context"
	"os"
	"petdor-server/assessments"
	"petdor-server/commons"
	"petdor-server/config"
	"petdor-server/crypto"
	"petdor-server/db"
	"petdor-server/delivery"
	"petdor-server/handlers"
	"petdor-server/middlewares"
	"petdor-server/notifications"
	"petdor-server/resettokens"
	"petdor-server/routes"
	"petdor-server/users"
	"slices"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

func main() {
	commons.LoadEnvFile()

	cfg, err := config.Load(context.Background())
	if err != nil {
		commons.Logger.Fatalf("Failed to load configuration: %v", err)
	}

	e := echo.New()
	e.HideBanner = true

	e.Logger.SetLevel(commons.Logger.Level())
	e.Logger.SetHeader("${time_rfc3339} ${level} ${short_file}:${line} -")

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logMsg := func(format string, args ...any) {
				switch {
				case v.Status >= 500:
					e.Logger.Errorf(format, args...)
				case v.Status >= 400:
					e.Logger.Warnf(format, args...)
				default:
					e.Logger.Infof(format, args...)
				}
			}
			logMsg("%s %s - %d - %.2fms - %s",
				v.Method,
				v.URI,
				v.Status,
				float64(v.Latency.Microseconds())/1000.0,
				v.RemoteIP,
			)
			return nil
		},
	}))
	debugMode := slices.Contains(os.Args[1:], "--debug")
	if debugMode {
		e.Logger.Warn("Debug mode is enabled.")
		e.Debug = true
		e.Logger.SetLevel(log.DEBUG)
	}

	e.Use(middleware.Recover())

	conn, err := db.Connect(cfg)
	if err != nil {
		commons.Logger.Fatalf("Failed to connect to database: %v", err)
	}
	if slices.Contains(os.Args[1:], "--migrate-db") {
		commons.Logger.Debug("--migrate-db flag detected, running migrations")
		if err := db.Migrate(conn); err != nil {
			commons.Logger.Fatalf("%v", err)
		}
	}

	mailer, err := notifications.NewMailer(cfg)
	if err != nil {
		commons.Logger.Fatalf("Failed to initialize mailer: %v", err)
	}

	cryp := crypto.NewCrypto()
	userStore := users.NewStore(conn, cryp)
	resetManager := resettokens.NewManager(conn, userStore, cfg.ResetTokenTTL)
	assessmentStore := assessments.NewStore(conn)
	dispatcher := delivery.NewDispatcher(mailer, cfg.OperatorReportEmail, cfg.MailTimeout)
	auth := middlewares.NewAuth(conn, cfg.JWTSecret)

	h := &handlers.Handler{
		Conn:        conn,
		Config:      cfg,
		Auth:        auth,
		Users:       userStore,
		Resets:      resetManager,
		Assessments: assessmentStore,
		Dispatcher:  dispatcher,
		Mailer:      mailer,
	}
	routes.RegisterRoutes(e, h)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	if port[0] != ':' {
		port = ":" + port
	}
	e.Logger.Fatal(e.Start(port))
}
