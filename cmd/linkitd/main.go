package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/ahmedkhaledali1/linkit-backend/config"
	"github.com/ahmedkhaledali1/linkit-backend/internal/api"
	"github.com/ahmedkhaledali1/linkit-backend/internal/app"
	"github.com/ahmedkhaledali1/linkit-backend/internal/webserver"
)

var (
	h        = flag.Bool("h", false, "help usage")
	showVer  = flag.Bool("v", false, "show version")
	conffile = flag.String("c", "", "config yaml file")
	initdb   = flag.Bool("initdb", false, "drop and recreate the database schema")
)

var version = "dev"

func main() {
	flag.Parse()
	if *h {
		flag.Usage()
		os.Exit(0)
	}
	if *showVer {
		fmt.Printf("linkitd %s\n", version)
		os.Exit(0)
	}

	cfg := config.LoadConfig(*conffile)

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.L().Info("database initialized")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	application.StartBackgroundJobs(ctx)

	webserver.Init(cfg, application.DB())
	api.Register(cfg, application.Orders(), application.Uploads())

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		zap.L().Info("shutdown signal received")
		if err := webserver.Shutdown(context.Background()); err != nil {
			zap.L().Error("web server shutdown error", zap.Error(err))
		}
	}()

	if err := webserver.Listen(); err != nil {
		zap.L().Fatal("web server failed", zap.Error(err))
	}
}
