// Command sdui-mockapi serves sample screen documents and the mock book
// database used by the demo screens.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-sdui/pkg/config"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	envFile := flag.String("env", ".env", "dotenv file loaded before the environment")
	screensDir := flag.String("screens", "", "directory of screen documents (embedded samples if empty)")
	addr := flag.String("addr", "", "listen address; overrides config")
	flag.Parse()

	cfg, err := config.Load(config.Options{Path: *configPath, EnvFiles: []string{*envFile}})
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	logger, err := config.NewLogger(cfg.Log, nil)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	screens := defaultScreens()
	if *screensDir != "" {
		screens = os.DirFS(*screensDir)
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           newServer(screens, logger).routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.WithField("addr", cfg.Server.Addr).Info("mock api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("serve")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("shutdown")
	}
}
