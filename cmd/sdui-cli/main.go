package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-sdui/internal/loader"
	"github.com/goliatone/go-sdui/pkg/analytics"
	"github.com/goliatone/go-sdui/pkg/config"
	"github.com/goliatone/go-sdui/pkg/designsystem"
	"github.com/goliatone/go-sdui/pkg/orchestrator"
	"github.com/goliatone/go-sdui/pkg/platforms/terminal"
	"github.com/goliatone/go-sdui/pkg/schema"
	"github.com/goliatone/go-sdui/pkg/view"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	envFile := flag.String("env", ".env", "dotenv file loaded before the environment")
	source := flag.String("source", "", "screen document path or URL")
	platform := flag.String("platform", "", "platform to render on (html, terminal); overrides config")
	output := flag.String("output", "", "output file (stdout if empty)")
	title := flag.String("title", "", "document title")
	screen := flag.String("screen", "", "screen name reported to analytics")
	interactive := flag.Bool("interactive", false, "drive the terminal platform with prompts")
	flag.Parse()

	cfg, err := config.Load(config.Options{Path: *configPath, EnvFiles: []string{*envFile}})
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *platform != "" {
		cfg.Platform = *platform
	}

	logger, err := config.NewLogger(cfg.Log, nil)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	src, err := schema.ParseSource(*source)
	if err != nil {
		logger.Fatalf("source: %v", err)
	}

	opts, err := options(cfg, logger)
	if err != nil {
		logger.Fatalf("configure: %v", err)
	}

	ctx := context.Background()
	result, err := orchestrator.New(opts...).Render(ctx, orchestrator.Request{
		Source:   src,
		Platform: cfg.Platform,
		Screen:   *screen,
	})
	if err != nil {
		logger.Fatalf("render screen: %v", err)
	}
	defer result.Close()

	if *interactive {
		if err := runInteractive(ctx, result, logger); err != nil {
			logger.Fatalf("session: %v", err)
		}
		return
	}

	if q, ok := result.Queue(); ok {
		q.Drain()
	}
	out, err := result.Output(orchestrator.OutputOptions{Title: *title})
	if err != nil {
		logger.Fatalf("output: %v", err)
	}
	if *output != "" {
		if err := os.WriteFile(*output, out, 0o644); err != nil {
			logger.Fatalf("write output: %v", err)
		}
		fmt.Printf("Screen written to %s\n", *output)
		return
	}
	fmt.Print(string(out))
}

func options(cfg config.Config, logger *logrus.Logger) ([]orchestrator.Option, error) {
	loaderOpts := []schema.LoaderOption{}
	if cfg.Remote.AllowHTTP {
		loaderOpts = append(loaderOpts, schema.WithHTTPFallback(cfg.Remote.Timeout))
	}

	opts := []orchestrator.Option{
		orchestrator.WithLogger(logger),
		orchestrator.WithLoader(loader.New(schema.NewLoaderOptions(loaderOpts...))),
	}

	if cfg.Theme.Manifest != "" {
		design, err := designsystem.LoadManifest(cfg.Theme.Manifest, cfg.Theme.Variant)
		if err != nil {
			return nil, err
		}
		if name := design.Selection().Theme; cfg.Theme.Name != "" && !strings.EqualFold(name, cfg.Theme.Name) {
			logger.WithFields(logrus.Fields{"want": cfg.Theme.Name, "got": name}).Warn("theme manifest name differs from configured theme")
		}
		opts = append(opts, orchestrator.WithDesignSystem(design))
	}

	if cfg.Analytics.Enabled {
		analyticsCfg := analytics.Config{
			EnableScreenAnalytics: cfg.Analytics.Screens,
			Actions:               cfg.Analytics.Actions,
		}
		opts = append(opts, orchestrator.WithAnalytics(analytics.Multi(
			analytics.NewLogProvider(analyticsCfg, logger),
			analytics.NewMetricsProvider(analyticsCfg),
		)))
	}

	if strings.EqualFold(cfg.Platform, "terminal") {
		images := view.NewHTTPImageLoader(nil, cfg.Images.Timeout)
		images.MaxBytes = cfg.Images.MaxBytes
		opts = append(opts, orchestrator.WithImageLoader(images))
	}
	return opts, nil
}

func runInteractive(ctx context.Context, result *orchestrator.Result, logger logrus.FieldLogger) error {
	root, ok := result.Screen.Root().(*terminal.Widget)
	if !ok {
		return fmt.Errorf("interactive mode needs the terminal platform, got %q", result.Platform)
	}
	presenter, _ := result.Surface.Presenter.(*terminal.Presenter)
	queue, _ := result.Queue()
	session, err := terminal.NewSession(root, presenter, queue, terminal.WithLogger(logger))
	if err != nil {
		return err
	}
	return session.Run(ctx)
}
