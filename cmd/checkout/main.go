package main

import (
	"context"
	"flag"
	"io"
	"os"

	"checkoutflow/pkg/checkout"
	"checkoutflow/pkg/config"
	"checkoutflow/pkg/logger"
	"checkoutflow/pkg/order/memory"
	"checkoutflow/pkg/otel"
)

func main() {
	envFile := flag.String("env", ".env", "optional dotenv file")
	inputPath := flag.String("input", "", "batch input file (default stdin, or CHECKOUT_INPUT)")
	flag.Parse()

	if err := run(*envFile, *inputPath); err != nil {
		os.Exit(1)
	}
}

func run(envFile, inputPath string) error {
	ctx := context.Background()

	cfg, err := config.Load(envFile)
	if err != nil {
		log := logger.New(os.Stderr, logger.LevelInfo, "checkoutflow", otel.GetTraceID)
		log.Error(ctx, "load config", "error", err)
		return err
	}
	if inputPath != "" {
		cfg.InputPath = inputPath
	}

	log := logger.New(os.Stderr, logger.ParseLevel(cfg.LogLevel), cfg.ServiceName, otel.GetTraceID)
	defer log.Sync()

	tp, shutdown, err := otel.InitTracing(log, otel.Config{
		ServiceName: cfg.ServiceName,
		Exporter:    cfg.TraceExporter,
		Host:        cfg.TraceHost,
		Probability: cfg.TraceProbability,
		Writer:      os.Stderr,
	})
	if err != nil {
		log.Error(ctx, "init tracing", "error", err)
		return err
	}
	defer shutdown(context.Background())
	ctx = otel.InjectTracing(ctx, tp.Tracer(cfg.ServiceName))

	var in io.Reader = os.Stdin
	if cfg.InputPath != "" {
		f, err := os.Open(cfg.InputPath)
		if err != nil {
			log.Error(ctx, "open input", "path", cfg.InputPath, "error", err)
			return err
		}
		defer f.Close()
		in = f
	}

	batch := checkout.New(log, os.Stdout, memory.New())
	log.Info(ctx, "batch started", "run_id", batch.RunID, "input", cfg.InputPath)
	if err := batch.Run(ctx, in); err != nil {
		log.Error(ctx, "batch aborted", "run_id", batch.RunID, "error", err)
		return err
	}
	return nil
}
