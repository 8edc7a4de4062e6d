package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/xerrors"

	"github.com/khaledhikmat/pd-go/mode"
	"github.com/khaledhikmat/pd-go/service/config"
	"github.com/khaledhikmat/pd-go/service/data"
	"github.com/khaledhikmat/pd-go/service/imaging"
	"github.com/khaledhikmat/pd-go/service/lgr"
	"github.com/khaledhikmat/pd-go/service/storage"
	"github.com/khaledhikmat/pd-go/service/webhook"
)

var modeProcessors = map[string]mode.Processor{
	"clean": mode.Clean,
	"audit": mode.Audit,
}

func main() {
	rootCtx := context.Background()
	canxCtx, canxFn := context.WithCancel(rootCtx)

	// Hook up a signal handler to cancel the context
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		lgr.Logger.Info(
			"received kill signal",
			slog.Any("signal", sig),
		)
		canxFn()
	}()

	// Load env vars if we are in DEV mode
	if os.Getenv("RUN_TIME_ENV") == "dev" || os.Getenv("RUN_TIME_ENV") == "" {
		lgr.Logger.Info("loading env vars from .env file")
		err := godotenv.Load()
		if err != nil {
			lgr.Logger.Error("error loading .env file", slog.Any("error", xerrors.New(err.Error())))
			panic("error loading .env file")
		}
	}

	modeType := "clean"
	args := os.Args[1:]
	if len(args) > 0 {
		modeType = args[0]
	}

	modeProc, ok := modeProcessors[modeType]
	if !ok {
		lgr.Logger.Error("invalid mode", slog.String("mode", modeType))
		panic("invalid mode")
	}

	// Create the services needed for the mode processor
	// Config service
	cfgSvc := config.NewEnvVars()
	// Data service
	dataSvc := data.NewFilesDB(cfgSvc)
	// Imaging service
	imgSvc := imaging.NewOpenCV(cfgSvc)
	// Storage service
	storageSvc := storage.NewFolder(cfgSvc)
	// Webhook service
	webhookSvc := webhook.NewHTTP(cfgSvc)

	// Create mode processor result
	modeProcResult := make(chan error)
	defer close(modeProcResult)

	// Start the mode processor
	go func() {
		modeProcResult <- modeProc(canxCtx, cfgSvc, dataSvc, imgSvc, storageSvc, webhookSvc)
	}()

	// Wait for cancellation or the mode processor to finish
	select {
	case err := <-modeProcResult:
		if err != nil {
			lgr.Logger.Error(
				"cleaner pod mode processor exited",
				slog.Any("error", xerrors.New(err.Error())),
			)
			os.Exit(1)
		}
		return

	case <-canxCtx.Done():
		lgr.Logger.Info(
			"cleaner pod context cancelled",
		)
	}

	// Wait in a non-blocking way for the shutdown duration so that the
	// mode processor can report how far it got before the cancellation
	lgr.Logger.Info(
		"cleaner pod is waiting for the mode processor to exit",
	)

	waitOnShutdown := time.Duration(cfgSvc.GetModeMaxShutdownTime()) * time.Second
	timer := time.NewTimer(waitOnShutdown)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			// Timer expired, proceed with shutdown
			lgr.Logger.Info(
				"cleaner pod shutdown waiting period expired. Exiting now",
				slog.Duration("period", waitOnShutdown),
			)
			return

		case err := <-modeProcResult:
			if err != nil {
				lgr.Logger.Info(
					"cleaner pod mode processor exited",
					slog.Any("error", xerrors.New(err.Error())),
				)
			}
			return
		}
	}
}
