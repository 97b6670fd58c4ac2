// Command devrun starts the API and the web frontend together and stops them together.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/FACorreiaa/tiktok-to-trip/internal/devrun"
	"github.com/FACorreiaa/tiktok-to-trip/pkg/logger"
)

func main() {
	apiCmd := flag.String("api", "go run .", "command that starts the API")
	webCmd := flag.String("web", "go run ./cmd/web", "command that starts the web frontend")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file, using environment variables")
	}
	if err := logger.Init(logger.Options{Level: zapcore.InfoLevel}, zap.String("service", "devrun")); err != nil {
		log.Fatal(err)
	}
	defer logger.Log.Sync()

	api, err := process("api", *apiCmd)
	if err != nil {
		logger.Log.Fatal("Invalid -api command", zap.Error(err))
	}
	web, err := process("web", *webCmd)
	if err != nil {
		logger.Log.Fatal("Invalid -web command", zap.Error(err))
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	runErr := devrun.NewRunner(os.Stdout, logger.Log).Run(context.Background(), sigs, api, web)
	if runErr != nil {
		logger.Log.Error("Dev run failed", zap.Error(runErr))
	}
	_ = logger.Log.Sync()
	os.Exit(devrun.ExitCode(runErr))
}

func process(name, command string) (devrun.Process, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return devrun.Process{}, &devrun.StartError{Name: name, Err: os.ErrInvalid}
	}
	return devrun.Process{Name: name, Path: fields[0], Args: fields[1:]}, nil
}
