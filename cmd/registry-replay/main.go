package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iotaledger/hive.go/log"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "registry-replay: %s\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	params, err := parseParameters(args)
	if err != nil {
		return err
	}

	scenario, err := loadScenario(params.ScenarioPath)
	if err != nil {
		return err
	}

	logger := log.NewLogger()
	if params.Verbose {
		logger.SetLogLevel(log.LevelTrace)
	}

	replay, err := NewReplay(logger, params)
	if err != nil {
		return err
	}
	defer replay.Shutdown()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err = replay.Run(ctx, scenario); err != nil {
		return err
	}

	return replay.LogState()
}
