package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/thiefmaster/raspbot/apis"
	"github.com/thiefmaster/raspbot/comm"
	"github.com/thiefmaster/raspbot/motion"
)

// appState is owned by the goroutine running appState.run; every field is
// read and written from there only.
type appState struct {
	config    appConfig
	log       *zap.SugaredLogger
	client    *comm.Client
	pacer     *motion.ClockPacer
	scheduler *motion.Scheduler
	console   *apis.Console
	telemetry *apis.Telemetry
	inputs    <-chan apis.ConsoleEvent
}

func newAppState(config appConfig, dial comm.Dialer, clk clock.Clock, logger *zap.SugaredLogger) *appState {
	s := &appState{
		config:    config,
		log:       logger,
		client:    comm.NewClient(dial, logger),
		pacer:     motion.NewClockPacer(clk, config.Motion.Interval),
		console:   apis.NewConsole(config.Console.Origins, logger),
		telemetry: apis.NewTelemetry(logger),
	}
	s.scheduler = motion.NewScheduler(s.client, s.pacer, config.Motion.Speed, logger)
	s.inputs = s.console.Events()

	s.client.OnConnected(s.robotConnected)
	s.client.OnDisconnected(s.robotDisconnected)
	s.client.OnError(s.robotFailed)
	s.client.OnMessage(s.robotMessage)
	s.client.OnDistance(s.robotDistance)
	return s
}

func (s *appState) run(ctx context.Context) {
	if s.config.Robot.Autoconnect {
		s.connect("", 0)
	}
	for {
		select {
		case <-ctx.Done():
			s.shutdown()
			return
		case ev := <-s.client.Events():
			s.client.Handle(ev)
		case <-s.pacer.C():
			s.scheduler.Tick()
		case ev := <-s.inputs:
			s.handleConsoleEvent(ev)
		}
	}
}

func (s *appState) shutdown() {
	s.log.Infof("shutting down")
	s.scheduler.Release()
	s.client.Close()
}

func main() {
	path := "config.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	config := defaultConfig()
	if err := config.load(path); err != nil {
		fmt.Fprintf(os.Stderr, "Usage: %s [config.yaml]\n%v\n", os.Args[0], err)
		os.Exit(1)
	}
	logger, err := newLogger(config.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logger.Infof("loaded config file: %s", path)

	state := newAppState(config, config.dialer(), clock.New(), logger)
	defer state.console.Close()
	defer state.telemetry.Close()

	srv, err := apis.Serve(config.Console.Listen, apis.NewHandler(state.console, state.telemetry, config.Console.Credentials), logger)
	if err != nil {
		logger.Fatalf("could not start console server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	state.run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("console server shutdown: %v", err)
	}
}
