package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"synapse-server/internal/agent"
	"synapse-server/internal/engine"
	"synapse-server/internal/infrastructure/storage"
	"synapse-server/internal/server"
	"synapse-server/internal/version"
	"synapse-server/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	var (
		addr       string
		seed       int64
		agents     int
		recordPath string
		replayPath string
	)
	flag.StringVar(&addr, "addr", ":8080", "HTTP listen address")
	flag.Int64Var(&seed, "seed", 0, "Session seed (0 for random)")
	flag.IntVar(&agents, "agents", 0, "Number of headless agents to attach")
	flag.StringVar(&recordPath, "record", "", "Path to write the command journal (JSONL)")
	flag.StringVar(&replayPath, "replay", "", "Path to a command journal to replay")
	flag.Parse()

	logger.Log.Info("Starting synapse server...")
	logger.Log.Info(version.String())

	// РЕЖИМ РЕПЛЕЯ
	if replayPath != "" {
		runReplay(replayPath)
		return
	}

	cfg := engine.NewConfig()
	if seed != 0 {
		cfg.Seed = seed
	}
	logger.Log.Infof("Session seed: %d", cfg.Seed)

	gameService, err := engine.NewService(cfg)
	if err != nil {
		logger.Log.Fatal("Engine init error: ", err)
	}

	var journal *storage.Journal
	if recordPath != "" {
		journal, err = storage.Create(recordPath, cfg.Seed)
		if err != nil {
			logger.Log.Fatal("Journal create error: ", err)
		}
		gameService.SetJournal(journal)
		logger.Log.Infof("Recording commands to %s", recordPath)
	}

	gameService.Start()

	for i := 0; i < agents; i++ {
		bot := agent.NewBot(fmt.Sprintf("agent_%d", i), gameService, cfg.Seed+int64(i)+1)
		go bot.Run()
	}

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	srv := server.New(gameService, addr)
	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error: ", err)
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")

	if journal != nil {
		if err := journal.Close(); err != nil {
			logger.Log.WithError(err).Error("journal close failed")
		}
	}

	logger.Log.Info("Done.")
}

// runReplay восстанавливает сессию из журнала: тот же сид, те же
// команды в том же порядке дают тот же мир.
func runReplay(path string) {
	logger.Log.Info("Mode: Replay Simulation")

	header, records, err := storage.Load(path)
	if err != nil {
		logger.Log.Fatal("Failed to load journal: ", err)
	}

	gameService, err := engine.NewService(engine.Config{Seed: header.Seed})
	if err != nil {
		logger.Log.Fatal("Engine init error: ", err)
	}

	if err := gameService.Replay(records); err != nil {
		logger.Log.Fatal("Replay failed: ", err)
	}

	state := gameService.BuildState()
	logger.Log.Infof("Replay finished: turn %d, %d creatures", state.Turn, len(state.Entities))
}
