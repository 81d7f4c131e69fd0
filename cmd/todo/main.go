package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"todo/internal/app"
	"todo/internal/config"
	"todo/internal/logging"
	"todo/internal/storage"
	"todo/internal/ui"
)

func main() {
	configPath := flag.String("config", config.ResolveConfigPath(), "path to config.toml")
	memory := flag.Bool("memory", false, "keep tasks in memory only")
	flag.Parse()

	firstLaunch := false
	if _, err := os.Stat(*configPath); err != nil {
		firstLaunch = errors.Is(err, os.ErrNotExist)
	}
	cfg, err := config.LoadOrCreate(*configPath)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, logFile, err := logging.Open(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		fmt.Printf("failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	var kv storage.KV = storage.NewMemory()
	if !*memory {
		store, err := storage.Open(cfg.DBPath)
		if err != nil {
			fmt.Printf("failed to open database: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		kv = store
	}

	tasks := storage.NewTasks(kv, cfg.StorageKey, logging.Component(log, "storage"))
	ctrl := app.New(tasks, logging.Component(log, "app"), app.Options{
		UndoWindow: cfg.UndoWindow(),
		Filter:     cfg.Filter(),
	})

	if err := ui.Run(ctrl, cfg, firstLaunch); err != nil {
		log.WithError(err).Error("ui exited")
		fmt.Printf("error running program: %v\n", err)
		os.Exit(1)
	}
}
