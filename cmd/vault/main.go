package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"VaultSentinel/internal/config"
	"VaultSentinel/internal/engine"
	"VaultSentinel/internal/model"
	"VaultSentinel/internal/notifier"
	"VaultSentinel/internal/recorder"
	"VaultSentinel/internal/scheduler"
	"VaultSentinel/internal/treasury"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] VaultSentinel starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init audit recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Init approval engine
	admins := make([]model.Identity, 0, len(cfg.Vault.Administrators))
	for _, a := range cfg.Vault.Administrators {
		admins = append(admins, model.Identity(a))
	}
	eng, err := engine.New(
		cfg.Vault.StateFile,
		model.Identity(cfg.Vault.Owner),
		cfg.Vault.RequiredApprovals,
		admins,
		treasury.NewLogPayer(),
		rec,
	)
	if err != nil {
		log.Fatalf("[FATAL] init approval engine: %v", err)
	}
	st := eng.Status()
	log.Printf("[INFO] vault loaded: balance=%d admins=%d quorum=%d pending=%d",
		st.Balance, st.Administrators, st.Required, st.Pending)

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, eng, tn)
	if err := sched.RegisterAll(cfg.Schedule.SweepCron, cfg.Schedule.SummaryCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	// Optional: sweep immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing sweep now")
		go sched.RunSweepNow()
	}

	log.Println("[INFO] VaultSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] VaultSentinel stopped")
}
