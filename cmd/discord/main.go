// cmd/discord/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"papo-bot/internal/config"
	"papo-bot/internal/cooldown"
	"papo-bot/internal/discord"
	"papo-bot/internal/smuckles"
	"papo-bot/internal/storage"
)

func main() {
	log.Println("[INFO] Starting Papo bot...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.New()

	pool, err := storage.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	store := storage.New(pool)
	if err := store.InitSchema(ctx); err != nil {
		log.Fatal(err)
	}

	giveGate := cooldown.New(cfg.GiveCooldown)
	bonkGate := cooldown.New(cfg.BonkCooldown)

	svc := smuckles.NewService(store, smuckles.Rules{
		TargetID: cfg.TargetUserID,
		GiverID:  cfg.GiverUserID,
		AdminID:  cfg.AdminUserID,
		Step:     cfg.AmountStep,
		Jackpot:  cfg.JackpotAmount,
	}, giveGate)

	errCh := make(chan error, 1)
	go func() {
		if err := discord.StartBot(ctx, cfg, store, svc, bonkGate); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Printf("[INFO] Received signal %s, shutting down...\n", s)
		cancel()
	case err := <-errCh:
		if err != nil {
			log.Println("[ERR] Discord bot error:", err)
		}
		cancel()
	case <-ctx.Done():
	}

	log.Println("[INFO] Discord bot exited cleanly")
}
