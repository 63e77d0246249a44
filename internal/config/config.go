// /internal/config/config.go
package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, falling back to system environment variables")
	}
}

// Config holds every knob of the bot. Nothing with an id or a threshold in
// it is hardcoded elsewhere.
type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN,required"`
	DatabaseURL  string `env:"DATABASE_URL,required"`
	GuildID      string `env:"GUILD_ID"`

	// Smuckles ledger
	TargetUserID  int64         `env:"TARGET_USER_ID" envDefault:"1028310674318839878"`
	GiverUserID   int64         `env:"AUTHORIZED_GIVER_ID" envDefault:"1422010902680567918"`
	AdminUserID   int64         `env:"ADMIN_USER_ID" envDefault:"939225086341296209"`
	AmountStep    int64         `env:"AMOUNT_STEP" envDefault:"5"`
	JackpotAmount int64         `env:"JACKPOT_AMOUNT" envDefault:"50"`
	GiveCooldown  time.Duration `env:"GIVE_COOLDOWN" envDefault:"8s"`
	Currency      string        `env:"CURRENCY_SYMBOL" envDefault:"🍉"`

	// Bonk counter
	BonkCooldown  time.Duration `env:"BONK_COOLDOWN" envDefault:"10s"`
	StreakStep    int64         `env:"BONK_STREAK_STEP" envDefault:"10"`
	PenaltyStep   int64         `env:"BONK_PENALTY_STEP" envDefault:"20"`
	PenaltyAmount int64         `env:"BONK_PENALTY_AMOUNT" envDefault:"10"`

	// Link capture
	LinkOwnerID int64 `env:"LINK_OWNER_ID" envDefault:"1028310674318839878"`

	// Leaderboards
	LeaderboardLimit int `env:"LEADERBOARD_LIMIT" envDefault:"10"`
	LeaderboardMax   int `env:"LEADERBOARD_MAX" envDefault:"30"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatal("Failed to parse configuration:", err)
	}
	if err := cfg.validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}
	return cfg
}

// validate rejects values the core divides or counts by. A zero step would
// panic the amount check; negative durations would disable cooldowns silently.
func (c *Config) validate() error {
	if c.AmountStep < 1 {
		return fmt.Errorf("AMOUNT_STEP must be at least 1, got %d", c.AmountStep)
	}
	if c.JackpotAmount < 1 {
		return fmt.Errorf("JACKPOT_AMOUNT must be at least 1, got %d", c.JackpotAmount)
	}
	if c.StreakStep < 1 {
		return fmt.Errorf("BONK_STREAK_STEP must be at least 1, got %d", c.StreakStep)
	}
	if c.PenaltyStep < 1 {
		return fmt.Errorf("BONK_PENALTY_STEP must be at least 1, got %d", c.PenaltyStep)
	}
	if c.PenaltyAmount < 1 {
		return fmt.Errorf("BONK_PENALTY_AMOUNT must be at least 1, got %d", c.PenaltyAmount)
	}
	if c.GiveCooldown < 0 {
		return fmt.Errorf("GIVE_COOLDOWN must not be negative, got %s", c.GiveCooldown)
	}
	if c.BonkCooldown < 0 {
		return fmt.Errorf("BONK_COOLDOWN must not be negative, got %s", c.BonkCooldown)
	}
	if c.LeaderboardLimit < 1 || c.LeaderboardMax < c.LeaderboardLimit {
		return fmt.Errorf("leaderboard limits out of range: default %d, max %d",
			c.LeaderboardLimit, c.LeaderboardMax)
	}
	return nil
}
