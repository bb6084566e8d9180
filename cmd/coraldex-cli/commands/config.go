package commands

import (
	"os"
	"time"

	"coraldex/lib/configutil"
	"coraldex/lib/serviceutil"
	"coraldex/lib/wiki"
)

type WikiConfig struct {
	BaseUrl         string `json:"base_url"`
	UserAgent       string `json:"user_agent"`
	RequestDelayMs  int    `json:"request_delay_ms"`
	RetryCooldownMs int    `json:"retry_cooldown_ms"`
}

type Config struct {
	Wiki     WikiConfig `json:"wiki"`
	Database string     `json:"database"`
}

// readConfig loads coraldex.json5 when present; an absent file just means
// defaults. The politeness pacing numbers live here so they are explicit
// configuration, not magic constants.
func readConfig() Config {
	cfg, err := configutil.ReadConfig[Config]("coraldex.json5")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("failed to read config", err)
	}

	if cfg.Wiki.BaseUrl == "" {
		cfg.Wiki.BaseUrl = "https://coralisland.wiki.gg"
	}
	if cfg.Database == "" {
		cfg.Database = "coraldex.db"
	}
	return cfg
}

func newWikiClient(cfg Config) *wiki.Client {
	client, err := wiki.NewClient(wiki.ClientOptions{
		BaseUrl:       cfg.Wiki.BaseUrl,
		UserAgent:     cfg.Wiki.UserAgent,
		RequestDelay:  time.Duration(cfg.Wiki.RequestDelayMs) * time.Millisecond,
		RetryCooldown: time.Duration(cfg.Wiki.RetryCooldownMs) * time.Millisecond,
	})
	if err != nil {
		serviceutil.Fatal("failed to initialize wiki client", err)
	}
	return client
}
