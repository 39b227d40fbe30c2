/* main.go
 * The "main" method for running the bot and web server. For details about the bot see `readme.md`
 * Usage: go run main.go -test="<true|false>"
 * Authors: Zachary Bower
 */

package main

import (
	"context"
	"flag"
	"log"
	"os"

	"pool-bot/api/api"
	"pool-bot/bot"
	"pool-bot/config"
	"pool-bot/web"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded:", err)
	}

	// Flags
	testPtr := flag.String("test", "false", "Use main or test bot: takes true or false as argument")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	useTestBot, err := convertStrToBool(*testPtr)
	if err != nil {
		log.Fatal("invalid \"test\" flag. Should be true or false")
	}

	discordToken := cfg.DiscordToken
	if useTestBot {
		discordToken = os.Getenv("POOL_DISCORD_BETA_TOKEN")
	}

	apiPtr, err := api.NewAPI(cfg.DBName, cfg.MongoURI, cfg.PoolID, cfg.Season, cfg.ProviderURL, cfg.ProviderKey)
	if err != nil {
		log.Fatalf("failed to initialize API: %v", err)
	}
	defer func() {
		if err = apiPtr.Store.GetClient().Disconnect(context.TODO()); err != nil {
			panic(err)
		}
	}()

	// Web server runs alongside the bot: results webhook, JSON leaderboard
	// and /metrics
	go func() {
		if err := web.Start(web.Config{Addr: cfg.Addr, API: apiPtr}); err != nil {
			log.Fatalf("web server failed: %v", err)
		}
	}()

	// Init bot and run until interrupted
	b, err := bot.NewBot(discordToken, apiPtr)
	if err != nil {
		log.Fatalf("failed to initialize bot: %v", err)
	}
	if err := b.Run(); err != nil {
		log.Fatalf("bot exited with error: %v", err)
	}
}
