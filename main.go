package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jirayus/restaurant-voice-agent/agent/contract"
	llmx "github.com/jirayus/restaurant-voice-agent/agent/llm"
	"github.com/jirayus/restaurant-voice-agent/agent/runtime"
	"github.com/jirayus/restaurant-voice-agent/agent/store"
	configx "github.com/jirayus/restaurant-voice-agent/pkg/config"
	logx "github.com/jirayus/restaurant-voice-agent/pkg/logger"
	openrouterx "github.com/jirayus/restaurant-voice-agent/pkg/openrouter"
	tablesx "github.com/jirayus/restaurant-voice-agent/pkg/tables"
)

type AppConfig struct {
	Menu        string `envconfig:"MENU"`
	PostgresDSN string `envconfig:"POSTGRES_DSN"`
	TableSvcURL string `envconfig:"TABLE_SVC_URL"`
}

func main() {
	logCfg := configx.MustNew[logx.Config]("LOG")
	logx.Init(*logCfg)

	appCfg := configx.MustNew[AppConfig]("APP")
	llmCfg := configx.MustNew[llmx.Config]("OPENROUTER")

	// raw SDK client doubles as a startup credential check
	if client := openrouterx.NewClient(llmCfg.OpenRouterFor(contract.StageGreeter)); client == nil {
		log.Fatal().Msg("openrouter api key is not configured")
	}

	ctx := context.Background()

	records, cleanup, err := buildStore(ctx, appCfg.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("record store init failed")
	}
	defer cleanup()

	assigner := buildAssigner(appCfg.TableSvcURL)

	rt, err := runtime.NewFromConfig(ctx, *llmCfg, records, assigner, runtime.Config{Menu: appCfg.Menu})
	if err != nil {
		log.Fatal().Err(err).Msg("session runtime init failed")
	}

	greeting, err := rt.Start(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("session start failed")
	}
	fmt.Println("bot:", greeting)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you: ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "/quit" {
			break
		}

		reply, err := rt.HandleTurn(ctx, text)
		if err != nil {
			log.Error().Err(err).Msg("turn failed")
			continue
		}
		fmt.Println("bot:", reply)
	}

	log.Info().Str("summary", rt.Session().Summarize()).Msg("session ended")
}

func buildStore(ctx context.Context, dsn string) (store.Store, func(), error) {
	if strings.TrimSpace(dsn) == "" {
		log.Info().Msg("no postgres dsn configured, using in-memory store")
		return store.NewMemoryStore(), func() {}, nil
	}

	pg, err := store.NewPostgresStore(store.PostgresConfig{DSN: dsn})
	if err != nil {
		return nil, nil, err
	}
	if err := pg.Init(ctx); err != nil {
		return nil, nil, err
	}
	return pg, func() { _ = pg.Close() }, nil
}

func buildAssigner(url string) tablesx.Assigner {
	if strings.TrimSpace(url) == "" {
		log.Info().Msg("no table service configured, using static assignment")
		return tablesx.Static{}
	}
	return tablesx.MustNew(tablesx.Config{URL: url})
}
