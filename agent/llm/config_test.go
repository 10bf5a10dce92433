package llm

import (
	"errors"
	"testing"

	"github.com/jirayus/restaurant-voice-agent/agent/contract"
)

func baseConfig() Config {
	return Config{
		APIKey:                 "key",
		Model:                  "openai/gpt-4o-mini",
		Temperature:            0.5,
		GreeterTemperature:     -1,
		ReservationTemperature: -1,
		TakeawayTemperature:    -1,
		CheckoutTemperature:    -1,
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	if err := baseConfig().Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	cfg := baseConfig()
	cfg.APIKey = "  "
	if err := cfg.Validate(); !errors.Is(err, contract.ErrValidation) {
		t.Fatalf("Validate() without api key error = %v, want ErrValidation", err)
	}

	cfg = baseConfig()
	cfg.Model = ""
	if err := cfg.Validate(); !errors.Is(err, contract.ErrValidation) {
		t.Fatalf("Validate() without model error = %v, want ErrValidation", err)
	}
}

func TestOpenRouterForDefaults(t *testing.T) {
	t.Parallel()

	got := baseConfig().OpenRouterFor(contract.StageGreeter)
	if got.Model != "openai/gpt-4o-mini" {
		t.Fatalf("model = %q", got.Model)
	}
	if got.Temperature != 0.5 {
		t.Fatalf("temperature = %v", got.Temperature)
	}
}

func TestOpenRouterForStageOverrides(t *testing.T) {
	t.Parallel()

	cfg := baseConfig()
	cfg.CheckoutModel = "openai/gpt-4o"
	cfg.CheckoutTemperature = 0.1

	got := cfg.OpenRouterFor(contract.StageCheckout)
	if got.Model != "openai/gpt-4o" {
		t.Fatalf("checkout model = %q", got.Model)
	}
	if got.Temperature != 0.1 {
		t.Fatalf("checkout temperature = %v", got.Temperature)
	}

	// other stages keep the defaults
	got = cfg.OpenRouterFor(contract.StageTakeaway)
	if got.Model != "openai/gpt-4o-mini" || got.Temperature != 0.5 {
		t.Fatalf("takeaway config = %+v", got)
	}
}

func TestOpenRouterForZeroTemperatureOverride(t *testing.T) {
	t.Parallel()

	cfg := baseConfig()
	cfg.GreeterTemperature = 0

	got := cfg.OpenRouterFor(contract.StageGreeter)
	if got.Temperature != 0 {
		t.Fatalf("temperature = %v, want explicit 0 override", got.Temperature)
	}
}
