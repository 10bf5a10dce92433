package llm

import (
	"fmt"
	"strings"
	"time"

	"github.com/jirayus/restaurant-voice-agent/agent/contract"
	openrouterx "github.com/jirayus/restaurant-voice-agent/pkg/openrouter"
)

// Config carries the shared model settings plus optional per-stage overrides.
// A stage without an override uses the default model and temperature.
type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" required:"true"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"2000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.5"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	SiteURL            string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName           string        `envconfig:"SITE_NAME" split_words:"true"`

	GreeterModel     string `envconfig:"GREETER_MODEL" split_words:"true"`
	ReservationModel string `envconfig:"RESERVATION_MODEL" split_words:"true"`
	TakeawayModel    string `envconfig:"TAKEAWAY_MODEL" split_words:"true"`
	CheckoutModel    string `envconfig:"CHECKOUT_MODEL" split_words:"true"`

	GreeterTemperature     float32 `envconfig:"GREETER_TEMPERATURE" split_words:"true" default:"-1"`
	ReservationTemperature float32 `envconfig:"RESERVATION_TEMPERATURE" split_words:"true" default:"-1"`
	TakeawayTemperature    float32 `envconfig:"TAKEAWAY_TEMPERATURE" split_words:"true" default:"-1"`
	CheckoutTemperature    float32 `envconfig:"CHECKOUT_TEMPERATURE" split_words:"true" default:"-1"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: openrouter api key is required", contract.ErrValidation)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: default model is required", contract.ErrValidation)
	}
	return nil
}

func (c Config) OpenRouterFor(name contract.StageName) openrouterx.Config {
	modelName := strings.TrimSpace(c.Model)
	temp := c.Temperature

	override := func(model string, temperature float32) {
		if v := strings.TrimSpace(model); v != "" {
			modelName = v
		}
		if temperature >= 0 {
			temp = temperature
		}
	}

	switch name {
	case contract.StageGreeter:
		override(c.GreeterModel, c.GreeterTemperature)
	case contract.StageReservation:
		override(c.ReservationModel, c.ReservationTemperature)
	case contract.StageTakeaway:
		override(c.TakeawayModel, c.TakeawayTemperature)
	case contract.StageCheckout:
		override(c.CheckoutModel, c.CheckoutTemperature)
	}

	maxCompletionToken := c.MaxCompletionToken
	return openrouterx.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              modelName,
		MaxCompletionToken: &maxCompletionToken,
		Temperature:        temp,
		Timeout:            c.Timeout,
		SiteURL:            strings.TrimSpace(c.SiteURL),
		SiteName:           strings.TrimSpace(c.SiteName),
	}
}
