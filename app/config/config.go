package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log    Log    `yaml:"log"`
	Server Server `yaml:"server"`
	Gemini Gemini `yaml:"gemini"`
}

type Server struct {
	// Listen address of the HTTP API
	Addr string `yaml:"addr" example:":8000"`
}

type Gemini struct {
	// Gemini API key, falls back to the GOOGLE_API_KEY environment variable
	APIKey string `yaml:"api_key" example:"AIzaSyAbCdEf1234567890GhIjKlMnOpQrStUvWx" validate:"required"`
	// Model used for both text generation and grounded search
	Model string `yaml:"model" example:"gemini-2.5-flash" validate:"required"`
}

type Log struct {
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890"`
}

func Load() (*Config, error) {
	var result Config

	data, err := os.ReadFile("config.yaml")
	switch {
	case os.IsNotExist(err):
		// environment-only setup, fallbacks below cover it
	case err != nil:
		return nil, oops.Errorf("failed to read config file: %w", err)
	default:
		if err = yaml.Unmarshal(data, &result); err != nil {
			return nil, oops.Errorf("failed to parse YAML config: %w", err)
		}
	}

	if result.Server.Addr == "" {
		result.Server.Addr = ":8000"
	}
	if result.Gemini.APIKey == "" {
		result.Gemini.APIKey = os.Getenv("GOOGLE_API_KEY")
	}
	if result.Gemini.Model == "" {
		result.Gemini.Model = os.Getenv("MODEL_NAME")
	}
	if result.Gemini.Model == "" {
		result.Gemini.Model = "gemini-2.5-flash"
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}
