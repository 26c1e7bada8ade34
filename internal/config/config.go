package config

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/madhusmita6505/mads-poc/internal/logging"
)

// Config holds application configuration.
type Config struct {
	HTTPAddress        string
	OpenAIKey          string
	OpenAIModel        string
	TranscriptionModel string
	StaticDir          string
	ClientDataPath     string
}

// Load reads environment variables and returns Config with sane defaults.
func Load() Config {
	log := logging.Sugar()
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file loaded")
	}

	addr := os.Getenv("HTTP_ADDRESS")
	if addr == "" {
		addr = ":8001"
	}

	openAIKey := os.Getenv("OPENAI_API_KEY")
	if openAIKey == "" {
		log.Warn("OPENAI_API_KEY not set - transcription and analysis will not work")
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-5.2"
	}

	transcriptionModel := os.Getenv("TRANSCRIPTION_MODEL")
	if transcriptionModel == "" {
		transcriptionModel = "gpt-4o-mini-transcribe"
	}

	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "static"
	}

	clientDataPath := os.Getenv("CLIENT_DATA_PATH")
	if clientDataPath == "" {
		clientDataPath = "static/data/clients.json"
	}

	log.Infow("config loaded", "http_address", addr, "model", model, "transcription_model", transcriptionModel)
	return Config{
		HTTPAddress:        addr,
		OpenAIKey:          openAIKey,
		OpenAIModel:        model,
		TranscriptionModel: transcriptionModel,
		StaticDir:          staticDir,
		ClientDataPath:     clientDataPath,
	}
}
