package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Supabase   SupabaseConfig
	OpenAI     OpenAIConfig
	CORS       CORSConfig
	Logger     LoggerConfig
	PromptPath string
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// SupabaseConfig holds everything needed to talk to the Supabase project:
// the PostgREST data API, the GoTrue admin API, and local verification of
// the HS256 access tokens Supabase issues to clients.
type SupabaseConfig struct {
	URL        string
	AnonKey    string
	ServiceKey string
	JWTSecret  string
}

type OpenAIConfig struct {
	APIKey          string
	ChatModel       string
	ClassifierModel string
	RealtimeModel   string
	RealtimeVoice   string
	Timeout         time.Duration
}

type CORSConfig struct {
	AllowOrigins string
}

type LoggerConfig struct {
	Env   string
	Level string
}

func LoadConfig() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("server.port", 5000)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 30)
	viper.SetDefault("openai.chat_model", "gpt-4o-mini")
	viper.SetDefault("openai.classifier_model", "gpt-4o-mini")
	viper.SetDefault("openai.realtime_model", "gpt-4o-realtime-preview")
	viper.SetDefault("openai.realtime_voice", "sage")
	viper.SetDefault("openai.timeout", 30)
	viper.SetDefault("cors.allow_origins", "http://localhost:3000")
	viper.SetDefault("prompt_path", "prompt.json")

	if err := viper.ReadInConfig(); err != nil {
		// A config file is a convenience; environment variables alone are enough.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		Supabase: SupabaseConfig{
			URL:        viper.GetString("supabase.url"),
			AnonKey:    viper.GetString("supabase.anon_key"),
			ServiceKey: viper.GetString("supabase.service_key"),
			JWTSecret:  viper.GetString("supabase.jwt_secret"),
		},
		OpenAI: OpenAIConfig{
			APIKey:          viper.GetString("openai.api_key"),
			ChatModel:       viper.GetString("openai.chat_model"),
			ClassifierModel: viper.GetString("openai.classifier_model"),
			RealtimeModel:   viper.GetString("openai.realtime_model"),
			RealtimeVoice:   viper.GetString("openai.realtime_voice"),
			Timeout:         viper.GetDuration("openai.timeout") * time.Second,
		},
		CORS: CORSConfig{
			AllowOrigins: viper.GetString("cors.allow_origins"),
		},
		Logger: LoggerConfig{
			Env:   viper.GetString("logger.env"),
			Level: viper.GetString("logger.level"),
		},
		PromptPath: viper.GetString("prompt_path"),
	}

	// Environment variable overrides for the names the deployment platform uses.
	if url := os.Getenv("SUPABASE_URL"); url != "" {
		config.Supabase.URL = url
	}
	if key := os.Getenv("SUPABASE_ANON_KEY"); key != "" {
		config.Supabase.AnonKey = key
	}
	if key := os.Getenv("SUPABASE_SERVICE_ROLE_KEY"); key != "" {
		config.Supabase.ServiceKey = key
	}
	if secret := os.Getenv("SUPABASE_JWT_SECRET"); secret != "" {
		config.Supabase.JWTSecret = secret
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		config.OpenAI.APIKey = key
	}
	if port := os.Getenv("PORT"); port != "" {
		viper.Set("server.port", port)
		config.Server.Port = viper.GetInt("server.port")
	}

	return config, nil
}

// Validate checks the settings that have no usable default.
func (c *Config) Validate() error {
	if c.Supabase.URL == "" {
		return fmt.Errorf("supabase url is required (SUPABASE_URL)")
	}
	if c.Supabase.ServiceKey == "" {
		return fmt.Errorf("supabase service role key is required (SUPABASE_SERVICE_ROLE_KEY)")
	}
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("openai api key is required (OPENAI_API_KEY)")
	}
	return nil
}
