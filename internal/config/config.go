// Package config provides typed access to the application's configuration.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/freelens/freelens/internal/llm"
)

// Data holds dataset settings.
type Data struct {
	Path               string
	DropIncompleteRows bool
}

// Export holds snapshot export settings.
type Export struct {
	DBPath string
}

// DataFromViper reads dataset settings from the loaded configuration.
func DataFromViper() Data {
	return Data{
		Path:               ExpandPath(viper.GetString("data.path")),
		DropIncompleteRows: viper.GetBool("data.drop_incomplete_rows"),
	}
}

// ExportFromViper reads export settings from the loaded configuration.
func ExportFromViper() Export {
	return Export{
		DBPath: ExpandPath(viper.GetString("export.db_path")),
	}
}

// LLMFromViper assembles the LLM client configuration. API keys come from the
// environment (OPENAI_API_KEY / ANTHROPIC_API_KEY) unless set explicitly.
func LLMFromViper() llm.Config {
	cfg := llm.Config{
		Provider:    viper.GetString("llm.provider"),
		APIKey:      viper.GetString("llm.api_key"),
		Model:       viper.GetString("llm.model"),
		Temperature: viper.GetFloat64("llm.temperature"),
		MaxTokens:   viper.GetInt("llm.max_tokens"),
		RateLimit:   viper.GetInt("llm.rate_limit"),
	}

	if cfg.APIKey == "" {
		switch strings.ToLower(cfg.Provider) {
		case "anthropic":
			cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		default:
			cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}

	return cfg
}

// SetDefaults registers configuration defaults with viper.
func SetDefaults() {
	viper.SetDefault("data.path", "freelancer_data.csv")
	viper.SetDefault("data.drop_incomplete_rows", true)
	viper.SetDefault("llm.provider", "openai")
	viper.SetDefault("llm.temperature", 0.3)
	viper.SetDefault("export.db_path", "freelens.db")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
}

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
