package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"cardlink/internal/models"
)

// YAMLConfig represents the structure of the config.yaml file.
// Lists that are awkward as env vars live here.
type YAMLConfig struct {
	Console ConsoleConfig  `yaml:"console"`
	Themes  []models.Theme `yaml:"themes"`
}

// ConsoleConfig configures the operator console.
type ConsoleConfig struct {
	Operators  []Operator    `yaml:"operators"`
	SessionTTL time.Duration `yaml:"session_ttl"` // e.g. "12h"
}

// DefaultThemes are the presets offered when no themes are configured.
var DefaultThemes = []models.Theme{
	{Name: "Ocean Blue", Primary: "#3B82F6", Secondary: "#1E40AF", Background: "#FFFFFF", Text: "#1F2937"},
	{Name: "Forest Green", Primary: "#10B981", Secondary: "#047857", Background: "#FFFFFF", Text: "#1F2937"},
	{Name: "Sunset Orange", Primary: "#F59E0B", Secondary: "#D97706", Background: "#FFFFFF", Text: "#1F2937"},
	{Name: "Royal Purple", Primary: "#8B5CF6", Secondary: "#7C3AED", Background: "#FFFFFF", Text: "#1F2937"},
	{Name: "Rose Pink", Primary: "#EC4899", Secondary: "#DB2777", Background: "#FFFFFF", Text: "#1F2937"},
	{Name: "Dark Mode", Primary: "#60A5FA", Secondary: "#3B82F6", Background: "#1F2937", Text: "#F9FAFB"},
}

// LoadYAMLConfig loads the YAML configuration file.
// Path is determined by CONFIG_FILE env var, defaulting to "config.yaml".
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig() (*YAMLConfig, error) {
	return loadYAMLFile(getEnv("CONFIG_FILE", "config.yaml"))
}

func loadYAMLFile(path string) (*YAMLConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
