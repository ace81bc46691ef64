package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Server     ServerConfig     `yaml:"server"`
	Generation GenerationConfig `yaml:"generation"`
	Images     ImagesConfig     `yaml:"images"`
	Storage    StorageConfig    `yaml:"storage"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// GenerationConfig bounds the post-generation pipeline.
//
// Models is a pool of equivalent model identifiers; one is picked per run for
// stylistic variety only, never for correctness.
type GenerationConfig struct {
	Models          []string `yaml:"models"`
	MaxCandidates   int      `yaml:"max_candidates"`
	ResultsPerGenre int      `yaml:"results_per_genre"`
}

type ImagesConfig struct {
	Styles        []string `yaml:"styles"`
	FallbackQuery string   `yaml:"fallback_query"`
}

type StorageConfig struct {
	PostBucket    string `yaml:"post_bucket"`
	ProfileBucket string `yaml:"profile_bucket"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}
	applyDefaults(&c)
	config = &c
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func applyDefaults(c *AppConfig) {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Generation.MaxCandidates <= 0 {
		c.Generation.MaxCandidates = 3
	}
	if c.Generation.ResultsPerGenre <= 0 {
		c.Generation.ResultsPerGenre = 3
	}
	if c.Storage.PostBucket == "" {
		c.Storage.PostBucket = "posts"
	}
	if c.Storage.ProfileBucket == "" {
		c.Storage.ProfileBucket = "profiles"
	}
}

// GetBasePath walks up from the working directory until it finds config.yaml,
// so binaries under cmd/ resolve the repo root regardless of where they run.
func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
