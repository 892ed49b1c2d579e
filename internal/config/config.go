package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// DefaultAPIBaseURL is the GitHub REST endpoint used when GITHUB_API_URL is unset.
	DefaultAPIBaseURL = "https://api.github.com/"
	// DefaultCloneHost is the host clones are fetched from.
	DefaultCloneHost = "github.com"
	// DefaultCloneRoot is the directory, relative to the working directory, holding local clones.
	DefaultCloneRoot = "temp_repo"
	// LambdaCloneRoot replaces DefaultCloneRoot on Lambda, where only /tmp is writable.
	LambdaCloneRoot = "/tmp/temp_repo"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	GitHubToken string
	APIBaseURL  string
	CloneHost   string
	CloneRoot   string
	SlackMode   bool
	DebugMode   bool
}

// FromEnvironment creates a Config from environment variables, after loading
// a .env file from the working directory if one exists.
func FromEnvironment() Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("GITHUB_API_URL", DefaultAPIBaseURL)
	v.SetDefault("GITHUB_HOST", DefaultCloneHost)
	cloneRoot := DefaultCloneRoot
	if v.GetString("LAMBDA_TASK_ROOT") != "" {
		cloneRoot = LambdaCloneRoot
	}
	v.SetDefault("CLONE_ROOT", cloneRoot)

	return Config{
		GitHubToken: v.GetString("GITHUB_TOKEN"),
		APIBaseURL:  nonEmpty(v.GetString("GITHUB_API_URL"), DefaultAPIBaseURL),
		CloneHost:   nonEmpty(v.GetString("GITHUB_HOST"), DefaultCloneHost),
		CloneRoot:   nonEmpty(v.GetString("CLONE_ROOT"), cloneRoot),
		SlackMode:   truthy(v.GetString("SLACK_MODE")),
		DebugMode:   truthy(v.GetString("DEBUG")),
	}
}

func truthy(val string) bool {
	return val != "" && val != "0" && strings.ToLower(val) != "false"
}

// nonEmpty covers variables that are set but blank, which viper does not
// replace with the default.
func nonEmpty(val, def string) string {
	if strings.TrimSpace(val) == "" {
		return def
	}
	return val
}
