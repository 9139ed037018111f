package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// RepositoryPlaceholder is replaced by the ECR repository name in path templates.
	RepositoryPlaceholder = "{repository}"

	DefaultApplicationName = "my-amazing-application"
	ApplicationNameEnvVar  = "ECR_REPO_NAME"

	StoreTypeDynamoDB = "dynamodb"
	StoreTypeRedis    = "redis"
	ModelTypeBedrock  = "bedrock"
	ModelTypeGemini   = "gemini"
	ReviewCodeCommit  = "codecommit"
	ReviewGitHub      = "github"
	ReviewGitLab      = "gitlab"

	defaultTable        = "aggregate-cve-results"
	defaultRegion       = "us-west-2"
	defaultRedisAddress = "localhost:6379"
	defaultRedisPrefix  = "cvefinder:findings:"
	defaultBedrockModel = "meta.llama2-13b-chat-v1"
	defaultGeminiModel  = "gemini-2.5-flash"
	defaultRemoteURL    = "ssh://APKAQZOY3J3EYI726W6Q@git-codecommit.us-west-2.amazonaws.com/v1/repos/" +
		RepositoryPlaceholder
	defaultLocalPath    = "/tmp/" + RepositoryPlaceholder
	defaultKeyPath      = "/root/.ssh/id_rsa"
	defaultBranch       = "cve_finder"
	defaultTargetBranch = "main"
	defaultManifest     = "requirements.txt"
	defaultAddress      = ":8080"
)

// Settings is the whole cvefinder configuration.
type Settings struct {
	Application ApplicationConfig `yaml:"application"`
	Store       StoreConfig       `yaml:"store"`
	Model       ModelConfig       `yaml:"model"`
	Repository  RepositoryConfig  `yaml:"repository"`
	Review      ReviewConfig      `yaml:"review"`
	Retry       RetryConfig       `yaml:"retry"`
	Server      ServerConfig      `yaml:"server"`
}

// ApplicationConfig names the ECR repository remediated by default.
type ApplicationConfig struct {
	Name string `yaml:"name"`
}

// StoreConfig selects the aggregation store.
type StoreConfig struct {
	Type      string `yaml:"type"`      // "dynamodb" or "redis"
	Table     string `yaml:"table"`     // DynamoDB table name
	Region    string `yaml:"region"`    // DynamoDB region
	Endpoint  string `yaml:"endpoint"`  // DynamoDB endpoint override (local testing)
	Address   string `yaml:"address"`   // Redis address
	Password  string `yaml:"password"`  // Inline, ${ENV_VAR}, or file path
	KeyPrefix string `yaml:"key_prefix"` // Redis key prefix
}

// ModelConfig selects the text-generation model.
type ModelConfig struct {
	Type     string `yaml:"type"` // "bedrock" or "gemini"
	ID       string `yaml:"id"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"api_key"` // Gemini only; inline, ${ENV_VAR}, or file path
}

// RepositoryConfig describes where the application source lives and how it is patched.
type RepositoryConfig struct {
	RemoteURL    string `yaml:"remote_url"` // may contain {repository}
	LocalPath    string `yaml:"local_path"` // may contain {repository}
	KeyPath      string `yaml:"key_path"`   // SSH private key; empty disables auth
	Branch       string `yaml:"branch"`
	TargetBranch string `yaml:"target_branch"`
	Manifest     string `yaml:"manifest"`
}

// ReviewConfig selects the host receiving the pull request.
type ReviewConfig struct {
	Type         string `yaml:"type"` // "codecommit", "github" or "gitlab"
	Region       string `yaml:"region"`
	Endpoint     string `yaml:"endpoint"`
	Token        string `yaml:"token"` // Inline, ${ENV_VAR}, or file path
	Organization string `yaml:"organization"`
}

// RetryConfig bounds the generate-and-extract loop. MaxAttempts 0 retries forever.
type RetryConfig struct {
	MaxAttempts     int           `yaml:"max_attempts"`
	InitialInterval time.Duration `yaml:"initial_interval"`
	MaxInterval     time.Duration `yaml:"max_interval"`
}

// ServerConfig configures the webhook server.
type ServerConfig struct {
	Address string `yaml:"address"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewSettings reads a YAML configuration file, expands ${ENV_VAR} references,
// fills defaults and validates the result.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	settings := &Settings{}
	if unmarshalErr := yaml.Unmarshal([]byte(expandEnv(string(data))), settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.Store.Password = resolveSecret(settings.Store.Password)
	settings.Model.APIKey = resolveSecret(settings.Model.APIKey)
	settings.Review.Token = resolveSecret(settings.Review.Token)
	settings.applyDefaults()

	if validateErr := settings.validate(); validateErr != nil {
		return nil, validateErr
	}
	return settings, nil
}

// DefaultSettings returns the configuration used when no file is found.
func DefaultSettings() *Settings {
	settings := &Settings{}
	settings.applyDefaults()
	return settings
}

// FindConfigFile searches for a configuration file in standard locations.
func FindConfigFile() (string, error) {
	locations := []string{".", ".config", "configs"}
	if homeDir, err := os.UserHomeDir(); err == nil && homeDir != "" {
		locations = append(locations, homeDir, filepath.Join(homeDir, ".config"))
	}

	patterns := []string{".cvefinder.yaml", ".cvefinder.yml", "cvefinder.yaml", "cvefinder.yml"}
	for _, loc := range locations {
		for _, pat := range patterns {
			candidate := filepath.Join(loc, pat)
			if _, statErr := os.Stat(candidate); statErr == nil {
				return candidate, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// RemoteURLFor renders the remote URL template for a repository.
func (it *Settings) RemoteURLFor(repositoryName string) string {
	return strings.ReplaceAll(it.Repository.RemoteURL, RepositoryPlaceholder, repositoryName)
}

// LocalPathFor renders the staging path template for a repository.
func (it *Settings) LocalPathFor(repositoryName string) string {
	return strings.ReplaceAll(it.Repository.LocalPath, RepositoryPlaceholder, repositoryName)
}

func (it *Settings) applyDefaults() {
	if it.Application.Name == "" {
		it.Application.Name = ApplicationNameFromEnv()
	}

	setDefault(&it.Store.Type, StoreTypeDynamoDB)
	setDefault(&it.Store.Table, defaultTable)
	setDefault(&it.Store.Region, defaultRegion)
	setDefault(&it.Store.Address, defaultRedisAddress)
	setDefault(&it.Store.KeyPrefix, defaultRedisPrefix)

	setDefault(&it.Model.Type, ModelTypeBedrock)
	setDefault(&it.Model.Region, defaultRegion)
	if it.Model.ID == "" {
		it.Model.ID = defaultBedrockModel
		if it.Model.Type == ModelTypeGemini {
			it.Model.ID = defaultGeminiModel
		}
	}

	setDefault(&it.Repository.RemoteURL, defaultRemoteURL)
	setDefault(&it.Repository.LocalPath, defaultLocalPath)
	setDefault(&it.Repository.KeyPath, defaultKeyPath)
	setDefault(&it.Repository.Branch, defaultBranch)
	setDefault(&it.Repository.TargetBranch, defaultTargetBranch)
	setDefault(&it.Repository.Manifest, defaultManifest)

	setDefault(&it.Review.Type, ReviewCodeCommit)
	setDefault(&it.Review.Region, defaultRegion)

	setDefault(&it.Server.Address, defaultAddress)
}

func (it *Settings) validate() error {
	switch it.Store.Type {
	case StoreTypeDynamoDB, StoreTypeRedis:
	default:
		return fmt.Errorf("store.type %q is not supported (dynamodb, redis)", it.Store.Type)
	}

	switch it.Model.Type {
	case ModelTypeBedrock:
	case ModelTypeGemini:
		if it.Model.APIKey == "" {
			return errors.New("model.api_key is required for gemini (set inline, via ${ENV_VAR}, or as file path)")
		}
	default:
		return fmt.Errorf("model.type %q is not supported (bedrock, gemini)", it.Model.Type)
	}

	switch it.Review.Type {
	case ReviewCodeCommit:
	case ReviewGitHub, ReviewGitLab:
		if it.Review.Token == "" {
			return fmt.Errorf("review.token is required for %s", it.Review.Type)
		}
		if it.Review.Organization == "" {
			return fmt.Errorf("review.organization is required for %s", it.Review.Type)
		}
	default:
		return fmt.Errorf("review.type %q is not supported (codecommit, github, gitlab)", it.Review.Type)
	}

	if it.Retry.MaxAttempts < 0 {
		return errors.New("retry.max_attempts must be zero (unbounded) or positive")
	}
	if !strings.Contains(it.Repository.LocalPath, RepositoryPlaceholder) {
		logger.Warnf("repository.local_path %q has no %s placeholder; every repository shares it",
			it.Repository.LocalPath, RepositoryPlaceholder)
	}
	return nil
}

// ApplicationNameFromEnv returns ECR_REPO_NAME, or the default application name.
func ApplicationNameFromEnv() string {
	if name := os.Getenv(ApplicationNameEnvVar); name != "" {
		return name
	}
	return DefaultApplicationName
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

// expandEnv replaces ${VAR} references with their environment values.
func expandEnv(raw string) string {
	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}

// resolveSecret reads the secret from disk when the value is a path to an existing file.
func resolveSecret(raw string) string {
	if raw == "" {
		return raw
	}
	if _, statErr := os.Stat(raw); statErr != nil {
		return raw
	}

	data, readErr := os.ReadFile(raw)
	if readErr != nil {
		logger.Warnf("Failed to read secret file %q: %v", raw, readErr)
		return raw
	}
	logger.Infof("Read secret from file %q", raw)
	return strings.TrimSpace(string(data))
}
