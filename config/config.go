package config

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultResultsPath     = "results.txt"
	DefaultCredentialsPath = "data/admin_credentials.json"
	DefaultAdminUsername   = "admin"
	DefaultAdminPassword   = "admin123"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "terminal"
)

type Config struct {
	ResultsPath     string      `yaml:"results_path"`
	CredentialsPath string      `yaml:"credentials_path"`
	Admin           AdminConfig `yaml:"admin"`
	Log             LogConfig   `yaml:"log"`
}

type AdminConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Default() *Config {
	return &Config{
		ResultsPath:     DefaultResultsPath,
		CredentialsPath: DefaultCredentialsPath,
		Admin: AdminConfig{
			Username: DefaultAdminUsername,
			Password: DefaultAdminPassword,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Load reads the YAML file at path on top of the defaults. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	config := Default()
	if path == "" {
		return config, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("failed to read config: %w", err)
	}

	if err := Parse(b, config); err != nil {
		return nil, xerrors.Errorf("failed to load %s: %w", path, err)
	}

	return config, nil
}

// Parse decodes b into config; keys missing from b keep their current
// values.
func Parse(b []byte, config *Config) error {
	if err := yaml.Unmarshal(b, config); err != nil {
		return err
	}

	config.Log.Format = strings.ToLower(config.Log.Format)
	config.Log.Level = strings.ToLower(config.Log.Level)

	return config.IsValid()
}

func (c *Config) IsValid() error {
	if c.ResultsPath == "" {
		return xerrors.New("results_path is empty")
	}
	if c.CredentialsPath == "" {
		return xerrors.New("credentials_path is empty")
	}
	if c.Admin.Username == "" {
		return xerrors.New("admin.username is empty")
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return xerrors.Errorf("invalid log.level: %w", err)
	}
	switch c.Log.Format {
	case "json", "terminal":
	default:
		return xerrors.Errorf("invalid log.format: %q", c.Log.Format)
	}

	return nil
}
