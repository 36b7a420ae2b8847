package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/estate/internal/paths"
	"github.com/mesh-intelligence/estate/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	envPrefix      = "ESTATE"

	cfgKeyBackend        = "backend"
	cfgKeyDataDir        = "data_dir"
	cfgKeyListenAddr     = "listen_addr"
	cfgKeyAllowedOrigins = "allowed_origins"
	cfgKeyLogLevel       = "log_level"

	defaultListenAddr = ":8080"
	defaultLogLevel   = "info"
)

// settings is the content of config.yaml after env overrides.
type settings struct {
	Backend        string   `mapstructure:"backend" yaml:"backend"`
	DataDir        string   `mapstructure:"data_dir" yaml:"data_dir,omitempty"`
	ListenAddr     string   `mapstructure:"listen_addr" yaml:"listen_addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins,omitempty"`
	LogLevel       string   `mapstructure:"log_level" yaml:"log_level"`
}

func defaultSettings() settings {
	return settings{
		Backend:    types.BackendSQLite,
		ListenAddr: defaultListenAddr,
		LogLevel:   defaultLogLevel,
	}
}

// loadSettings reads config.yaml from configDir, creating the directory and
// a default file on first run. ESTATE_* environment variables override file
// values.
func loadSettings(configDir string) (settings, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return settings{}, fmt.Errorf("create config directory: %w", err)
	}
	if err := writeConfigIfMissing(filepath.Join(configDir, configFileExt)); err != nil {
		return settings{}, fmt.Errorf("write default config: %w", err)
	}

	def := defaultSettings()
	v := viper.New()
	v.SetDefault(cfgKeyBackend, def.Backend)
	v.SetDefault(cfgKeyDataDir, "")
	v.SetDefault(cfgKeyListenAddr, def.ListenAddr)
	v.SetDefault(cfgKeyAllowedOrigins, []string{})
	v.SetDefault(cfgKeyLogLevel, def.LogLevel)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return settings{}, fmt.Errorf("decode config: %w", err)
	}
	return s, nil
}

// writeConfigIfMissing creates config.yaml with default values. An existing
// file is left untouched.
func writeConfigIfMissing(path string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(defaultSettings())
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	header := "# estate configuration. ESTATE_<KEY> environment variables override these values.\n"
	return os.WriteFile(path, append([]byte(header), data...), 0o644)
}

// environment is the resolved configuration of one command invocation.
type environment struct {
	configDir string
	settings  settings
	store     types.Config
}

// resolve loads config.yaml and applies directory precedence.
func (f *rootFlags) resolve() (environment, error) {
	configDir, err := paths.ResolveConfigDir(f.configDir)
	if err != nil {
		return environment{}, systemError("resolve config dir: %w", err)
	}
	s, err := loadSettings(configDir)
	if err != nil {
		return environment{}, systemError("%w", err)
	}
	dataDir, err := paths.ResolveDataDir(f.dataDir, s.DataDir)
	if err != nil {
		return environment{}, systemError("resolve data dir: %w", err)
	}
	cfg := types.Config{Backend: s.Backend, DataDir: dataDir}
	if err := cfg.Validate(); err != nil {
		return environment{}, fmt.Errorf("config.yaml backend %q: %w", s.Backend, err)
	}
	return environment{configDir: configDir, settings: s, store: cfg}, nil
}
