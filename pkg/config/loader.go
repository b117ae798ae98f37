package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/taoziyu97/sra-tools/pkg/errors"
	"github.com/taoziyu97/sra-tools/pkg/logging"
	"github.com/taoziyu97/sra-tools/pkg/paths"
)

// EnvPrefix is the prefix of configuration environment variables.
const EnvPrefix = "FQCONCAT_"

// LoadOptions selects the layers loaded on top of the defaults.
type LoadOptions struct {
	// ConfigFile is an explicit configuration file. When empty the first
	// existing file in paths.ConfigDir is used, if any.
	ConfigFile string

	// SkipUserFile ignores the user configuration file lookup.
	SkipUserFile bool

	// Environ replaces os.Environ, mostly for tests.
	Environ []string

	// Flags holds command-line overrides keyed by dotted path, e.g.
	// "merge.force".
	Flags map[string]interface{}
}

// Load builds the configuration from defaults, file, environment and flags,
// in that order, and validates the result.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Load defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. Load user config
	path := opts.ConfigFile
	if path == "" && !opts.SkipUserFile {
		path = paths.FindConfigFile()
	}
	if path != "" {
		if err := loadFile(k, path); err != nil {
			return nil, err
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	// 3. Load env vars
	if err := loadEnv(k, opts.Environ); err != nil {
		return nil, err
	}

	// 4. Load flags
	if len(opts.Flags) > 0 {
		if err := k.Load(confmap.Provider(opts.Flags, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load flags")
		}
	}

	// 5. Unmarshal
	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}

	// 6. Validate
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Trace().Interface("config", cfg).Msg("Configuration loaded")
	return cfg, nil
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load(LoadOptions{SkipUserFile: true, Environ: []string{}})
	if err != nil {
		panic("config: embedded defaults are invalid: " + err.Error())
	}
	return cfg
}

func loadFile(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		return errors.WrapOp(err, errors.ErrConfigLoad, "stat", path)
	}

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		parser = toml.Parser()
	case ".yaml", ".yml":
		parser = yaml.Parser()
	default:
		return errors.Newf(errors.ErrConfigLoad, "unsupported config file type %q", filepath.Ext(path)).
			WithDetail("path", path)
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return errors.WrapOp(err, errors.ErrConfigParse, "parse", path)
	}
	return nil
}

// envKey maps FQCONCAT_COPY__QUEUE_WAIT to copy.queue_wait.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

func loadEnv(k *koanf.Koanf, environ []string) error {
	if environ == nil {
		err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
		if err != nil {
			return errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
		}
		return nil
	}

	vars := make(map[string]interface{})
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		vars[envKey(name)] = value
	}
	if err := k.Load(confmap.Provider(vars, "."), nil); err != nil {
		return errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}
	return nil
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.TextUnmarshallerHookFunc(),
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}
