package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath            = "."
	defaultBaseURL         = "http://127.0.0.1:8000"
	defaultRequestTimeout  = 15 * time.Second
	defaultResourceTimeout = 30 * time.Second
	defaultAccessTTL       = 15 * time.Minute
	defaultRefreshTTL      = 7 * 24 * time.Hour
	defaultStubPort        = 8000
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	// API configures the outbound client: where the backend lives and
	// how long requests may take. RequestTimeout bounds connection setup
	// and time to first response header; ResourceTimeout bounds the whole
	// transfer.
	API struct {
		BaseURL         string        `json:"baseUrl" yaml:"baseUrl"`
		RequestTimeout  time.Duration `json:"requestTimeout" yaml:"requestTimeout"`
		ResourceTimeout time.Duration `json:"resourceTimeout" yaml:"resourceTimeout"`
	} `json:"api" yaml:"api"`

	// TokenStore configures where session tokens persist between runs.
	// An empty path keeps tokens in memory only.
	TokenStore struct {
		Path string `json:"path" yaml:"path"`
	} `json:"tokenStore" yaml:"tokenStore"`

	// Stub configures the local stand-in backend served by stubd.
	Stub *StubConfig `json:"stub" yaml:"stub"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// StubConfig defines the local stub API server settings.
type StubConfig struct {
	Port            int           `json:"port" yaml:"port"`
	Secret          string        `json:"secret" yaml:"secret"`
	AccessTokenTTL  time.Duration `json:"accessTokenTtl" yaml:"accessTokenTtl"`
	RefreshTokenTTL time.Duration `json:"refreshTokenTtl" yaml:"refreshTokenTtl"`
}

// LoadWithEnv loads <env>.yaml through koanf and overlays environment
// variables on top, aligning each env var segment with the YAML keys.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	configFile, err := findConfigFile(currEnv, configPath)
	if err != nil {
		return nil, err
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to a dotted path and align each segment
			// with existing YAML keys, e.g. API_BASEURL -> api.baseUrl.
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

// New loads the client configuration and fills in defaults for anything
// the file and environment leave unset.
func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	return cfg, nil
}

// Default returns a configuration built purely from defaults, for use
// when no config file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.Stub = &StubConfig{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.API.BaseURL) == "" {
		cfg.API.BaseURL = defaultBaseURL
	}
	if cfg.API.RequestTimeout <= 0 {
		cfg.API.RequestTimeout = defaultRequestTimeout
	}
	if cfg.API.ResourceTimeout <= 0 {
		cfg.API.ResourceTimeout = defaultResourceTimeout
	}
	if cfg.Stub != nil {
		if cfg.Stub.Port == 0 {
			cfg.Stub.Port = defaultStubPort
		}
		if cfg.Stub.AccessTokenTTL <= 0 {
			cfg.Stub.AccessTokenTTL = defaultAccessTTL
		}
		if cfg.Stub.RefreshTokenTTL <= 0 {
			cfg.Stub.RefreshTokenTTL = defaultRefreshTTL
		}
	}
}

func findConfigFile(currEnv string, configPath []string) (string, error) {
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", errors.Errorf("config file %s.yaml not found in any search path", currEnv)
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
