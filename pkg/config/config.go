package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/shouni/gemini-meme-kit/pkg/compositor"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	ProviderImagen = "imagen"
	ProviderGemini = "gemini"

	DefaultEnv           = EnvLocal
	DefaultProvider      = ProviderImagen
	DefaultAssetRoot     = ""
	DefaultRemoteTimeout = 60 * time.Second
	DefaultFetchTimeout  = 10 * time.Second
	DefaultCacheTTL      = 10 * time.Minute
	DefaultListenAddr    = ":8080"
	DefaultHTTPTimeout   = 90 * time.Second
)

// Config はアプリケーション全体の設定です。
// YAML ファイルの値は同名の環境変数で上書きできます。
type Config struct {
	Env string `yaml:"env" env:"APP_ENV" env-default:"local" env-description:"local, dev or prod"`

	GeminiAPIKey string `yaml:"gemini_api_key" env:"GEMINI_API_KEY" env-description:"API key for the Gemini API backend"`
	Provider     string `yaml:"provider" env:"MEME_PROVIDER" env-default:"imagen" env-description:"imagen or gemini"`
	ImageModel   string `yaml:"image_model" env:"MEME_IMAGE_MODEL" env-description:"model name, empty for the provider default"`
	// LocalOnly はリモート生成を使わず常にローカル合成します。
	LocalOnly      bool          `yaml:"local_only" env:"MEME_LOCAL_ONLY"`
	NegativePrompt string        `yaml:"negative_prompt" env:"MEME_NEGATIVE_PROMPT"`
	RemoteTimeout  time.Duration `yaml:"remote_timeout" env:"MEME_REMOTE_TIMEOUT" env-default:"60s"`

	// AssetRoot は相対のテンプレート画像参照の基準です。
	// 空なら同梱の画像、ディレクトリ、または http(s):// gs:// s3:// の URI を指定できます。
	AssetRoot    string        `yaml:"asset_root" env:"MEME_ASSET_ROOT" env-description:"directory or http(s)/gs/s3 URI, empty for the embedded images"`
	FetchTimeout time.Duration `yaml:"fetch_timeout" env:"MEME_FETCH_TIMEOUT" env-default:"10s"`
	CacheTTL     time.Duration `yaml:"cache_ttl" env:"MEME_CACHE_TTL" env-default:"10m"`
	FontPath     string        `yaml:"font_path" env:"MEME_FONT_PATH" env-description:"TrueType font, empty for the embedded Go Bold"`
	FitPolicy    string        `yaml:"fit_policy" env:"MEME_FIT_POLICY" env-default:"stretch" env-description:"stretch or contain"`

	ListenAddr  string        `yaml:"listen_addr" env:"MEME_LISTEN_ADDR" env-default:":8080"`
	HTTPTimeout time.Duration `yaml:"http_timeout" env:"MEME_HTTP_TIMEOUT" env-default:"90s"`
}

// DefaultConfig は既定値だけで構成した Config を返します。
func DefaultConfig() Config {
	return Config{
		Env:           DefaultEnv,
		Provider:      DefaultProvider,
		RemoteTimeout: DefaultRemoteTimeout,
		AssetRoot:     DefaultAssetRoot,
		FetchTimeout:  DefaultFetchTimeout,
		CacheTTL:      DefaultCacheTTL,
		FitPolicy:     string(compositor.FitStretch),
		ListenAddr:    DefaultListenAddr,
		HTTPTimeout:   DefaultHTTPTimeout,
	}
}

// Load は envFiles（存在しなければ無視）を環境変数に読み込んだ後、
// path の設定ファイルと環境変数から Config を構築します。path が空なら環境変数だけを使います。
func Load(path string, envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, cfg)
	} else {
		err = cleanenv.ReadEnv(cfg)
	}
	if err != nil {
		desc, _ := cleanenv.GetDescription(cfg, nil)
		return nil, fmt.Errorf("config: %w; %s", err, desc)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate は値の組み合わせを検証します。
func (c *Config) Validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("config: unknown env %q", c.Env)
	}
	switch c.Provider {
	case ProviderImagen, ProviderGemini:
	default:
		return fmt.Errorf("config: unknown provider %q", c.Provider)
	}
	if _, err := compositor.ParseFitPolicy(c.FitPolicy); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.RemoteTimeout < 0 || c.FetchTimeout < 0 || c.CacheTTL < 0 || c.HTTPTimeout < 0 {
		return errors.New("config: durations must not be negative")
	}
	switch c.AssetScheme() {
	case "", "http", "https", "gs", "s3":
	default:
		return fmt.Errorf("config: unsupported asset_root scheme %q", c.AssetScheme())
	}
	return nil
}

// RemoteEnabled はリモート生成を試せる構成かどうかを返します。
func (c *Config) RemoteEnabled() bool {
	return !c.LocalOnly && c.GeminiAPIKey != ""
}

// AssetScheme は asset_root の URI スキームを小文字で返します。ローカルなら空です。
func (c *Config) AssetScheme() string {
	scheme, _, ok := strings.Cut(c.AssetRoot, "://")
	if !ok {
		return ""
	}
	return strings.ToLower(scheme)
}
