// Package conf loads service configuration from file and environment and
// exposes typed views of it to the rest of the service.
package conf

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/whoamihappyhacking/vidscribe/pkg/util"
)

const envPrefix = "VIDSCRIBE"

// Config is the root configuration of the service.
type Config struct {
	HTTPAddr           string        `mapstructure:"http_addr" json:"http_addr"`
	Debug              bool          `mapstructure:"debug" json:"debug"`
	TempDir            string        `mapstructure:"temp_dir" json:"temp_dir"`
	YtDlpPath          string        `mapstructure:"ytdlp_path" json:"ytdlp_path"`
	PreferredLanguages string        `mapstructure:"preferred_languages" json:"preferred_languages"`
	MaxDurationSeconds int           `mapstructure:"max_duration_seconds" json:"max_duration_seconds"`
	Format             *FormatConfig `mapstructure:"format" json:"format"`
	Speech             *SpeechConfig `mapstructure:"speech" json:"speech"`

	mu sync.RWMutex
	v  *viper.Viper
}

// Load reads configuration with precedence env > file > defaults. An empty
// path skips the file layer.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	cfg := &Config{v: v}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_addr", "127.0.0.1:8080")
	v.SetDefault("debug", false)
	v.SetDefault("temp_dir", "")
	v.SetDefault("ytdlp_path", "")
	v.SetDefault("preferred_languages", "zh-CN,zh,en")
	v.SetDefault("max_duration_seconds", 3600)
	v.SetDefault("format.min_sentence_length", 4)
	v.SetDefault("speech.enabled", false)
	v.SetDefault("speech.provider", "openai")
	v.SetDefault("speech.request_timeout_seconds", 300)
}

func (c *Config) normalize() {
	if c.Format == nil {
		c.Format = &FormatConfig{MinSentenceLength: 4}
	}
	if c.Speech == nil {
		c.Speech = &SpeechConfig{}
	}
	c.Speech.Normalize()
}

// Watch re-reads the config file on change and invokes onChange with the
// fresh config. It is a no-op when no config file was loaded.
func (c *Config) Watch(onChange func(*Config)) {
	if c.v == nil || c.v.ConfigFileUsed() == "" {
		return
	}

	c.v.OnConfigChange(func(e fsnotify.Event) {
		log.Info().Str("file", e.Name).Msg("config file changed, reloading")

		fresh := &Config{v: c.v}
		if err := c.v.Unmarshal(fresh); err != nil {
			log.Err(err).Msg("failed to reload config, keeping previous values")
			return
		}
		fresh.normalize()

		c.mu.Lock()
		c.HTTPAddr = fresh.HTTPAddr
		c.Debug = fresh.Debug
		c.TempDir = fresh.TempDir
		c.YtDlpPath = fresh.YtDlpPath
		c.PreferredLanguages = fresh.PreferredLanguages
		c.MaxDurationSeconds = fresh.MaxDurationSeconds
		c.Format = fresh.Format
		c.Speech = fresh.Speech
		c.mu.Unlock()

		if onChange != nil {
			onChange(c)
		}
	})
	c.v.WatchConfig()
}

func (c *Config) GetHTTPAddr() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.HTTPAddr
}

func (c *Config) GetTempDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.TempDir
}

func (c *Config) GetYtDlpPath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.YtDlpPath
}

func (c *Config) GetMaxDuration() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.MaxDurationSeconds <= 0 {
		return 0
	}
	return time.Duration(c.MaxDurationSeconds) * time.Second
}

// GetPreferredLanguages returns the subtitle language preference order.
func (c *Config) GetPreferredLanguages() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return util.Str2List(c.PreferredLanguages, ",")
}

func (c *Config) GetFormat() *FormatConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Format
}

func (c *Config) GetSpeech() *SpeechConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Speech
}

// Public returns a copy safe to expose on the config endpoint: secrets
// are masked.
func (c *Config) Public() *Config {
	c.mu.RLock()
	defer c.mu.RUnlock()

	pub := &Config{
		HTTPAddr:           c.HTTPAddr,
		Debug:              c.Debug,
		TempDir:            c.TempDir,
		YtDlpPath:          c.YtDlpPath,
		PreferredLanguages: c.PreferredLanguages,
		MaxDurationSeconds: c.MaxDurationSeconds,
	}
	if c.Format != nil {
		format := *c.Format
		pub.Format = &format
	}
	if c.Speech != nil {
		spc := *c.Speech
		if spc.APIKey != "" {
			spc.APIKey = "***"
		}
		pub.Speech = &spc
	}
	return pub
}
