package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all calltriage configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Model     ModelConfig     `yaml:"model"`
	Translate TranslateConfig `yaml:"translate"`
	Speech    SpeechConfig    `yaml:"speech"`
	Mail      MailConfig      `yaml:"mail"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// ModelConfig locates the priority-classifier artifact pair. The three files
// are co-versioned and must come from the same export.
type ModelConfig struct {
	Path       string `yaml:"path"`
	VocabPath  string `yaml:"vocab_path"`
	LabelsPath string `yaml:"labels_path"`
}

// TranslateConfig holds translation collaborator settings.
type TranslateConfig struct {
	Endpoint string        `yaml:"endpoint"`
	APIKey   string        `yaml:"api_key"`
	Timeout  time.Duration `yaml:"timeout"`
}

// SpeechConfig holds microphone capture and speech-to-text settings.
type SpeechConfig struct {
	Endpoint      string        `yaml:"endpoint"`
	APIKey        string        `yaml:"api_key"`
	SampleRate    uint32        `yaml:"sample_rate"`
	ListenTimeout time.Duration `yaml:"listen_timeout"`
	PhraseLimit   time.Duration `yaml:"phrase_limit"`
}

// MailConfig holds the alert mail transport settings.
type MailConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	AlertTo  string `yaml:"alert_to"`
}

// LogConfig holds event-log and diagnostic-log settings.
type LogConfig struct {
	Path  string `yaml:"path"`  // CSV event log
	Level string `yaml:"level"` // slog level for diagnostics
	JSON  bool   `yaml:"json"`  // JSON diagnostic output
}

// Default returns a Config with sensible default values.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Model: ModelConfig{
			Path:       "models/model.onnx",
			VocabPath:  "models/vocab.txt",
			LabelsPath: "models/labels.txt",
		},
		Translate: TranslateConfig{
			Endpoint: "https://libretranslate.com",
			Timeout:  15 * time.Second,
		},
		Speech: SpeechConfig{
			SampleRate:    16000,
			ListenTimeout: 10 * time.Second,
			PhraseLimit:   8 * time.Second,
		},
		Mail: MailConfig{
			Port: 465,
		},
		Log: LogConfig{
			Path:  "call_logs.csv",
			Level: "info",
		},
	}
}

// Load builds the configuration in three layers: defaults, then the YAML
// file at path (skipped when path is empty or the file does not exist),
// then CALLTRIAGE_* environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv overlays CALLTRIAGE_* environment variables onto cfg.
func applyEnv(cfg *Config) {
	setString(&cfg.Server.Addr, "CALLTRIAGE_ADDR")
	setString(&cfg.Model.Path, "CALLTRIAGE_MODEL_PATH")
	setString(&cfg.Model.VocabPath, "CALLTRIAGE_VOCAB_PATH")
	setString(&cfg.Model.LabelsPath, "CALLTRIAGE_LABELS_PATH")
	setString(&cfg.Translate.Endpoint, "CALLTRIAGE_TRANSLATE_ENDPOINT")
	setString(&cfg.Translate.APIKey, "CALLTRIAGE_TRANSLATE_API_KEY")
	setDuration(&cfg.Translate.Timeout, "CALLTRIAGE_TRANSLATE_TIMEOUT")
	setString(&cfg.Speech.Endpoint, "CALLTRIAGE_SPEECH_ENDPOINT")
	setString(&cfg.Speech.APIKey, "CALLTRIAGE_SPEECH_API_KEY")
	setDuration(&cfg.Speech.ListenTimeout, "CALLTRIAGE_LISTEN_TIMEOUT")
	setDuration(&cfg.Speech.PhraseLimit, "CALLTRIAGE_PHRASE_LIMIT")
	setString(&cfg.Mail.Host, "CALLTRIAGE_SMTP_HOST")
	setInt(&cfg.Mail.Port, "CALLTRIAGE_SMTP_PORT")
	setString(&cfg.Mail.Username, "CALLTRIAGE_SMTP_USERNAME")
	setString(&cfg.Mail.Password, "CALLTRIAGE_SMTP_PASSWORD")
	setString(&cfg.Mail.From, "CALLTRIAGE_MAIL_FROM")
	setString(&cfg.Mail.AlertTo, "CALLTRIAGE_ALERT_TO")
	setString(&cfg.Log.Path, "CALLTRIAGE_LOG_PATH")
	setString(&cfg.Log.Level, "CALLTRIAGE_LOG_LEVEL")
	setBool(&cfg.Log.JSON, "CALLTRIAGE_LOG_JSON")
}

// Validate checks the config for values the process cannot start without.
func (c Config) Validate() error {
	if c.Model.Path == "" || c.Model.VocabPath == "" || c.Model.LabelsPath == "" {
		return fmt.Errorf("config: model path, vocab_path, and labels_path must all be set")
	}
	if c.Log.Path == "" {
		return fmt.Errorf("config: log path must not be empty")
	}
	if c.Mail.Host != "" && c.Mail.AlertTo == "" {
		return fmt.Errorf("config: mail.alert_to is required when mail.host is set")
	}
	return nil
}

// MailEnabled reports whether enough mail settings exist to dispatch alerts.
func (c Config) MailEnabled() bool {
	return c.Mail.Host != "" && c.Mail.AlertTo != ""
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
