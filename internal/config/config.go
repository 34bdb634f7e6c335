package config

import (
	"encoding/xml"
	"io"
	"os"
	"sync"
)

var (
	cfg  *APIConfig
	once sync.Once
)

// APIConfig represents the root element.
type APIConfig struct {
	XMLName        xml.Name             `xml:"API"`
	RequestDump    bool                 `xml:"REQUEST_DUMP,attr"`
	Context        ContextConfig        `xml:"CONTEXT"`
	Authentication AuthenticationConfig `xml:"AUTHENTICATION"`
	DB             DBConfig             `xml:"DB"`
	GenAI          GenAIConfig          `xml:"GENAI"`
	Cache          CacheConfig          `xml:"CACHE"`
	RateLimit      RateLimitConfig      `xml:"RATE_LIMIT"`
	Logging        LoggingConfig        `xml:"LOGGING"`
}

// ContextConfig holds basic server settings.
type ContextConfig struct {
	Port     int    `xml:"PORT"`
	Host     string `xml:"HOST"`
	Path     string `xml:"PATH"`
	TimeZone string `xml:"TIME_ZONE"`
}

// AuthenticationConfig holds authentication settings.
type AuthenticationConfig struct {
	EnableTokenAuth bool `xml:"ENABLE_TOKEN_AUTH"`
	SessionTimeout  int  `xml:"SESSION_TIMEOUT"`
}

// DBConfig holds database connection settings.
type DBConfig struct {
	Initialize bool         `xml:"INITIALIZE"`
	Host       string       `xml:"HOST"`
	Port       int          `xml:"PORT"`
	Driver     string       `xml:"DRIVER"`
	SSLMode    string       `xml:"SSL_MODE"`
	Name       string       `xml:"NAME"`
	Username   string       `xml:"USERNAME"`
	Password   DBPassword   `xml:"PASSWORD"`
	Pool       DBPoolConfig `xml:"POOL"`
}

// DBPassword holds password details.
type DBPassword struct {
	Type  string `xml:"TYPE,attr"`
	Value string `xml:",chardata"`
}

// DBPoolConfig holds database connection pooling settings.
type DBPoolConfig struct {
	MaxOpenConns    int `xml:"MAX_OPEN_CONNS"`
	MaxIdleConns    int `xml:"MAX_IDLE_CONNS"`
	ConnMaxLifetime int `xml:"CONN_MAX_LIFETIME"`
}

// GenAIConfig holds settings for the generative provider. The API key itself
// comes from the GEMINI_API_KEY environment variable, never from this file.
type GenAIConfig struct {
	BaseURL     string  `xml:"BASE_URL"`
	TextModel   string  `xml:"TEXT_MODEL"`
	SpeechModel string  `xml:"SPEECH_MODEL"`
	Voice       string  `xml:"VOICE"`
	Temperature float64 `xml:"TEMPERATURE"`
	TimeoutSecs int     `xml:"TIMEOUT_SECS"`
}

// CacheConfig holds optional Redis lesson-cache settings. An empty ADDR
// disables caching entirely.
type CacheConfig struct {
	Addr       string `xml:"ADDR"`
	Password   string `xml:"PASSWORD"`
	DB         int    `xml:"DB"`
	TTLMinutes int    `xml:"TTL_MINUTES"`
}

// RateLimitConfig throttles the generation endpoints per client.
type RateLimitConfig struct {
	RequestsPerMinute int `xml:"REQUESTS_PER_MINUTE"`
	Burst             int `xml:"BURST"`
}

// LoggingConfig holds file logging settings.
type LoggingConfig struct {
	Dir        string `xml:"DIR"`
	MaxSizeMB  int    `xml:"MAX_SIZE_MB"`
	MaxBackups int    `xml:"MAX_BACKUPS"`
	MaxAgeDays int    `xml:"MAX_AGE_DAYS"`
}

// LoadConfig loads and parses the XML configuration from the given file.
func LoadConfig(xmlPath string) (*APIConfig, error) {
	once.Do(func() {
		f, err := os.Open(xmlPath)
		if err != nil {
			return
		}
		defer func(f *os.File) {
			_ = f.Close()
		}(f)

		data, err := io.ReadAll(f)
		if err != nil {
			return
		}

		var newCfg APIConfig
		if err := xml.Unmarshal(data, &newCfg); err != nil {
			return
		}

		applyDefaults(&newCfg)
		cfg = &newCfg
	})

	if cfg == nil {
		return nil, os.ErrInvalid
	}
	return cfg, nil
}

func applyDefaults(c *APIConfig) {
	if c.GenAI.BaseURL == "" {
		c.GenAI.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if c.GenAI.TextModel == "" {
		c.GenAI.TextModel = "gemini-2.5-flash"
	}
	if c.GenAI.SpeechModel == "" {
		c.GenAI.SpeechModel = "gemini-2.5-flash-preview-tts"
	}
	if c.GenAI.Voice == "" {
		c.GenAI.Voice = "Kore"
	}
	if c.GenAI.Temperature == 0 {
		c.GenAI.Temperature = 0.7
	}
	if c.GenAI.TimeoutSecs == 0 {
		c.GenAI.TimeoutSecs = 600
	}
	if c.RateLimit.RequestsPerMinute == 0 {
		c.RateLimit.RequestsPerMinute = 10
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 3
	}
	if c.Cache.TTLMinutes == 0 {
		c.Cache.TTLMinutes = 60
	}
	if c.Logging.Dir == "" {
		c.Logging.Dir = "logs"
	}
}

// GetConfig returns the loaded configuration.
func GetConfig() *APIConfig {
	return cfg
}
