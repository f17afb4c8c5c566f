package configs

import (
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config struct
type Config struct {
	App        `mapstructure:"app"`
	Postgres   `mapstructure:"postgres"`
	Sqlite     `mapstructure:"sqlite"`
	Redis      `mapstructure:"redis"`
	Store      `mapstructure:"store"`
	Generation `mapstructure:"generation"`
	LMStudio   `mapstructure:"lmstudio"`
	Gemini     `mapstructure:"gemini"`
	Interview  `mapstructure:"interview"`
	Line       `mapstructure:"line"`
}

// App struct
type App struct {
	Debug     bool   `mapstructure:"debug"`
	Env       string `mapstructure:"env"`
	Port      string `mapstructure:"port"`
	StaticDir string `mapstructure:"static_dir"`
}

// Postgres struct
type Postgres struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DbName   string `mapstructure:"database"`
	SSLMode  bool   `mapstructure:"sslmode"`
}

// Sqlite struct
type Sqlite struct {
	Path string `mapstructure:"path"`
}

// Redis struct
type Redis struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// Store struct selects where interview sessions live.
// Driver is one of memory, postgres, sqlite or redis.
type Store struct {
	Driver      string `mapstructure:"driver"`
	MaxAttempts int    `mapstructure:"max_attempts"`
}

// Generation struct selects the text-generation backend (lmstudio or gemini).
type Generation struct {
	Provider string `mapstructure:"provider"`
}

// LMStudio struct
type LMStudio struct {
	BaseURL     string `mapstructure:"base_url"`
	Model       string `mapstructure:"model"`
	Timeout     int    `mapstructure:"timeout"`
	MaxAttempts int    `mapstructure:"max_attempts"`
}

// Gemini struct
type Gemini struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	Timeout int    `mapstructure:"timeout"`
	BaseURL string `mapstructure:"base_url"`
}

// Interview struct
type Interview struct {
	PromptSet   string `mapstructure:"prompt_set"`
	MinMessages int    `mapstructure:"min_messages"`
	AutoAnalyze bool   `mapstructure:"auto_analyze"`
}

// Line struct
type Line struct {
	Enabled       bool   `mapstructure:"enabled"`
	ChannelSecret string `mapstructure:"channel_secret"`
	ChannelToken  string `mapstructure:"channel_token"`
}

var config Config

// InitViper func
func InitViper(path, env string) {
	getConfig(path, env)
}

// GetViper func
func GetViper() *Config {
	return &config
}

func getConfig(path, env string) {
	viper.SetConfigName("config")
	viper.AddConfigPath(path)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}
	viper.WatchConfig()
	viper.OnConfigChange(func(e fsnotify.Event) {
		logrus.Infof("Config file has changed: %s", e.Name)
	})
	err = viper.Unmarshal(&config)
	if err != nil {
		logrus.Fatalln(err)
	}
	if env != "" {
		config.App.Env = env
	}
}

// setDefaults registers every key so AutomaticEnv can override keys missing from the file
func setDefaults() {
	viper.SetDefault("app.port", "9089")
	viper.SetDefault("app.static_dir", "")
	viper.SetDefault("store.driver", "sqlite")
	viper.SetDefault("store.max_attempts", 0)
	viper.SetDefault("sqlite.path", "interview.db")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.key_prefix", "interview:session:")
	viper.SetDefault("generation.provider", "lmstudio")
	viper.SetDefault("lmstudio.base_url", "http://localhost:1234")
	viper.SetDefault("lmstudio.model", "")
	viper.SetDefault("lmstudio.timeout", 0)
	viper.SetDefault("lmstudio.max_attempts", 0)
	viper.SetDefault("gemini.api_key", "")
	viper.SetDefault("gemini.model", "gemini-2.5-flash")
	viper.SetDefault("gemini.timeout", 0)
	viper.SetDefault("gemini.base_url", "")
	viper.SetDefault("interview.prompt_set", "")
	viper.SetDefault("interview.min_messages", 0)
	viper.SetDefault("interview.auto_analyze", false)
	viper.SetDefault("line.enabled", false)
}
