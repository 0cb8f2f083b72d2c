package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env        string           `mapstructure:"env"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Storage    StorageConfig    `mapstructure:"storage"`
	LLM        LLMConfig        `mapstructure:"llm"`
	Index      IndexConfig      `mapstructure:"index"`
	Reconciler ReconcilerConfig `mapstructure:"reconciler"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type AuthConfig struct {
	AdminToken    string        `mapstructure:"admin_token"`
	TokenDuration time.Duration `mapstructure:"token_duration"`
	CacheDuration time.Duration `mapstructure:"cache_duration"`
}

type StorageConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	MaxSize   int64  `mapstructure:"max_size"`
}

type LLMConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	APIKey         string `mapstructure:"api_key"`
	ChatModel      string `mapstructure:"chat_model"`
	EmbeddingModel string `mapstructure:"embedding_model"`
}

type IndexConfig struct {
	ChunkSize    int     `mapstructure:"chunk_size"`
	ChunkOverlap int     `mapstructure:"chunk_overlap"`
	TopK         int     `mapstructure:"top_k"`
	MinScore     float64 `mapstructure:"min_score"`
}

type ReconcilerConfig struct {
	Interval   time.Duration `mapstructure:"interval"`
	PendingTTL time.Duration `mapstructure:"pending_ttl"`
}

func Load() (Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetDefault("env", "dev")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.read_timeout", "10s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.ssl_mode", "disable")
	viper.SetDefault("redis.address", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("auth.admin_token", "admin_secret_token")
	viper.SetDefault("auth.token_duration", "24h")
	viper.SetDefault("auth.cache_duration", "1h")
	viper.SetDefault("storage.endpoint", "localhost:9000")
	viper.SetDefault("storage.bucket", "workspaces")
	viper.SetDefault("storage.use_ssl", false)
	viper.SetDefault("storage.max_size", 32<<20) // 32MB
	viper.SetDefault("llm.base_url", "https://api.openai.com/v1")
	viper.SetDefault("llm.chat_model", "gpt-4o-mini")
	viper.SetDefault("llm.embedding_model", "text-embedding-3-small")
	viper.SetDefault("index.chunk_size", 512)
	viper.SetDefault("index.chunk_overlap", 64)
	viper.SetDefault("index.top_k", 5)
	viper.SetDefault("index.min_score", 0.3)
	viper.SetDefault("reconciler.interval", "5m")
	viper.SetDefault("reconciler.pending_ttl", "30m")

	// secrets come from the environment in deployment
	viper.BindEnv("storage.bucket", "COLRAG_BUCKET")
	viper.BindEnv("storage.access_key", "COLRAG_STORAGE_ACCESS_KEY")
	viper.BindEnv("storage.secret_key", "COLRAG_STORAGE_SECRET_KEY")
	viper.BindEnv("llm.api_key", "COLRAG_LLM_API_KEY")
	viper.BindEnv("database.password", "COLRAG_DB_PASSWORD")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
