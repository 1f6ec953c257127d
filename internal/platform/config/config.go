package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config はアプリケーション全体の設定を保持します
type Config struct {
	// 実行環境 ("development" or "production")
	Environment string

	// ログ設定
	Log LogConfig

	// HTTPサーバー設定
	HTTP HTTPConfig

	// ジョブストア設定
	Store StoreConfig

	// 検索結果取得(SerpAPI)設定
	SerpAPI SerpAPIConfig

	// 記事生成用LLM設定
	LLM LLMConfig

	// イベント配信(NATS)設定
	NATS NATSConfig

	// ジョブ実行設定
	Job JobConfig
}

// LogConfig はログ出力の設定
type LogConfig struct {
	Level  string
	Format string
}

// HTTPConfig はHTTPサーバーの設定
type HTTPConfig struct {
	Addr     string
	APIToken string // 空文字なら認証なし
}

// StoreConfig はジョブストアの設定
type StoreConfig struct {
	// "postgres" or "memory"
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// SerpAPIConfig は検索結果取得の設定
type SerpAPIConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// LLMConfig は記事生成用LLMの設定
type LLMConfig struct {
	APIKey    string
	Model     string
	MaxTokens int
	// trueならLLMを呼ばず定型応答を返す(開発・テスト用)
	Mock bool
}

// NATSConfig はジョブイベント配信の設定
type NATSConfig struct {
	// 空文字なら配信しない
	URL     string
	Subject string
}

// JobConfig はジョブ実行の設定
type JobConfig struct {
	Timeout time.Duration
}

// Load は環境変数または.envファイルから設定を読み込みます
func Load(envFilePath string) (*Config, error) {
	// .envファイルが存在する場合は読み込む
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			// ファイルが存在しない場合はエラーとしない（環境変数のみで動作可能）
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to load .env file: %w", err)
			}
		}
	}

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		HTTP: HTTPConfig{
			Addr:     getEnv("HTTP_ADDR", ":8000"),
			APIToken: getEnv("SEO_WRITER_API_TOKEN", ""),
		},
		Store: StoreConfig{
			Driver:   getEnv("STORE_DRIVER", "memory"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "seowriter"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "seowriter"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		SerpAPI: SerpAPIConfig{
			APIKey:  getEnv("SERPAPI_KEY", ""),
			BaseURL: getEnv("SERPAPI_BASE_URL", "https://serpapi.com/search"),
			Timeout: getEnvAsDuration("SERPAPI_TIMEOUT", 30*time.Second),
		},
		LLM: LLMConfig{
			APIKey:    getEnv("OPENAI_API_KEY", ""),
			Model:     getEnv("OPENAI_LLM_MODEL", "gpt-4o-mini"),
			MaxTokens: getEnvAsInt("OPENAI_LLM_MAX_TOKENS", 4096),
			Mock:      getEnvAsBool("MOCK_LLM", false),
		},
		NATS: NATSConfig{
			URL:     getEnv("NATS_URL", ""),
			Subject: getEnv("NATS_SUBJECT", "seo.jobs"),
		},
		Job: JobConfig{
			Timeout: getEnvAsDuration("JOB_TIMEOUT", 10*time.Minute),
		},
	}

	return cfg, nil
}

// getEnv は環境変数を取得し、存在しない場合はデフォルト値を返します
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt は環境変数を整数として取得します
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool は環境変数を真偽値として取得します
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration は環境変数を時間として取得します（例: "30s", "10m"）
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
