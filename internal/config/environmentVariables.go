package config

import (
	"log/slog"
	"os"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//serverTimeouts
	ReadTimeout            = 10 * time.Second
	WriteTimeout           = 60 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":8000"

	//uploads
	MaxUploadSize      = 32 << 20 //32mb
	UploadsDirName     = "uploads"
	DefaultFileExt     = ".pdf"
	MultipartFileField = "file"
	UnknownFileName    = "unknown"

	//record store
	SQLiteDBPath = "documents.db"

	//vision model calls
	OpenAIVisionModel = "gpt-4o"
	GeminiVisionModel = "gemini-2.0-flash"
	ClassifyMaxTokens = 50
	ExtractMaxTokens  = 300
	//seconds not minutes: a stuck provider should fail the request, not hang it
	ClassifyCallTimeout = 30 * time.Second
	ExtractCallTimeout  = 45 * time.Second

	//pdf rasterization
	PdftoppmBinary = "pdftoppm"
	RenderDPI      = 200
	RenderTimeout  = 30 * time.Second

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	RedisResultCache = 0

	ResultCacheTTL = 24 * time.Hour
)

// secrets and deploy-specific knobs come from the environment
var (
	AuthToken     = os.Getenv("AUTH_TOKEN")
	NoAuthBypass  = AuthToken == ""
	RedisPassword = os.Getenv("REDIS_PASSWORD")
)

func OpenAIAPIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

func GeminiAPIKey() string {
	return os.Getenv("GEMINI_API_KEY")
}

// VisionProviderName selects the model backend; openai is the default.
func VisionProviderName() string {
	if v := os.Getenv("VISION_PROVIDER"); v != "" {
		return v
	}
	return "openai"
}
