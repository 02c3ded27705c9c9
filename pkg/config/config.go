package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	LLM      LLMConfig
	OCR      OCRConfig
	RAG      RAGConfig
	Storage  StorageConfig
	Ledger   LedgerConfig
	AMQP     AMQPConfig
	Tunnel   TunnelConfig
	Logger   LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	UploadDir    string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey  string
	Expiration time.Duration
	RefreshExp time.Duration
}

// LLMConfig points at any OpenAI-compatible chat completions API.
// Defaults target Groq's hosted endpoint.
type LLMConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	VisionModel    string
	EmbeddingModel string
}

type OCRConfig struct {
	Languages string // Tesseract language codes, e.g. "eng" or "eng+deu"
}

type RAGConfig struct {
	ChunkSize    int
	ChunkOverlap int
	TopK         int
}

type StorageConfig struct {
	IPFSAPIURL string // IPFS node HTTP API, empty disables pinning
}

type LedgerConfig struct {
	RPCURL        string // JSON-RPC endpoint (Ganache in dev), empty disables anchoring
	AnchorAccount string
}

type AMQPConfig struct {
	URL   string // empty disables notifications
	Queue string
}

type TunnelConfig struct {
	NgrokAuthToken string
	NgrokDomain    string
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}
	// No .env is fine: plain environment variables work for Docker/K8s

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	jwtExp, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24"))
	refreshExp, _ := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_HOURS", "168"))
	chunkSize, _ := strconv.Atoi(getEnv("RAG_CHUNK_SIZE", "500"))
	chunkOverlap, _ := strconv.Atoi(getEnv("RAG_CHUNK_OVERLAP", "100"))
	ragTopK, _ := strconv.Atoi(getEnv("RAG_TOP_K", "5"))

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
			UploadDir:    getEnv("UPLOAD_DIR", "uploads"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "expensync"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			Expiration: time.Duration(jwtExp) * time.Hour,
			RefreshExp: time.Duration(refreshExp) * time.Hour,
		},
		LLM: LLMConfig{
			APIKey:         getEnv("GROQ_API_KEY", ""),
			BaseURL:        getEnv("LLM_BASE_URL", "https://api.groq.com/openai/v1"),
			Model:          getEnv("LLM_MODEL", "meta-llama/llama-4-maverick-17b-128e-instruct"),
			VisionModel:    getEnv("LLM_VISION_MODEL", "meta-llama/llama-4-maverick-17b-128e-instruct"),
			EmbeddingModel: getEnv("LLM_EMBEDDING_MODEL", "text-embedding-ada-002"),
		},
		OCR: OCRConfig{
			Languages: getEnv("OCR_LANGUAGES", "eng"),
		},
		RAG: RAGConfig{
			ChunkSize:    chunkSize,
			ChunkOverlap: chunkOverlap,
			TopK:         ragTopK,
		},
		Storage: StorageConfig{
			IPFSAPIURL: getEnv("IPFS_API_URL", ""),
		},
		Ledger: LedgerConfig{
			RPCURL:        getEnv("LEDGER_RPC_URL", ""),
			AnchorAccount: getEnv("LEDGER_ANCHOR_ACCOUNT", ""),
		},
		AMQP: AMQPConfig{
			URL:   getEnv("AMQP_URL", ""),
			Queue: getEnv("AMQP_QUEUE", "expense_events"),
		},
		Tunnel: TunnelConfig{
			NgrokAuthToken: getEnv("NGROK_AUTH_TOKEN", ""),
			NgrokDomain:    getEnv("NGROK_DOMAIN", ""),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
