package main

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MR-PROSTER/Expensync/internal/repository"
	"github.com/MR-PROSTER/Expensync/internal/service"
	"github.com/MR-PROSTER/Expensync/pkg/config"
	"github.com/MR-PROSTER/Expensync/pkg/logger"
	"github.com/MR-PROSTER/Expensync/pkg/postgres"

	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

// The seeder loads company expense policy documents into the "default"
// knowledge index so chat works out of the box. Already-processed files are
// tracked in a hash cache and skipped on re-runs.

const defaultIndex = "default"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	knowledgeRepo := repository.NewKnowledgeRepository(db, appLogger)

	llmService, err := service.NewLLMService(&cfg.LLM, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize LLM service", zap.Error(err))
	}
	ragService := service.NewRAGService(knowledgeRepo, llmService, &cfg.RAG, appLogger)

	appLogger.Info("Starting knowledge base seeding...")

	seedDir := filepath.Join("cmd", "seed", "policies")
	cacheFile := filepath.Join("cmd", "seed", ".seed_cache.json")
	if err := seedPolicies(ctx, seedDir, cacheFile, ragService, appLogger); err != nil {
		appLogger.Fatal("Failed to seed knowledge base", zap.Error(err))
	}

	appLogger.Info("Knowledge base seeding completed successfully!")
}

// ProcessedFile represents a processed policy file in cache
type ProcessedFile struct {
	FilePath    string    `json:"file_path"`
	FileHash    string    `json:"file_hash"`
	ProcessedAt time.Time `json:"processed_at"`
}

// CacheData stores information about processed files
type CacheData struct {
	ProcessedFiles map[string]ProcessedFile `json:"processed_files"` // key: file path
}

func loadCache(cacheFile string) (*CacheData, error) {
	cache := &CacheData{
		ProcessedFiles: make(map[string]ProcessedFile),
	}

	if _, err := os.Stat(cacheFile); os.IsNotExist(err) {
		return cache, nil
	}

	data, err := os.ReadFile(cacheFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}
	if len(data) == 0 {
		return cache, nil
	}

	if err := json.Unmarshal(data, cache); err != nil {
		return nil, fmt.Errorf("failed to parse cache file: %w", err)
	}

	return cache, nil
}

func saveCache(cacheFile string, cache *CacheData) error {
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}

	if err := os.WriteFile(cacheFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	return nil
}

func calculateFileHash(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", fmt.Errorf("failed to calculate hash: %w", err)
	}

	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}

// seedPolicies indexes every .txt, .md and .pdf file in seedDir.
func seedPolicies(
	ctx context.Context,
	seedDir string,
	cacheFile string,
	ragService *service.RAGService,
	logger *zap.Logger,
) error {
	cache, err := loadCache(cacheFile)
	if err != nil {
		logger.Warn("Failed to load cache, will process all files", zap.Error(err))
		cache = &CacheData{ProcessedFiles: make(map[string]ProcessedFile)}
	}

	entries, err := os.ReadDir(seedDir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("Policy directory not found, nothing to seed", zap.String("dir", seedDir))
			return nil
		}
		return fmt.Errorf("failed to read policy directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".txt" && ext != ".md" && ext != ".pdf" {
			continue
		}

		path := filepath.Join(seedDir, entry.Name())

		fileHash, err := calculateFileHash(path)
		if err != nil {
			logger.Warn("Failed to calculate file hash, will process anyway",
				zap.String("path", path), zap.Error(err))
		}

		if cached, exists := cache.ProcessedFiles[path]; exists && cached.FileHash == fileHash {
			logger.Info("Policy already indexed, skipping", zap.String("path", path))
			continue
		}

		text, err := readPolicyText(path, ext)
		if err != nil {
			logger.Warn("Failed to read policy file", zap.String("path", path), zap.Error(err))
			continue
		}

		chunks, err := ragService.IndexDocument(ctx, defaultIndex, entry.Name(), text, "")
		if err != nil {
			logger.Warn("Failed to index policy", zap.String("path", path), zap.Error(err))
			continue
		}

		logger.Info("Policy indexed",
			zap.String("path", path),
			zap.Int("chunks", chunks),
		)

		cache.ProcessedFiles[path] = ProcessedFile{
			FilePath:    path,
			FileHash:    fileHash,
			ProcessedAt: time.Now(),
		}
		if err := saveCache(cacheFile, cache); err != nil {
			logger.Warn("Failed to save cache", zap.Error(err))
		}
	}

	return nil
}

func readPolicyText(path, ext string) (string, error) {
	if ext != ".pdf" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	doc, err := fitz.New(path)
	if err != nil {
		return "", err
	}
	defer doc.Close()

	var b strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		pageText, err := doc.Text(i)
		if err != nil {
			continue
		}
		b.WriteString(pageText)
		b.WriteString("\n")
	}
	return b.String(), nil
}
