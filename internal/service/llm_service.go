package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MR-PROSTER/Expensync/pkg/config"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// LLMService wraps an OpenAI-compatible chat completions API (Groq by
// default). It covers three concerns: structured receipt extraction from an
// image URL, free-form generation (chat answers, analytics insights, fraud
// review), and text embeddings for retrieval.
type LLMService struct {
	client *openai.Client
	config *config.LLMConfig
	logger *zap.Logger
}

const extractionInstruction = `You are an expert expense parser. Extract the following details from the provided receipt or invoice:
- Vendor/Store Name
- Amount
- Currency (e.g., USD, EUR)
- Date (prefer YYYY-MM-DD or readable format)
- Category (e.g., Food, Travel, Utilities, Office Supplies)
- Description (brief summary of items/services)
- Payment Method
- Tax Amount (if present)
- Document ID or Reference Number (e.g., Invoice #, Receipt #)
Return the extracted data as a JSON object. If a field is not found, omit it. Also provide a one-sentence summary of the expense under a "summary" key.
Example JSON: {"Vendor/Store": "Coffee Shop", "Amount": 5.50, "Currency": "USD", "Date": "2023-10-26", "Category": "Food", "Description": "Coffee and pastry", "Payment Method": "Credit Card", "Tax Amount": 0.50, "Document ID or Reference Number": "INV123", "summary": "Coffee shop purchase of 5.50 USD."}`

const fraudReviewInstruction = `You are an AI specialized in detecting fraudulent receipts.
Analyze the provided receipt and look for:
1. Inconsistent dates, amounts, or vendor information
2. Unusual patterns in the receipt format
3. Suspicious modifications or alterations
4. Mismatches between receipt details and expense data
5. Common fraud indicators

Format your response as a JSON object with:
- risk_factors: list of identified risk factors (strings)
- verification_results: detailed analysis of each aspect
- confidence_score: your confidence in the analysis (0-1)`

func NewLLMService(cfg *config.LLMConfig, logger *zap.Logger) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("LLM API key is not configured")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = cfg.BaseURL

	return &LLMService{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
		logger: logger,
	}, nil
}

// ExtractReceiptFields runs the vision extraction pass over a receipt image
// URL. Returns the raw field map and the one-line summary.
func (s *LLMService) ExtractReceiptFields(ctx context.Context, fileURL string) (map[string]interface{}, string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.config.VisionModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: extractionInstruction},
					{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: fileURL}},
				},
			},
		},
		Temperature: 0.2,
		MaxTokens:   1024,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate extraction: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, "", fmt.Errorf("no response from LLM")
	}

	fields, err := parseJSONObject(resp.Choices[0].Message.Content)
	if err != nil {
		// The model answered in prose; keep it as the summary so the caller
		// can still respond with the deterministic pass alone.
		s.logger.Warn("No JSON object in extraction response", zap.Error(err))
		return map[string]interface{}{}, strings.TrimSpace(resp.Choices[0].Message.Content), nil
	}

	summary, _ := fields["summary"].(string)
	delete(fields, "summary")

	s.logger.Info("Receipt extraction completed",
		zap.String("file_url", fileURL),
		zap.Int("fields", len(fields)),
	)

	return fields, summary, nil
}

// ReviewReceipt asks the model to compare the stored expense against the
// receipt image and report fraud indicators.
func (s *LLMService) ReviewReceipt(ctx context.Context, expenseJSON, fileURL string) (map[string]interface{}, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.config.VisionModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: fraudReviewInstruction},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: "Please analyze this receipt for potential fraud. Expense data: " + expenseJSON},
					{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: fileURL}},
				},
			},
		},
		Temperature: 0.3,
		MaxTokens:   1024,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate fraud review: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from LLM")
	}

	return parseJSONObject(resp.Choices[0].Message.Content)
}

// Answer generates a grounded response: the retrieved context is pinned in
// the system message and the model is told to stay within it.
func (s *LLMService) Answer(ctx context.Context, question, retrievedContext string) (string, error) {
	system := "You are a helpful assistant answering questions about expense documents. " +
		"Answer using only the provided context. If the context does not contain the answer, say so.\n\nContext:\n" + retrievedContext

	return s.generate(ctx, system, question)
}

// Insights produces the analytics narrative for a trip.
func (s *LLMService) Insights(ctx context.Context, prompt string) (string, error) {
	system := "You are a corporate travel expense analyst. Provide concise, practical findings."
	return s.generate(ctx, system, prompt)
}

func (s *LLMService) generate(ctx context.Context, system, user string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.3,
		MaxTokens:   1024,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from LLM")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Embed returns one embedding per input text.
func (s *LLMService) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := s.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(s.config.EmbeddingModel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create embeddings: %w", err)
	}

	embeddings := make([][]float32, len(resp.Data))
	for i, item := range resp.Data {
		embeddings[i] = item.Embedding
	}
	return embeddings, nil
}

// parseJSONObject extracts the first JSON object from a model response,
// tolerating markdown fences and prose around it.
func parseJSONObject(content string) (map[string]interface{}, error) {
	content = strings.TrimSpace(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	jsonStr := content[start : end+1]

	var result map[string]interface{}
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		jsonStr = strings.TrimSpace(jsonStr)
		jsonStr = strings.TrimPrefix(jsonStr, "```json")
		jsonStr = strings.TrimPrefix(jsonStr, "```")
		jsonStr = strings.TrimSuffix(jsonStr, "```")
		jsonStr = strings.TrimSpace(jsonStr)

		if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
			return nil, fmt.Errorf("failed to parse JSON response: %w", err)
		}
	}

	return result, nil
}
