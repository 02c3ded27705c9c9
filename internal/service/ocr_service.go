package service

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/MR-PROSTER/Expensync/internal/dto"
	"github.com/MR-PROSTER/Expensync/pkg/config"

	"github.com/gen2brain/go-fitz"
	"github.com/otiai10/gosseract/v2"
	"go.uber.org/zap"
)

// OCRService runs two independent extraction paths over a receipt and merges
// them: a deterministic pass (Tesseract for images, the PDF text layer via
// go-fitz for PDFs) and the LLM vision pass. Structured LLM fields win;
// deterministic text backfills what the model missed and feeds the fraud
// cross-check.
type OCRService struct {
	llmService *LLMService
	config     *config.OCRConfig
	logger     *zap.Logger
}

func NewOCRService(llmService *LLMService, cfg *config.OCRConfig, logger *zap.Logger) *OCRService {
	return &OCRService{
		llmService: llmService,
		config:     cfg,
		logger:     logger,
	}
}

var supportedExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".pdf": true,
}

// ExtractText runs only the deterministic pass over a local file.
func (s *OCRService) ExtractText(ctx context.Context, filePath string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	if !supportedExtensions[ext] {
		return "", fmt.Errorf("unsupported file format: %s (supported: jpg, jpeg, png, pdf)", ext)
	}

	var text string
	var err error

	if ext == ".pdf" {
		text, err = s.extractTextFromPDF(filePath)
	} else {
		text, err = s.extractTextFromImage(filePath)
	}
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(sanitizeUTF8(text))

	s.logger.Info("OCR extraction completed",
		zap.String("file", filePath),
		zap.String("method", extractionMethod(ext)),
		zap.Int("text_length", len(text)),
	)

	return text, nil
}

// Parse runs both passes and merges. localPath may be empty when the file is
// only reachable by URL; the deterministic pass is skipped in that case.
func (s *OCRService) Parse(ctx context.Context, fileURL, localPath string) (dto.ExtractedData, string, string, error) {
	var localText string
	if localPath != "" {
		text, err := s.ExtractText(ctx, localPath)
		if err != nil {
			s.logger.Warn("Deterministic OCR pass failed, continuing with LLM pass only",
				zap.String("file", localPath),
				zap.Error(err),
			)
		} else {
			localText = text
		}
	}

	fields, summary, err := s.llmService.ExtractReceiptFields(ctx, fileURL)
	if err != nil {
		s.logger.Warn("LLM extraction pass failed", zap.Error(err))
		fields = map[string]interface{}{}
	}

	merged := MergeExtractions(fields, localText)
	if summary == "" && merged.VendorName != "" {
		summary = fmt.Sprintf("%s expense of %.2f %s at %s", merged.Category, merged.Amount, merged.Currency, merged.VendorName)
	}

	if merged.VendorName == "" && merged.Amount == 0 && localText == "" {
		return merged, summary, localText, fmt.Errorf("both extraction passes returned nothing")
	}

	return merged, summary, localText, nil
}

func (s *OCRService) extractTextFromImage(imagePath string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if s.config.Languages != "" {
		if err := client.SetLanguage(strings.Split(s.config.Languages, "+")...); err != nil {
			return "", fmt.Errorf("failed to set OCR language: %w", err)
		}
	}

	if err := client.SetImage(imagePath); err != nil {
		return "", fmt.Errorf("failed to load image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract extraction failed: %w", err)
	}

	return text, nil
}

func (s *OCRService) extractTextFromPDF(pdfPath string) (string, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var textBuilder strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		pageText, err := doc.Text(i)
		if err != nil {
			s.logger.Warn("Failed to extract text from page",
				zap.Int("page", i+1),
				zap.String("file", pdfPath),
				zap.Error(err),
			)
			continue
		}

		if pageText != "" {
			textBuilder.WriteString(pageText)
			textBuilder.WriteString("\n")
		}
	}

	text := strings.TrimSpace(textBuilder.String())
	if text == "" {
		return "", fmt.Errorf("no text found in PDF")
	}

	return text, nil
}

func extractionMethod(ext string) string {
	if ext == ".pdf" {
		return "go-fitz"
	}
	return "tesseract"
}

var (
	numericCleanRe = regexp.MustCompile(`[^\d.-]`)
	documentIDRe   = regexp.MustCompile(`(?i)(?:invoice|receipt|ref(?:erence)?)\s*(?:no\.?|number|#)?\s*[:#]?\s*([A-Za-z0-9][A-Za-z0-9-]{2,})`)
)

// CleanNumericValue strips currency symbols and separators from a value the
// model may have returned as a string.
func CleanNumericValue(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		cleaned := numericCleanRe.ReplaceAllString(v, "")
		if cleaned == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// NormalizeCurrency extracts a parenthesized symbol if present and caps the
// result at ten characters (the column width).
func NormalizeCurrency(currency string) string {
	currency = strings.TrimSpace(currency)
	if open := strings.Index(currency, "("); open != -1 {
		if close := strings.Index(currency, ")"); close > open {
			currency = strings.TrimSpace(currency[open+1 : close])
		}
	}
	return truncateRunes(currency, 10)
}

// truncateRunes caps a string at n characters without splitting a rune.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// MergeExtractions folds the two passes into the response contract. All
// seven contract fields are always present in the result, zero-valued when
// neither pass produced them.
func MergeExtractions(llmFields map[string]interface{}, localText string) dto.ExtractedData {
	var data dto.ExtractedData

	str := func(key string) string {
		if v, ok := llmFields[key].(string); ok {
			return strings.TrimSpace(v)
		}
		return ""
	}

	data.VendorName = str("Vendor/Store")
	if data.VendorName == "" {
		data.VendorName = str("Vendor/Store Name")
	}
	data.Currency = NormalizeCurrency(str("Currency"))
	data.Date = str("Date")
	data.Category = str("Category")
	data.Description = str("Description")
	data.PaymentMethod = str("Payment Method")
	data.DocumentID = str("Document ID or Reference Number")

	if amount, ok := CleanNumericValue(llmFields["Amount"]); ok {
		data.Amount = amount
	}
	if tax, ok := CleanNumericValue(llmFields["Tax Amount"]); ok {
		data.TaxAmount = tax
	}

	// Backfill from the deterministic pass
	if localText != "" {
		if data.Description == "" {
			data.Description = firstLine(localText)
		}
		if data.DocumentID == "" {
			if m := documentIDRe.FindStringSubmatch(localText); m != nil {
				data.DocumentID = m[1]
			}
		}
		if data.VendorName == "" {
			data.VendorName = firstLine(localText)
		}
	}

	return data
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return truncateRunes(line, 100)
		}
	}
	return ""
}
