package dto

type DocumentResponse struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	FileName      string `json:"file_name"`
	FileSize      int64  `json:"file_size"`
	FileURL       string `json:"file_url"`
	ContentHash   string `json:"content_hash,omitempty"`
	ExtractedText string `json:"extracted_text,omitempty"`
	CreatedAt     string `json:"created_at"`
}
