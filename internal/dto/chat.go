package dto

// ChatRequest carries either an existing index name or a document to build a
// fresh index from. Question is always required.
type ChatRequest struct {
	Question   string `json:"question" validate:"required"`
	IndexName  string `json:"index_name"`
	DocumentID string `json:"document_id"`
}

type ChatResponse struct {
	Response      string `json:"response"`
	IndexNameUsed string `json:"index_name_used,omitempty"`
}

type DeleteIndexRequest struct {
	IndexName string `json:"index_name" validate:"required"`
}

type DeleteIndexResponse struct {
	Message string `json:"message"`
	Purged  bool   `json:"purged"`
}
