package models

import "time"

// ExpertDocument is one row of expert_documents, the per-file processing
// record keyed back to sources_google by source_id.
type ExpertDocument struct {
	ID             string     `json:"id"`
	SourceID       string     `json:"source_id"`
	DocumentTypeID *string    `json:"document_type_id"`
	RawContent     string     `json:"raw_content"`
	ProcessedAt    *time.Time `json:"processed_at"`
}

// Classification is the result of one classifier call over a document's
// content. Fallback marks a locally synthesized result produced after the
// external classifier could not be reached.
type Classification struct {
	ID             string  `json:"id"`
	DocumentTypeID string  `json:"document_type_id"`
	Label          string  `json:"label"`
	Confidence     float64 `json:"confidence"`
	Fallback       bool    `json:"fallback"`
}
