package store

import (
	"time"

	"github.com/supabase-community/supabase-go"

	"github.com/dhg-hub/drivemeta/internal/cmderr"
	"github.com/dhg-hub/drivemeta/models"
)

const documentsTable = "expert_documents"

type DocumentsStore struct {
	client *supabase.Client
}

// ListUnclassified returns documents with no document_type_id yet.
func (d *DocumentsStore) ListUnclassified(limit int) ([]models.ExpertDocument, error) {
	q := d.client.From(documentsTable).
		Select("id,source_id,document_type_id,raw_content,processed_at", "", false).
		Is("document_type_id", "null")
	if limit > 0 {
		q = q.Limit(limit, "")
	}
	var rows []models.ExpertDocument
	if _, err := q.ExecuteTo(&rows); err != nil {
		return nil, &cmderr.ConnectionError{Op: "list unclassified documents", Err: err}
	}
	return rows, nil
}

// SetDocumentType records a classification result on a document.
func (d *DocumentsStore) SetDocumentType(id, documentTypeID string) error {
	_, _, err := d.client.From(documentsTable).
		Update(map[string]interface{}{
			"document_type_id": documentTypeID,
			"processed_at":     time.Now().UTC().Format(time.RFC3339),
		}, "", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return &cmderr.ConnectionError{Op: "set document type", Err: err}
	}
	return nil
}
