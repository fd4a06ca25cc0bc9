// Package store is the typed query layer over the Supabase schema. Every
// method excludes soft-deleted rows; nothing here ever issues a DELETE.
package store

import (
	"github.com/supabase-community/supabase-go"

	"github.com/dhg-hub/drivemeta/config"
)

type Store struct {
	Sources   *SourcesStore
	Documents *DocumentsStore
}

func NewStore(client *supabase.Client) *Store {
	return &Store{
		Sources:   &SourcesStore{client: client},
		Documents: &DocumentsStore{client: client},
	}
}

func InitSupabaseClient(cfg *config.Config) (*supabase.Client, error) {
	client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseKey, &supabase.ClientOptions{})
	if err != nil {
		return nil, err
	}
	return client, nil
}
