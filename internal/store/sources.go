package store

import (
	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"

	"github.com/dhg-hub/drivemeta/internal/cmderr"
	"github.com/dhg-hub/drivemeta/models"
)

const sourcesTable = "sources_google"

const sourceColumns = "id,drive_id,name,mime_type,parent_folder_id,path,path_array,path_depth,main_video_id,is_deleted,document_type_id,root_drive_id"

type SourcesStore struct {
	client *supabase.Client
}

func (s *SourcesStore) selectActive() *postgrest.FilterBuilder {
	return s.client.From(sourcesTable).
		Select(sourceColumns, "", false).
		Eq("is_deleted", "false")
}

// FindFoldersByName returns non-deleted folders with an exact,
// case-sensitive name match.
func (s *SourcesStore) FindFoldersByName(name string) ([]models.SourceEntry, error) {
	var rows []models.SourceEntry
	_, err := s.selectActive().
		Eq("mime_type", models.FolderMimeType).
		Eq("name", name).
		ExecuteTo(&rows)
	if err != nil {
		return nil, &cmderr.ConnectionError{Op: "find folders by name", Err: err}
	}
	return rows, nil
}

// FindFoldersByNameContains is the case-insensitive substring fallback.
func (s *SourcesStore) FindFoldersByNameContains(name string) ([]models.SourceEntry, error) {
	var rows []models.SourceEntry
	_, err := s.selectActive().
		Eq("mime_type", models.FolderMimeType).
		Ilike("name", "%"+name+"%").
		ExecuteTo(&rows)
	if err != nil {
		return nil, &cmderr.ConnectionError{Op: "find folders by substring", Err: err}
	}
	return rows, nil
}

func (s *SourcesStore) ListFolders(limit int) ([]models.SourceEntry, error) {
	q := s.selectActive().Eq("mime_type", models.FolderMimeType)
	if limit > 0 {
		q = q.Limit(limit, "")
	}
	var rows []models.SourceEntry
	if _, err := q.ExecuteTo(&rows); err != nil {
		return nil, &cmderr.ConnectionError{Op: "list folders", Err: err}
	}
	return rows, nil
}

func (s *SourcesStore) FindVideosByName(name string) ([]models.SourceEntry, error) {
	var rows []models.SourceEntry
	_, err := s.selectActive().
		In("mime_type", models.VideoMimeTypes).
		Eq("name", name).
		ExecuteTo(&rows)
	if err != nil {
		return nil, &cmderr.ConnectionError{Op: "find videos by name", Err: err}
	}
	return rows, nil
}

func (s *SourcesStore) FindVideosByNameContains(name string) ([]models.SourceEntry, error) {
	var rows []models.SourceEntry
	_, err := s.selectActive().
		In("mime_type", models.VideoMimeTypes).
		Ilike("name", "%"+name+"%").
		ExecuteTo(&rows)
	if err != nil {
		return nil, &cmderr.ConnectionError{Op: "find videos by substring", Err: err}
	}
	return rows, nil
}

func (s *SourcesStore) ListVideos(limit int) ([]models.SourceEntry, error) {
	q := s.selectActive().In("mime_type", models.VideoMimeTypes)
	if limit > 0 {
		q = q.Limit(limit, "")
	}
	var rows []models.SourceEntry
	if _, err := q.ExecuteTo(&rows); err != nil {
		return nil, &cmderr.ConnectionError{Op: "list videos", Err: err}
	}
	return rows, nil
}

// FindByDriveID looks an entry up by its Drive identifier.
func (s *SourcesStore) FindByDriveID(driveID string) (*models.SourceEntry, error) {
	var rows []models.SourceEntry
	_, err := s.selectActive().Eq("drive_id", driveID).ExecuteTo(&rows)
	if err != nil {
		return nil, &cmderr.ConnectionError{Op: "find by drive id", Err: err}
	}
	if len(rows) == 0 {
		return nil, &cmderr.NotFoundError{Kind: "folder", Query: driveID}
	}
	return &rows[0], nil
}

// ListChildren returns the direct children of a folder. parent_folder_id
// stores the parent's drive_id, never its id, so the join is on drive_id.
func (s *SourcesStore) ListChildren(parentDriveID string) ([]models.SourceEntry, error) {
	var rows []models.SourceEntry
	_, err := s.selectActive().
		Eq("parent_folder_id", parentDriveID).
		Order("name", &postgrest.OrderOpts{Ascending: true}).
		ExecuteTo(&rows)
	if err != nil {
		return nil, &cmderr.ConnectionError{Op: "list children", Err: err}
	}
	return rows, nil
}

// ListByPathArrayContains returns every non-deleted row whose path_array
// contains folderName. This is a flat membership test, not a hierarchical
// walk: a folder name that recurs at multiple tree positions will match
// rows under every occurrence.
func (s *SourcesStore) ListByPathArrayContains(folderName string, limit int) ([]models.SourceEntry, error) {
	q := s.selectActive().Contains("path_array", []string{folderName})
	if limit > 0 {
		q = q.Limit(limit, "")
	}
	var rows []models.SourceEntry
	if _, err := q.ExecuteTo(&rows); err != nil {
		return nil, &cmderr.ConnectionError{Op: "list by path array", Err: err}
	}
	return rows, nil
}

// ListTopLevelFoldersWithMainVideo returns path_depth=0 folders that have
// a main_video_id, optionally scoped to one root drive id.
func (s *SourcesStore) ListTopLevelFoldersWithMainVideo(rootDriveID string) ([]models.SourceEntry, error) {
	q := s.selectActive().
		Eq("mime_type", models.FolderMimeType).
		Eq("path_depth", "0").
		Not("main_video_id", "is", "null").
		Order("name", &postgrest.OrderOpts{Ascending: true})
	if rootDriveID != "" {
		q = q.Eq("root_drive_id", rootDriveID)
	}
	var rows []models.SourceEntry
	if _, err := q.ExecuteTo(&rows); err != nil {
		return nil, &cmderr.ConnectionError{Op: "list top-level folders", Err: err}
	}
	return rows, nil
}

// SetFolderMainVideo writes main_video_id on a single folder row.
func (s *SourcesStore) SetFolderMainVideo(folderID, videoID string) error {
	_, _, err := s.client.From(sourcesTable).
		Update(map[string]interface{}{"main_video_id": videoID}, "", "").
		Eq("id", folderID).
		Execute()
	if err != nil {
		return &cmderr.ConnectionError{Op: "update folder main_video_id", Err: err}
	}
	return nil
}

// UpdateMainVideoID writes main_video_id on a batch of rows in one PATCH.
// Callers chunk the id list; PostgREST in.() filters degrade past ~100 ids.
func (s *SourcesStore) UpdateMainVideoID(ids []string, videoID string) error {
	if len(ids) == 0 {
		return nil
	}
	_, _, err := s.client.From(sourcesTable).
		Update(map[string]interface{}{"main_video_id": videoID}, "", "").
		In("id", ids).
		Execute()
	if err != nil {
		return &cmderr.ConnectionError{Op: "batch update main_video_id", Err: err}
	}
	return nil
}
