package models

import "strings"

const FolderMimeType = "application/vnd.google-apps.folder"

// VideoMimeTypes lists the mime types treated as main-video candidates,
// mp4 first because the sync process records Drive videos as video/mp4
// in almost every case.
var VideoMimeTypes = []string{"video/mp4", "video/x-m4v", "video/quicktime"}

// VideoExtensions are the file name suffixes accepted when picking the
// video element out of a path array.
var VideoExtensions = []string{".mp4", ".m4v", ".mov"}

// SourceEntry is one row of sources_google: a Google Drive file or folder
// mirrored into the relational store. parent_folder_id references the
// parent's drive_id, not its id.
type SourceEntry struct {
	ID             string   `json:"id"`
	DriveID        string   `json:"drive_id"`
	Name           string   `json:"name"`
	MimeType       string   `json:"mime_type"`
	ParentFolderID string   `json:"parent_folder_id"`
	Path           string   `json:"path"`
	PathArray      []string `json:"path_array"`
	PathDepth      int      `json:"path_depth"`
	MainVideoID    *string  `json:"main_video_id"`
	IsDeleted      bool     `json:"is_deleted"`
	DocumentTypeID *string  `json:"document_type_id"`
	RootDriveID    string   `json:"root_drive_id"`
}

func (s *SourceEntry) IsFolder() bool {
	return s.MimeType == FolderMimeType
}

func (s *SourceEntry) IsVideo() bool {
	for _, mt := range VideoMimeTypes {
		if s.MimeType == mt {
			return true
		}
	}
	return false
}

// HasVideoExtension reports whether name ends in a known video extension.
func HasVideoExtension(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range VideoExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
