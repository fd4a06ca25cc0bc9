// Package report builds the main-video consistency report: for every
// top-level folder with a main_video_id, how each descendant file's own
// main_video_id compares to the folder's.
package report

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dhg-hub/drivemeta/models"
)

type Status string

const (
	StatusMatch     Status = "matches folder"
	StatusDifferent Status = "different"
	StatusMissing   Status = "missing"
)

type SourceReader interface {
	ListTopLevelFoldersWithMainVideo(rootDriveID string) ([]models.SourceEntry, error)
	ListByPathArrayContains(folderName string, limit int) ([]models.SourceEntry, error)
	ListChildren(parentDriveID string) ([]models.SourceEntry, error)
}

type Row struct {
	FolderName  string
	FolderID    string
	FileName    string
	FileID      string
	MainVideoID string
	Status      Status
	PathDepth   int
}

type FolderSection struct {
	Folder      models.SourceEntry
	Subfolders  []string
	Rows        []Row
	Matches     int
	Differences int
	Missing     int
}

type Report struct {
	RunID       string
	GeneratedAt time.Time
	RootDriveID string
	Sections    []FolderSection
	Matches     int
	Differences int
	Missing     int
}

type ConsistencyReporter struct {
	sources SourceReader
	log     *zap.Logger
	Limit   int
}

func NewConsistencyReporter(sources SourceReader, log *zap.Logger) *ConsistencyReporter {
	return &ConsistencyReporter{sources: sources, log: log}
}

// Run builds the report for one root drive id, or for all roots when
// rootDriveID is empty. Pure read, no mutation.
func (c *ConsistencyReporter) Run(rootDriveID string) (*Report, error) {
	folders, err := c.sources.ListTopLevelFoldersWithMainVideo(rootDriveID)
	if err != nil {
		return nil, err
	}
	rep := &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		RootDriveID: rootDriveID,
	}
	for _, folder := range folders {
		section, err := c.buildSection(folder)
		if err != nil {
			return nil, err
		}
		rep.Sections = append(rep.Sections, *section)
		rep.Matches += section.Matches
		rep.Differences += section.Differences
		rep.Missing += section.Missing
	}
	c.log.Info("consistency report built",
		zap.Int("folders", len(rep.Sections)),
		zap.Int("matches", rep.Matches),
		zap.Int("differences", rep.Differences),
		zap.Int("missing", rep.Missing))
	return rep, nil
}

func (c *ConsistencyReporter) buildSection(folder models.SourceEntry) (*FolderSection, error) {
	section := &FolderSection{Folder: folder}

	children, err := c.sources.ListChildren(folder.DriveID)
	if err != nil {
		return nil, err
	}
	for _, ch := range children {
		if ch.IsFolder() {
			section.Subfolders = append(section.Subfolders, ch.Name)
		}
	}

	descendants, err := c.sources.ListByPathArrayContains(folder.Name, c.Limit)
	if err != nil {
		return nil, err
	}
	for _, d := range descendants {
		if d.IsFolder() || d.ID == folder.ID {
			continue
		}
		row := Row{
			FolderName: folder.Name,
			FolderID:   folder.ID,
			FileName:   d.Name,
			FileID:     d.ID,
			PathDepth:  d.PathDepth,
		}
		switch {
		case d.MainVideoID == nil || *d.MainVideoID == "":
			row.Status = StatusMissing
			section.Missing++
		case folder.MainVideoID != nil && *d.MainVideoID == *folder.MainVideoID:
			row.Status = StatusMatch
			row.MainVideoID = *d.MainVideoID
			section.Matches++
		default:
			row.Status = StatusDifferent
			row.MainVideoID = *d.MainVideoID
			section.Differences++
		}
		section.Rows = append(section.Rows, row)
	}
	return section, nil
}
