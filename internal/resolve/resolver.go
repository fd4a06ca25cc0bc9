// Package resolve turns human-supplied folder and file names into exact
// sources_google rows. Matching runs in tiers: exact name, then substring,
// then token-overlap ranking over all candidates. Read-only.
package resolve

import (
	"go.uber.org/zap"

	"github.com/dhg-hub/drivemeta/internal/cmderr"
	"github.com/dhg-hub/drivemeta/models"
)

// candidateLimit caps the rows pulled for the last-resort similarity
// tier.
const candidateLimit = 1000

type SourceLookup interface {
	FindFoldersByName(name string) ([]models.SourceEntry, error)
	FindFoldersByNameContains(name string) ([]models.SourceEntry, error)
	ListFolders(limit int) ([]models.SourceEntry, error)
	FindVideosByName(name string) ([]models.SourceEntry, error)
	FindVideosByNameContains(name string) ([]models.SourceEntry, error)
	ListVideos(limit int) ([]models.SourceEntry, error)
}

type Resolver struct {
	sources SourceLookup
	log     *zap.Logger
}

func NewResolver(sources SourceLookup, log *zap.Logger) *Resolver {
	return &Resolver{sources: sources, log: log}
}

// ResolveFolder finds the folder row for name. Among tied candidates a
// top-level folder (path_depth 0) wins.
func (r *Resolver) ResolveFolder(name string) (*models.SourceEntry, error) {
	exact, err := r.sources.FindFoldersByName(name)
	if err != nil {
		return nil, err
	}
	if len(exact) > 0 {
		return pickFolder(exact), nil
	}
	r.log.Debug("no exact folder match, trying substring", zap.String("name", name))

	contains, err := r.sources.FindFoldersByNameContains(name)
	if err != nil {
		return nil, err
	}
	if len(contains) > 0 {
		return pickScored(name, contains, true), nil
	}
	r.log.Debug("no substring folder match, trying similarity", zap.String("name", name))

	all, err := r.sources.ListFolders(candidateLimit)
	if err != nil {
		return nil, err
	}
	if best := pickScored(name, all, true); best != nil && TokenOverlap(name, best.Name) > 0 {
		r.log.Info("resolved folder by similarity",
			zap.String("query", name),
			zap.String("matched", best.Name))
		return best, nil
	}
	return nil, &cmderr.NotFoundError{Kind: "folder", Query: name}
}

// ResolveVideo finds the video file row for name using the same tiers,
// restricted to known video mime types.
func (r *Resolver) ResolveVideo(name string) (*models.SourceEntry, error) {
	exact, err := r.sources.FindVideosByName(name)
	if err != nil {
		return nil, err
	}
	if len(exact) > 0 {
		return &exact[0], nil
	}
	r.log.Debug("no exact video match, trying substring", zap.String("name", name))

	contains, err := r.sources.FindVideosByNameContains(name)
	if err != nil {
		return nil, err
	}
	if len(contains) > 0 {
		return pickScored(name, contains, false), nil
	}
	r.log.Debug("no substring video match, trying similarity", zap.String("name", name))

	all, err := r.sources.ListVideos(candidateLimit)
	if err != nil {
		return nil, err
	}
	if best := pickScored(name, all, false); best != nil && TokenOverlap(name, best.Name) > 0 {
		r.log.Info("resolved video by similarity",
			zap.String("query", name),
			zap.String("matched", best.Name))
		return best, nil
	}
	return nil, &cmderr.NotFoundError{Kind: "file", Query: name}
}

// ResolvePathArray resolves the folder and video named by an ordered path
// array: the folder is the first element, the video the last element with
// a video extension.
func (r *Resolver) ResolvePathArray(segments []string) (*models.SourceEntry, *models.SourceEntry, error) {
	if len(segments) < 2 {
		return nil, nil, &cmderr.ValidationError{Msg: "path array needs at least a folder and a file"}
	}
	videoName := ""
	for i := len(segments) - 1; i >= 1; i-- {
		if models.HasVideoExtension(segments[i]) {
			videoName = segments[i]
			break
		}
	}
	if videoName == "" {
		return nil, nil, &cmderr.ValidationError{Msg: "path array has no element with a video extension (.mp4/.m4v/.mov)"}
	}
	folder, err := r.ResolveFolder(segments[0])
	if err != nil {
		return nil, nil, err
	}
	video, err := r.ResolveVideo(videoName)
	if err != nil {
		return nil, nil, err
	}
	return folder, video, nil
}

// pickFolder prefers a top-level folder when several rows share a name.
func pickFolder(rows []models.SourceEntry) *models.SourceEntry {
	for i := range rows {
		if rows[i].PathDepth == 0 {
			return &rows[i]
		}
	}
	return &rows[0]
}

// pickScored ranks candidates by token overlap with the query. Ties keep
// the earlier candidate, except that for folders a path_depth=0 candidate
// beats an equally scored deeper one.
func pickScored(query string, rows []models.SourceEntry, preferTopLevel bool) *models.SourceEntry {
	if len(rows) == 0 {
		return nil
	}
	best := 0
	bestScore := TokenOverlap(query, rows[0].Name)
	for i := 1; i < len(rows); i++ {
		score := TokenOverlap(query, rows[i].Name)
		if score > bestScore {
			best, bestScore = i, score
			continue
		}
		if score == bestScore && preferTopLevel &&
			rows[i].PathDepth == 0 && rows[best].PathDepth != 0 {
			best = i
		}
	}
	return &rows[best]
}
