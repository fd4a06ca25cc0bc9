// Package propagate sets a folder's main_video_id and cascades it to the
// folder's descendants in fixed-size update batches.
package propagate

import (
	"go.uber.org/zap"

	"github.com/dhg-hub/drivemeta/internal/cmderr"
	"github.com/dhg-hub/drivemeta/models"
)

// DefaultBatchSize matches the PATCH chunking the sync scripts have
// always used against the PostgREST in.() filter.
const DefaultBatchSize = 50

type SourceUpdater interface {
	ListByPathArrayContains(folderName string, limit int) ([]models.SourceEntry, error)
	SetFolderMainVideo(folderID, videoID string) error
	UpdateMainVideoID(ids []string, videoID string) error
}

type Propagator struct {
	sources   SourceUpdater
	log       *zap.Logger
	BatchSize int
	DryRun    bool
	Limit     int
}

func NewPropagator(sources SourceUpdater, log *zap.Logger) *Propagator {
	return &Propagator{sources: sources, log: log, BatchSize: DefaultBatchSize}
}

// Result summarizes one propagation run.
type Result struct {
	FolderID      string
	FolderName    string
	VideoID       string
	VideoName     string
	Descendants   int
	Updated       int
	FailedBatches int
	Batches       int
	DryRun        bool
}

// Run sets video.ID as folder's main_video_id and copies it to every
// non-deleted row whose path_array contains the folder's name. The
// descendant set is a flat membership match, so a folder name recurring
// elsewhere in the tree will pull in rows under every occurrence. A
// failed batch is logged and skipped; earlier batches are not rolled
// back. Returns a *cmderr.PartialBatchFailure alongside the result when
// some batches failed.
func (p *Propagator) Run(folder, video *models.SourceEntry) (*Result, error) {
	res := &Result{
		FolderID:   folder.ID,
		FolderName: folder.Name,
		VideoID:    video.ID,
		VideoName:  video.Name,
		DryRun:     p.DryRun,
	}

	if p.DryRun {
		p.log.Info("dry run: would set folder main_video_id",
			zap.String("folder_id", folder.ID),
			zap.String("video_id", video.ID))
	} else {
		if err := p.sources.SetFolderMainVideo(folder.ID, video.ID); err != nil {
			return nil, err
		}
		p.log.Info("set folder main_video_id",
			zap.String("folder_id", folder.ID),
			zap.String("video_id", video.ID))
	}

	descendants, err := p.sources.ListByPathArrayContains(folder.Name, p.Limit)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(descendants))
	for _, d := range descendants {
		if d.ID == folder.ID {
			continue
		}
		ids = append(ids, d.ID)
	}
	res.Descendants = len(ids)

	if p.DryRun {
		p.log.Info("dry run: would update descendants",
			zap.Int("count", len(ids)),
			zap.String("video_id", video.ID))
		return res, nil
	}

	batchSize := p.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	var batchErrs []error
	for start := 0; start < len(ids); start += batchSize {
		end := start + batchSize
		if end > len(ids) {
			end = len(ids)
		}
		batch := ids[start:end]
		res.Batches++
		if err := p.sources.UpdateMainVideoID(batch, video.ID); err != nil {
			res.FailedBatches++
			batchErrs = append(batchErrs, err)
			p.log.Error("batch update failed, continuing",
				zap.Int("batch", res.Batches),
				zap.Int("size", len(batch)),
				zap.Error(err))
			continue
		}
		res.Updated += len(batch)
		p.log.Info("updated batch",
			zap.Int("batch", res.Batches),
			zap.Int("size", len(batch)))
	}

	if res.FailedBatches > 0 {
		return res, &cmderr.PartialBatchFailure{
			Failed: res.FailedBatches,
			Total:  res.Batches,
			Errs:   batchErrs,
		}
	}
	return res, nil
}
