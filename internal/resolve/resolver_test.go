package resolve

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dhg-hub/drivemeta/internal/cmderr"
	"github.com/dhg-hub/drivemeta/models"
)

type fakeLookup struct {
	foldersExact    []models.SourceEntry
	foldersContains []models.SourceEntry
	foldersAll      []models.SourceEntry
	videosExact     []models.SourceEntry
	videosContains  []models.SourceEntry
	videosAll       []models.SourceEntry
}

func (f *fakeLookup) FindFoldersByName(string) ([]models.SourceEntry, error) {
	return f.foldersExact, nil
}

func (f *fakeLookup) FindFoldersByNameContains(string) ([]models.SourceEntry, error) {
	return f.foldersContains, nil
}

func (f *fakeLookup) ListFolders(int) ([]models.SourceEntry, error) {
	return f.foldersAll, nil
}

func (f *fakeLookup) FindVideosByName(string) ([]models.SourceEntry, error) {
	return f.videosExact, nil
}

func (f *fakeLookup) FindVideosByNameContains(string) ([]models.SourceEntry, error) {
	return f.videosContains, nil
}

func (f *fakeLookup) ListVideos(int) ([]models.SourceEntry, error) {
	return f.videosAll, nil
}

func folder(id, name string, depth int) models.SourceEntry {
	return models.SourceEntry{ID: id, Name: name, MimeType: models.FolderMimeType, PathDepth: depth}
}

func video(id, name string) models.SourceEntry {
	return models.SourceEntry{ID: id, Name: name, MimeType: "video/mp4"}
}

func TestResolveFolderExactMatch(t *testing.T) {
	lookup := &fakeLookup{
		foldersExact: []models.SourceEntry{folder("f1", "2022-04-20-Tauben-Sullivan", 0)},
	}
	r := NewResolver(lookup, zap.NewNop())

	got, err := r.ResolveFolder("2022-04-20-Tauben-Sullivan")
	require.NoError(t, err)
	assert.Equal(t, "f1", got.ID)
}

func TestResolveFolderExactPrefersTopLevel(t *testing.T) {
	lookup := &fakeLookup{
		foldersExact: []models.SourceEntry{
			folder("nested", "Topic", 3),
			folder("top", "Topic", 0),
		},
	}
	r := NewResolver(lookup, zap.NewNop())

	got, err := r.ResolveFolder("Topic")
	require.NoError(t, err)
	assert.Equal(t, "top", got.ID)
}

func TestResolveFolderFallsBackToSubstring(t *testing.T) {
	lookup := &fakeLookup{
		foldersContains: []models.SourceEntry{folder("f1", "2022-04-20-Tauben-Sullivan", 0)},
	}
	r := NewResolver(lookup, zap.NewNop())

	got, err := r.ResolveFolder("2022-04-20-Tauben")
	require.NoError(t, err)
	assert.Equal(t, "2022-04-20-Tauben-Sullivan", got.Name)
}

func TestResolveFolderSimilarityTier(t *testing.T) {
	lookup := &fakeLookup{
		foldersAll: []models.SourceEntry{
			folder("other", "2019-11-02-Wager", 0),
			folder("f1", "2022-04-20-Tauben-Sullivan", 0),
		},
	}
	r := NewResolver(lookup, zap.NewNop())

	got, err := r.ResolveFolder("Tauben Sullivan 2022")
	require.NoError(t, err)
	assert.Equal(t, "f1", got.ID)
}

func TestResolveFolderNotFound(t *testing.T) {
	r := NewResolver(&fakeLookup{}, zap.NewNop())

	got, err := r.ResolveFolder("does-not-exist")
	require.Error(t, err)
	assert.Nil(t, got)

	var nf *cmderr.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "folder", nf.Kind)
}

func TestResolveFolderSimilarityRequiresOverlap(t *testing.T) {
	// Candidates exist but share no tokens with the query: still NotFound,
	// never a silent arbitrary pick.
	lookup := &fakeLookup{
		foldersAll: []models.SourceEntry{folder("f1", "Wager", 0)},
	}
	r := NewResolver(lookup, zap.NewNop())

	_, err := r.ResolveFolder("Tauben")
	var nf *cmderr.NotFoundError
	require.True(t, errors.As(err, &nf))
}

func TestResolveVideoExactMatch(t *testing.T) {
	lookup := &fakeLookup{
		videosExact: []models.SourceEntry{video("v1", "Tauben.Sullivan.4.20.22.mp4")},
	}
	r := NewResolver(lookup, zap.NewNop())

	got, err := r.ResolveVideo("Tauben.Sullivan.4.20.22.mp4")
	require.NoError(t, err)
	assert.Equal(t, "v1", got.ID)
}

func TestResolvePathArray(t *testing.T) {
	lookup := &fakeLookup{
		foldersExact: []models.SourceEntry{folder("f1", "2022-04-20-Tauben-Sullivan", 0)},
		videosExact:  []models.SourceEntry{video("v1", "Tauben.Sullivan.4.20.22.mp4")},
	}
	r := NewResolver(lookup, zap.NewNop())

	f, v, err := r.ResolvePathArray([]string{
		"2022-04-20-Tauben-Sullivan", "Presentation", "Tauben.Sullivan.4.20.22.mp4",
	})
	require.NoError(t, err)
	assert.Equal(t, "f1", f.ID)
	assert.Equal(t, "v1", v.ID)
}

func TestResolvePathArrayValidation(t *testing.T) {
	r := NewResolver(&fakeLookup{}, zap.NewNop())

	var ve *cmderr.ValidationError

	_, _, err := r.ResolvePathArray([]string{"only-folder"})
	require.True(t, errors.As(err, &ve))

	_, _, err = r.ResolvePathArray([]string{"folder", "notes.txt"})
	require.True(t, errors.As(err, &ve))
}

func TestResolvePathArrayPicksLastVideoElement(t *testing.T) {
	lookup := &fakeLookup{
		foldersExact: []models.SourceEntry{folder("f1", "Folder", 0)},
		videosExact:  []models.SourceEntry{video("v1", "second.m4v")},
	}
	r := NewResolver(lookup, zap.NewNop())

	_, v, err := r.ResolvePathArray([]string{"Folder", "first.mp4", "second.m4v"})
	require.NoError(t, err)
	assert.Equal(t, "second.m4v", v.Name)
}
