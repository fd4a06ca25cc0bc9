package store

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhg-hub/drivemeta/config"
	"github.com/dhg-hub/drivemeta/internal/cmderr"
	"github.com/dhg-hub/drivemeta/models"
)

// newTestStore points a real Supabase client at a stub PostgREST server
// so the filter strings our queries produce can be asserted on the wire.
func newTestStore(t *testing.T, handler http.HandlerFunc) *Store {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := InitSupabaseClient(&config.Config{
		SupabaseURL: srv.URL,
		SupabaseKey: "test-key",
	})
	require.NoError(t, err)
	return NewStore(client)
}

func writeRows(t *testing.T, w http.ResponseWriter, rows []models.SourceEntry) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(rows))
}

func TestFindFoldersByNameFilters(t *testing.T) {
	var gotQuery map[string]string
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/v1/sources_google", r.URL.Path)
		require.Equal(t, http.MethodGet, r.Method)
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		writeRows(t, w, []models.SourceEntry{
			{ID: "f1", Name: "My Folder", MimeType: models.FolderMimeType, PathDepth: 0},
		})
	})

	rows, err := store.Sources.FindFoldersByName("My Folder")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "f1", rows[0].ID)

	assert.Equal(t, "eq.My Folder", gotQuery["name"])
	assert.Equal(t, "eq."+models.FolderMimeType, gotQuery["mime_type"])
	assert.Equal(t, "eq.false", gotQuery["is_deleted"])
}

func TestFindVideosByNameRestrictsMimeTypes(t *testing.T) {
	var mimeFilter string
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		mimeFilter = r.URL.Query().Get("mime_type")
		writeRows(t, w, nil)
	})

	_, err := store.Sources.FindVideosByName("clip.mp4")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(mimeFilter, "in.("), "mime_type filter = %q", mimeFilter)
	assert.Contains(t, mimeFilter, "video/mp4")
}

func TestListByPathArrayContainsUsesContainment(t *testing.T) {
	var pathFilter string
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		pathFilter = r.URL.Query().Get("path_array")
		writeRows(t, w, []models.SourceEntry{
			{ID: "a", Name: "talk.mp4", PathArray: []string{"Folder", "talk.mp4"}},
		})
	})

	rows, err := store.Sources.ListByPathArrayContains("Folder", 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, strings.HasPrefix(pathFilter, "cs."), "path_array filter = %q", pathFilter)
	assert.Contains(t, pathFilter, "Folder")
}

func TestUpdateMainVideoIDPatchesBatch(t *testing.T) {
	var (
		gotMethod string
		idFilter  string
		body      map[string]interface{}
	)
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		idFilter = r.URL.Query().Get("id")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("[]"))
	})

	err := store.Sources.UpdateMainVideoID([]string{"a", "b", "c"}, "video-1")
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.True(t, strings.HasPrefix(idFilter, "in.("), "id filter = %q", idFilter)
	assert.Equal(t, "video-1", body["main_video_id"])
}

func TestUpdateMainVideoIDSkipsEmptyBatch(t *testing.T) {
	called := false
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	require.NoError(t, store.Sources.UpdateMainVideoID(nil, "video-1"))
	assert.False(t, called)
}

func TestSetFolderMainVideo(t *testing.T) {
	var idFilter string
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		idFilter = r.URL.Query().Get("id")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("[]"))
	})

	require.NoError(t, store.Sources.SetFolderMainVideo("folder-1", "video-1"))
	assert.Equal(t, "eq.folder-1", idFilter)
}

func TestListTopLevelFoldersWithMainVideoFilters(t *testing.T) {
	var gotQuery map[string]string
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		writeRows(t, w, nil)
	})

	_, err := store.Sources.ListTopLevelFoldersWithMainVideo("root-1")
	require.NoError(t, err)
	assert.Equal(t, "eq.0", gotQuery["path_depth"])
	assert.Equal(t, "eq.root-1", gotQuery["root_drive_id"])
	assert.Equal(t, "not.is.null", gotQuery["main_video_id"])
}

func TestListChildrenJoinsOnDriveID(t *testing.T) {
	var parentFilter string
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		parentFilter = r.URL.Query().Get("parent_folder_id")
		writeRows(t, w, nil)
	})

	_, err := store.Sources.ListChildren("drive-abc")
	require.NoError(t, err)
	assert.Equal(t, "eq.drive-abc", parentFilter)
}

func TestFindByDriveIDNotFound(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		writeRows(t, w, nil)
	})

	_, err := store.Sources.FindByDriveID("missing")
	var nf *cmderr.NotFoundError
	require.True(t, errors.As(err, &nf))
}

func TestQueryFailureWrapsConnectionError(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"server exploded"}`, http.StatusInternalServerError)
	})

	_, err := store.Sources.ListFolders(0)
	var ce *cmderr.ConnectionError
	require.True(t, errors.As(err, &ce))
}
