package store

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/quibbleapp/quibble-go/internal/models"
)

func openTestStore(t *testing.T) *SnapshotStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "snapshots.db"), zerolog.Nop())
	require.NoError(t, err)
	return s
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)

	saved := []models.Question{{ID: "q1", Title: "How?", AskedBy: "alice"}}
	require.NoError(t, s.Save("question_list", "newest||", saved))

	var loaded []models.Question
	ok, err := s.Load("question_list", "newest||", &loaded)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, saved, loaded)
}

func TestLoadMissReturnsFalse(t *testing.T) {
	s := openTestStore(t)

	var loaded []models.Question
	ok, err := s.Load("question_list", "missing", &loaded)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSaveOverwritesPerPageAndKey(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Save("question_list", "newest||", []models.Question{{ID: "old"}}))
	require.NoError(t, s.Save("question_list", "newest||", []models.Question{{ID: "new"}}))
	require.NoError(t, s.Save("question_list", "active||", []models.Question{{ID: "other"}}))

	var loaded []models.Question
	ok, err := s.Load("question_list", "newest||", &loaded)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, loaded, 1)
	require.Equal(t, "new", loaded[0].ID)
}

func TestLoadShapeMismatchCountsAsMiss(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Save("question_list", "newest||", []models.Question{{ID: "q1"}}))

	var wrongShape map[string]string
	ok, err := s.Load("question_list", "newest||", &wrongShape)
	require.NoError(t, err)
	require.False(t, ok)
}
