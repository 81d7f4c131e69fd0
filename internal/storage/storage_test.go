package storage

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo/internal/todo"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "todo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_GetSet(t *testing.T) {
	s := openTemp(t)

	_, ok, err := s.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("k", "v1"))
	require.NoError(t, s.Set("k", "v2"))

	v, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", v)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(DefaultKey, "[]"))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	v, ok, err := s.Get(DefaultKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, "file:already.db", sqliteDSN("file:already.db"))

	dsn := sqliteDSN("/tmp/todo.db")
	assert.True(t, strings.HasPrefix(dsn, "file:///tmp/todo.db?"))
	assert.Contains(t, dsn, "mode=rwc")
}

func TestTasks_RoundTrip(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	kv := openTemp(t)
	tasks := NewTasks(kv, "", log)

	list := todo.List{
		{ID: "1", Text: "Buy milk", DueDate: "2024-01-01", StartDate: "2023-12-30"},
		{ID: "2", Text: "Walk dog", Done: true, DueDate: "2024-01-02", StartDate: "2023-12-30"},
	}
	require.NoError(t, tasks.Save(list))
	assert.Equal(t, list, tasks.Load())

	raw, ok, err := kv.Get(DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[
		{"id":"1","text":"Buy milk","done":false,"startDate":"2023-12-30","dueDate":"2024-01-01"},
		{"id":"2","text":"Walk dog","done":true,"startDate":"2023-12-30","dueDate":"2024-01-02"}
	]`, raw)
}

func TestTasks_SaveEmptyWritesArray(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	kv := NewMemory()

	require.NoError(t, NewTasks(kv, "k", log).Save(nil))

	raw, _, _ := kv.Get("k")
	assert.Equal(t, "[]", raw)
}

func TestTasks_LoadMissing(t *testing.T) {
	log, hook := logtest.NewNullLogger()

	list := NewTasks(NewMemory(), "k", log).Load()
	assert.NotNil(t, list)
	assert.Empty(t, list)
	assert.Empty(t, hook.AllEntries())
}

func TestTasks_LoadMalformed(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	kv := NewMemory()
	require.NoError(t, kv.Set("k", "{not json"))

	list := NewTasks(kv, "k", log).Load()
	assert.Empty(t, list)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestTasks_LoadDropsDuplicateIDs(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	kv := NewMemory()
	require.NoError(t, kv.Set("k", `[{"id":"1","text":"one"},{"id":"1","text":"dup"},{"id":"","text":"blank"}]`))

	list := NewTasks(kv, "k", log).Load()
	require.Len(t, list, 1)
	assert.Equal(t, "one", list[0].Text)
}

type failingKV struct{}

func (failingKV) Get(string) (string, bool, error) { return "", false, errors.New("disk gone") }
func (failingKV) Set(string, string) error         { return errors.New("quota exceeded") }

func TestTasks_KVFailures(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	tasks := NewTasks(failingKV{}, "k", log)

	assert.Empty(t, tasks.Load())
	assert.Len(t, hook.AllEntries(), 1)

	err := tasks.Save(todo.List{})
	assert.ErrorContains(t, err, "quota exceeded")
}
