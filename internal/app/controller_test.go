package app

import (
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo/internal/storage"
	"todo/internal/todo"
)

func newController(t *testing.T, kv storage.KV) (*Controller, *storage.Tasks) {
	t.Helper()
	log, _ := logtest.NewNullLogger()
	tasks := storage.NewTasks(kv, "", log)
	env := testEnv()
	c := New(tasks, log, Options{
		Now:   func() time.Time { return testNow },
		NewID: env.NewID,
	})
	return c, tasks
}

func TestController_PersistsEveryMutation(t *testing.T) {
	c, tasks := newController(t, storage.NewMemory())

	c.Dispatch(AddTask{Text: "Buy milk", Due: "2024-01-01"})
	c.Dispatch(AddTask{Text: "Walk dog", Due: "2024-01-02"})
	assert.Equal(t, c.State().Tasks, tasks.Load())

	c.Dispatch(ToggleDone{ID: "id1"})
	assert.Equal(t, c.State().Tasks, tasks.Load())

	c.Dispatch(ClearCompleted{})
	saved := tasks.Load()
	require.Len(t, saved, 1)
	assert.Equal(t, "Walk dog", saved[0].Text)
}

func TestController_LoadsSnapshot(t *testing.T) {
	kv := storage.NewMemory()
	first, _ := newController(t, kv)
	first.Dispatch(AddTask{Text: "Buy milk", Due: "2024-01-01"})

	second, _ := newController(t, kv)

	require.Len(t, second.State().Tasks, 1)
	assert.Equal(t, "Buy milk", second.State().Tasks[0].Text)
}

func TestController_DragReorderPersists(t *testing.T) {
	c, tasks := newController(t, storage.NewMemory())
	for _, text := range []string{"task A", "task B", "task C"} {
		c.Dispatch(AddTask{Text: text, Due: "2024-01-01"})
	}
	// prepend order: C, B, A -> put A first.
	c.Dispatch(DragStart{ID: "id1"})
	c.Dispatch(DragOver{ID: "id2"})
	c.Dispatch(DragOver{ID: "id3"})
	c.Dispatch(Drop{Order: c.State().Drag.Order})
	c.Dispatch(DragEnd{})

	assert.Equal(t, []string{"id1", "id3", "id2"}, tasks.Load().IDs())
	assert.Equal(t, []string{"id1", "id3", "id2"}, c.State().Tasks.IDs())
}

type brokenStore struct{ saves int }

func (b *brokenStore) Load() todo.List { return todo.List{} }
func (b *brokenStore) Save(todo.List) error {
	b.saves++
	return errors.New("quota exceeded")
}

func TestController_SaveFailureIsNotFatal(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	store := &brokenStore{}
	c := New(store, log, Options{})

	fx := c.Dispatch(AddTask{Text: "Buy milk", Due: "2024-01-01"})

	assert.True(t, fx.Persist)
	assert.Equal(t, 1, store.saves)
	assert.Len(t, c.State().Tasks, 1)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestController_Defaults(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	c := New(&brokenStore{}, log, Options{Filter: todo.FilterActive})

	assert.Equal(t, todo.FilterActive, c.State().Filter)

	c.Dispatch(AddTask{Text: "Buy milk", Due: "2024-01-01"})
	id := c.State().Tasks[0].ID
	assert.NotEmpty(t, id)

	before := c.Now()
	c.Dispatch(DeleteTask{ID: id})
	deadline := c.State().Undo.Deadline()
	assert.WithinDuration(t, before.Add(DefaultUndoWindow), deadline, time.Second)
}

func TestNewID_Unique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewID(time.Now())
		assert.False(t, seen[id])
		seen[id] = true
	}
}
