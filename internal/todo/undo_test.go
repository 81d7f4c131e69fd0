package todo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUndoSlot(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	var slot UndoSlot

	_, ok := slot.Take()
	assert.False(t, ok)
	assert.False(t, slot.Expired(now))

	slot.Arm(Task{ID: "a"}, now.Add(5*time.Second))
	assert.True(t, slot.Armed())
	assert.Equal(t, 3*time.Second, slot.Remaining(now.Add(2*time.Second)))
	assert.False(t, slot.Expired(now.Add(4*time.Second)))
	assert.True(t, slot.Expired(now.Add(5*time.Second)))

	slot.Arm(Task{ID: "b"}, now.Add(time.Second))
	held, ok := slot.Task()
	assert.True(t, ok)
	assert.Equal(t, "b", held.ID)

	taken, ok := slot.Take()
	assert.True(t, ok)
	assert.Equal(t, "b", taken.ID)
	assert.False(t, slot.Armed())
	assert.Zero(t, slot.Remaining(now))
}

func TestUndoSlot_CopyIsIndependent(t *testing.T) {
	var slot UndoSlot
	slot.Arm(Task{ID: "a"}, time.Now().Add(time.Minute))

	cp := slot
	cp.Clear()

	assert.True(t, slot.Armed())
	assert.False(t, cp.Armed())
}
