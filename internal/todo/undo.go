package todo

import "time"

// UndoSlot holds the most recently deleted task until its deadline.
type UndoSlot struct {
	task     *Task
	deadline time.Time
}

// Arm overwrites whatever the slot held before.
func (u *UndoSlot) Arm(t Task, deadline time.Time) {
	u.task = &t
	u.deadline = deadline
}

func (u *UndoSlot) Take() (Task, bool) {
	if u.task == nil {
		return Task{}, false
	}
	t := *u.task
	u.Clear()
	return t, true
}

func (u *UndoSlot) Clear() {
	u.task = nil
	u.deadline = time.Time{}
}

func (u UndoSlot) Task() (Task, bool) {
	if u.task == nil {
		return Task{}, false
	}
	return *u.task, true
}

func (u UndoSlot) Armed() bool {
	return u.task != nil
}

func (u UndoSlot) Deadline() time.Time {
	return u.deadline
}

func (u UndoSlot) Remaining(now time.Time) time.Duration {
	if u.task == nil || !now.Before(u.deadline) {
		return 0
	}
	return u.deadline.Sub(now)
}

func (u UndoSlot) Expired(now time.Time) bool {
	return u.task != nil && !now.Before(u.deadline)
}
