package app

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"todo/internal/todo"
)

const DefaultUndoWindow = 5 * time.Second

type TaskStore interface {
	Load() todo.List
	Save(todo.List) error
}

type Options struct {
	UndoWindow time.Duration
	Filter     todo.Filter
	Now        func() time.Time
	NewID      func(time.Time) string
}

// Controller owns the application state. Each Dispatch runs one full
// transition and persists before returning.
type Controller struct {
	state State
	store TaskStore
	log   logrus.FieldLogger
	opts  Options
}

func New(store TaskStore, log logrus.FieldLogger, opts Options) *Controller {
	if opts.UndoWindow <= 0 {
		opts.UndoWindow = DefaultUndoWindow
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = NewID
	}
	tasks := store.Load()
	log.WithField("tasks", len(tasks)).Info("loaded tasks")
	return &Controller{
		state: State{Tasks: tasks, Filter: opts.Filter},
		store: store,
		log:   log,
		opts:  opts,
	}
}

func (c *Controller) Dispatch(ev Event) Effects {
	env := Env{
		Now:        c.opts.Now(),
		NewID:      c.opts.NewID,
		UndoWindow: c.opts.UndoWindow,
	}
	next, fx := Reduce(c.state, ev, env)
	c.state = next
	if fx.Err != nil {
		c.log.WithError(fx.Err).WithField("event", eventName(ev)).Debug("event ignored")
	}
	if fx.Persist {
		if err := c.store.Save(c.state.Tasks); err != nil {
			c.log.WithError(err).Warn("save tasks")
		}
	}
	return fx
}

func (c *Controller) State() State {
	return c.state
}

func (c *Controller) Now() time.Time {
	return c.opts.Now()
}

// NewID returns a time-ordered UUIDv7, falling back to the millisecond
// timestamp when the random source fails.
func NewID(now time.Time) string {
	id, err := uuid.NewV7()
	if err != nil {
		return strconv.FormatInt(now.UnixMilli(), 10)
	}
	return id.String()
}

func eventName(ev Event) string {
	switch ev.(type) {
	case AddTask:
		return "add"
	case ToggleDone:
		return "toggle"
	case DeleteTask:
		return "delete"
	case BeginEdit, CommitEdit, CancelEdit:
		return "edit"
	case DragStart, DragOver, Drop, DragEnd:
		return "drag"
	default:
		return "other"
	}
}
