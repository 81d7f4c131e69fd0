package storage

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"todo/internal/todo"
)

// DefaultKey names the persisted snapshot. Bump the suffix when the task
// record shape changes.
const DefaultKey = "todo-full-v2"

// Tasks persists the whole task list as one JSON blob under a fixed key.
type Tasks struct {
	kv  KV
	key string
	log logrus.FieldLogger
}

func NewTasks(kv KV, key string, log logrus.FieldLogger) *Tasks {
	if key == "" {
		key = DefaultKey
	}
	return &Tasks{kv: kv, key: key, log: log.WithField("key", key)}
}

// Load returns the saved list. Missing or unreadable data yields an empty
// list.
func (s *Tasks) Load() todo.List {
	raw, ok, err := s.kv.Get(s.key)
	if err != nil {
		s.log.WithError(err).Warn("read task snapshot")
		return todo.List{}
	}
	if !ok || raw == "" {
		return todo.List{}
	}
	var list todo.List
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		s.log.WithError(err).Warn("task snapshot is malformed, starting empty")
		return todo.List{}
	}
	seen := make(map[string]bool, len(list))
	out := make(todo.List, 0, len(list))
	for _, t := range list {
		if t.ID == "" || seen[t.ID] {
			s.log.WithField("id", t.ID).Warn("dropping task with missing or duplicate id")
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out
}

func (s *Tasks) Save(list todo.List) error {
	if list == nil {
		list = todo.List{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := s.kv.Set(s.key, string(data)); err != nil {
		return fmt.Errorf("write tasks: %w", err)
	}
	return nil
}
