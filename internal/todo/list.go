package todo

import "strings"

// List is the ordered task list. Operations return a fresh List and leave
// the receiver untouched.
type List []Task

func (l List) clone() List {
	out := make(List, len(l))
	copy(out, l)
	return out
}

func (l List) Prepend(t Task) List {
	out := make(List, 0, len(l)+1)
	out = append(out, t)
	return append(out, l...)
}

func (l List) Find(id string) (Task, int, bool) {
	for i, t := range l {
		if t.ID == id {
			return t, i, true
		}
	}
	return Task{}, -1, false
}

// Remove drops the task with id. An absent id returns the list unchanged.
func (l List) Remove(id string) (List, Task, bool) {
	t, idx, ok := l.Find(id)
	if !ok {
		return l, Task{}, false
	}
	out := make(List, 0, len(l)-1)
	out = append(out, l[:idx]...)
	out = append(out, l[idx+1:]...)
	return out, t, true
}

func (l List) ReplaceText(id, text string) (List, error) {
	_, idx, ok := l.Find(id)
	if !ok {
		return l, ErrNotFound
	}
	if !ValidText(text) {
		return l, ErrInvalidText
	}
	out := l.clone()
	out[idx].Text = strings.TrimSpace(text)
	return out, nil
}

func (l List) ToggleDone(id string) (List, error) {
	_, idx, ok := l.Find(id)
	if !ok {
		return l, ErrNotFound
	}
	out := l.clone()
	out[idx].Done = !out[idx].Done
	return out, nil
}

// Reorder arranges tasks in the order of ids. Unknown and repeated ids are
// skipped; tasks not named follow in their current relative order.
func (l List) Reorder(ids []string) List {
	byID := make(map[string]Task, len(l))
	for _, t := range l {
		byID[t.ID] = t
	}
	placed := make(map[string]bool, len(l))
	out := make(List, 0, len(l))
	for _, id := range ids {
		t, ok := byID[id]
		if !ok || placed[id] {
			continue
		}
		placed[id] = true
		out = append(out, t)
	}
	for _, t := range l {
		if !placed[t.ID] {
			out = append(out, t)
		}
	}
	return out
}

func (l List) WithoutCompleted() List {
	out := make(List, 0, len(l))
	for _, t := range l {
		if !t.Done {
			out = append(out, t)
		}
	}
	return out
}

func (l List) Filter(f Filter) List {
	out := make(List, 0, len(l))
	for _, t := range l {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

func (l List) OpenCount() int {
	n := 0
	for _, t := range l {
		if !t.Done {
			n++
		}
	}
	return n
}

func (l List) IDs() []string {
	ids := make([]string, len(l))
	for i, t := range l {
		ids[i] = t.ID
	}
	return ids
}
