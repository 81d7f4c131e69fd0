package todo

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	DateLayout = "2006-01-02"
	MinTextLen = 3
)

var (
	ErrNotFound    = errors.New("task not found")
	ErrInvalidText = errors.New("task text must be at least 3 characters")
	ErrInvalidDate = errors.New("date must be YYYY-MM-DD")
)

type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Done      bool   `json:"done"`
	StartDate string `json:"startDate"`
	DueDate   string `json:"dueDate"`
}

// NewTask builds an open task started on the local date of now.
func NewTask(id, text, due string, now time.Time) (Task, error) {
	text = strings.TrimSpace(text)
	if !ValidText(text) {
		return Task{}, ErrInvalidText
	}
	due = strings.TrimSpace(due)
	if !ValidDate(due) {
		return Task{}, ErrInvalidDate
	}
	return Task{
		ID:        id,
		Text:      text,
		Done:      false,
		StartDate: Today(now),
		DueDate:   due,
	}, nil
}

func ValidText(s string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= MinTextLen
}

func ValidDate(s string) bool {
	if s == "" {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// Overdue compares fixed-width ISO dates as strings.
func (t Task) Overdue(today string) bool {
	return !t.Done && t.DueDate < today
}
