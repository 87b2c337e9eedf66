package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotFound   = errors.New("post not found")
	ErrValidation = errors.New("missing or invalid field")
)

// DateLayout is the on-disk and on-form representation of Post.Date.
const DateLayout = time.DateOnly

// GroupNamesSeparator splits Post.GroupNames into participant names.
const GroupNamesSeparator = "、"

type Post struct {
	ID          int64
	ProgramID   string
	Date        time.Time
	Time        string
	Type        string
	Name        string
	Title       string
	GroupNames  string
	IsPublished bool
}

// PostInput holds the mutable fields of a Post as supplied by an admin form.
type PostInput struct {
	Date       string
	Time       string
	Type       string
	Name       string
	Title      string
	GroupNames string
}

func (in PostInput) Validate() (time.Time, error) {
	var missing []string
	if strings.TrimSpace(in.Date) == "" {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(in.Time) == "" {
		missing = append(missing, "time")
	}
	if strings.TrimSpace(in.Type) == "" {
		missing = append(missing, "type")
	}
	if len(missing) > 0 {
		return time.Time{}, fmt.Errorf("%w: %s", ErrValidation, strings.Join(missing, ", "))
	}
	d, err := ParseDate(in.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q", ErrValidation, in.Date)
	}
	return d, nil
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Names splits GroupNames into participant names. An empty value yields an empty slice.
func (p Post) Names() []string {
	return SplitNames(p.GroupNames)
}

func SplitNames(groupNames string) []string {
	if groupNames == "" {
		return []string{}
	}
	return strings.Split(groupNames, GroupNamesSeparator)
}
