package book

import (
	"fmt"
	"slices"
	"strings"

	"memobook/internal/validate"
)

// Note is a short text record with a set of keyword tags. Tags are stored
// lowercased and stay duplicate-free under case-insensitive comparison.
type Note struct {
	id   string
	text string
	tags []string
}

// NewNote creates a note with the given body. The body cannot be empty.
func NewNote(text string) (*Note, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &validate.ValidationError{Field: "text", Reason: "must not be empty"}
	}
	return &Note{text: strings.TrimSpace(text)}, nil
}

// ID returns the note's identifier, assigned when the note enters a Book.
// Empty until then.
func (n *Note) ID() string { return n.id }

// Text returns the note body.
func (n *Note) Text() string { return n.text }

// Tags returns a copy of the tags in insertion order.
func (n *Note) Tags() []string { return slices.Clone(n.tags) }

// SetText replaces the body. The new body cannot be empty; on failure the
// note is unchanged.
func (n *Note) SetText(text string) error {
	if strings.TrimSpace(text) == "" {
		return &validate.ValidationError{Field: "text", Reason: "must not be empty"}
	}
	n.text = strings.TrimSpace(text)
	return nil
}

// AddTag normalizes the tag to lowercase and appends it. Adding a tag that
// is already present is a no-op, so the operation is idempotent.
func (n *Note) AddTag(tag string) error {
	normalized := normalizeTag(tag)
	if normalized == "" {
		return &validate.ValidationError{Field: "tag", Reason: "must not be empty"}
	}
	if slices.Contains(n.tags, normalized) {
		return nil
	}
	n.tags = append(n.tags, normalized)
	return nil
}

// RemoveTag deletes the tag, compared case-insensitively.
func (n *Note) RemoveTag(tag string) error {
	normalized := normalizeTag(tag)
	i := slices.Index(n.tags, normalized)
	if i < 0 {
		return fmt.Errorf("tag %q: %w", normalized, ErrNotFound)
	}
	n.tags = slices.Delete(n.tags, i, i+1)
	return nil
}

// HasTag reports whether the note carries the tag, compared case-insensitively.
func (n *Note) HasTag(tag string) bool {
	return slices.Contains(n.tags, normalizeTag(tag))
}

// Clone returns an independent copy.
func (n *Note) Clone() *Note {
	clone := *n
	clone.tags = slices.Clone(n.tags)
	return &clone
}

// String renders the note on one line for plain listings.
func (n *Note) String() string {
	if len(n.tags) == 0 {
		return n.text
	}
	return fmt.Sprintf("%s [%s]", n.text, strings.Join(n.tags, ", "))
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}
