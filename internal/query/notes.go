package query

import (
	"strings"

	"memobook/internal/book"
	"memobook/internal/validate"
)

// minSearchLen is the shortest accepted contact search term; anything shorter
// matches too much of a small address book to be useful.
const minSearchLen = 3

// SearchNotes returns the notes whose text or any tag contains keyword as a
// case-insensitive substring, in store order. A blank keyword matches nothing.
func SearchNotes(b *book.Book, keyword string) []*book.Note {
	needle := strings.ToLower(strings.TrimSpace(keyword))
	if needle == "" {
		return nil
	}

	var matched []*book.Note
	for _, n := range b.Notes() {
		if noteMatches(n, needle) {
			matched = append(matched, n)
		}
	}
	return matched
}

func noteMatches(n *book.Note, needle string) bool {
	if strings.Contains(strings.ToLower(n.Text()), needle) {
		return true
	}
	for _, tag := range n.Tags() {
		if strings.Contains(tag, needle) {
			return true
		}
	}
	return false
}

// NotesByTag returns the notes carrying the tag, compared case-insensitively,
// in store order.
func NotesByTag(b *book.Book, tag string) []*book.Note {
	var matched []*book.Note
	for _, n := range b.Notes() {
		if n.HasTag(tag) {
			matched = append(matched, n)
		}
	}
	return matched
}

// SearchContacts returns the contacts whose name contains term
// case-insensitively, or whose phone numbers contain term, in store order.
// Terms shorter than three characters are rejected.
func SearchContacts(b *book.Book, term string) ([]*book.Contact, error) {
	trimmed := strings.TrimSpace(term)
	if len(trimmed) < minSearchLen {
		return nil, &validate.ValidationError{
			Field:  "search",
			Reason: "needs at least 3 characters",
		}
	}
	needle := strings.ToLower(trimmed)

	var matched []*book.Contact
	for _, c := range b.Contacts() {
		if contactMatches(c, needle) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

func contactMatches(c *book.Contact, needle string) bool {
	if strings.Contains(strings.ToLower(c.Name()), needle) {
		return true
	}
	for _, phone := range c.Phones() {
		if strings.Contains(phone, needle) {
			return true
		}
	}
	return false
}
