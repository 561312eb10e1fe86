// Package query implements read-only derived views over a book: the birthday
// window scan and keyword/tag searches. Nothing here mutates the store.
package query

import (
	"slices"
	"strings"
	"time"

	"memobook/internal/book"
)

// BirthdayHit pairs a contact with the number of days until its next birthday.
type BirthdayHit struct {
	Contact   *book.Contact
	DaysUntil int
}

// UpcomingBirthdays returns every contact whose next birthday falls within
// [0, withinDays] days of today, inclusive; day 0 means the birthday is today.
// Results are ordered by days-until ascending, ties broken by name. A Feb 29
// birthday in a non-leap year is observed on Mar 1, which is what date
// normalization yields for the 29th of a 28-day February.
func UpcomingBirthdays(b *book.Book, today time.Time, withinDays int) []BirthdayHit {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	var hits []BirthdayHit
	for _, c := range b.Contacts() {
		birthday, ok := c.Birthday()
		if !ok {
			continue
		}
		next := nextOccurrence(birthday, day)
		until := int(next.Sub(day).Hours() / 24)
		if until <= withinDays {
			hits = append(hits, BirthdayHit{Contact: c, DaysUntil: until})
		}
	}

	slices.SortFunc(hits, func(a, b BirthdayHit) int {
		if a.DaysUntil != b.DaysUntil {
			return a.DaysUntil - b.DaysUntil
		}
		return strings.Compare(a.Contact.Name(), b.Contact.Name())
	})
	return hits
}

// BirthdaysOn returns the contacts whose birthday falls on date's month and
// day, ordered by name. The year of date is ignored.
func BirthdaysOn(b *book.Book, date time.Time) []*book.Contact {
	var hits []*book.Contact
	for _, c := range b.Contacts() {
		birthday, ok := c.Birthday()
		if !ok {
			continue
		}
		if birthday.Month() == date.Month() && birthday.Day() == date.Day() {
			hits = append(hits, c)
		}
	}
	slices.SortFunc(hits, func(a, b *book.Contact) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return hits
}

// nextOccurrence finds the first anniversary of birthday's month/day on or
// after today.
func nextOccurrence(birthday, today time.Time) time.Time {
	occurrence := time.Date(today.Year(), birthday.Month(), birthday.Day(), 0, 0, 0, 0, time.UTC)
	if occurrence.Before(today) {
		occurrence = time.Date(today.Year()+1, birthday.Month(), birthday.Day(), 0, 0, 0, 0, time.UTC)
	}
	return occurrence
}
