// Package book implements the in-memory record store for contacts and notes:
// the record types with their validation rules, and the insertion-ordered
// Book that owns them. The book is single-threaded by contract; the
// surrounding application serializes access.
package book

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"memobook/internal/validate"
)

// Contact is a single address book entry. All fields are kept canonical:
// phones and emails pass validation at insertion time and stay duplicate-free,
// so the book never holds an invalid field.
type Contact struct {
	name     string
	address  string
	phones   []string
	emails   []string
	birthday time.Time // zero means unset
}

// NewContact creates a contact with the given display name. The name is the
// contact's identity and cannot be empty.
func NewContact(name string) (*Contact, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &validate.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	return &Contact{name: strings.TrimSpace(name)}, nil
}

// Name returns the display name.
func (c *Contact) Name() string { return c.name }

// Address returns the free-text address, which may be empty.
func (c *Contact) Address() string { return c.address }

// Phones returns a copy of the phone list in insertion order.
func (c *Contact) Phones() []string { return slices.Clone(c.phones) }

// Emails returns a copy of the email list in insertion order.
func (c *Contact) Emails() []string { return slices.Clone(c.emails) }

// Birthday returns the birthday and whether one is set.
func (c *Contact) Birthday() (time.Time, bool) {
	return c.birthday, !c.birthday.IsZero()
}

// SetAddress replaces the free-text address. No validation applies; an empty
// address clears the field.
func (c *Contact) SetAddress(address string) {
	c.address = strings.TrimSpace(address)
}

// ClearBirthday removes the birthday.
func (c *Contact) ClearBirthday() {
	c.birthday = time.Time{}
}

// rename replaces the display name. The name is the contact's identity, so
// only Book.RenameContact may call this; it rekeys the index alongside.
func (c *Contact) rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return &validate.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	c.name = strings.TrimSpace(name)
	return nil
}

// AddPhone validates raw and appends its canonical form. Duplicates within
// the contact are rejected. On failure the contact is unchanged.
func (c *Contact) AddPhone(raw string) error {
	phone, err := validate.Phone(raw)
	if err != nil {
		return err
	}
	if slices.Contains(c.phones, phone) {
		return fmt.Errorf("phone %s: %w", phone, ErrDuplicate)
	}
	c.phones = append(c.phones, phone)
	return nil
}

// RemovePhone deletes the phone matching raw's canonical form.
func (c *Contact) RemovePhone(raw string) error {
	phone, err := validate.Phone(raw)
	if err != nil {
		return err
	}
	i := slices.Index(c.phones, phone)
	if i < 0 {
		return fmt.Errorf("phone %s: %w", phone, ErrNotFound)
	}
	c.phones = slices.Delete(c.phones, i, i+1)
	return nil
}

// EditPhone replaces oldRaw with newRaw in place. The update is all-or-nothing:
// if the new number fails validation or duplicates another entry, the phone
// list is left as it was.
func (c *Contact) EditPhone(oldRaw, newRaw string) error {
	oldPhone, err := validate.Phone(oldRaw)
	if err != nil {
		return err
	}
	newPhone, err := validate.Phone(newRaw)
	if err != nil {
		return err
	}
	i := slices.Index(c.phones, oldPhone)
	if i < 0 {
		return fmt.Errorf("phone %s: %w", oldPhone, ErrNotFound)
	}
	if newPhone != oldPhone && slices.Contains(c.phones, newPhone) {
		return fmt.Errorf("phone %s: %w", newPhone, ErrDuplicate)
	}
	c.phones[i] = newPhone
	return nil
}

// AddEmail validates raw and appends it. Duplicates are rejected.
func (c *Contact) AddEmail(raw string) error {
	email, err := validate.Email(raw)
	if err != nil {
		return err
	}
	if slices.Contains(c.emails, email) {
		return fmt.Errorf("email %s: %w", email, ErrDuplicate)
	}
	c.emails = append(c.emails, email)
	return nil
}

// RemoveEmail deletes the given email.
func (c *Contact) RemoveEmail(raw string) error {
	email, err := validate.Email(raw)
	if err != nil {
		return err
	}
	i := slices.Index(c.emails, email)
	if i < 0 {
		return fmt.Errorf("email %s: %w", email, ErrNotFound)
	}
	c.emails = slices.Delete(c.emails, i, i+1)
	return nil
}

// SetBirthday parses raw as YYYY.MM.DD and stores it. Dates after today are
// rejected.
func (c *Contact) SetBirthday(raw string) error {
	return c.setBirthdayAt(raw, time.Now())
}

func (c *Contact) setBirthdayAt(raw string, now time.Time) error {
	day, err := validate.Date(raw)
	if err != nil {
		return err
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if day.After(today) {
		return &validate.ValidationError{Field: "birthday", Reason: "must not be in the future"}
	}
	c.birthday = day
	return nil
}

// Clone returns an independent copy. The book hands clones to callers so no
// one outside it holds a mutable reference to a stored record.
func (c *Contact) Clone() *Contact {
	clone := *c
	clone.phones = slices.Clone(c.phones)
	clone.emails = slices.Clone(c.emails)
	return &clone
}

// String renders the contact on one line for plain listings.
func (c *Contact) String() string {
	parts := []string{c.name}
	if len(c.phones) > 0 {
		parts = append(parts, strings.Join(c.phones, "; "))
	}
	if len(c.emails) > 0 {
		parts = append(parts, strings.Join(c.emails, "; "))
	}
	if !c.birthday.IsZero() {
		parts = append(parts, c.birthday.Format(validate.DateLayout))
	}
	if c.address != "" {
		parts = append(parts, c.address)
	}
	return strings.Join(parts, ", ")
}
