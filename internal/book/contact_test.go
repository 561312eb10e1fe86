package book

import (
	"errors"
	"testing"

	"memobook/internal/validate"
)

func TestNewContact(t *testing.T) {
	c, err := NewContact("Ann")
	if err != nil {
		t.Fatalf("NewContact failed: %v", err)
	}
	if c.Name() != "Ann" {
		t.Errorf("Name = %q, want Ann", c.Name())
	}

	for _, name := range []string{"", "   "} {
		if _, err := NewContact(name); err == nil {
			t.Errorf("NewContact(%q) succeeded, want validation error", name)
		}
	}
}

func TestContactAddPhone(t *testing.T) {
	c, _ := NewContact("Ann")

	if err := c.AddPhone("+0501234567"); err != nil {
		t.Fatalf("AddPhone failed: %v", err)
	}
	if got := c.Phones(); len(got) != 1 || got[0] != "0501234567" {
		t.Errorf("Phones = %v, want [0501234567]", got)
	}

	// Canonical duplicate, even though the raw strings differ.
	err := c.AddPhone("0501234567")
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate AddPhone error = %v, want ErrDuplicate", err)
	}

	var verr *validate.ValidationError
	err = c.AddPhone("12a34")
	if !errors.As(err, &verr) {
		t.Errorf("bad AddPhone error = %v, want ValidationError", err)
	}
	if len(c.Phones()) != 1 {
		t.Errorf("failed AddPhone mutated the contact: %v", c.Phones())
	}
}

func TestContactEditPhone(t *testing.T) {
	c, _ := NewContact("Ann")
	if err := c.AddPhone("0501234567"); err != nil {
		t.Fatal(err)
	}
	if err := c.AddPhone("0661234567"); err != nil {
		t.Fatal(err)
	}

	if err := c.EditPhone("0501234567", "+0739876543"); err != nil {
		t.Fatalf("EditPhone failed: %v", err)
	}
	if got := c.Phones(); got[0] != "0739876543" || got[1] != "0661234567" {
		t.Errorf("Phones after edit = %v", got)
	}

	// All-or-nothing: invalid replacement leaves the list untouched.
	if err := c.EditPhone("0739876543", "nope"); err == nil {
		t.Fatal("EditPhone with invalid new number succeeded")
	}
	if got := c.Phones(); got[0] != "0739876543" {
		t.Errorf("failed EditPhone mutated the contact: %v", got)
	}

	// Replacing with another existing number collides.
	if err := c.EditPhone("0739876543", "0661234567"); !errors.Is(err, ErrDuplicate) {
		t.Errorf("colliding EditPhone error = %v, want ErrDuplicate", err)
	}

	if err := c.EditPhone("0000000000", "0111111111"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing EditPhone error = %v, want ErrNotFound", err)
	}
}

func TestContactEmails(t *testing.T) {
	c, _ := NewContact("Ann")
	if err := c.AddEmail("ann@example.com"); err != nil {
		t.Fatalf("AddEmail failed: %v", err)
	}
	if err := c.AddEmail("ann@example.com"); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate AddEmail error = %v, want ErrDuplicate", err)
	}
	if err := c.AddEmail("not-an-email"); err == nil {
		t.Error("invalid AddEmail succeeded")
	}
	if err := c.RemoveEmail("ann@example.com"); err != nil {
		t.Fatalf("RemoveEmail failed: %v", err)
	}
	if err := c.RemoveEmail("ann@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing RemoveEmail error = %v, want ErrNotFound", err)
	}
}

func TestContactSetBirthday(t *testing.T) {
	c, _ := NewContact("Ann")

	if err := c.SetBirthday("1990.05.20"); err != nil {
		t.Fatalf("SetBirthday failed: %v", err)
	}
	if _, ok := c.Birthday(); !ok {
		t.Error("Birthday not set after SetBirthday")
	}

	if err := c.SetBirthday("9999.01.01"); err == nil {
		t.Error("future SetBirthday succeeded")
	}
	if day, _ := c.Birthday(); day.Year() != 1990 {
		t.Errorf("failed SetBirthday mutated the contact: %v", day)
	}

	if err := c.SetBirthday("20-05-1990"); err == nil {
		t.Error("malformed SetBirthday succeeded")
	}
}

func TestContactClearBirthday(t *testing.T) {
	c, _ := NewContact("Ann")
	if err := c.SetBirthday("1990.05.20"); err != nil {
		t.Fatal(err)
	}

	c.ClearBirthday()
	if _, ok := c.Birthday(); ok {
		t.Error("Birthday still set after ClearBirthday")
	}
}

func TestContactCloneIsIndependent(t *testing.T) {
	c, _ := NewContact("Ann")
	if err := c.AddPhone("0501234567"); err != nil {
		t.Fatal(err)
	}

	clone := c.Clone()
	if err := clone.AddPhone("0661234567"); err != nil {
		t.Fatal(err)
	}
	if len(c.Phones()) != 1 {
		t.Errorf("mutating a clone changed the original: %v", c.Phones())
	}
}
