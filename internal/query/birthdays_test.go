package query

import (
	"testing"
	"time"

	"memobook/internal/book"
)

func addContact(t *testing.T, b *book.Book, name, birthday string) {
	t.Helper()
	c, err := book.NewContact(name)
	if err != nil {
		t.Fatal(err)
	}
	if birthday != "" {
		if err := c.SetBirthday(birthday); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := b.AddContact(c); err != nil {
		t.Fatal(err)
	}
}

func TestUpcomingBirthdays_Window(t *testing.T) {
	b := book.New()
	addContact(t, b, "Ann", "1990.05.20")
	addContact(t, b, "Mark", "1985.07.01")
	addContact(t, b, "NoBirthday", "")

	today := time.Date(2024, time.May, 1, 15, 30, 0, 0, time.UTC)

	hits := UpcomingBirthdays(b, today, 30)
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1: %+v", len(hits), hits)
	}
	if hits[0].Contact.Name() != "Ann" || hits[0].DaysUntil != 19 {
		t.Errorf("hit = (%s, %d), want (Ann, 19)", hits[0].Contact.Name(), hits[0].DaysUntil)
	}
}

func TestUpcomingBirthdays_TodayIsIncluded(t *testing.T) {
	b := book.New()
	addContact(t, b, "Ann", "1990.05.20")

	today := time.Date(2024, time.May, 20, 8, 0, 0, 0, time.UTC)

	hits := UpcomingBirthdays(b, today, 0)
	if len(hits) != 1 || hits[0].DaysUntil != 0 {
		t.Fatalf("hits = %+v, want Ann at day 0", hits)
	}
}

func TestUpcomingBirthdays_WrapsYearEnd(t *testing.T) {
	b := book.New()
	addContact(t, b, "Ann", "1990.01.03")

	today := time.Date(2024, time.December, 30, 0, 0, 0, 0, time.UTC)

	hits := UpcomingBirthdays(b, today, 7)
	if len(hits) != 1 || hits[0].DaysUntil != 4 {
		t.Fatalf("hits = %+v, want Ann at day 4", hits)
	}
}

func TestUpcomingBirthdays_Ordering(t *testing.T) {
	b := book.New()
	addContact(t, b, "Zoe", "1990.05.05")
	addContact(t, b, "Ann", "1990.05.05")
	addContact(t, b, "Mark", "1990.05.03")

	today := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

	hits := UpcomingBirthdays(b, today, 10)
	var got []string
	for _, h := range hits {
		got = append(got, h.Contact.Name())
	}
	want := []string{"Mark", "Ann", "Zoe"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestUpcomingBirthdays_LeapDay(t *testing.T) {
	b := book.New()
	addContact(t, b, "Leap", "1992.02.29")

	// 2025 is not a leap year: the birthday is observed on Mar 1.
	today := time.Date(2025, time.February, 27, 0, 0, 0, 0, time.UTC)
	hits := UpcomingBirthdays(b, today, 5)
	if len(hits) != 1 || hits[0].DaysUntil != 2 {
		t.Fatalf("non-leap year hits = %+v, want day 2 (Mar 1)", hits)
	}

	// 2028 is a leap year: the real Feb 29 is used.
	today = time.Date(2028, time.February, 27, 0, 0, 0, 0, time.UTC)
	hits = UpcomingBirthdays(b, today, 5)
	if len(hits) != 1 || hits[0].DaysUntil != 2 {
		t.Fatalf("leap year hits = %+v, want day 2 (Feb 29)", hits)
	}
}

func TestBirthdaysOn(t *testing.T) {
	b := book.New()
	addContact(t, b, "Zoe", "1988.05.20")
	addContact(t, b, "Ann", "1990.05.20")
	addContact(t, b, "Mark", "1985.07.01")
	addContact(t, b, "NoBirthday", "")

	// The year of the queried date is irrelevant; only month and day match.
	date := time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC)
	hits := BirthdaysOn(b, date)
	var got []string
	for _, c := range hits {
		got = append(got, c.Name())
	}
	want := []string{"Ann", "Zoe"}
	if len(got) != len(want) {
		t.Fatalf("hits = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}

	if hits := BirthdaysOn(b, time.Date(2024, time.December, 25, 0, 0, 0, 0, time.UTC)); len(hits) != 0 {
		t.Fatalf("hits = %+v, want none on an unused date", hits)
	}
}

func TestUpcomingBirthdays_OutsideWindow(t *testing.T) {
	b := book.New()
	addContact(t, b, "Ann", "1990.05.20")

	today := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	if hits := UpcomingBirthdays(b, today, 18); len(hits) != 0 {
		t.Fatalf("hits = %+v, want none inside an 18-day window", hits)
	}
}
