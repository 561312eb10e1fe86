package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"memobook/cmd/memobook/ui"
	"memobook/internal/query"
	"memobook/internal/validate"
)

var (
	birthdaysDays int
	birthdaysOn   string
)

// birthdaysCmd lists the contacts whose birthday falls within the window.
var birthdaysCmd = &cobra.Command{
	Use:   "birthdays",
	Short: "Show upcoming birthdays",
	Long: `List contacts whose next birthday falls within the given number of
days, today included. A Feb 29 birthday is observed on Mar 1 in
non-leap years. With --on, list who has a birthday on that exact
month and day instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if birthdaysDays < 0 {
			return fmt.Errorf("--days must not be negative")
		}

		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.close()

		styles := ui.DefaultStyles()
		if birthdaysOn != "" {
			day, err := validate.Date(birthdaysOn)
			if err != nil {
				return err
			}
			hits := query.BirthdaysOn(s.book, day)
			if len(hits) == 0 {
				fmt.Println(styles.Muted.Render(
					fmt.Sprintf("No birthdays on %s.", day.Format(validate.DateLayout))))
				return nil
			}
			for _, c := range hits {
				fmt.Println(styles.Body.Render(c.Name()))
			}
			return nil
		}
		hits := query.UpcomingBirthdays(s.book, time.Now(), birthdaysDays)
		if len(hits) == 0 {
			fmt.Println(styles.Muted.Render(
				fmt.Sprintf("No birthdays in the next %d days.", birthdaysDays)))
			return nil
		}

		t := ui.NewTable("Upcoming birthdays", []string{"Name", "Birthday", "In"})
		for _, hit := range hits {
			day, _ := hit.Contact.Birthday()
			t.AddRow(hit.Contact.Name(), day.Format(validate.DateLayout), formatDaysUntil(hit.DaysUntil))
		}
		fmt.Print(t.View(styles))
		return nil
	},
}

func formatDaysUntil(days int) string {
	switch days {
	case 0:
		return "today"
	case 1:
		return "tomorrow"
	default:
		return fmt.Sprintf("%d days", days)
	}
}

func init() {
	birthdaysCmd.Flags().IntVar(&birthdaysDays, "days", 7, "window size in days")
	birthdaysCmd.Flags().StringVar(&birthdaysOn, "on", "", "exact date to check (YYYY.MM.DD)")
}
