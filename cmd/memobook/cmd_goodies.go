package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"memobook/cmd/memobook/ui"
	"memobook/internal/config"
	"memobook/internal/goodies"
)

var (
	weatherCity   string
	translateLang string
)

// goodiesTimeout bounds every external fetch started from the CLI.
const goodiesTimeout = 30 * time.Second

var weatherCmd = &cobra.Command{
	Use:   "weather [city]",
	Short: "Show the current weather",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		city := weatherCity
		if len(args) > 0 {
			city = args[0]
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), goodiesTimeout)
		defer cancel()

		client := goodies.NewWeatherClient(cfg.Goodies.Weather)
		report, err := client.Current(ctx, city)
		if err != nil {
			return err
		}
		fmt.Println(ui.DefaultStyles().Body.Render(report.String()))
		return nil
	},
}

var jokeCmd = &cobra.Command{
	Use:   "joke",
	Short: "Fetch a random joke",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), goodiesTimeout)
		defer cancel()

		client := goodies.NewJokeClient(cfg.Goodies.Jokes)
		joke, err := client.Random(ctx)
		if err != nil {
			return err
		}
		fmt.Println(ui.DefaultStyles().Body.Render(joke.String()))
		return nil
	},
}

var translateCmd = &cobra.Command{
	Use:   "translate <text>",
	Short: "Translate text via Gemini",
	Long: `Translate text to the target language through the Gemini API.
Requires GEMINI_API_KEY or goodies.translate.api_key in the config.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), goodiesTimeout)
		defer cancel()

		translator, err := goodies.NewTranslator(ctx, cfg.Goodies.Translate)
		if err != nil {
			return err
		}
		translated, err := translator.Translate(ctx, joinArgs(args), translateLang)
		if err != nil {
			return err
		}
		fmt.Println(ui.DefaultStyles().Body.Render(translated))
		return nil
	},
}

var goodiesCmd = &cobra.Command{
	Use:   "goodies",
	Short: "Show the weather-and-joke digest",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), goodiesTimeout)
		defer cancel()

		digest, err := fetchDigest(ctx, cfg, weatherCity)
		if err != nil {
			return err
		}

		styles := ui.DefaultStyles()
		fmt.Println(styles.Title.Render("Today's goodies"))
		fmt.Println(styles.Body.Render(digest.Weather.String()))
		fmt.Println(styles.Body.Render(digest.Joke.String()))
		return nil
	},
}

func fetchDigest(ctx context.Context, cfg *config.Config, city string) (*goodies.Digest, error) {
	wc := goodies.NewWeatherClient(cfg.Goodies.Weather)
	jc := goodies.NewJokeClient(cfg.Goodies.Jokes)
	return goodies.FetchDigest(ctx, wc, jc, city)
}

func init() {
	weatherCmd.Flags().StringVar(&weatherCity, "city", "", "city to look up (default from config)")
	goodiesCmd.Flags().StringVar(&weatherCity, "city", "", "city to look up (default from config)")
	translateCmd.Flags().StringVar(&translateLang, "to", "English", "target language")
}
