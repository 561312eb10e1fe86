package goodies

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Digest bundles the goodies shown together on the console's goodies page.
type Digest struct {
	Weather *WeatherReport
	Joke    *Joke
}

// FetchDigest fetches the weather and a joke concurrently. Either provider
// failing fails the digest; the callers fall back to fetching individually
// when they only want one of the two.
func FetchDigest(ctx context.Context, wc *WeatherClient, jc *JokeClient, city string) (*Digest, error) {
	digest := &Digest{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		report, err := wc.Current(ctx, city)
		if err != nil {
			return err
		}
		digest.Weather = report
		return nil
	})
	g.Go(func() error {
		joke, err := jc.Random(ctx)
		if err != nil {
			return err
		}
		digest.Joke = joke
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return digest, nil
}
