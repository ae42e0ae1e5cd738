// Command bookseed bulk-creates sample books against a running bookstore
// API so the UI has something to show during development.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/deniswachira/bookstore-ui/internal/bookapi"
	"github.com/deniswachira/bookstore-ui/internal/config"
)

// samples are the built-in drafts seeded by default. -count draws random
// recombinations from the same pool instead.
var samples = []bookapi.Draft{
	{Title: "The Go Programming Language", Author: "Alan A. A. Donovan", Year: 2015},
	{Title: "Introducing Go", Author: "Caleb Doxsey", Year: 2016},
	{Title: "Concurrency in Go", Author: "Katherine Cox-Buday", Year: 2017},
	{Title: "Go in Practice", Author: "Matt Butcher", Year: 2016},
	{Title: "1984", Author: "George Orwell", Year: 1949},
	{Title: "Animal Farm", Author: "George Orwell", Year: 1945},
	{Title: "The Fellowship of the Ring", Author: "J.R.R. Tolkien", Year: 1954},
	{Title: "The Two Towers", Author: "J.R.R. Tolkien", Year: 1954},
	{Title: "The Return of the King", Author: "J.R.R. Tolkien", Year: 1955},
	{Title: "Romeo and Juliet", Author: "William Shakespeare", Year: 1597},
	{Title: "The Three Musketeers", Author: "Alexandre Dumas", Year: 1844},
	{Title: "The Art of War", Author: "Sun Tzu", Year: 1910},
}

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	count := flag.Int("count", 0, "generate this many random books instead of the built-in set")
	workers := flag.Int("workers", 4, "concurrent create requests")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bookseed: %v\n", err)
		return 1
	}

	client, err := bookapi.NewClient(cfg.APIBind)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bookseed: %v\n", err)
		return 1
	}

	drafts := samples
	if *count > 0 {
		drafts = randomDrafts(*count)
	}

	fmt.Printf("Seeding %d books into %s...\n", len(drafts), client.BaseURL())

	// The mutex keeps each result line whole and guards the counters; the
	// client's rate limiter paces the requests themselves.
	var (
		mu      sync.Mutex
		created int
		failed  int
	)

	gg, ctx := errgroup.WithContext(ctx)
	gg.SetLimit(*workers)
	for _, draft := range drafts {
		gg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			book, err := client.Create(ctx, draft)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				fmt.Printf("Creating: %s by %s... ERROR - %v\n", draft.Title, draft.Author, err)
				return nil
			}
			created++
			fmt.Printf("Creating: %s by %s... SUCCESS (ID: %d)\n", draft.Title, draft.Author, book.ID)
			return nil
		})
	}
	if err := gg.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "bookseed: %v\n", err)
		return 1
	}

	fmt.Printf("\nSeed complete!\n")
	fmt.Printf("Successfully created: %d books\n", created)
	fmt.Printf("Errors: %d\n", failed)
	if failed > 0 {
		return 1
	}
	return 0
}

// randomDrafts builds n drafts by recombining titles, authors, and years
// from the sample pool. Numbered titles keep the generated rows distinct
// on screen.
func randomDrafts(n int) []bookapi.Draft {
	drafts := make([]bookapi.Draft, 0, n)
	for i := 0; i < n; i++ {
		drafts = append(drafts, bookapi.Draft{
			Title:  fmt.Sprintf("%s, Vol. %d", samples[rand.IntN(len(samples))].Title, i+1),
			Author: samples[rand.IntN(len(samples))].Author,
			Year:   1900 + rand.IntN(126),
		})
	}
	return drafts
}
