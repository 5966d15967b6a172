package main

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"bookhub/internal/book"
	"bookhub/internal/config"
	"bookhub/internal/platform/logger"
	"bookhub/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	genres = []string{"Fiction", "Science Fiction", "Fantasy", "History", "Science", "Technology", "Romance", "Mystery", "Biography", "Philosophy"}
	words  = []string{
		"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
		"Love", "War", "Peace", "Science", "Nature", "Technology", "History", "Future",
		"Past", "Present", "Reality", "Imagination", "Wisdom", "Life", "Death",
		"Light", "Darkness", "World", "Universe", "Time", "Space", "Mind", "Soul",
	}
	surnames = []string{"Le Guin", "Herbert", "Tolkien", "Austen", "Morrison", "Borges", "Calvino", "Achebe", "Woolf", "Murakami"}
)

var bookColumns = []string{"title", "author", "genre", "rating", "description"}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configFile string
		count      int
		seed       uint64
		truncate   bool
	)

	cmd := &cobra.Command{
		Use:          "bookhub-seed",
		Short:        "Bulk-load synthetic books into a Postgres catalog",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("count must be positive, got %d", count)
			}
			config.LoadEnvFiles()
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			if cfg.Database.Driver != store.DriverPostgres {
				return fmt.Errorf("seeding requires the postgres driver, got %q", cfg.Database.Driver)
			}

			log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			return seedBooks(cmd.Context(), cfg.Database.DSN, generateBooks(count, seed), truncate, log)
		},
	}
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "config file path")
	cmd.Flags().IntVarP(&count, "count", "n", 10000, "number of books to generate")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().BoolVar(&truncate, "truncate", false, "empty the books table first")
	return cmd
}

// generateBooks returns count synthetic books. The same seed yields the same books.
func generateBooks(count int, seed uint64) []book.Book {
	rng := rand.New(rand.NewPCG(seed, seed))
	pick := func(list []string) string { return list[rng.IntN(len(list))] }

	books := make([]book.Book, 0, count)
	for i := 0; i < count; i++ {
		b := book.Book{
			Title:  fmt.Sprintf("%s of %s %d", pick(words), pick(words), i+1),
			Author: fmt.Sprintf("%c. %s", 'A'+rune(rng.IntN(26)), pick(surnames)),
			Genre:  pick(genres),
			Rating: math.Round(rng.Float64()*50) / 10,
		}
		// roughly a third of the catalog has no description
		if rng.IntN(3) > 0 {
			desc := fmt.Sprintf("A book about %s and %s.", pick(words), pick(words))
			b.Description = &desc
		}
		books = append(books, b)
	}
	return books
}

func seedBooks(ctx context.Context, dsn string, books []book.Book, truncate bool, log *zap.Logger) error {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if truncate {
		if _, err := pool.Exec(ctx, "TRUNCATE books"); err != nil {
			return fmt.Errorf("truncate books: %w", err)
		}
		log.Info("books table truncated")
	}

	log.Info("inserting books", zap.Int("count", len(books)))
	n, err := pool.CopyFrom(ctx, pgx.Identifier{"books"}, bookColumns, pgx.CopyFromSlice(len(books), func(i int) ([]any, error) {
		b := books[i]
		return []any{b.Title, b.Author, b.Genre, b.Rating, b.Description}, nil
	}))
	if err != nil {
		return fmt.Errorf("copy books: %w", err)
	}

	var total int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM books").Scan(&total); err != nil {
		return fmt.Errorf("count books: %w", err)
	}
	log.Info("seed complete", zap.Int64("inserted", n), zap.Int("total", total))
	return nil
}
