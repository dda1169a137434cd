package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/robalobadob/quotetiles/internal/daily"
	"github.com/robalobadob/quotetiles/internal/puzzle"
	"github.com/robalobadob/quotetiles/internal/quotes"
)

// newPuzzleCmd prints the puzzle for a date, answer included. It reads the
// quote file (or the embedded catalog) directly, so it matches a server whose
// database was seeded from the same list.
func newPuzzleCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "puzzle",
		Short: "Print the derived puzzle for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			day := time.Now().In(cfg.Location)
			if date != "" {
				if day, err = daily.ParseDate(date, cfg.Location); err != nil {
					return fmt.Errorf("--date: %w", err)
				}
			}
			list, err := quotes.Load(cfg.QuotesFile)
			if err != nil {
				return fmt.Errorf("load quotes: %w", err)
			}
			engine := puzzle.NewEngine(quotes.NewMemory(list), puzzle.NewHasher(cfg.TileSecret))
			p, err := engine.Build(cmd.Context(), daily.Seed(day))
			if err != nil {
				return err
			}
			printPuzzle(cmd.OutOrStdout(), daily.DateKey(day), p)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Puzzle day as YYYY-MM-DD (defaults to today)")
	return cmd
}

func printPuzzle(w io.Writer, day string, p *puzzle.Puzzle) {
	fmt.Fprintf(w, "date   %s (seed %d)\n", day, p.Seed)
	fmt.Fprintf(w, "quote A #%d  %s\n", p.QuoteA.ID, puzzle.Attribute(p.TextA, p.QuoteA.Author))
	fmt.Fprintf(w, "quote B #%d  %s\n\n", p.QuoteB.ID, puzzle.Attribute(p.TextB, p.QuoteB.Author))

	fmt.Fprintln(w, "answer:")
	for _, t := range p.Tiles {
		fmt.Fprintf(w, "  %2d  flip=%-5t  %s  [%s | %s]\n", t.Position, t.CorrectFlip, t.ID, t.Top, t.Bottom)
	}
	fmt.Fprintln(w, "\nshown as:")
	for _, t := range p.Shuffled() {
		fmt.Fprintf(w, "  %2d  %s\n", t.Position, t.ID)
	}
}
