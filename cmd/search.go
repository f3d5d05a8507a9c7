// file: cmd/search.go
// version: 1.1.0
// guid: 0f1a2b3c-4d5e-6f7a-8b9c-0d1e2f3a4b5c

package cmd

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/edpop/explorer/internal/reader"
)

var searchAll bool
var searchPages int

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <catalogue> <query>",
	Short: "Search a catalogue",
	Long: `Search one catalogue and list the matching records. By default only
the first page of results is fetched; use --pages or --all for more.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := lookup(args[0])
		if err != nil {
			return err
		}
		session, err := entry.New(env())
		if err != nil {
			return err
		}
		if err := session.SetQuery(args[1]); err != nil {
			return err
		}
		if searchAll {
			if err := fetchAllWithProgress(session); err != nil {
				return err
			}
		} else {
			for i := 0; i < searchPages && session.Status() != reader.Complete; i++ {
				if _, err := session.Fetch(0); err != nil {
					return err
				}
			}
		}

		total, _ := session.NumberOfResults()
		fmt.Printf("%d results in %s, %d fetched\n\n",
			total, entry.Catalog.ShortName, session.NumberFetched())
		for i, rec := range session.Records() {
			fmt.Printf("%4d  %s\n", i+1, rec.Title())
			if rec.Link != "" {
				fmt.Printf("      %s\n", rec.Link)
			}
		}
		return nil
	},
}

// fetchAllWithProgress drains the session, showing progress once the
// first fetch has revealed the total.
func fetchAllWithProgress(session *reader.Session) error {
	if _, err := session.Fetch(0); err != nil {
		return err
	}
	total, _ := session.NumberOfResults()
	bar := progressbar.Default(int64(total))
	bar.Set(session.NumberFetched())
	for session.Status() != reader.Complete {
		if _, err := session.Fetch(0); err != nil {
			return err
		}
		bar.Set(session.NumberFetched())
	}
	return bar.Finish()
}
