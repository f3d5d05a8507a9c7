// file: cmd/show.go
// version: 1.2.0
// guid: 4d5e6f7a-8b9c-0d1e-2f3a-4b5c6d7e8f90

package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/knakk/rdf"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/edpop/explorer/internal/config"
	"github.com/edpop/explorer/internal/edpoprec"
	"github.com/edpop/explorer/internal/reader"
)

var showEnrich bool
var exportOutput string

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <catalogue> <query> <number>",
	Short: "Show one search result in full",
	Long: `Search a catalogue and display result <number> (1-based) with all its
normalized fields and the raw source data.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := lookup(args[0])
		if err != nil {
			return err
		}
		number, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid result number %q", args[2])
		}
		rec, err := fetchOne(entry.Name, args[1], number)
		if err != nil {
			return err
		}
		if showEnrich && entry.Enrich != nil {
			if err := entry.Enrich(env(), rec); err != nil {
				return err
			}
		}
		printRecord(os.Stdout, rec)
		return nil
	},
}

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <catalogue> <identifier>",
	Short: "Fetch one record directly by its identifier",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := lookup(args[0])
		if err != nil {
			return err
		}
		rec, err := entry.Lookup(env(), args[1])
		if err != nil {
			return err
		}
		printRecord(os.Stdout, rec)
		return nil
	},
}

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <catalogue> <query> <number>",
	Short: "Export one search result as RDF",
	Long: `Search a catalogue and write result <number> (1-based) as an RDF graph
in the edpoprec vocabulary.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := lookup(args[0])
		if err != nil {
			return err
		}
		number, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid result number %q", args[2])
		}
		rec, err := fetchOne(entry.Name, args[1], number)
		if err != nil {
			return err
		}
		format := rdf.Turtle
		if config.AppConfig.RDFFormat == "ntriples" {
			format = rdf.NTriples
		}
		out := os.Stdout
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}
		return rec.WriteGraph(out, format)
	},
}

// fetchOne runs a query and pages forward until result number (1-based)
// is available.
func fetchOne(catalogue, query string, number int) (*edpoprec.Record, error) {
	entry, err := lookup(catalogue)
	if err != nil {
		return nil, err
	}
	session, err := entry.New(env())
	if err != nil {
		return nil, err
	}
	if err := session.SetQuery(query); err != nil {
		return nil, err
	}
	for session.NumberFetched() < number && session.Status() != reader.Complete {
		if _, err := session.Fetch(0); err != nil {
			return nil, err
		}
	}
	return session.GetByID(number)
}

func printRecord(w io.Writer, rec *edpoprec.Record) {
	fmt.Fprintln(w, rec.Title())
	if rec.Identifier != "" {
		fmt.Fprintf(w, "identifier: %s\n", rec.Identifier)
	}
	if rec.Link != "" {
		fmt.Fprintf(w, "link: %s\n", rec.Link)
	}
	fields := rec.NormalizedFields()
	if len(fields) > 0 {
		// Sort the names so the listing is stable between runs.
		names := make([]edpoprec.FieldName, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
		fmt.Fprintln(w, "\nFields:")
		for _, name := range names {
			for _, f := range fields[name] {
				fmt.Fprintf(w, "  %s: %s\n", name, f.String())
			}
		}
	}
	if raw := rec.RawMap(); raw != nil {
		fmt.Fprintln(w, "\nSource data:")
		data, err := yaml.Marshal(raw)
		if err != nil {
			fmt.Fprintf(w, "  (not displayable: %v)\n", err)
			return
		}
		w.Write(data)
	}
}
