// file: cmd/download.go
// version: 1.1.0
// guid: 3c4d5e6f-7a8b-9c0d-1e2f-3a4b5c6d7e8f

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:   "download <catalogue>",
	Short: "Download the database file of a locally stored catalogue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := lookup(args[0])
		if err != nil {
			return err
		}
		if entry.Download == nil {
			return fmt.Errorf("catalogue %q has no downloadable database", entry.Name)
		}
		path, err := entry.Download(env())
		if err != nil {
			return err
		}
		fmt.Printf("Database for %s saved to %s\n", entry.Catalog.ShortName, path)
		return nil
	},
}
