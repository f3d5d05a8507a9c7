// file: cmd/catalogues.go
// version: 1.1.0
// guid: 5e6f7a8b-9c0d-1e2f-3a4b-5c6d7e8f9012

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edpop/explorer/internal/readers"
)

// cataloguesCmd represents the catalogues command
var cataloguesCmd = &cobra.Command{
	Use:     "catalogues",
	Aliases: []string{"catalogs", "list"},
	Short:   "List the available catalogues",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, entry := range readers.All() {
			name := entry.Name
			if len(entry.Aliases) > 0 {
				name = fmt.Sprintf("%s (%s)", name, strings.Join(entry.Aliases, ", "))
			}
			fmt.Printf("%-28s %s\n", name, entry.Catalog.ShortName)
			if entry.Description != "" {
				fmt.Printf("%-28s %s\n", "", entry.Description)
			}
		}
		return nil
	},
}
