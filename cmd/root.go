// file: cmd/root.go
// version: 1.2.0
// guid: 9e0f1a2b-3c4d-5e6f-7a8b-9c0d1e2f3a4b

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/edpop/explorer/internal/config"
	"github.com/edpop/explorer/internal/httpx"
	"github.com/edpop/explorer/internal/readers"
)

var cfgFile string
var dataDir string
var pageSize int
var timeoutSeconds int
var rdfFormat string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "edpop-explorer",
	Short: "Search early modern book catalogues from the command line",
	Long: `EDPOP Explorer searches heterogeneous bibliographic databases through
one uniform interface: SRU servers, SPARQL endpoints, REST APIs and
locally stored databases.

Records are normalized to a common field set and can be exported as RDF.`,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

// env builds the runtime environment catalogue sessions run in.
func env() readers.Env {
	return readers.Env{
		Doer:      httpx.NewClient(config.AppConfig.HTTPTimeout),
		DataDir:   config.AppConfig.DataDir,
		Timeout:   config.AppConfig.HTTPTimeout,
		PageSize:  config.AppConfig.PageSize,
		Endpoints: config.AppConfig.Endpoints,
	}
}

// lookup resolves a catalogue argument or fails with the list of valid
// names.
func lookup(name string) (readers.Entry, error) {
	entry, ok := readers.Get(name)
	if !ok {
		return readers.Entry{}, fmt.Errorf("unknown catalogue %q; run 'edpop-explorer catalogues' for the list", name)
	}
	return entry, nil
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.edpop-explorer.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory holding local database files")
	rootCmd.PersistentFlags().IntVar(&pageSize, "page-size", 10, "records per fetch")
	rootCmd.PersistentFlags().IntVar(&timeoutSeconds, "timeout", 30, "HTTP timeout in seconds")
	rootCmd.PersistentFlags().StringVar(&rdfFormat, "format", "turtle", "RDF export format: turtle or ntriples")

	viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	viper.BindPFlag("page_size", rootCmd.PersistentFlags().Lookup("page-size"))
	viper.BindPFlag("http_timeout_seconds", rootCmd.PersistentFlags().Lookup("timeout"))
	viper.BindPFlag("rdf_format", rootCmd.PersistentFlags().Lookup("format"))

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(cataloguesCmd)
	rootCmd.AddCommand(downloadCmd)

	searchCmd.Flags().BoolVar(&searchAll, "all", false, "fetch every result instead of the first page")
	searchCmd.Flags().IntVar(&searchPages, "pages", 1, "number of pages to fetch")
	showCmd.Flags().BoolVar(&showEnrich, "enrich", false, "fetch the full detail view where the catalogue supports it")
	exportCmd.Flags().StringVar(&exportOutput, "output", "", "write to file instead of stdout")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".edpop-explorer")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}

	config.InitConfig()
}
