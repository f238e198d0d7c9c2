package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/uvpick/internal/output"
	"github.com/blackwell-systems/uvpick/internal/search"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Rank packages matching a query",
	Long: `Ranks the top PyPI packages against the query and prints the result
as a table. The ordering is the same one the interactive picker uses:
download popularity weighted against name similarity, with an exact name
match always first.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 20, "maximum number of results")
	RootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	spinner := output.NewSpinner("Fetching package index")
	spinner.Start()
	records, err := loadRecords(cmd.Context(), cfg)
	spinner.Stop()
	if err != nil {
		return err
	}

	opts := cfg.SearchOptions()
	if searchLimit > 0 {
		opts.Limit = searchLimit
	}

	query := strings.Join(args, " ")
	cands := search.Rank(records, query, opts)

	fmt.Print(output.RenderSearchTable(cands))
	return nil
}
