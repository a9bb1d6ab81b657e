package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rianlucascs/dowtrend/internal/contracts"
	"github.com/rianlucascs/dowtrend/internal/ranking"
	"github.com/rianlucascs/dowtrend/internal/store"
)

// resultsCmd represents the results command
var resultsCmd = &cobra.Command{
	Use:   "results <sample>",
	Short: "Show saved returns of a sample",
	Long: `Load the saved result file of a sample and print it.

Modes:
  (default)   one row per ticker, one column per horizon
  --json      the stored JSON document
  --rank H    top tickers for horizon H (semanal|quinzenal|mensal|trimestral|anual)
  --summary   cross-sectional statistics per horizon

Example:
  go run ./cmd/dowtrend results index:IDIV
  go run ./cmd/dowtrend results index:IDIV --rank mensal --direction loss --limit 5
  go run ./cmd/dowtrend results listed_companies --summary`,
	Args: cobra.ExactArgs(1),
	RunE: showResults,
}

var (
	// Results flags
	resultsJSON      bool
	resultsRank      string
	resultsDirection string
	resultsLimit     int
	resultsSummary   bool
)

func init() {
	rootCmd.AddCommand(resultsCmd)

	resultsCmd.Flags().BoolVar(&resultsJSON, "json", false, "print the stored JSON document")
	resultsCmd.Flags().StringVar(&resultsRank, "rank", "", "rank tickers by this horizon")
	resultsCmd.Flags().StringVar(&resultsDirection, "direction", "gain", "ranking direction (gain|loss)")
	resultsCmd.Flags().IntVar(&resultsLimit, "limit", 0, "ranking size (default TOP_N)")
	resultsCmd.Flags().BoolVar(&resultsSummary, "summary", false, "print per horizon statistics")
}

func showResults(cmd *cobra.Command, args []string) error {
	spec, err := contracts.ParseSampleSpecifier(args[0])
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context(), appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	results := a.persister.Load(cmd.Context(), spec)
	if results == nil {
		return fmt.Errorf("%w: no results for %s", contracts.ErrPersistenceFailure, spec)
	}

	switch {
	case resultsJSON:
		data, err := json.MarshalIndent(results, "", "    ")
		if err != nil {
			return fmt.Errorf("encode results: %w", err)
		}
		fmt.Println(string(data))
		return nil
	case resultsRank != "":
		limit := resultsLimit
		if limit == 0 {
			limit = a.cfg.TopN
		}
		return printRanking(store.NewTable(results), resultsRank, resultsDirection, limit)
	case resultsSummary:
		printSummary(store.NewTable(results))
		return nil
	}

	printResultTable(store.NewTable(results))
	return nil
}

func printResultTable(table *store.Table) {
	columns := []string{"Ticker"}
	widths := []int{10}
	for _, h := range table.Columns() {
		columns = append(columns, h.Key())
		widths = append(widths, 11)
	}

	PrintTableHeader(columns, widths)
	for i, ticker := range table.Tickers {
		row := []string{ticker}
		for _, v := range table.Rows[i] {
			row = append(row, FormatReturn(v))
		}
		PrintTableRow(row, widths)
	}
	fmt.Printf("\n%d tickers\n", table.Len())
}

func printRanking(table *store.Table, horizon, direction string, limit int) error {
	h, err := contracts.ParseHorizon(horizon)
	if err != nil {
		return err
	}
	dir, err := ranking.ParseDirection(direction)
	if err != nil {
		return err
	}
	if limit < 1 {
		return fmt.Errorf("limit must be positive, got %d", limit)
	}

	fmt.Printf("Top %d %s (%s)\n\n", limit, h.Key(), dir)
	widths := []int{5, 10, 11}
	PrintTableHeader([]string{"Rank", "Ticker", "Return"}, widths)
	for _, e := range ranking.Top(table, h, dir, limit) {
		PrintTableRow([]string{fmt.Sprintf("%d", e.Rank), e.Ticker, FormatReturn(e.Value)}, widths)
	}
	return nil
}

func printSummary(table *store.Table) {
	widths := []int{11, 6, 6, 9, 9, 9, 9, 9, 5, 5}
	PrintTableHeader([]string{"Horizon", "Count", "Valid", "Mean", "Median", "StdDev", "Min", "Max", "Up", "Down"}, widths)
	for _, s := range ranking.Summarize(table) {
		PrintTableRow([]string{
			s.Horizon.Key(),
			fmt.Sprintf("%d", s.Count),
			fmt.Sprintf("%d", s.Valid),
			FormatReturn(s.Mean),
			FormatReturn(s.Median),
			FormatNumber(s.StdDev),
			FormatReturn(s.Min),
			FormatReturn(s.Max),
			fmt.Sprintf("%d", s.Gainers),
			fmt.Sprintf("%d", s.Losers),
		}, widths)
	}
}
