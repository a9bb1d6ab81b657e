package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rianlucascs/dowtrend/internal/external/b3"
)

// indicesCmd represents the indices command
var indicesCmd = &cobra.Command{
	Use:   "indices",
	Short: "List the B3 index catalog",
	Long: `List the B3 segment indices that can be used as index:<CODE> samples.

Example:
  go run ./cmd/dowtrend indices`,
	Args: cobra.NoArgs,
	RunE: listIndices,
}

func init() {
	rootCmd.AddCommand(indicesCmd)
}

func listIndices(cmd *cobra.Command, args []string) error {
	catalog, err := b3.LoadCatalog()
	if err != nil {
		return fmt.Errorf("load index catalog: %w", err)
	}

	widths := []int{6, 48, 12}
	PrintTableHeader([]string{"Code", "Name", "Sample"}, widths)
	for _, info := range catalog {
		PrintTableRow([]string{info.Code, info.Name, "index:" + info.Code}, widths)
	}
	fmt.Printf("\n%d indices\n", len(catalog))

	return nil
}
