// Package cmd - scenarios command
package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"landed-cost/core/types"
	"landed-cost/core/ui"
)

// scenariosCmd represents the scenarios command
var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List tariff scenarios and assembly sites in the dataset",
	Long: `List the tariff scenario dates and the assembly sites of the loaded
dataset, with the SKUs each site can build. These are the values accepted
by --date and --site.`,
	Args: cobra.NoArgs,
	RunE: runScenarios,
}

func runScenarios(cmd *cobra.Command, args []string) error {
	e, err := loadEngine()
	if err != nil {
		return err
	}
	store := e.Store()

	w := ui.NewWriter(cmd.OutOrStdout(), noColor)

	w.Header("Tariff scenarios")
	scenarios := w.NewTable("Date", "Label")
	for _, sc := range store.Scenarios() {
		scenarios.AddRow(string(sc.Date), sc.Label)
	}
	scenarios.Render()

	w.Header("Assembly sites")
	buildable := make(map[types.SiteID][]string)
	for _, sku := range store.SKUs() {
		for _, site := range store.BuildableSites(sku) {
			buildable[site] = append(buildable[site], string(sku))
		}
	}
	sites := w.NewTable("Site", "Country", "City", "SKUs")
	for _, id := range store.AssemblySites() {
		site, _ := store.Site(id)
		sites.AddRow(string(id), string(site.Country), site.City, strings.Join(buildable[id], ", "))
	}
	sites.Render()

	w.Println("%d scenarios, %d assembly sites, %d SKUs",
		len(store.Scenarios()), len(store.AssemblySites()), len(store.SKUs()))
	return nil
}
