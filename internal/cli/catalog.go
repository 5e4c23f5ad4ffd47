package cli

import (
	"fmt"

	"github.com/bree-jeune/ems-protocols-radio/internal/catalog"
	"github.com/bree-jeune/ems-protocols-radio/internal/model"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var catalogFile string

// catalogCmd represents the catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show the title catalog used for segmentation",
	Long: `Catalog prints the effective title catalog as YAML: every known section
title grouped by category, in match-declaration order. The output is valid
input for --catalog on the ingest command, so it doubles as a starting
point for customizing the catalog.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat := catalog.Default()
		if catalogFile != "" {
			loaded, err := catalog.Load(catalogFile)
			if err != nil {
				return err
			}
			cat = loaded
		}

		out := struct {
			Titles []model.TitleEntry `yaml:"titles"`
		}{Titles: cat.Entries()}

		data, err := yaml.Marshal(out)
		if err != nil {
			return fmt.Errorf("marshal catalog: %w", err)
		}
		fmt.Print(string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().StringVar(&catalogFile, "catalog", "", "YAML catalog file to show instead of the built-in")
}
