// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/materials-miner/internal/quantity"
	"github.com/pdiddy/materials-miner/pkg/types"
)

var quantitiesCmd = &cobra.Command{
	Use:   "quantities [text...]",
	Short: "Find numeric quantities with units in text",
	Long: `Quantities prints every span of text holding numbers followed by a unit
of the chosen domain (temperature or length). With --normalize each span is
converted to the target unit (K, nm or Å); spans whose unit cannot be
converted are reported on stderr and skipped.`,
	RunE: runQuantities,
}

func init() {
	quantitiesCmd.Flags().String("file", "", "read text from a document file")
	quantitiesCmd.Flags().String("domain", string(types.DomainTemperature), "unit domain: temperature or length")
	quantitiesCmd.Flags().StringSlice("units", nil, "unit symbols to match (default: the domain's units)")
	quantitiesCmd.Flags().String("normalize", "", "convert values to this unit: K, nm or Å")
	quantitiesCmd.Flags().Int("round", -1, "decimal places kept after conversion (-1 = no rounding)")
	quantitiesCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(quantitiesCmd)
}

func runQuantities(cmd *cobra.Command, args []string) error {
	text, err := inputText(cmd, args)
	if err != nil {
		return err
	}
	domain, _ := cmd.Flags().GetString("domain")
	units, _ := cmd.Flags().GetStringSlice("units")
	target, _ := cmd.Flags().GetString("normalize")
	places, _ := cmd.Flags().GetInt("round")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	scanner := quantity.NewScanner(types.UnitDomain(domain), units...)
	if scanner == nil {
		return fmt.Errorf("unknown domain %q: use temperature or length, or pass --units", domain)
	}
	mentions := scanner.Find(text)

	if target == "" {
		if jsonOutput {
			if mentions == nil {
				mentions = []types.QuantityMention{}
			}
			return encodeJSON(os.Stdout, mentions)
		}
		for _, m := range mentions {
			fmt.Printf("%q  %v %s\n", m.Text, quantity.Numbers(m.Text), scanner.Unit(m.Text))
		}
		return nil
	}

	var opts []quantity.Option
	if places >= 0 {
		opts = append(opts, quantity.RoundTo(places))
	}
	normalized, errs := quantity.NormalizeAll(mentions, target, opts...)
	for _, err := range errs {
		logger.Warn(err.Error())
	}
	return writeNormalized(os.Stdout, normalized, jsonOutput)
}

func writeNormalized(w io.Writer, qs []types.NormalizedQuantity, jsonOutput bool) error {
	if jsonOutput {
		if qs == nil {
			qs = []types.NormalizedQuantity{}
		}
		return encodeJSON(w, qs)
	}
	for _, q := range qs {
		fmt.Fprintf(w, "%g %s  (%g %s)\n", q.Value, q.Unit, q.SourceValue, q.SourceUnit)
	}
	return nil
}
