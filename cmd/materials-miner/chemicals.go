// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/materials-miner/internal/document"
	"github.com/pdiddy/materials-miner/internal/formula"
	"github.com/pdiddy/materials-miner/pkg/types"
)

var chemicalsCmd = &cobra.Command{
	Use:   "chemicals [text...]",
	Short: "Recognize chemical formulas in text",
	Long: `Chemicals prints every chemical formula recognized in the given text, in
order of appearance. With --ranked it prints each distinct formula once with
its count, least frequent first. Text comes from the arguments or, with
--file, from a document (.txt, .md, .html, .xml).`,
	RunE: runChemicals,
}

func init() {
	chemicalsCmd.Flags().String("file", "", "read text from a document file")
	chemicalsCmd.Flags().Bool("ranked", false, "print distinct formulas with counts, ascending")
	chemicalsCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(chemicalsCmd)
}

func runChemicals(cmd *cobra.Command, args []string) error {
	text, err := inputText(cmd, args)
	if err != nil {
		return err
	}
	ranked, _ := cmd.Flags().GetBool("ranked")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	r := formula.NewFromConfig(types.ChemicalConfig{
		ExcludedUnits: viper.GetStringSlice("excluded_units"),
	})
	if ranked {
		return writeRanking(os.Stdout, r.Rank(text), jsonOutput)
	}
	return writeChemicals(os.Stdout, r.Find(text), jsonOutput)
}

// inputText returns the --file document text or the joined arguments.
func inputText(cmd *cobra.Command, args []string) (string, error) {
	file, _ := cmd.Flags().GetString("file")
	if file != "" {
		doc, err := document.Load(file, "")
		if err != nil {
			return "", err
		}
		return doc.Text, nil
	}
	if len(args) == 0 {
		return "", fmt.Errorf("provide text as arguments or a --file")
	}
	return document.Normalize(strings.Join(args, " ")), nil
}

func writeChemicals(w io.Writer, chems []types.Chemical, jsonOutput bool) error {
	if jsonOutput {
		if chems == nil {
			chems = []types.Chemical{}
		}
		return encodeJSON(w, chems)
	}
	for _, c := range chems {
		fmt.Fprintln(w, c)
	}
	return nil
}

func writeRanking(w io.Writer, ranking types.Ranking, jsonOutput bool) error {
	if jsonOutput {
		if ranking == nil {
			ranking = types.Ranking{}
		}
		return encodeJSON(w, ranking)
	}
	for _, rc := range ranking {
		fmt.Fprintf(w, "%-20s  %d\n", rc.Chemical, rc.Count)
	}
	return nil
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
