// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/materials-miner/internal/formula"
	"github.com/pdiddy/materials-miner/internal/mine"
	"github.com/pdiddy/materials-miner/internal/records"
	"github.com/pdiddy/materials-miner/pkg/types"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Manage the record store (store, retrieve, export, summary)",
	Long: `Records manages a local SQLite store built from mined records. Use
subcommands to index records, query them, export them or summarize a
property per chemical.`,
}

// --- store subcommand ---

var recordsStoreCmd = &cobra.Command{
	Use:   "store",
	Short: "Ingest mined records into the record store",
	Long: `Store reads the result files in records/extracted/, loads them into a
SQLite database and writes an export file. Unchanged documents are skipped
on subsequent runs.`,
	RunE: runRecordsStore,
}

func runRecordsStore(cmd *cobra.Command, args []string) error {
	store, err := records.NewStore(recordStoreConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(cmd.Context(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d document(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- retrieve subcommand ---

var recordsRetrieveCmd = &cobra.Command{
	Use:   "retrieve [text]",
	Short: "Query the record store",
	Long: `Retrieve lists the records matching a chemical, a property, a document
or a sentence substring. Results carry the source sentence and document.`,
	RunE: runRecordsRetrieve,
}

func runRecordsRetrieve(cmd *cobra.Command, args []string) error {
	opts := queryOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide text, --chemical, --property, or --document")
	}

	store, err := records.NewStore(recordStoreConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.Retrieve(cmd.Context(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatRetrieveOutput(os.Stdout, results, jsonOutput)
}

func formatRetrieveOutput(w io.Writer, results []types.ExtractionRecord, jsonOutput bool) error {
	if jsonOutput {
		if results == nil {
			results = []types.ExtractionRecord{}
		}
		return encodeJSON(w, results)
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintf(w, "%-4s  %-14s  %-20s  %-12s  %-20s  %s\n",
		"Rank", "Compound", "Property", "Value", "Document", "Sentence")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, r := range results {
		compound := r.ChemicalName()
		if compound == "" {
			compound = "-"
		}
		value := fmt.Sprintf("%g %s", r.Quantity.Value, r.Quantity.Unit)
		fmt.Fprintf(w, "%-4d  %-14s  %-20s  %-12s  %-20s  %s\n",
			i+1, truncate(compound, 14), truncate(r.Property, 20), value,
			truncate(r.Provenance.DocumentID, 20), truncate(r.Sentence, 40))
	}

	fmt.Fprintf(w, "\n%d results\n", len(results))
	return nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// --- export subcommand ---

var recordsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the record store to YAML, JSON or CSV",
	Long: `Export writes the full record store (or a filtered subset) to
records/index/export.yaml, export.json or export.csv. Supports the same
filter flags as retrieve for partial exports.`,
	RunE: runRecordsExport,
}

func runRecordsExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := records.NewStore(recordStoreConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)

	var path string
	switch format {
	case "yaml", "":
		path, err = store.ExportYAML(cmd.Context(), opts)
	case "json":
		path, err = store.ExportJSON(cmd.Context(), opts)
	case "csv":
		path, err = store.ExportCSV(cmd.Context(), opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml, json or csv", format)
	}
	if err != nil {
		return err
	}
	fmt.Println("Exported to", path)
	return nil
}

// --- summary subcommand ---

var recordsSummaryCmd = &cobra.Command{
	Use:   "summary [property]",
	Short: "Summarize a property per chemical",
	Long: `Summary prints, for each chemical with values of the property, the
mean value and its standard error, sorted by mean. --latex renders the
formulas with LaTeX subscripts.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRecordsSummary,
}

func runRecordsSummary(cmd *cobra.Command, args []string) error {
	property := mine.CurieTemperature
	if len(args) == 1 {
		property = args[0]
	}

	store, err := records.NewStore(recordStoreConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	summaries, err := store.Summarize(cmd.Context(), property)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		if summaries == nil {
			summaries = []records.ChemicalSummary{}
		}
		return encodeJSON(os.Stdout, summaries)
	}
	latex, _ := cmd.Flags().GetBool("latex")
	writeSummary(os.Stdout, summaries, latex)
	return nil
}

func writeSummary(w io.Writer, summaries []records.ChemicalSummary, latex bool) {
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}
	for _, s := range summaries {
		name := string(s.Chemical)
		if latex {
			name = formula.LaTeX(s.Chemical)
		}
		fmt.Fprintf(w, "%-30s  %10.2f ± %-8.2f %-3s  n=%d\n", name, s.Mean, s.StdErr, s.Unit, s.Count)
	}
}

// --- shared helpers ---

func recordStoreConfig(cmd *cobra.Command) types.RecordStoreConfig {
	maxResults, _ := cmd.Flags().GetInt("max-results")
	return types.RecordStoreConfig{
		RecordsDir: stringFlagOr(cmd, "records-dir", "records_dir"),
		MaxResults: maxResults,
	}
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) records.QueryOptions {
	text, _ := cmd.Flags().GetString("text")
	if text == "" && len(args) > 0 {
		text = strings.Join(args, " ")
	}
	chemical, _ := cmd.Flags().GetString("chemical")
	property, _ := cmd.Flags().GetString("property")
	documentID, _ := cmd.Flags().GetString("document")
	limit, _ := cmd.Flags().GetInt("limit")

	return records.QueryOptions{
		Chemical:   chemical,
		Property:   property,
		DocumentID: documentID,
		Text:       text,
		MaxResults: limit,
	}
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("text", "", "sentence substring filter")
	cmd.Flags().String("chemical", "", "filter by chemical")
	cmd.Flags().String("property", "", "filter by property profile")
	cmd.Flags().String("document", "", "filter by document ID")
	cmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	recordsCmd.PersistentFlags().String("records-dir", "records", "base directory for records (contains extracted/, index/)")
	recordsCmd.PersistentFlags().Int("max-results", 20, "maximum number of query results")

	addFilterFlags(recordsRetrieveCmd)
	recordsRetrieveCmd.Flags().Bool("json", false, "output results as JSON")

	addFilterFlags(recordsExportCmd)
	recordsExportCmd.Flags().String("format", "yaml", "export format: yaml, json or csv")

	recordsSummaryCmd.Flags().Bool("latex", false, "render formulas with LaTeX subscripts")
	recordsSummaryCmd.Flags().Bool("json", false, "output as JSON")

	recordsCmd.AddCommand(recordsStoreCmd)
	recordsCmd.AddCommand(recordsRetrieveCmd)
	recordsCmd.AddCommand(recordsExportCmd)
	recordsCmd.AddCommand(recordsSummaryCmd)

	rootCmd.AddCommand(recordsCmd)
}
