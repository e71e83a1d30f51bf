// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/materials-miner/internal/mine"
	"github.com/pdiddy/materials-miner/internal/segment"
	"github.com/pdiddy/materials-miner/pkg/types"
)

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Mine property records from a papers directory",
	Long: `Mine reads every document in papers/text/ (with optional provenance in
papers/metadata/<id>.yaml), extracts property records for each profile and
writes records/extracted/<id>-records.yaml. Documents whose records are newer
than their inputs are skipped unless --rewrite is set.`,
	RunE: runMine,
}

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List the property profiles in effect",
	Long: `Profiles prints the built-in property profiles merged with the profiles
declared in the config file, as YAML.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		profiles, err := loadProfiles(nil)
		if err != nil {
			return err
		}
		for _, p := range profiles {
			if err := mine.ValidateProfile(p); err != nil {
				return err
			}
		}
		return writeProfiles(os.Stdout, profiles)
	},
}

func init() {
	mineCmd.Flags().StringSlice("profile", nil, "profile to mine (repeatable; default all)")
	mineCmd.Flags().String("papers-dir", "papers", "base directory for papers (contains text/, metadata/)")
	mineCmd.Flags().String("records-dir", "records", "base directory for records (contains extracted/)")
	mineCmd.Flags().String("material", "", "material to attribute values to when a document names none")
	mineCmd.Flags().Int("workers", 0, "documents mined concurrently (default 1)")
	mineCmd.Flags().Bool("rewrite", false, "re-mine documents whose records are up to date")

	rootCmd.AddCommand(mineCmd)
	rootCmd.AddCommand(profilesCmd)
}

func runMine(cmd *cobra.Command, args []string) error {
	cfg, err := minerConfig(cmd)
	if err != nil {
		return err
	}

	splitter, err := segment.New()
	if err != nil {
		return err
	}
	m, err := mine.New(cfg, splitter, logger)
	if err != nil {
		return err
	}
	logger.Info("mining", zap.String("run_id", m.RunID()), zap.Int("profiles", len(m.Profiles())))

	summary, err := m.MineAll(cmd.Context(), os.Stdout)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "\nmined: %d, skipped: %d, failed: %d, records: %d\n",
		summary.Mined, summary.Skipped, summary.Failed, summary.Records)
	if summary.HasFailures() {
		return fmt.Errorf("%d document(s) failed mining", summary.Failed)
	}
	return nil
}

// minerConfig builds the miner configuration from the config file and
// flags. Flags that were set on the command line win.
func minerConfig(cmd *cobra.Command) (types.MinerConfig, error) {
	names, _ := cmd.Flags().GetStringSlice("profile")
	profiles, err := loadProfiles(names)
	if err != nil {
		return types.MinerConfig{}, err
	}

	var sourceLimits map[string]int
	if err := viper.UnmarshalKey("source_max_sentence_length", &sourceLimits); err != nil {
		return types.MinerConfig{}, fmt.Errorf("decoding source_max_sentence_length: %w", err)
	}

	cfg := types.MinerConfig{
		ChemicalConfig: types.ChemicalConfig{
			ExcludedUnits: viper.GetStringSlice("excluded_units"),
		},
		PapersDir:               stringFlagOr(cmd, "papers-dir", "papers_dir"),
		RecordsDir:              stringFlagOr(cmd, "records-dir", "records_dir"),
		Profiles:                profiles,
		Material:                stringFlagOr(cmd, "material", "material"),
		MaxSentenceLength:       viper.GetInt("max_sentence_length"),
		SourceMaxSentenceLength: sourceLimits,
		Workers:                 viper.GetInt("workers"),
		Rewrite:                 viper.GetBool("rewrite"),
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers, _ = cmd.Flags().GetInt("workers")
	}
	if cmd.Flags().Changed("rewrite") {
		cfg.Rewrite, _ = cmd.Flags().GetBool("rewrite")
	}
	return cfg, nil
}

// loadProfiles merges the config file profiles over the built-ins and
// keeps the named ones.
func loadProfiles(names []string) ([]types.PropertyProfile, error) {
	var overrides []types.PropertyProfile
	if err := viper.UnmarshalKey("profiles", &overrides); err != nil {
		return nil, fmt.Errorf("decoding profiles: %w", err)
	}
	return mine.SelectProfiles(mine.MergeProfiles(mine.DefaultProfiles(), overrides), names)
}

// stringFlagOr returns the flag value when it was set, else the config
// key when present, else the flag default.
func stringFlagOr(cmd *cobra.Command, flag, key string) string {
	v, _ := cmd.Flags().GetString(flag)
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetString(key)
	}
	return v
}

func writeProfiles(w io.Writer, profiles []types.PropertyProfile) error {
	data, err := yaml.Marshal(profiles)
	if err != nil {
		return fmt.Errorf("marshaling profiles: %w", err)
	}
	_, err = w.Write(data)
	return err
}
