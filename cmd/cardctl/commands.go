package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Ankit6149/credit-card-recommendation-system/internal/advisor"
	"github.com/Ankit6149/credit-card-recommendation-system/internal/catalog"
	"github.com/Ankit6149/credit-card-recommendation-system/internal/domain"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cardctl",
		Short:         "Inspect CardXpert profile extraction and card scoring",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newExtractCmd(),
		newMergeCmd(),
		newScoreCmd(),
		newRankCmd(),
		newFormatCmd(),
	)
	return root
}

func newExtractCmd() *cobra.Command {
	var base string
	cmd := &cobra.Command{
		Use:   "extract [text...]",
		Short: "Extract a profile patch from free text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := advisor.ExtractProfilePatch(strings.Join(args, " "))
			merged := advisor.MergeProfiles(advisor.CoerceProfileJSON([]byte(base)), patch)
			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"patch":        patch,
				"profile":      merged,
				"complete":     advisor.IsProfileComplete(merged),
				"nextQuestion": advisor.MissingProfileQuestion(merged),
			})
		},
	}
	cmd.Flags().StringVar(&base, "profile", "{}", "existing profile as JSON")
	return cmd
}

func newMergeCmd() *cobra.Command {
	var base, patch string
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge a profile patch into a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			merged := advisor.MergeProfiles(
				advisor.CoerceProfileJSON([]byte(base)),
				advisor.CoercePatchJSON([]byte(patch)),
			)
			return writeJSON(cmd.OutOrStdout(), merged)
		},
	}
	cmd.Flags().StringVar(&base, "profile", "{}", "base profile as JSON")
	cmd.Flags().StringVar(&patch, "patch", "{}", "profile patch as JSON")
	return cmd
}

func newScoreCmd() *cobra.Command {
	var catalogPath, profile string
	cmd := &cobra.Command{
		Use:   "score <slug>",
		Short: "Score one catalog card against a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := loadCatalog(cmd.Context(), catalogPath)
			if err != nil {
				return err
			}
			for _, card := range cards {
				if card.Slug != args[0] {
					continue
				}
				score := advisor.ScoreCard(card, advisor.CoerceProfileJSON([]byte(profile)))
				return writeJSON(cmd.OutOrStdout(), domain.ScoredCard{Card: card, Score: score.Value, Reasons: score.Reasons})
			}
			return fmt.Errorf("card %q not found in %s", args[0], catalogPath)
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", "data/cards.json", "JSON or YAML card catalog")
	cmd.Flags().StringVar(&profile, "profile", "{}", "profile as JSON")
	return cmd
}

func newRankCmd() *cobra.Command {
	var (
		catalogPath, profile string
		limit                int
	)
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank catalog cards for a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cards, err := loadCatalog(cmd.Context(), catalogPath)
			if err != nil {
				return err
			}
			ranked := advisor.RankCards(cards, advisor.CoerceProfileJSON([]byte(profile)), limit)
			return writeJSON(cmd.OutOrStdout(), ranked)
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", "data/cards.json", "JSON or YAML card catalog")
	cmd.Flags().StringVar(&profile, "profile", "{}", "profile as JSON")
	cmd.Flags().IntVar(&limit, "limit", advisor.DefaultRecommendationLimit, "number of cards to return")
	return cmd
}

func newFormatCmd() *cobra.Command {
	var last string
	cmd := &cobra.Command{
		Use:   "format",
		Short: "Format a raw model reply read from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read reply: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), advisor.FormatReply(string(raw), last))
			return err
		},
	}
	cmd.Flags().StringVar(&last, "last", "", "latest user utterance")
	return cmd
}

func loadCatalog(ctx context.Context, path string) ([]domain.Card, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return catalog.NewFileSource(path).Load(ctx)
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
