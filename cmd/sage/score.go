package main

import (
	"fmt"

	"github.com/sandevgo/sagebot/internal/core"
	"github.com/sandevgo/sagebot/internal/service/scoring"
	"github.com/spf13/cobra"
)

var scoreSource string

// route and score are standalone diagnostics around the scoring package;
// they run entirely offline, without the LLM or storage.
var routeCmd = &cobra.Command{
	Use:   "route [query]",
	Short: "Show which source family a query would prefer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		router := scoring.NewRouter()
		selected := router.Route(args[0])

		decisions := router.History(1)
		if len(decisions) == 0 {
			fmt.Println(selected)
			return nil
		}

		decision := decisions[0]
		fmt.Printf("%s (confidence %.2f): %s\n", decision.Selected, decision.Confidence, decision.Reason)
		for _, route := range decision.AllRoutes {
			fmt.Printf("  %-10s %.2f  %s\n", route.Family, route.Confidence, route.Reason)
		}
		return nil
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score [query] [response]...",
	Short: "Evaluate candidate responses against a query",
	Long:  `Scores each response on relevance, completeness, coherence and source trust, and picks the best composite.`,
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := args[0]

		candidates := make([]core.Candidate, 0, len(args)-1)
		for _, response := range args[1:] {
			candidates = append(candidates, core.Candidate{
				Content:        response,
				Source:         core.Source(scoreSource),
				Confidence:     1.0,
				ResponseLength: len(response),
			})
		}

		result := scoring.NewEvaluator().Evaluate(query, candidates)
		for _, scored := range result.AllScores {
			fmt.Printf("[%d] composite %.3f (relevance %.2f, completeness %.2f, coherence %.2f, source %.2f)\n",
				scored.Index,
				scored.Scores.Composite,
				scored.Scores.Relevance,
				scored.Scores.Completeness,
				scored.Scores.Coherence,
				scored.Scores.SourceScore,
			)
		}
		fmt.Printf("selected: %s\n", result.Reason)
		return nil
	},
}

func init() {
	scoreCmd.Flags().StringVar(&scoreSource, "source", string(core.SourceDirectLLM), "source label to score the responses under")
	rootCmd.AddCommand(routeCmd)
	rootCmd.AddCommand(scoreCmd)
}
