package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadsearch-cli/internal/engine"
	"github.com/sells-group/leadsearch-cli/internal/engine/govil"
	liengine "github.com/sells-group/leadsearch-cli/internal/engine/linkedin"
	"github.com/sells-group/leadsearch-cli/internal/engine/websearch"
	"github.com/sells-group/leadsearch-cli/internal/model"
	"github.com/sells-group/leadsearch-cli/internal/output"
	"github.com/sells-group/leadsearch-cli/internal/store"
	"github.com/sells-group/leadsearch-cli/pkg/datagov"
	"github.com/sells-group/leadsearch-cli/pkg/ddg"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run the lead search pipeline",
	Long:  "Runs the selected engines (default: web search + org registry), deduplicates across them, and writes person and org lead files to the output directory.",
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().String("engine", "", "run only a specific engine (google, linkedin, gov_il)")
	searchCmd.Flags().String("format", "csv", "output format: csv or xlsx")
	rootCmd.AddCommand(searchCmd)
}

// newRegistry wires the fixed engine mapping.
func newRegistry() *engine.Registry {
	reg := engine.NewRegistry()
	reg.Register("google", websearch.New(ddg.New()))
	reg.Register("linkedin", liengine.New())
	reg.Register("gov_il", govil.New(datagov.New()))
	return reg
}

func runSearch(cmd *cobra.Command, _ []string) error {
	engineToken, _ := cmd.Flags().GetString("engine")
	format, _ := cmd.Flags().GetString("format")
	if format != "csv" && format != "xlsx" {
		return eris.Errorf("unknown format %q (valid: csv, xlsx)", format)
	}

	engines, err := newRegistry().Select(engineToken)
	if err != nil {
		return err
	}

	// Interrupt cancels at the next unit boundary; partial results are
	// still written below.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Lead Search Toolkit: %s\n", cfg.Product.Name)
	fmt.Println(strings.Repeat("=", 60))

	started := time.Now()
	outcome := engine.Run(ctx, cfg, engines)
	finished := time.Now()

	printSummaries(outcome.Summaries)

	outputDir := cfg.Settings.OutputDir

	if len(outcome.People) > 0 {
		peoplePath := filepath.Join(outputDir, "leads_combined."+format)
		if err := writeLeads(peoplePath, format, "People", model.PersonFields, outcome.People); err != nil {
			return err
		}
		fmt.Printf("\nSaved %d person leads to %s\n", len(outcome.People), peoplePath)
		printBreakdown("Person leads by segment", countBy(outcome.People, func(p model.PersonLead) string { return p.Segment }))
	}

	if len(outcome.Orgs) > 0 {
		orgsPath := filepath.Join(outputDir, "leads_orgs."+format)
		if err := writeLeads(orgsPath, format, "Organizations", model.OrgFields, outcome.Orgs); err != nil {
			return err
		}
		fmt.Printf("\nSaved %d org leads to %s\n", len(outcome.Orgs), orgsPath)
		printBreakdown("Org leads by category", countBy(outcome.Orgs, func(o model.OrgLead) string { return o.Category }))
	}

	if len(outcome.People) == 0 && len(outcome.Orgs) == 0 {
		fmt.Println("\nNo leads found across any engine.")
	} else {
		total := len(outcome.People) + len(outcome.Orgs)
		fmt.Printf("\nTotal: %d leads (%d people, %d orgs)\n", total, len(outcome.People), len(outcome.Orgs))
	}

	recordRun(ctx, engines, outcome, outputDir, started, finished)

	return ctx.Err()
}

func writeLeads[T output.Rower](path, format, sheet string, fields []string, leads []T) error {
	if format == "xlsx" {
		return output.WriteXLSX(path, sheet, fields, leads)
	}
	return output.WriteCSV(path, fields, leads)
}

// recordRun persists run history best-effort; failures are logged, never
// returned.
func recordRun(ctx context.Context, engines []engine.Engine, outcome *engine.Outcome, outputDir string, started, finished time.Time) {
	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		zap.L().Warn("run history unavailable", zap.Error(err))
		return
	}
	defer st.Close() //nolint:errcheck

	if err := st.Migrate(ctx); err != nil {
		zap.L().Warn("run history migrate failed", zap.Error(err))
		return
	}

	names := make([]string, len(engines))
	for i, e := range engines {
		names[i] = e.Name()
	}

	if _, err := st.SaveRun(ctx, store.RunRecord{
		Engines:    strings.Join(names, ","),
		People:     len(outcome.People),
		Orgs:       len(outcome.Orgs),
		OutputDir:  outputDir,
		StartedAt:  started,
		FinishedAt: finished,
	}); err != nil {
		zap.L().Warn("run history save failed", zap.Error(err))
	}
}

func printSummaries(summaries []engine.Summary) {
	fmt.Println()
	for _, s := range summaries {
		status := "ok"
		if s.Skipped {
			status = "skipped: " + s.Reason
		}
		fmt.Printf("  [%s] units=%d accepted=%d rejected=%d (%s) %s\n",
			s.Engine, s.Units, s.Accepted, s.Rejected, s.Duration.Round(time.Millisecond), status)
	}
}

// countBy tallies leads per key, returned in descending count order.
func countBy[T any](items []T, key func(T) string) []countEntry {
	counts := make(map[string]int)
	for _, item := range items {
		counts[key(item)]++
	}
	entries := make([]countEntry, 0, len(counts))
	for k, n := range counts {
		entries = append(entries, countEntry{k, n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].n != entries[j].n {
			return entries[i].n > entries[j].n
		}
		return entries[i].key < entries[j].key
	})
	return entries
}

type countEntry struct {
	key string
	n   int
}

func printBreakdown(title string, entries []countEntry) {
	fmt.Printf("%s:\n", title)
	for _, e := range entries {
		label := e.key
		if label == "" {
			label = "(uncategorized)"
		}
		fmt.Printf("  %s: %d\n", label, e.n)
	}
}
