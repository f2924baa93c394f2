package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ktorvald/evoagent/pkg/config"
	"github.com/ktorvald/evoagent/pkg/evolution"
	"github.com/ktorvald/evoagent/pkg/export"
	"github.com/ktorvald/evoagent/pkg/genome"
	"github.com/ktorvald/evoagent/pkg/history"
	"github.com/ktorvald/evoagent/pkg/logging"
)

var runFlags struct {
	configPath  string
	generations int
	seed        int64
	dbPath      string
	exportPath  string
	simulate    bool
	top         int
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Evolve a population and report per-generation statistics",
	RunE:  runEvolution,
}

func init() {
	runCmd.Flags().StringVarP(&runFlags.configPath, "config", "c", "", "YAML config file (defaults apply when omitted)")
	runCmd.Flags().IntVarP(&runFlags.generations, "generations", "g", 10, "number of generations to step")
	runCmd.Flags().Int64Var(&runFlags.seed, "seed", 0, "random seed (0 picks a nondeterministic seed)")
	runCmd.Flags().StringVar(&runFlags.dbPath, "db", "", "SQLite archive for generation statistics")
	runCmd.Flags().StringVar(&runFlags.exportPath, "export", "", "write final population as a Parquet trait matrix")
	runCmd.Flags().BoolVar(&runFlags.simulate, "simulate-feedback", false, "feed synthetic campaign outcomes to top agents between steps")
	runCmd.Flags().IntVar(&runFlags.top, "top", 3, "number of top agents to print after the run")
	rootCmd.AddCommand(runCmd)
}

func runEvolution(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg := config.Default()
	if runFlags.configPath != "" {
		loaded, err := config.Load(runFlags.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	logging.SetLogger(logging.NewLogger(logging.Config{
		Severity: cfg.Logging.Severity(),
		Outputs:  []logging.Output{logging.NewConsoleOutput(true, logging.WithColor(cfg.Logging.UseColors))},
	}))

	opts := []evolution.Option{}
	if runFlags.seed != 0 {
		opts = append(opts, evolution.WithRand(rand.New(rand.NewSource(runFlags.seed))))
	}

	dbPath := runFlags.dbPath
	if dbPath == "" {
		dbPath = cfg.History.Path
	}
	if dbPath != "" {
		archive, err := history.Open(dbPath)
		if err != nil {
			return err
		}
		defer archive.Close()
		opts = append(opts, evolution.WithRecorder(archive))
	}

	engine, err := evolution.New(cfg.Evolution, opts...)
	if err != nil {
		return err
	}

	engine.InitializePopulation()
	feedbackRNG := rand.New(rand.NewSource(runFlags.seed + 1))

	for i := 0; i < runFlags.generations; i++ {
		stats := engine.StepGeneration(ctx)
		fmt.Fprintf(cmd.OutOrStdout(), "gen %3d  size=%d  best=%.4f  avg=%.4f  diversity=%.4f\n",
			stats.Generation, stats.PopulationSize, stats.BestFitness, stats.AverageFitness, stats.GeneticDiversity)

		if runFlags.simulate {
			simulateFeedback(engine, feedbackRNG)
		}
	}

	printTopAgents(cmd, engine, runFlags.top)

	if runFlags.exportPath != "" {
		if err := writeSnapshot(engine, runFlags.exportPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "trait matrix written to %s\n", runFlags.exportPath)
	}
	return nil
}

// simulateFeedback plays the host role: it reports synthetic campaign
// outcomes for a few current agents so the feedback path shapes the
// balanced objective during demo runs.
func simulateFeedback(engine *evolution.Engine, rng *rand.Rand) {
	for _, agent := range engine.TopAgents(3) {
		engine.RecordPerformance(agent.ID, genome.Outcome{
			CampaignSuccess: rng.Float64() < 0.5+agent.Genes[genome.StrategicThinking]*0.3,
			InnovationLevel: rng.Float64(),
			ActivistsHelped: rng.Intn(40),
		})
	}
}

func printTopAgents(cmd *cobra.Command, engine *evolution.Engine, n int) {
	caser := cases.Title(language.English)
	out := cmd.OutOrStdout()

	for rank, agent := range engine.TopAgents(n) {
		fmt.Fprintf(out, "\n#%d  %s  (gen %d, age %d, fitness %.4f)\n",
			rank+1, agent.ID, agent.Generation, agent.Age, agent.Fitness)
		for _, t := range genome.AllTraits() {
			label := caser.String(strings.ReplaceAll(t.String(), "-", " "))
			fmt.Fprintf(out, "    %-20s %.3f\n", label, agent.Genes[t])
		}
		if agent.Performance.CampaignsAssisted > 0 {
			fmt.Fprintf(out, "    campaigns=%d success_rate=%.3f activists=%d innovation=%.3f\n",
				agent.Performance.CampaignsAssisted,
				agent.Performance.SuccessRate,
				agent.Performance.ActivistsSupported,
				agent.Performance.InnovationScore)
		}
	}
}

func writeSnapshot(engine *evolution.Engine, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	population := engine.TopAgents(engine.Config().PopulationSize)
	return export.WriteParquet(f, population)
}
