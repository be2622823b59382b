package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"sparqlgateway/pkg/cli"
	"sparqlgateway/pkg/discovery"
	"sparqlgateway/pkg/model"
	"sparqlgateway/pkg/ratelimit"
)

var discoverFlags struct {
	endpoint string
	fast     bool
	output   string
}

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Probe a SPARQL endpoint's capabilities",
	Long: `Run the capability detector's probe battery against one configured
endpoint and print the resulting DiscoveryKnowledge as JSON.

The probe battery checks the SPARQL version, named graphs, namespace
prefixes, supported language features (BIND, EXISTS, MINUS, SERVICE,
VALUES, subqueries, property paths, named graphs), supported functions,
and basic dataset statistics, under a single overall time budget.

Examples:
  # Discover the sole configured endpoint
  sparqlate discover

  # Discover a specific endpoint by name, skipping the slower probes
  sparqlate discover --endpoint dbpedia --fast

  # Save the result to a file
  sparqlate discover --endpoint dbpedia --output dbpedia.knowledge.json`,
	RunE: runDiscover,
}

func init() {
	rootCmd.AddCommand(discoverCmd)

	discoverCmd.Flags().StringVar(&discoverFlags.endpoint, "endpoint", "", "endpoint name from config (required if more than one is configured)")
	discoverCmd.Flags().BoolVar(&discoverFlags.fast, "fast", false, "skip the slower exhaustive probes")
	discoverCmd.Flags().StringVar(&discoverFlags.output, "output", "", "write the knowledge JSON to this file instead of stdout")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ep, err := resolveEndpoint(cfg, discoverFlags.endpoint)
	if err != nil {
		return cli.NewCommandError("discover", err)
	}

	mcol := newMetrics(cfg)

	tr := newTransport(cfg)
	defer tr.CloseIdleConnections()
	limiter := ratelimit.NewRegistry()
	detector := discovery.New(tr, limiter)

	opts := discovery.DefaultOptions()
	if discoverFlags.fast || cfg.Discovery.FastMode {
		opts.Mode = model.ModeFast
	}
	if cfg.Discovery.MaxSamples > 0 {
		opts.MaxSamples = cfg.Discovery.MaxSamples
	}
	if cfg.Discovery.OverallDeadlineSec > 0 {
		opts.OverallBudget = time.Duration(cfg.Discovery.OverallDeadlineSec) * time.Second
	}
	progress := cli.NewProgressReporter(os.Stderr)
	started := false
	opts.Progress = func(stepIndex, stepCount int, label string) {
		if !started {
			progress.Start(int64(stepCount))
			started = true
		}
		progress.Update(int64(stepIndex + 1))
		_ = label
	}

	ctx := cli.SetupSignalHandler()
	probeStart := time.Now()
	knowledge, err := detector.Detect(ctx, ep, opts)
	progress.Finish()
	if err != nil {
		mcol.UpdateEndpointHealth(ep.Name, false)
		mcol.RecordEndpointError(ep.Name, "discovery")
		return cli.NewCommandError("discover", err)
	}
	mcol.UpdateEndpointHealth(ep.Name, true)
	mcol.RecordEndpointProbeLatency(ep.Name, time.Since(probeStart).Seconds())

	out, err := json.MarshalIndent(knowledge, "", "  ")
	if err != nil {
		return cli.NewCommandError("discover", fmt.Errorf("encoding knowledge: %w", err))
	}

	if discoverFlags.output == "" {
		fmt.Println(string(out))
		return nil
	}
	if err := os.WriteFile(discoverFlags.output, out, 0o644); err != nil {
		return cli.NewCommandError("discover", fmt.Errorf("writing %s: %w", discoverFlags.output, err))
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", discoverFlags.output)
	return nil
}
