package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"sparqlgateway/pkg/cli"
	"sparqlgateway/pkg/discovery"
	"sparqlgateway/pkg/executor"
	"sparqlgateway/pkg/format"
	"sparqlgateway/pkg/intent"
	"sparqlgateway/pkg/ontology"
	"sparqlgateway/pkg/orchestrator"
	"sparqlgateway/pkg/query"
	"sparqlgateway/pkg/ratelimit"
	"sparqlgateway/pkg/validate"
	"sparqlgateway/pkg/vocab"
)

var askFlags struct {
	endpoint string
	timeout  time.Duration
	dryRun   bool
	indent   bool
}

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a natural-language question against a SPARQL endpoint",
	Long: `Parse a natural-language question into a structured intent, build and
validate a SPARQL query from it, and execute the query against the
configured endpoint.

The question is first discovered against live capabilities (SPARQL
version, supported features and functions) so the query the builder
emits never references something the endpoint cannot run. Execution
retries idempotent failures (network, timeout, 5xx) with backoff before
the command reports failure.

Examples:
  # Ask against the sole configured endpoint
  sparqlate ask "how many people were born in Vienna?"

  # Ask a specific configured endpoint
  sparqlate ask --endpoint dbpedia "is there a city named Linz?"

  # Build and validate the query without executing it
  sparqlate ask --dry-run "list people born in Vienna"`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringVar(&askFlags.endpoint, "endpoint", "", "endpoint name from config (required if more than one is configured)")
	askCmd.Flags().DurationVar(&askFlags.timeout, "timeout", 30*time.Second, "per-attempt execution timeout")
	askCmd.Flags().BoolVar(&askFlags.dryRun, "dry-run", false, "build and validate the query without executing it")
	askCmd.Flags().BoolVar(&askFlags.indent, "indent", true, "pretty-print the JSON result")
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return cli.NewCommandError("ask", err)
	}

	ep, err := resolveEndpoint(cfg, askFlags.endpoint)
	if err != nil {
		return cli.NewCommandError("ask", err)
	}
	logger = logger.With("endpoint", ep.Name)
	mcol := newMetrics(cfg)

	tr := newTransport(cfg)
	defer tr.CloseIdleConnections()
	limiter := ratelimit.NewRegistry()

	ctx := cli.SetupSignalHandler()

	detector := discovery.New(tr, limiter)
	opts := discovery.DefaultOptions()
	if cfg.Discovery.MaxSamples > 0 {
		opts.MaxSamples = cfg.Discovery.MaxSamples
	}
	logger.Debug("discovering endpoint capabilities")
	discoverStart := time.Now()
	knowledge, err := detector.Detect(ctx, ep, opts)
	if err != nil {
		mcol.RecordEndpointError(ep.Name, "discovery")
		return cli.NewCommandError("ask", fmt.Errorf("discovering endpoint: %w", err))
	}
	mcol.UpdateEndpointHealth(ep.Name, true)
	mcol.RecordEndpointProbeLatency(ep.Name, time.Since(discoverStart).Seconds())

	ont := ontology.Empty()

	parser := intent.New()
	it, err := parser.Parse(ctx, question, knowledge, ont)
	if err != nil {
		return cli.NewCommandError("ask", fmt.Errorf("parsing question: %w", err))
	}

	idx := vocab.NewIndex()
	idx.GenerateForNamespaces(knowledge.Namespaces, vocab.KeepExisting)

	plan := query.FromIntent(it, knowledge, ont, idx)
	serialized := query.Serialize(plan)
	mcol.RecordQueryGenerated(string(it.Action))

	validator := validate.New()
	result := validator.Validate(plan, serialized, knowledge)
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	if !result.Valid {
		mcol.RecordQueryValidationFailure(strings.Join(result.Errors, "; "))
		return cli.NewCommandError("ask", fmt.Errorf("query failed validation: %s", strings.Join(result.Errors, "; ")))
	}

	if askFlags.dryRun {
		fmt.Println(serialized)
		return nil
	}

	conn, err := connectionFor(cfg, askFlags.endpoint)
	if err != nil {
		return cli.NewCommandError("ask", err)
	}

	exec := executor.New(tr, limiter)
	orch := orchestrator.New(exec)

	logger.Info("executing query", "sparql", serialized)
	execStart := time.Now()
	execResult, err := orch.ExecuteWithFallback(ctx, ep, serialized, nil, askFlags.timeout, conn)
	if err != nil {
		mcol.RecordOrchestratorAttempt(ep.Name, "failure", time.Since(execStart))
		return cli.NewCommandError("ask", err)
	}
	mcol.RecordOrchestratorAttempt(ep.Name, "success", time.Since(execStart))
	mcol.RecordQueryExecution(ep.Name, execResult.TotalWallTime, execResult.TotalRows)

	formatter := &format.JSONFormatter{Indent: askFlags.indent}
	out, err := formatter.Emit(execResult, format.FormatJSON)
	if err != nil {
		return cli.NewCommandError("ask", err)
	}
	fmt.Println(string(out))
	return nil
}
