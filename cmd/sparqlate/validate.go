package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sparqlgateway/pkg/cli"
	"sparqlgateway/pkg/health"
	"sparqlgateway/pkg/model"
	"sparqlgateway/pkg/ratelimit"
)

var validateFlags struct {
	endpoint string
	ping     bool
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the gateway configuration",
	Long: `Check the gateway configuration file for structural errors (missing
endpoint URLs, unknown auth types, out-of-range timeouts and retry
settings) and, optionally, reachability.

Examples:
  # Validate config.yaml's structure only
  sparqlate validate

  # Also ping every configured endpoint
  sparqlate validate --ping

  # Ping a single endpoint
  sparqlate validate --ping --endpoint dbpedia`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateFlags.endpoint, "endpoint", "", "restrict --ping to this endpoint name")
	validateCmd.Flags().BoolVar(&validateFlags.ping, "ping", false, "also probe endpoint reachability")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	fmt.Printf("config is structurally valid (%d endpoint(s) configured)\n", len(cfg.Endpoints))

	if !validateFlags.ping {
		return nil
	}

	var endpoints []model.EndpointDescriptor
	if validateFlags.endpoint != "" {
		ep, err := resolveEndpoint(cfg, validateFlags.endpoint)
		if err != nil {
			return cli.NewCommandError("validate", err)
		}
		endpoints = []model.EndpointDescriptor{ep}
	} else {
		endpoints = allEndpoints(cfg)
	}
	if len(endpoints) == 0 {
		return nil
	}

	mcol := newMetrics(cfg)

	tr := newTransport(cfg)
	defer tr.CloseIdleConnections()
	limiter := ratelimit.NewRegistry()
	pinger := health.New(tr, limiter)

	ctx := cli.SetupSignalHandler()
	unhealthy := 0
	for _, ep := range endpoints {
		snap := pinger.Ping(ctx, ep, true)
		label := ep.Name
		if label == "" {
			label = ep.URL
		}
		fmt.Printf("%-20s %-10s %v\n", label, snap.Status, snap.ResponseTime)
		healthy := snap.Status == model.StatusHealthy
		mcol.UpdateEndpointHealth(label, healthy)
		mcol.RecordEndpointProbeLatency(label, snap.ResponseTime.Seconds())
		if !healthy {
			unhealthy++
			mcol.RecordEndpointError(label, string(snap.Status))
		}
	}

	if unhealthy > 0 {
		return cli.NewCommandError("validate", fmt.Errorf("%d of %d endpoint(s) unhealthy", unhealthy, len(endpoints)))
	}
	return nil
}
