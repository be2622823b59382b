// Package model defines the core data types shared across the gateway:
// endpoint identity and connection configuration, health snapshots, the
// discovery knowledge record, parsed intent, query and federated plans,
// execution results, and RDF terms.
//
// Types in this package are plain structs that marshal and unmarshal
// without a custom codec. DiscoveryKnowledge carries JSON tags;
// ExecutionResult has none and is encoded under its Go field names.
// Nothing in this package performs I/O.
package model
