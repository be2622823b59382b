// Command sparqlate turns natural-language questions into executed SPARQL
// queries against RDF knowledge graphs.
//
// It is a one-shot CLI, not a long-lived server: each invocation discovers
// an endpoint's capabilities, parses a question into a structured intent,
// builds and validates a query, executes it against that one endpoint
// (retrying idempotent failures), and prints the result. There is no
// daemon mode.
//
// Usage:
//
//	# Discover an endpoint's capabilities and print them as JSON
//	sparqlate discover --endpoint dbpedia
//
//	# Ask a natural-language question
//	sparqlate ask --endpoint dbpedia "how many people were born in Vienna?"
//
//	# Validate the configuration and probe every configured endpoint
//	sparqlate validate
//
//	# Show version information
//	sparqlate version
//
// For complete documentation, see the project README.
package main

func main() {
	Execute()
}
