package discovery

import "sparqlgateway/pkg/model"

// featureProbeQuery maps each probed feature to a minimal query that uses
// it; syntactic acceptance (not row count) is the supported/unsupported
// signal (spec.md §4.D edge-case policy).
var featureProbeQuery = map[string]string{
	model.FeatureBIND:          "ASK { BIND(1 AS ?x) }",
	model.FeatureEXISTS:        "ASK { FILTER EXISTS { ?s ?p ?o } }",
	model.FeatureMINUS:         "SELECT * WHERE { ?s ?p ?o MINUS { ?s ?p ?o } } LIMIT 1",
	model.FeatureSERVICE:       "ASK { SERVICE SILENT <http://example.org/sparql> { ?s ?p ?o } }",
	model.FeatureVALUES:        "SELECT * WHERE { VALUES ?x { 1 2 } } LIMIT 1",
	model.FeatureSUBQUERY:      "SELECT * WHERE { { SELECT ?s WHERE { ?s ?p ?o } LIMIT 1 } } LIMIT 1",
	model.FeaturePropertyPaths: "SELECT * WHERE { ?s (<http://example.org/p>)+ ?o } LIMIT 1",
	model.FeatureNamedGraphs:   "SELECT DISTINCT ?g WHERE { GRAPH ?g { ?s ?p ?o } } LIMIT 1",
}

// AllFunctions lists the roughly 30 functions the detector probes, in
// probe order (spec.md §4.D probe 5).
var AllFunctions = []string{
	"STRLEN", "REGEX", "UUID", "STRUUID", "NOW", "MD5", "SHA1", "SHA256",
	"COUNT", "SUM", "AVG", "MIN", "MAX", "GROUP_CONCAT", "SAMPLE",
	"BOUND", "COALESCE", "IF", "CONTAINS", "STRSTARTS", "STRENDS",
	"SUBSTR", "UCASE", "LCASE", "CONCAT", "ABS", "CEIL", "FLOOR",
	"ROUND", "RAND",
}

// functionProbeQuery returns a feature-minimal query invoking fn inside an
// ASK, true if fn is recognized.
func functionProbeQuery(fn string) (string, bool) {
	q, ok := functionProbeQueries[fn]
	return q, ok
}

var functionProbeQueries = map[string]string{
	"STRLEN":       `ASK { BIND(STRLEN("abc") AS ?x) FILTER(?x = 3) }`,
	"REGEX":        `ASK { FILTER REGEX("abc", "^a") }`,
	"UUID":         `ASK { BIND(UUID() AS ?x) }`,
	"STRUUID":      `ASK { BIND(STRUUID() AS ?x) }`,
	"NOW":          `ASK { BIND(NOW() AS ?x) }`,
	"MD5":          `ASK { BIND(MD5("abc") AS ?x) }`,
	"SHA1":         `ASK { BIND(SHA1("abc") AS ?x) }`,
	"SHA256":       `ASK { BIND(SHA256("abc") AS ?x) }`,
	"COUNT":        `SELECT (COUNT(*) AS ?n) WHERE { ?s ?p ?o } LIMIT 1`,
	"SUM":          `SELECT (SUM(?n) AS ?t) WHERE { BIND(1 AS ?n) }`,
	"AVG":          `SELECT (AVG(?n) AS ?t) WHERE { BIND(1 AS ?n) }`,
	"MIN":          `SELECT (MIN(?n) AS ?t) WHERE { BIND(1 AS ?n) }`,
	"MAX":          `SELECT (MAX(?n) AS ?t) WHERE { BIND(1 AS ?n) }`,
	"GROUP_CONCAT": `SELECT (GROUP_CONCAT(?n) AS ?t) WHERE { BIND("a" AS ?n) }`,
	"SAMPLE":       `SELECT (SAMPLE(?n) AS ?t) WHERE { BIND(1 AS ?n) }`,
	"BOUND":        `ASK { BIND(1 AS ?x) FILTER(BOUND(?x)) }`,
	"COALESCE":     `ASK { BIND(COALESCE(?missing, 1) AS ?x) }`,
	"IF":           `ASK { BIND(IF(true, 1, 2) AS ?x) }`,
	"CONTAINS":     `ASK { FILTER CONTAINS("abc", "b") }`,
	"STRSTARTS":    `ASK { FILTER STRSTARTS("abc", "a") }`,
	"STRENDS":      `ASK { FILTER STRENDS("abc", "c") }`,
	"SUBSTR":       `ASK { BIND(SUBSTR("abc", 1, 2) AS ?x) }`,
	"UCASE":        `ASK { BIND(UCASE("abc") AS ?x) }`,
	"LCASE":        `ASK { BIND(LCASE("ABC") AS ?x) }`,
	"CONCAT":       `ASK { BIND(CONCAT("a", "b") AS ?x) }`,
	"ABS":          `ASK { BIND(ABS(-1) AS ?x) }`,
	"CEIL":         `ASK { BIND(CEIL(1.2) AS ?x) }`,
	"FLOOR":        `ASK { BIND(FLOOR(1.8) AS ?x) }`,
	"ROUND":        `ASK { BIND(ROUND(1.5) AS ?x) }`,
	"RAND":         `ASK { BIND(RAND() AS ?x) }`,
}

const (
	versionProbeQuery    = "ASK { BIND(1 AS ?x) }"
	namedGraphsProbeTmpl = "SELECT DISTINCT ?g WHERE { GRAPH ?g { ?s ?p ?o } } LIMIT 100"
	namespaceProbeTmpl   = "SELECT DISTINCT ?s ?p ?o WHERE { ?s ?p ?o } LIMIT %d"
	countProbeQuery      = "SELECT (COUNT(*) AS ?n) WHERE { ?s ?p ?o }"
	distinctSubjectsTmpl = "SELECT (COUNT(DISTINCT ?s) AS ?n) WHERE { ?s ?p ?o }"
	distinctPredsTmpl    = "SELECT (COUNT(DISTINCT ?p) AS ?n) WHERE { ?s ?p ?o }"
)
