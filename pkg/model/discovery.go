package model

// DiscoveryMode selects how thorough the Capability Detector's probe
// battery is. FastMode skips the namespace sample, function probes, and
// statistics queries entirely.
type DiscoveryMode string

const (
	ModeFast DiscoveryMode = "fast"
	ModeFull DiscoveryMode = "full"
)

// SPARQLVersion is the detected query-language version of an endpoint.
type SPARQLVersion string

const (
	SPARQL10     SPARQLVersion = "1.0"
	SPARQL11     SPARQLVersion = "1.1"
	SPARQLUnknown SPARQLVersion = "unknown"
)

// Feature names probed by the Capability Detector (§4.D probe 4).
const (
	FeatureBIND          = "BIND"
	FeatureEXISTS        = "EXISTS"
	FeatureMINUS         = "MINUS"
	FeatureSERVICE       = "SERVICE"
	FeatureVALUES        = "VALUES"
	FeatureSUBQUERY      = "SUBQUERY"
	FeaturePropertyPaths = "PROPERTY_PATHS"
	FeatureNamedGraphs   = "NAMED_GRAPHS"
)

// AllFeatures lists every feature the detector probes, in probe order.
var AllFeatures = []string{
	FeatureBIND, FeatureEXISTS, FeatureMINUS, FeatureSERVICE,
	FeatureVALUES, FeatureSUBQUERY, FeaturePropertyPaths, FeatureNamedGraphs,
}

// Statistics holds the three statistics probes. Each pointer is nil when
// the corresponding probe timed out or failed; metadata records which.
type Statistics struct {
	TripleCount        *int64 `json:"triple_count,omitempty"`
	DistinctSubjects   *int64 `json:"distinct_subjects,omitempty"`
	DistinctPredicates *int64 `json:"distinct_predicates,omitempty"`
}

// DiscoveryMetadata records which probes did not complete, so that
// "a field is either a successfully measured value or explicitly null"
// (§3 invariant) is always auditable.
type DiscoveryMetadata struct {
	TimedOutQueries []string `json:"timed_out_queries"`
	FailedQueries   []string `json:"failed_queries"`
	FastMode        bool     `json:"fast_mode"`
	MaxSamples      int      `json:"max_samples"`
	WallTime        int64    `json:"wall_time_ms"` // milliseconds
}

// DiscoveryKnowledge is the reusable capability record produced by the
// Capability Detector for one endpoint. It serializes to the JSON shape
// described in spec.md §6, with an explicit "_metadata" object.
type DiscoveryKnowledge struct {
	EndpointURL string        `json:"endpoint_url"`
	Mode        DiscoveryMode `json:"discovery_mode"`
	Version     SPARQLVersion `json:"sparql_version"`

	NamedGraphs []string          `json:"named_graphs"`
	Namespaces  []string          `json:"namespaces"`
	Prefixes    map[string]string `json:"prefixes"`

	Classes    map[string]bool `json:"classes,omitempty"`
	Properties map[string]bool `json:"properties,omitempty"`

	Features  map[string]bool `json:"features"`
	Functions map[string]bool `json:"functions"`

	Statistics Statistics `json:"statistics"`

	// Patterns maps a short label (e.g. "human") to a SPARQL triple-pattern
	// template consulted by the Query Builder (§4.H).
	Patterns map[string]string `json:"patterns,omitempty"`

	Metadata DiscoveryMetadata `json:"_metadata"`
}

// NewDiscoveryKnowledge returns an empty, well-formed knowledge record
// ready for the detector to populate.
func NewDiscoveryKnowledge(endpointURL string, mode DiscoveryMode) *DiscoveryKnowledge {
	return &DiscoveryKnowledge{
		EndpointURL: endpointURL,
		Mode:        mode,
		Version:     SPARQLUnknown,
		Prefixes:    map[string]string{},
		Classes:     map[string]bool{},
		Properties:  map[string]bool{},
		Features:    map[string]bool{},
		Functions:   map[string]bool{},
		Patterns:    map[string]string{},
		Metadata: DiscoveryMetadata{
			FastMode: mode == ModeFast,
		},
	}
}

// SupportsFeature reports whether feature is known-supported. Unknown
// features default to false (conservative: the Validator treats absence
// as unsupported).
func (k *DiscoveryKnowledge) SupportsFeature(name string) bool {
	return k.Features[name]
}

// SupportsFunction reports whether function name is known-supported.
func (k *DiscoveryKnowledge) SupportsFunction(name string) bool {
	return k.Functions[name]
}
