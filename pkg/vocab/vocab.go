// Package vocab implements the Prefix/Vocabulary Index (spec.md §4.E): a
// seed table of well-known prefixes plus endpoint-derived additions, with
// shorten/expand helpers. The Query Builder reads the index's prefix map;
// the Validator does not use this package.
// New code (the teacher has no vocabulary/namespace concern), but the
// collision-policy shape — explicit strategies applied deterministically,
// first-wins by default — follows the same "insertion order, first wins"
// discipline as pkg/mpl/ast/policy.go's prefix handling.
package vocab

import (
	"fmt"
	"regexp"
	"strings"
)

// CollisionStrategy controls what happens when generateForNamespaces wants
// to mint a prefix that already maps to a different namespace.
type CollisionStrategy int

const (
	KeepExisting CollisionStrategy = iota
	Overwrite
	RenameSuffix
)

// Seed is the well-known prefix table every Index starts from.
var Seed = map[string]string{
	"rdf":     "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
	"rdfs":    "http://www.w3.org/2000/01/rdf-schema#",
	"owl":     "http://www.w3.org/2002/07/owl#",
	"xsd":     "http://www.w3.org/2001/XMLSchema#",
	"skos":    "http://www.w3.org/2004/02/skos/core#",
	"dc":      "http://purl.org/dc/elements/1.1/",
	"dcterms": "http://purl.org/dc/terms/",
	"foaf":    "http://xmlns.com/foaf/0.1/",
	"schema":  "http://schema.org/",
	"dbo":     "http://dbpedia.org/ontology/",
	"dbr":     "http://dbpedia.org/resource/",
	"geo":     "http://www.w3.org/2003/01/geo/wgs84_pos#",
	"prov":    "http://www.w3.org/ns/prov#",
	"void":    "http://rdfs.org/ns/void#",
	"dcat":    "http://www.w3.org/ns/dcat#",
	"vcard":   "http://www.w3.org/2006/vcard/ns#",
	"time":    "http://www.w3.org/2006/time#",
	"org":     "http://www.w3.org/ns/org#",
	"qb":      "http://purl.org/linked-data/cube#",
	"wdt":     "http://www.wikidata.org/prop/direct/",
	"wd":      "http://www.wikidata.org/entity/",
}

// Index holds the live prefix->namespace mapping for one endpoint,
// starting from Seed and accumulating discovered additions.
type Index struct {
	prefixes map[string]string
}

// NewIndex returns an Index preloaded with Seed.
func NewIndex() *Index {
	idx := &Index{prefixes: make(map[string]string, len(Seed))}
	for p, ns := range Seed {
		idx.prefixes[p] = ns
	}
	return idx
}

// Prefixes returns a copy of the current prefix->namespace mapping.
func (idx *Index) Prefixes() map[string]string {
	out := make(map[string]string, len(idx.prefixes))
	for p, ns := range idx.prefixes {
		out[p] = ns
	}
	return out
}

var prefixDeclRe = regexp.MustCompile(`(?i)PREFIX\s+([a-zA-Z_][\w.-]*)\s*:\s*<([^>]+)>`)

// ExtractFromQuery reads `PREFIX p: <ns>` declarations out of raw SPARQL
// text and returns them as a standalone map, without mutating idx.
func ExtractFromQuery(text string) map[string]string {
	out := map[string]string{}
	for _, m := range prefixDeclRe.FindAllStringSubmatch(text, -1) {
		out[m[1]] = m[2]
	}
	return out
}

// GenerateForNamespaces synthesizes short prefixes for any namespace in ns
// that idx doesn't already know, resolving collisions per strategy, and
// merges the result into idx. It returns just the newly assigned mappings.
func (idx *Index) GenerateForNamespaces(ns []string, strategy CollisionStrategy) map[string]string {
	added := map[string]string{}
	for _, namespace := range ns {
		if idx.hasNamespace(namespace) {
			continue
		}
		candidate := guessPrefix(namespace)
		key := idx.resolveKey(candidate, namespace, strategy)
		if key == "" {
			continue // KeepExisting declined to add this namespace
		}
		idx.prefixes[key] = namespace
		added[key] = namespace
	}
	return added
}

func (idx *Index) hasNamespace(ns string) bool {
	for _, v := range idx.prefixes {
		if v == ns {
			return true
		}
	}
	return false
}

// resolveKey decides which prefix key to bind namespace to, applying the
// collision policy when candidate is already taken by a different
// namespace. Returns "" if the namespace should not be added at all.
func (idx *Index) resolveKey(candidate, namespace string, strategy CollisionStrategy) string {
	existingNS, taken := idx.prefixes[candidate]
	if !taken || existingNS == namespace {
		return candidate
	}
	switch strategy {
	case KeepExisting:
		return ""
	case Overwrite:
		return candidate
	case RenameSuffix:
		for n := 2; ; n++ {
			alt := fmt.Sprintf("%s%d", candidate, n)
			if _, taken := idx.prefixes[alt]; !taken {
				return alt
			}
		}
	default:
		return ""
	}
}

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// guessPrefix derives a short candidate prefix from a namespace IRI: the
// last non-empty path segment or host label, lowercased.
func guessPrefix(namespace string) string {
	trimmed := strings.TrimRight(namespace, "#/")
	segments := strings.FieldsFunc(trimmed, func(r rune) bool { return r == '/' || r == '#' })
	if len(segments) == 0 {
		return "ns"
	}
	last := segments[len(segments)-1]
	last = nonAlnum.ReplaceAllString(last, "")
	last = strings.ToLower(last)
	if last == "" {
		return "ns"
	}
	if len(last) > 12 {
		last = last[:12]
	}
	return last
}

// Shorten renders iri as a prefixed name ("prefix:local") if it falls
// within a known namespace, or returns iri unchanged otherwise.
func (idx *Index) Shorten(iri string) string {
	var bestPrefix, bestNS string
	for p, ns := range idx.prefixes {
		if strings.HasPrefix(iri, ns) && len(ns) > len(bestNS) {
			bestPrefix, bestNS = p, ns
		}
	}
	if bestNS == "" {
		return iri
	}
	return bestPrefix + ":" + iri[len(bestNS):]
}

// Expand resolves a "prefix:local" name to its full IRI using idx's
// mapping. Returns prefixed unchanged if its prefix is unknown or it
// doesn't look like a prefixed name.
func (idx *Index) Expand(prefixed string) string {
	i := strings.IndexByte(prefixed, ':')
	if i < 0 {
		return prefixed
	}
	p, local := prefixed[:i], prefixed[i+1:]
	ns, ok := idx.prefixes[p]
	if !ok {
		return prefixed
	}
	return ns + local
}

// EmitDeclarations renders prefixes as SPARQL PREFIX lines, in the order
// given by order (used/insertion order from a caller). Names in order that
// are missing from prefixes are skipped, and prefixes absent from order are
// not emitted.
func EmitDeclarations(prefixes map[string]string, order []string) string {
	var b strings.Builder
	seen := make(map[string]bool, len(order))
	for _, p := range order {
		ns, ok := prefixes[p]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "PREFIX %s: <%s>\n", p, ns)
		seen[p] = true
	}
	return b.String()
}
