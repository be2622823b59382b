package model

// TermKind discriminates the tagged union of RDF term types.
type TermKind string

const (
	TermIRI       TermKind = "uri"
	TermLiteral   TermKind = "literal"
	TermBlankNode TermKind = "bnode"
)

// RDFTerm is a tagged union over IRI, Literal, and BlankNode, matching the
// "type" discriminator used by the SPARQL-results JSON wire format (§6).
// Equality is by (Kind, all fields) via Equal, since the zero value of
// unused fields could otherwise make two different terms compare equal
// with a naive ==.
type RDFTerm struct {
	Kind     TermKind `json:"type"`
	Value    string   `json:"value"`
	Datatype string   `json:"datatype,omitempty"`
	Lang     string   `json:"xml:lang,omitempty"`
}

// IRI constructs an IRI term.
func IRI(value string) RDFTerm { return RDFTerm{Kind: TermIRI, Value: value} }

// Literal constructs a plain or typed/language-tagged literal term.
func Literal(lexical, datatype, lang string) RDFTerm {
	return RDFTerm{Kind: TermLiteral, Value: lexical, Datatype: datatype, Lang: lang}
}

// BlankNode constructs a blank node term.
func BlankNode(id string) RDFTerm { return RDFTerm{Kind: TermBlankNode, Value: id} }

// Equal reports whether two terms are identical in kind and all fields.
func (t RDFTerm) Equal(other RDFTerm) bool {
	return t.Kind == other.Kind &&
		t.Value == other.Value &&
		t.Datatype == other.Datatype &&
		t.Lang == other.Lang
}

// IsZero reports whether t is the unset zero value (used to represent a
// missing binding for an OPTIONAL variable before a default fill).
func (t RDFTerm) IsZero() bool {
	return t.Kind == "" && t.Value == "" && t.Datatype == "" && t.Lang == ""
}

// Row is one result row: variable name to bound term.
type Row map[string]RDFTerm
