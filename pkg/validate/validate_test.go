package validate

import (
	"testing"

	"sparqlgateway/pkg/model"
	"sparqlgateway/pkg/query"
)

func TestValidatePassesCleanQuery(t *testing.T) {
	b := query.New()
	b.AddPrefix("foaf", "http://xmlns.com/foaf/0.1/")
	b.SetSelectVars([]string{"name"})
	b.AddTriple(model.Var("s"), model.IRITerm("foaf:name"), model.Var("name"))

	k := model.NewDiscoveryKnowledge("https://ep", model.ModeFull)
	k.Namespaces = []string{"http://xmlns.com/foaf/0.1/"}

	v := New()
	res := v.Validate(b.Plan(), query.Serialize(b.Plan()), k)
	if !res.Valid {
		t.Fatalf("expected valid query, got errors: %v", res.Errors)
	}
}

func TestValidateFailsOnUndeclaredPrefix(t *testing.T) {
	b := query.New()
	b.AddTriple(model.Var("s"), model.IRITerm("foaf:name"), model.Var("name"))

	v := New()
	res := v.Validate(b.Plan(), query.Serialize(b.Plan()), nil)
	if res.Valid {
		t.Fatal("expected invalid due to undeclared prefix")
	}
	found := false
	for _, e := range res.Errors {
		if e == "prefix 'foaf' used but not declared" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected undeclared-prefix error, got %v", res.Errors)
	}
}

func TestValidateWarnsOnUnknownNamespace(t *testing.T) {
	b := query.New()
	b.AddPrefix("ex", "http://unknown.example/")
	b.AddTriple(model.Var("s"), model.IRITerm("ex:thing"), model.Var("o"))

	k := model.NewDiscoveryKnowledge("https://ep", model.ModeFull)
	k.Namespaces = []string{"http://other.example/"}

	v := New()
	res := v.Validate(b.Plan(), query.Serialize(b.Plan()), k)
	if !res.Valid {
		t.Fatalf("unknown namespace must be a warning, not fatal, got errors: %v", res.Errors)
	}
	if len(res.Warnings) == 0 {
		t.Error("expected a warning for the unknown namespace")
	}
}

func TestValidateFailsOnUnsupportedFeature(t *testing.T) {
	b := query.New()
	b.AddTriple(model.Var("s"), model.Var("p"), model.Var("o"))
	b.AddFilter("EXISTS { ?s ?p ?o }") // triggers no marker; use SERVICE instead
	serialized := query.Serialize(b.Plan()) + "\nSERVICE <http://example.org/sparql> { ?s ?p ?o }"

	k := model.NewDiscoveryKnowledge("https://ep", model.ModeFull)
	k.Features[model.FeatureSERVICE] = false

	v := New()
	res := v.Validate(b.Plan(), serialized, k)
	if res.Valid {
		t.Fatal("expected invalid due to unsupported SERVICE feature")
	}
}

func TestValidateDetectsUnbalancedBrackets(t *testing.T) {
	v := New()
	res := v.Validate(model.NewQueryPlan(), "SELECT * WHERE { ?s ?p ?o ", nil)
	if res.Valid {
		t.Fatal("expected invalid due to unbalanced brackets")
	}
}

func TestValidateIsIdempotent(t *testing.T) {
	b := query.New()
	b.AddPrefix("foaf", "http://xmlns.com/foaf/0.1/")
	b.AddTriple(model.Var("s"), model.IRITerm("foaf:name"), model.Var("o"))
	plan := b.Plan()
	serialized := query.Serialize(plan)

	v := New()
	r1 := v.Validate(plan, serialized, nil)
	r2 := v.Validate(plan, serialized, nil)
	if r1.Valid != r2.Valid || len(r1.Errors) != len(r2.Errors) || len(r1.Warnings) != len(r2.Warnings) {
		t.Error("expected repeated Validate calls to return equal results")
	}
}
