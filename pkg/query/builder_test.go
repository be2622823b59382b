package query

import (
	"strings"
	"testing"

	"sparqlgateway/pkg/model"
	"sparqlgateway/pkg/ontology"
	"sparqlgateway/pkg/vocab"
)

func TestBuilderSerializesCanonicalOrder(t *testing.T) {
	b := New()
	b.AddPrefix("foaf", "http://xmlns.com/foaf/0.1/")
	b.SetSelectVars([]string{"name"})
	b.AddTriple(model.Var("s"), model.IRITerm("foaf:name"), model.Var("name"))
	b.SetLimit(10)
	out := Serialize(b.Plan())

	prefixIdx := strings.Index(out, "PREFIX foaf:")
	selectIdx := strings.Index(out, "SELECT ?name")
	whereIdx := strings.Index(out, "WHERE {")
	limitIdx := strings.Index(out, "LIMIT 10")
	if prefixIdx < 0 || selectIdx < prefixIdx || whereIdx < selectIdx || limitIdx < whereIdx {
		t.Fatalf("expected canonical ordering PREFIX < SELECT < WHERE < LIMIT, got:\n%s", out)
	}
}

func TestBuilderFirstPrefixWins(t *testing.T) {
	b := New()
	b.AddPrefix("ex", "http://first.example/")
	b.AddPrefix("ex", "http://second.example/")
	if b.Plan().Prefixes["ex"] != "http://first.example/" {
		t.Errorf("expected first prefix binding to win, got %s", b.Plan().Prefixes["ex"])
	}
	if len(b.Plan().PrefixOrder) != 1 {
		t.Errorf("expected prefix order to record only one entry, got %v", b.Plan().PrefixOrder)
	}
}

func TestBuilderPreservesTripleInsertionOrder(t *testing.T) {
	b := New()
	b.AddTriple(model.Var("a"), model.IRITerm("ex:p1"), model.Var("b"))
	b.AddTriple(model.Var("b"), model.IRITerm("ex:p2"), model.Var("c"))
	out := Serialize(b.Plan())
	i1 := strings.Index(out, "?a")
	i2 := strings.Index(out, "?b ex:p2")
	if i1 < 0 || i2 < 0 || i2 < i1 {
		t.Fatalf("expected triples in insertion order, got:\n%s", out)
	}
}

func TestBuilderSelectAllRendersStar(t *testing.T) {
	b := New()
	b.SetSelectAll()
	b.AddTriple(model.Var("s"), model.Var("p"), model.Var("o"))
	out := Serialize(b.Plan())
	if !strings.Contains(out, "SELECT *") {
		t.Errorf("expected SELECT *, got:\n%s", out)
	}
}

func TestBuilderOptionalBlockRendersNested(t *testing.T) {
	b := New()
	b.AddTriple(model.Var("s"), model.IRITerm("ex:p"), model.Var("o"))
	b.AddOptional([]model.TriplePattern{
		{Subject: model.Var("s"), Predicate: model.IRITerm("ex:opt"), Object: model.Var("x")},
	})
	out := Serialize(b.Plan())
	if !strings.Contains(out, "OPTIONAL {") {
		t.Errorf("expected OPTIONAL block, got:\n%s", out)
	}
}

func TestFromIntentWiresEntityHintPattern(t *testing.T) {
	it := &model.Intent{Action: model.ActionSelect, EntityHints: []string{"human"}}
	k := model.NewDiscoveryKnowledge("https://ep", model.ModeFull)
	k.Patterns["human"] = "?x wdt:P31 wd:Q5"

	plan := FromIntent(it, k, ontology.Empty(), nil)
	out := Serialize(plan)
	if !strings.Contains(out, "?x wdt:P31 wd:Q5") {
		t.Errorf("expected entity hint pattern wired into WHERE clause, got:\n%s", out)
	}
}

func TestFromIntentDeclaresOnlyUsedPrefixes(t *testing.T) {
	it := &model.Intent{Action: model.ActionSelect, EntityHints: []string{"human"}}
	k := model.NewDiscoveryKnowledge("https://ep", model.ModeFull)
	k.Patterns["human"] = "?x wdt:P31 wd:Q5"
	idx := vocab.NewIndex()
	idx.GenerateForNamespaces([]string{"http://www.wikidata.org/prop/direct/", "http://www.wikidata.org/entity/"}, vocab.RenameSuffix)

	plan := FromIntent(it, k, ontology.Empty(), idx)
	if _, ok := plan.Prefixes["wdt"]; !ok {
		t.Errorf("expected wdt prefix declared, got %v", plan.Prefixes)
	}
	if _, ok := plan.Prefixes["foaf"]; ok {
		t.Errorf("expected unused foaf prefix not declared, got %v", plan.Prefixes)
	}
}

func TestFromIntentAppliesFiltersAndLimit(t *testing.T) {
	n := 5
	it := &model.Intent{
		Action:  model.ActionSelect,
		Filters: []model.FilterExpr{{Subject: "year", Op: model.OpGreaterThan, Literal: "2000"}},
		Limit:   &n,
	}
	plan := FromIntent(it, nil, ontology.Empty(), nil)
	out := Serialize(plan)
	if !strings.Contains(out, "FILTER(?year > 2000)") {
		t.Errorf("expected year filter, got:\n%s", out)
	}
	if !strings.Contains(out, "LIMIT 5") {
		t.Errorf("expected limit 5, got:\n%s", out)
	}
}
