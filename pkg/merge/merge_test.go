package merge

import (
	"testing"

	"sparqlgateway/pkg/model"
)

func row(vals map[string]model.RDFTerm) model.Row { return model.Row(vals) }

func TestUnionConcatenatesWithoutDedupe(t *testing.T) {
	a := []model.Row{row(map[string]model.RDFTerm{"name": model.Literal("Alice", "", "")})}
	b := []model.Row{row(map[string]model.RDFTerm{"name": model.Literal("Alice", "", "")})}
	out := Union(false, a, b)
	if len(out) != 2 {
		t.Fatalf("expected 2 rows without dedupe, got %d", len(out))
	}
}

func TestUnionDedupesIdenticalRows(t *testing.T) {
	a := []model.Row{row(map[string]model.RDFTerm{"name": model.Literal("Alice", "", "")})}
	b := []model.Row{
		row(map[string]model.RDFTerm{"name": model.Literal("Alice", "", "")}),
		row(map[string]model.RDFTerm{"name": model.Literal("Bob", "", "")}),
	}
	out := Union(true, a, b)
	if len(out) != 2 {
		t.Fatalf("expected 2 deduped rows, got %d: %+v", len(out), out)
	}
}

func TestUnionDedupeIsIdempotent(t *testing.T) {
	a := []model.Row{row(map[string]model.RDFTerm{"name": model.Literal("Alice", "", "")})}
	once := Union(true, a, a)
	twice := Union(true, once, once)
	if len(once) != len(twice) {
		t.Errorf("expected merge_union(dedupe=true) to be idempotent, got %d then %d", len(once), len(twice))
	}
}

func TestJoinInnerMatchesOnSharedVariable(t *testing.T) {
	left := []model.Row{
		row(map[string]model.RDFTerm{"person": model.IRI("urn:1"), "name": model.Literal("Alice", "", "")}),
		row(map[string]model.RDFTerm{"person": model.IRI("urn:2"), "name": model.Literal("Bob", "", "")}),
	}
	right := []model.Row{
		row(map[string]model.RDFTerm{"person": model.IRI("urn:1"), "age": model.Literal("30", "", "")}),
	}
	out := Join(JoinInner, left, right, []string{"person"}, model.RDFTerm{})
	if len(out) != 1 {
		t.Fatalf("expected 1 inner-joined row, got %d", len(out))
	}
	if out[0]["name"].Value != "Alice" || out[0]["age"].Value != "30" {
		t.Errorf("expected joined row to carry both sides' columns, got %+v", out[0])
	}
}

func TestJoinLeftOuterFillsMissingRight(t *testing.T) {
	left := []model.Row{
		row(map[string]model.RDFTerm{"person": model.IRI("urn:1")}),
		row(map[string]model.RDFTerm{"person": model.IRI("urn:2")}),
	}
	right := []model.Row{
		row(map[string]model.RDFTerm{"person": model.IRI("urn:1"), "age": model.Literal("30", "", "")}),
	}
	fill := model.Literal("N/A", "", "")
	out := Join(JoinLeftOuter, left, right, []string{"person"}, fill)
	if len(out) != 2 {
		t.Fatalf("expected 2 left-outer rows, got %d", len(out))
	}
	var unmatched model.Row
	for _, r := range out {
		if r["person"].Value == "urn:2" {
			unmatched = r
		}
	}
	if unmatched == nil {
		t.Fatal("expected unmatched left row to survive")
	}
	if unmatched["age"].Value != "N/A" {
		t.Errorf("expected filled default for missing age, got %+v", unmatched["age"])
	}
}

func TestJoinFullOuterKeepsUnmatchedBothSides(t *testing.T) {
	left := []model.Row{row(map[string]model.RDFTerm{"person": model.IRI("urn:1")})}
	right := []model.Row{row(map[string]model.RDFTerm{"person": model.IRI("urn:2"), "age": model.Literal("40", "", "")})}
	fill := model.Literal("N/A", "", "")
	out := Join(JoinFullOuter, left, right, []string{"person"}, fill)
	if len(out) != 2 {
		t.Fatalf("expected 2 full-outer rows (one per side, unmatched), got %d", len(out))
	}
}

func TestJoinInnerProducesNoRowsOnNoMatch(t *testing.T) {
	left := []model.Row{row(map[string]model.RDFTerm{"person": model.IRI("urn:1")})}
	right := []model.Row{row(map[string]model.RDFTerm{"person": model.IRI("urn:9")})}
	out := Join(JoinInner, left, right, []string{"person"}, model.RDFTerm{})
	if len(out) != 0 {
		t.Errorf("expected no inner-join rows for disjoint keys, got %d", len(out))
	}
}
