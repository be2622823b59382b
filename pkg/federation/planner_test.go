package federation

import (
	"strings"
	"testing"

	"sparqlgateway/pkg/model"
)

func patterns(pred string) []model.TriplePattern {
	return []model.TriplePattern{
		{Subject: model.Var("s"), Predicate: model.IRITerm(pred), Object: model.Var("o")},
	}
}

func TestPlanOrdersServicesBySelectivityAscending(t *testing.T) {
	p := map[string][]model.TriplePattern{
		"https://a": patterns("ex:p1"),
		"https://b": patterns("ex:p2"),
		"https://c": patterns("ex:p3"),
	}
	hints := Hints{Selectivity: map[string]float64{
		"https://a": 0.9,
		"https://b": 0.1,
		"https://c": 0.5,
	}}
	plan := Plan(p, []string{"o"}, model.Modifiers{}, hints)
	if len(plan.Services) != 3 {
		t.Fatalf("expected 3 services, got %d", len(plan.Services))
	}
	got := []string{plan.Services[0].EndpointURL, plan.Services[1].EndpointURL, plan.Services[2].EndpointURL}
	want := []string{"https://b", "https://c", "https://a"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestPlanAppliesSilentAndOptionalFlags(t *testing.T) {
	p := map[string][]model.TriplePattern{
		"https://a": patterns("ex:p1"),
		"https://b": patterns("ex:p2"),
	}
	hints := Hints{
		Selectivity: map[string]float64{"https://a": 0.1, "https://b": 0.2},
		SilentFor:   map[string]bool{"https://b": true},
		UseOptionalFor: map[string]bool{"https://b": true},
	}
	plan := Plan(p, nil, model.Modifiers{}, hints)
	if plan.Services[1].Silent != true || plan.Services[1].Optional != true {
		t.Errorf("expected service b silent+optional, got %+v", plan.Services[1])
	}
	if plan.Services[0].Silent {
		t.Errorf("expected service a not silent, got %+v", plan.Services[0])
	}
}

func TestSerializeEmitsServiceBlocksInSelectivityOrder(t *testing.T) {
	p := map[string][]model.TriplePattern{
		"https://slow": patterns("ex:slow"),
		"https://fast": patterns("ex:fast"),
	}
	hints := Hints{Selectivity: map[string]float64{"https://slow": 0.9, "https://fast": 0.05}}
	plan := Plan(p, []string{"o"}, model.Modifiers{}, hints)
	out := Serialize(plan)

	fastIdx := strings.Index(out, "https://fast")
	slowIdx := strings.Index(out, "https://slow")
	if fastIdx < 0 || slowIdx < 0 || slowIdx < fastIdx {
		t.Fatalf("expected fast (more selective) service emitted first, got:\n%s", out)
	}
}

func TestSerializeWrapsSilentServicesExactly(t *testing.T) {
	p := map[string][]model.TriplePattern{
		"https://a": patterns("ex:p"),
	}
	hints := Hints{SilentFor: map[string]bool{"https://a": true}}
	plan := Plan(p, nil, model.Modifiers{}, hints)
	out := Serialize(plan)
	if !strings.Contains(out, "SERVICE SILENT <https://a>") {
		t.Errorf("expected exact 'SERVICE SILENT <https://a>', got:\n%s", out)
	}
}

func TestSerializeNonSilentServiceOmitsSilentKeyword(t *testing.T) {
	p := map[string][]model.TriplePattern{
		"https://a": patterns("ex:p"),
	}
	plan := Plan(p, nil, model.Modifiers{}, Hints{})
	out := Serialize(plan)
	if strings.Contains(out, "SILENT") {
		t.Errorf("expected no SILENT keyword, got:\n%s", out)
	}
	if !strings.Contains(out, "SERVICE <https://a>") {
		t.Errorf("expected plain SERVICE block, got:\n%s", out)
	}
}

func TestEstimateCostFormulas(t *testing.T) {
	p := map[string][]model.TriplePattern{
		"https://a": patterns("ex:p1"),
		"https://b": append(patterns("ex:p2"), patterns("ex:p3")...),
	}
	hints := Hints{Selectivity: map[string]float64{"https://a": 1.0, "https://b": 1.0}}
	plan := Plan(p, nil, model.Modifiers{}, hints)
	cost := EstimateCost(plan, hints)

	// a: 1 pattern -> 2*(1+0.2)=2.4; b: 2 patterns -> 2*(1+0.4)=2.8; total 5.2
	wantTime := 2.4 + 2.8
	if diff := cost.EstimatedTimeSeconds - wantTime; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected estimated_time_seconds %.4f, got %.4f", wantTime, cost.EstimatedTimeSeconds)
	}
	// complexity = round(2*10 + 3*5) = 35
	if cost.ComplexityScore != 35 {
		t.Errorf("expected complexity_score 35, got %d", cost.ComplexityScore)
	}
	// recommended = max(60, 2*5.2) = 60
	if cost.RecommendedTimeout != 60 {
		t.Errorf("expected recommended_timeout 60 (floor), got %v", cost.RecommendedTimeout)
	}
}

func TestEstimateCostRecommendedTimeoutScalesAboveFloor(t *testing.T) {
	many := map[string][]model.TriplePattern{}
	hints := Hints{Selectivity: map[string]float64{}}
	for i := 0; i < 20; i++ {
		url := "https://ep" + string(rune('a'+i))
		many[url] = []model.TriplePattern{
			{Subject: model.Var("s"), Predicate: model.IRITerm("ex:p"), Object: model.Var("o")},
			{Subject: model.Var("s"), Predicate: model.IRITerm("ex:q"), Object: model.Var("o2")},
		}
		hints.Selectivity[url] = 0.05
	}
	plan := Plan(many, nil, model.Modifiers{}, hints)
	cost := EstimateCost(plan, hints)
	if cost.RecommendedTimeout <= 60 {
		t.Errorf("expected recommended_timeout above floor for a large federated plan, got %v", cost.RecommendedTimeout)
	}
	if cost.ComplexityScore != 100 {
		t.Errorf("expected complexity_score clamped to 100, got %d", cost.ComplexityScore)
	}
}
