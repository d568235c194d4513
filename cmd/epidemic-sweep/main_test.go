package main

import (
	"testing"
)

func smallBase() map[string]string {
	return map[string]string{"w": "12", "h": "12", "cell_size": "1"}
}

func TestBuildSetsCoversGrid(t *testing.T) {
	sets := buildSets([]float64{0.1, 0.2}, []float64{0, 0.5, 1}, []int{1}, 2)
	if len(sets) != 12 {
		t.Fatalf("expected 12 sets, got %d", len(sets))
	}
}

func TestSweepIsDeterministicAcrossWorkers(t *testing.T) {
	sets := buildSets([]float64{0.0005, 0.05}, []float64{0.01, 0.2}, []int{2}, 2)
	one := sweep("epidemic", smallBase(), sets, 60, 1)
	many := sweep("epidemic", smallBase(), sets, 60, 4)
	if len(one) != len(sets) || len(many) != len(sets) {
		t.Fatalf("missing results: %d, %d", len(one), len(many))
	}
	byParams := map[paramSet]scenarioResult{}
	for _, r := range one {
		byParams[r.params] = r
	}
	for _, r := range many {
		if byParams[r.params] != r {
			t.Fatalf("result for %s differs between runs", r.params)
		}
	}
}

func TestRunScenarioConservesPopulation(t *testing.T) {
	res := runScenario("epidemic", smallBase(), paramSet{probDeath: 0, movementProb: 0.1, radius: 2, seed: 3}, 200)
	if res.final.Total() != 144 {
		t.Fatalf("final counts sum to %d", res.final.Total())
	}
	if res.peakInfected < 1 {
		t.Fatal("the seeded infection should register as a peak of at least one")
	}
}

func TestRunScenarioKeepsFixedSettings(t *testing.T) {
	base := smallBase()
	base["blank"] = "true"
	res := runScenario("epidemic", base, paramSet{probDeath: 0.01, movementProb: 0.1, radius: 1, seed: 1}, 50)
	if res.err != nil {
		t.Fatalf("run: %v", res.err)
	}
	if res.peakInfected != 0 || res.extinctAt != 1 || res.final.Susceptible != 144 {
		t.Fatalf("a blank world should stay healthy: %+v", res)
	}
	if base["seed"] != "" {
		t.Fatal("scenario parameters must not leak into the shared base")
	}
}

func TestRunScenarioUnknownSim(t *testing.T) {
	res := runScenario("measles", smallBase(), paramSet{seed: 1}, 10)
	if res.err == nil {
		t.Fatal("expected an error for an unregistered sim")
	}
}
