// Command epidemic-sweep runs a grid of parameter sets in parallel and ranks
// them by how hard the outbreak peaks.
package main

import (
	"flag"
	"fmt"
	"maps"
	"runtime"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/Ashboy64/disease-spread/internal/app"
	"github.com/Ashboy64/disease-spread/internal/sims/epidemic"

	"github.com/charmbracelet/log"
)

type paramSet struct {
	probDeath    float64
	movementProb float64
	radius       int
	seed         int64
}

func (p paramSet) String() string {
	return fmt.Sprintf("death=%.4f move=%.3f radius=%d seed=%d", p.probDeath, p.movementProb, p.radius, p.seed)
}

type scenarioResult struct {
	params       paramSet
	peakInfected int
	peakTick     int
	final        epidemic.Counts
	extinctAt    int
	err          error
}

func main() {
	steps := flag.Int("steps", 400, "ticks to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	size := flag.Int("size", 48, "grid rows and columns")
	seeds := flag.Int("seeds", 3, "seeds per parameter set")
	top := flag.Int("top", 10, "results to print")
	sim := flag.String("sim", "epidemic", "registered simulation to sweep")
	fixed := app.Settings{}
	flag.Var(fixed, "set", "parameter held fixed across the sweep as key=value, repeatable")
	flag.Parse()

	base := map[string]string{"w": strconv.Itoa(*size), "h": strconv.Itoa(*size), "cell_size": "1"}
	maps.Copy(base, fixed)
	if _, err := app.NewSim(*sim, base); err != nil {
		log.Fatal("invalid sweep", "err", err)
	}

	sets := buildSets([]float64{0.0005, 0.002, 0.01}, []float64{0.0, 0.01, 0.05, 0.2}, []int{1, 2, 4}, *seeds)
	log.Info("sweeping", "sets", len(sets), "workers", *workers, "steps", *steps)

	start := time.Now()
	all := sweep(*sim, base, sets, *steps, *workers)
	sort.Slice(all, func(i, j int) bool { return all[i].peakInfected > all[j].peakInfected })

	log.Info("sweep complete", "elapsed", time.Since(start).Round(time.Millisecond))
	shown := 0
	for _, res := range all {
		if res.err != nil {
			log.Error("scenario failed", "params", res.params, "err", res.err)
			continue
		}
		if shown >= *top {
			continue
		}
		shown++
		fmt.Printf("%2d. peak=%d at tick %d, final dead=%d recovered=%d extinct=%d | %s\n",
			shown, res.peakInfected, res.peakTick, res.final.Dead, res.final.Recovered, res.extinctAt, res.params)
	}
}

func buildSets(deaths, moves []float64, radii []int, seeds int) []paramSet {
	var sets []paramSet
	for _, death := range deaths {
		for _, move := range moves {
			for _, radius := range radii {
				for seed := 1; seed <= seeds; seed++ {
					sets = append(sets, paramSet{probDeath: death, movementProb: move, radius: radius, seed: int64(seed)})
				}
			}
		}
	}
	return sets
}

func sweep(sim string, base map[string]string, sets []paramSet, steps, workers int) []scenarioResult {
	if workers <= 0 {
		workers = 1
	}
	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(sim, base, params, steps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	all := make([]scenarioResult, 0, len(sets))
	for res := range results {
		all = append(all, res)
	}
	return all
}

// runScenario advances one world and tracks the infected peak. extinctAt is
// the first tick with no latent or infected people, or -1.
func runScenario(sim string, base map[string]string, params paramSet, steps int) scenarioResult {
	res := scenarioResult{params: params, extinctAt: -1}
	cfg := maps.Clone(base)
	cfg["seed"] = strconv.FormatInt(params.seed, 10)
	cfg["prob_death"] = strconv.FormatFloat(params.probDeath, 'g', -1, 64)
	cfg["movement_prob"] = strconv.FormatFloat(params.movementProb, 'g', -1, 64)
	cfg["max_movement_radius"] = strconv.Itoa(params.radius)
	world, err := app.NewSim(sim, cfg)
	if err != nil {
		res.err = err
		return res
	}

	for tick := 1; tick <= steps; tick++ {
		world.Step()
		c := world.Counts()
		if c.Infected > res.peakInfected {
			res.peakInfected = c.Infected
			res.peakTick = tick
		}
		if res.extinctAt < 0 && c.Infected == 0 && c.Latent == 0 {
			res.extinctAt = tick
			break
		}
	}
	res.final = world.Counts()
	return res
}
