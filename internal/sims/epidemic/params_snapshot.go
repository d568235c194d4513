package epidemic

import "github.com/Ashboy64/disease-spread/internal/core"

// Parameters reports the current tunables for the HUD.
func (w *World) Parameters() core.ParameterSnapshot {
	p := w.state.Params
	rows, cols := w.cfg.Dims()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.IntParam("rows", "Rows", rows),
				core.IntParam("cols", "Columns", cols),
				core.Int64Param("seed", "Seed", w.cfg.Seed),
				core.IntParam("tick", "Tick", w.state.Tick),
			},
		},
		{
			Name: "Disease",
			Params: []core.Parameter{
				core.IntParam("max_latent", "Max latent", p.MaxLatent),
				core.IntParam("max_infected", "Max infected", p.MaxInfected),
				core.IntParam("max_immune", "Max immune", p.MaxImmune),
				core.FloatParam("prob_death", "Death chance", p.ProbDeath),
				core.FloatParam("diagonal_weight", "Diagonal weight", p.Weights.Diagonal),
				core.FloatParam("orthogonal_weight", "Orthogonal weight", p.Weights.Orthogonal),
				core.FloatParam("expected_resistance", "Expected resistance", p.Demographics.ExpectedResistance()),
			},
		},
		{
			Name: "Movement",
			Params: []core.Parameter{
				core.IntParam("max_movement_radius", "Move radius", p.MaxMovementRadius),
				core.FloatParam("movement_prob", "Move chance", p.MovementProb),
			},
		},
	}}
}

// ParameterControls lists the parameters adjustable from the HUD.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "max_latent", Label: "Max latent", Type: core.ParamTypeInt, Step: 1, Min: 0, HasMin: true},
		{Key: "max_infected", Label: "Max infected", Type: core.ParamTypeInt, Step: 1, Min: 0, HasMin: true},
		{Key: "max_immune", Label: "Max immune", Type: core.ParamTypeInt, Step: 1, Min: 0, HasMin: true},
		{Key: "prob_death", Label: "Death chance", Type: core.ParamTypeFloat, Step: 0.0005, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "max_movement_radius", Label: "Move radius", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 64, HasMin: true, HasMax: true},
		{Key: "movement_prob", Label: "Move chance", Type: core.ParamTypeFloat, Step: 0.005, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "diagonal_weight", Label: "Diagonal weight", Type: core.ParamTypeFloat, Step: 0.125, Min: 0, Max: 4, HasMin: true, HasMax: true},
		{Key: "orthogonal_weight", Label: "Orthogonal weight", Type: core.ParamTypeFloat, Step: 0.125, Min: 0, Max: 4, HasMin: true, HasMax: true},
	}
}

// SetIntParameter updates an integer parameter between ticks. Negative values
// are clamped to zero.
func (w *World) SetIntParameter(key string, value int) bool {
	if value < 0 {
		value = 0
	}
	p := &w.state.Params
	switch key {
	case "max_latent":
		p.MaxLatent = value
	case "max_infected":
		p.MaxInfected = value
	case "max_immune":
		p.MaxImmune = value
	case "max_movement_radius":
		p.MaxMovementRadius = value
	default:
		return false
	}
	w.cfg.Params = *p
	return true
}

// SetFloatParameter updates a floating point parameter between ticks.
// Probabilities are clamped to [0, 1] and weights to be non-negative.
func (w *World) SetFloatParameter(key string, value float64) bool {
	if value < 0 {
		value = 0
	}
	p := &w.state.Params
	switch key {
	case "prob_death":
		p.ProbDeath = min(value, 1)
	case "movement_prob":
		p.MovementProb = min(value, 1)
	case "diagonal_weight":
		p.Weights.Diagonal = value
	case "orthogonal_weight":
		p.Weights.Orthogonal = value
	default:
		return false
	}
	w.cfg.Params = *p
	return true
}
