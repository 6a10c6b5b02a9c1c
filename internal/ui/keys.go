package ui

import (
	"github.com/litescript/ls-orbitals/internal/field"
	"github.com/litescript/ls-orbitals/internal/state"
)

// keyInputs maps keys to session inputs. Shifted letters step quantum
// numbers down.
var keyInputs = map[string]state.Input{
	"w":     {Kind: state.Phi},
	"s":     {Kind: state.Phi, Reverse: true},
	"d":     {Kind: state.Theta},
	"a":     {Kind: state.Theta, Reverse: true},
	"n":     {Kind: state.StepN},
	"N":     {Kind: state.StepN, Reverse: true},
	"l":     {Kind: state.StepL},
	"L":     {Kind: state.StepL, Reverse: true},
	"m":     {Kind: state.StepM},
	"M":     {Kind: state.StepM, Reverse: true},
	"up":    {Kind: state.Zoom},
	"down":  {Kind: state.Zoom, Reverse: true},
	"right": {Kind: state.Sensitivity},
	"left":  {Kind: state.Sensitivity, Reverse: true},
}

func keyInput(key string) (state.Input, bool) {
	in, ok := keyInputs[key]
	return in, ok
}

// keyPolicy selects a color policy directly: "1" is the first in cycling
// order.
func keyPolicy(key string) (field.Policy, bool) {
	if len(key) != 1 || key[0] < '1' {
		return "", false
	}
	all := field.Policies()
	i := int(key[0] - '1')
	if i >= len(all) {
		return "", false
	}
	return all[i], true
}

const helpText = "w/s: phi | a/d: theta | n/l/m (+shift): step | ↑↓: zoom | ←→: sensitivity | p/1-3: colors | v: depth avg | g: profile | q: quit"
