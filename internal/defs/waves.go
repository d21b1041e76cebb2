package defs

import "fmt"

// WaveSizePolicy decides how many agents a round spawns. It is a pure
// function of the round number.
type WaveSizePolicy interface {
	Size(round int) int
}

// ConstantWave spawns the same number of agents every round.
type ConstantWave struct {
	Count int
}

func (p ConstantWave) Size(int) int { return p.Count }

// LinearWave grows by PerRound agents each round: round*PerRound + Base.
type LinearWave struct {
	Base     int
	PerRound int
}

func (p LinearWave) Size(round int) int { return round*p.PerRound + p.Base }

// NewWaveSizePolicy builds a policy from its config name.
func NewWaveSizePolicy(name string, base, perRound int) (WaveSizePolicy, error) {
	switch name {
	case "constant", "":
		return ConstantWave{Count: base}, nil
	case "linear":
		return LinearWave{Base: base, PerRound: perRound}, nil
	}
	return nil, fmt.Errorf("unknown wave size policy %q", name)
}
