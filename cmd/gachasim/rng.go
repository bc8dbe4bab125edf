package main

import "github.com/xtding233/gacha-sim/internal/gacha"

// rngFor returns a seeded source for stream when a seed is set.
// Separate streams keep banner draws independent of name picks.
func rngFor(seed uint64, stream uint64) gacha.RandomSource {
	if seed == 0 {
		return gacha.DefaultRNG()
	}
	return gacha.NewSeededRNG(seed + stream)
}
