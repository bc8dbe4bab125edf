package gacha

import "testing"

// scriptRNG replays fixed values and fails the test if the code under test
// consumes more randomness than expected.
type scriptRNG struct {
	t      testing.TB
	floats []float64
	ints   []int
}

func script(t testing.TB, floats []float64, ints ...int) *scriptRNG {
	return &scriptRNG{t: t, floats: floats, ints: ints}
}

func (s *scriptRNG) Float64() float64 {
	s.t.Helper()
	if len(s.floats) == 0 {
		s.t.Fatalf("unexpected Float64 call")
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptRNG) IntN(n int) int {
	s.t.Helper()
	if len(s.ints) == 0 {
		s.t.Fatalf("unexpected IntN(%d) call", n)
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v < 0 || v >= n {
		s.t.Fatalf("scripted IntN value %d outside [0,%d)", v, n)
	}
	return v
}

func (s *scriptRNG) drained() bool { return len(s.floats) == 0 && len(s.ints) == 0 }

// constRNG always returns the same values.
type constRNG struct {
	f float64
	i int
}

func (c constRNG) Float64() float64 { return c.f }
func (c constRNG) IntN(int) int     { return c.i }
