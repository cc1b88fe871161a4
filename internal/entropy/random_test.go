package entropy

import "testing"

func TestSeedIsNonNegativeAndVaries(t *testing.T) {
	seen := map[int64]bool{}
	for i := 0; i < 100; i++ {
		s := Seed()
		if s < 0 {
			t.Fatalf("Seed() = %d, want non-negative", s)
		}
		seen[s] = true
	}
	if len(seen) < 95 {
		t.Errorf("only %d distinct seeds in 100 draws", len(seen))
	}
}

func TestCryptoFloatRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		if f := CryptoFloat(); f < 0 || f >= 1 {
			t.Fatalf("CryptoFloat() = %g, want [0, 1)", f)
		}
	}
}
