package gacha

import "testing"

func TestRollBounds(t *testing.T) {
	rng := NewSeededRNG(1)
	for i := 0; i < 10000; i++ {
		v, err := Roll(64, rng)
		if err != nil {
			t.Fatal(err)
		}
		if v < 1 || v > 64 {
			t.Fatalf("roll out of [1,64]: %d", v)
		}
	}
	if _, err := Roll(0, rng); err != ErrInvalidSides {
		t.Fatalf("sides=0 must error; got %v", err)
	}
	if _, err := Roll(-3, nil); err != ErrInvalidSides {
		t.Fatalf("negative sides must error; got %v", err)
	}
}

func TestRollSingleSide(t *testing.T) {
	for i := 0; i < 100; i++ {
		ok, err := OneIn(1, nil)
		if err != nil || !ok {
			t.Fatalf("1/1 must always hit; got=%v err=%v", ok, err)
		}
	}
}

func TestOneInStatApprox(t *testing.T) {
	const n = 200000
	rng := NewSeededRNG(42)
	hit := 0
	for i := 0; i < n; i++ {
		ok, err := OneIn(64, rng)
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			hit++
		}
	}
	freq := float64(hit) / float64(n)
	// should be around 1/64 = 0.015625
	if diff := freq - 1.0/64; diff > 0.002 || diff < -0.002 {
		t.Fatalf("freq=%f not close to 1/64", freq)
	}
}

func TestSeededRNGReplicable(t *testing.T) {
	a, b := NewSeededRNG(7), NewSeededRNG(7)
	for i := 0; i < 100; i++ {
		if x, y := a.Int64N(1<<40), b.Int64N(1<<40); x != y {
			t.Fatalf("step %d: %d != %d", i, x, y)
		}
	}
}

func TestDefaultRNGInt64NRange(t *testing.T) {
	rng := DefaultRNG()
	for i := 0; i < 1000; i++ {
		if v := rng.Int64N(5); v < 0 || v >= 5 {
			t.Fatalf("Int64N(5) out of range: %d", v)
		}
		if v := rng.IntN(3); v < 0 || v >= 3 {
			t.Fatalf("IntN(3) out of range: %d", v)
		}
	}
}
