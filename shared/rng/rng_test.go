package rng

import "testing"

func TestDeterminism(t *testing.T) {
	seeds := []int32{0, 1, 42, -7, 2147483647}

	for _, seed := range seeds {
		a := New(seed)
		b := New(seed)
		for i := 0; i < 1000; i++ {
			va, vb := a.Float(), b.Float()
			if va != vb {
				t.Fatalf("seed %d divergiu na amostra %d: %v != %v", seed, i, va, vb)
			}
		}
	}
}

func TestFloatRange(t *testing.T) {
	s := New(42)
	for i := 0; i < 10000; i++ {
		v := s.Float()
		if v < 0 || v >= 1 {
			t.Fatalf("Float() fora de [0,1) na amostra %d: %v", i, v)
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)
	same := 0
	for i := 0; i < 100; i++ {
		if a.Float() == b.Float() {
			same++
		}
	}
	if same == 100 {
		t.Fatal("seeds diferentes produziram sequências idênticas")
	}
}

func TestIntN(t *testing.T) {
	s := New(7)
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		v := s.IntN(3)
		if v < 0 || v >= 3 {
			t.Fatalf("IntN(3) fora de [0,3): %d", v)
		}
		seen[v] = true
	}
	if len(seen) != 3 {
		t.Errorf("IntN(3) não cobriu todos os valores em 1000 amostras: %v", seen)
	}
}

func TestRange(t *testing.T) {
	s := New(99)
	for i := 0; i < 1000; i++ {
		v := s.Range(-2.5, 2.5)
		if v < -2.5 || v >= 2.5 {
			t.Fatalf("Range(-2.5, 2.5) fora do intervalo: %v", v)
		}
	}
}
