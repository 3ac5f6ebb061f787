package parallel

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestFor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.NumWorkers = 4

	var counter int64
	seen := make([]int32, 1000)

	For(len(seen), func(i int) {
		atomic.AddInt64(&counter, 1)
		atomic.AddInt32(&seen[i], 1)
	}, cfg)

	if counter != int64(len(seen)) {
		t.Errorf("Expected %d, got %d", len(seen), counter)
	}
	for i, n := range seen {
		if n != 1 {
			t.Fatalf("index %d visited %d times", i, n)
		}
	}
}

func TestFor_Sequential(t *testing.T) {
	var order []int
	For(5, func(i int) {
		order = append(order, i)
	}, Sequential())

	for i, got := range order {
		if got != i {
			t.Fatalf("order = %v, want ascending", order)
		}
	}
	if len(order) != 5 {
		t.Errorf("Expected 5 calls, got %d", len(order))
	}
}

func TestFor_ZeroWorkers(t *testing.T) {
	cfg := Config{Enabled: true}

	var counter int64
	For(10, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != 10 {
		t.Errorf("Expected 10, got %d", counter)
	}
}

func TestForGrid(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 3, MinChunkSize: 1}

	rows, cols := 4, 5
	var results [4][5]bool
	err := ForGrid(rows, cols, func(i, j int) error {
		results[i][j] = true
		return nil
	}, cfg)
	if err != nil {
		t.Fatalf("ForGrid: %v", err)
	}

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if !results[i][j] {
				t.Errorf("Missing result at [%d][%d]", i, j)
			}
		}
	}
}

func TestForGrid_FirstError(t *testing.T) {
	errA, errB := errors.New("a"), errors.New("b")
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}

	err := ForGrid(3, 3, func(i, j int) error {
		switch {
		case i == 1 && j == 2:
			return errA
		case i == 2 && j == 0:
			return errB
		}
		return nil
	}, cfg)
	if !errors.Is(err, errA) {
		t.Errorf("err = %v, want %v", err, errA)
	}
}

func BenchmarkFor(b *testing.B) {
	cfg := DefaultConfig()
	n := 10000

	b.Run("parallel", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var sum int64
			For(n, func(i int) {
				atomic.AddInt64(&sum, int64(i))
			}, cfg)
		}
	})

	b.Run("sequential", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var sum int64
			For(n, func(i int) {
				atomic.AddInt64(&sum, int64(i))
			}, Sequential())
		}
	})
}
