package mdpress

// Notes:
// - Converters are built with a mock PDF backend through the pool's options,
//   so no browser is started.
// - newFn is swapped to exercise creation failures.

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"testing"
	"time"
)

// Compile-time interface check.
var _ interface {
	Acquire(context.Context) (*Converter, error)
	Release(*Converter)
	Size() int
	Close() error
} = (*ConverterPool)(nil)

func newTestPool(n int) *ConverterPool {
	return NewConverterPool(n,
		withPDFConverter(&mockPDFConverter{}),
		withPageCounter(func([]byte) (int, error) { return 1, nil }),
	)
}

// ---------------------------------------------------------------------------
// ResolvePoolSize
// ---------------------------------------------------------------------------

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	gomaxprocs := runtime.GOMAXPROCS(0)
	auto := min(max(gomaxprocs/cpuDivisor, MinPoolSize), MaxPoolSize)

	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{name: "explicit takes priority", workers: 4, want: 4},
		{name: "explicit=1 for sequential", workers: 1, want: 1},
		{name: "explicit can exceed max", workers: 16, want: 16},
		{name: "zero uses auto calculation", workers: 0, want: auto},
		{name: "negative uses auto calculation", workers: -5, want: auto},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ResolvePoolSize(tt.workers); got != tt.want {
				t.Errorf("ResolvePoolSize(%d) = %d, want %d", tt.workers, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// ConverterPool
// ---------------------------------------------------------------------------

func TestConverterPool_Size(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		size int
		want int
	}{
		{"size 1", 1, 1},
		{"size 4", 4, 4},
		{"size 0 becomes 1", 0, 1},
		{"negative becomes 1", -1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pool := newTestPool(tt.size)
			defer pool.Close()

			if got := pool.Size(); got != tt.want {
				t.Errorf("Size() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestConverterPool_AcquireRelease(t *testing.T) {
	t.Parallel()

	pool := newTestPool(2)
	defer pool.Close()
	ctx := context.Background()

	c1, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	c2, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if c1 == c2 {
		t.Error("expected different converter instances")
	}

	pool.Release(c1)
	c3, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if c3 != c1 {
		t.Error("expected to get back released converter")
	}

	pool.Release(c2)
	pool.Release(c3)
}

func TestConverterPool_AcquireConverts(t *testing.T) {
	t.Parallel()

	pool := newTestPool(1)
	defer pool.Close()

	conv, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer pool.Release(conv)

	res, err := conv.Convert(context.Background(), Input{Markdown: "# pooled"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if len(res.PDF) == 0 {
		t.Error("expected PDF bytes")
	}
}

func TestConverterPool_AcquireBlocksUntilContextDone(t *testing.T) {
	t.Parallel()

	pool := newTestPool(1)
	defer pool.Close()

	conv, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer pool.Release(conv)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = pool.Acquire(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want context.DeadlineExceeded", err)
	}
}

func TestConverterPool_CreationFailure(t *testing.T) {
	t.Parallel()

	pool := newTestPool(1)
	defer pool.Close()

	boom := errors.New("boom")
	pool.newFn = func(...Option) (*Converter, error) { return nil, boom }

	if _, err := pool.Acquire(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("error = %v, want boom", err)
	}

	// The failed slot is freed for the next attempt.
	pool.newFn = NewConverter
	conv, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() after failure error = %v", err)
	}
	pool.Release(conv)
}

func TestConverterPool_Close(t *testing.T) {
	t.Parallel()

	t.Run("acquire after close", func(t *testing.T) {
		t.Parallel()

		pool := newTestPool(2)
		conv, err := pool.Acquire(context.Background())
		if err != nil {
			t.Fatalf("Acquire() error = %v", err)
		}
		pool.Release(conv)

		if err := pool.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
		if _, err := pool.Acquire(context.Background()); !errors.Is(err, ErrPoolClosed) {
			t.Errorf("error = %v, want ErrPoolClosed", err)
		}
	})

	t.Run("release after close is a no-op", func(t *testing.T) {
		t.Parallel()

		pool := newTestPool(1)
		conv, err := pool.Acquire(context.Background())
		if err != nil {
			t.Fatalf("Acquire() error = %v", err)
		}
		_ = pool.Close()
		pool.Release(conv)
	})

	t.Run("release nil is a no-op", func(t *testing.T) {
		t.Parallel()

		pool := newTestPool(1)
		defer pool.Close()
		pool.Release(nil)
	})

	t.Run("double close", func(t *testing.T) {
		t.Parallel()

		pool := newTestPool(1)
		if err := pool.Close(); err != nil {
			t.Errorf("first Close() error = %v", err)
		}
		if err := pool.Close(); err != nil {
			t.Errorf("second Close() error = %v", err)
		}
	})

	t.Run("aggregates close errors", func(t *testing.T) {
		t.Parallel()

		closeErr := errors.New("browser stuck")
		pool := NewConverterPool(2, withPDFConverter(&mockPDFConverter{closeErr: closeErr}))
		ctx := context.Background()
		c1, _ := pool.Acquire(ctx)
		c2, _ := pool.Acquire(ctx)
		pool.Release(c1)
		pool.Release(c2)

		if err := pool.Close(); !errors.Is(err, closeErr) {
			t.Errorf("Close() error = %v, want %v", err, closeErr)
		}
	})
}

// TestConverterPool_HighContention verifies the pool remains deadlock-free
// with many goroutines cycling through a small pool.
func TestConverterPool_HighContention(t *testing.T) {
	t.Parallel()

	pool := newTestPool(2)
	defer pool.Close()

	var wg sync.WaitGroup
	goroutines := 50
	iterations := 10

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				conv, err := pool.Acquire(context.Background())
				if err != nil {
					t.Errorf("Acquire() error = %v", err)
					return
				}
				time.Sleep(time.Duration(j%3) * time.Millisecond)
				pool.Release(conv)
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	timer := time.NewTimer(30 * time.Second)
	defer timer.Stop()

	select {
	case <-done:
	case <-timer.C:
		t.Fatal("high contention test timed out - possible deadlock")
	}
}
