// Package latency provides wall-clock measurement helpers for profiling
// submissions and scenario runs. Nothing here touches book semantics.
package latency

import "time"

// Timer measures the interval between Start and Stop.
type Timer struct {
	start time.Time
	end   time.Time
}

func (t *Timer) Start() {
	t.start = time.Now()
}

func (t *Timer) Stop() {
	t.end = time.Now()
}

func (t *Timer) Elapsed() time.Duration {
	return t.end.Sub(t.start)
}

func (t *Timer) Nanoseconds() float64 {
	return float64(t.Elapsed().Nanoseconds())
}

func (t *Timer) Microseconds() float64 {
	return float64(t.Elapsed().Nanoseconds()) / 1e3
}

func (t *Timer) Milliseconds() float64 {
	return float64(t.Elapsed().Nanoseconds()) / 1e6
}

// Measure runs fn once and returns its elapsed wall time.
func Measure(fn func()) time.Duration {
	start := time.Now()
	fn()
	return time.Since(start)
}

// Benchmark runs fn iterations times and returns the total elapsed wall
// time across all runs.
func Benchmark(fn func(), iterations int) time.Duration {
	start := time.Now()
	for i := 0; i < iterations; i++ {
		fn()
	}
	return time.Since(start)
}
