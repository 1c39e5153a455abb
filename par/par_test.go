// Copyright 2025 go-pstl Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package par_test

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-pstl/par"
	"github.com/ajroetker/go-pstl/workerpool"
)

type namedExecutor struct {
	name string
	ex   *par.Executor
}

// executors returns executors over every scheduler, with grain 1 so that
// even tiny inputs are split into many leaves.
func executors(t *testing.T) []namedExecutor {
	t.Helper()
	pool := workerpool.New(4)
	t.Cleanup(pool.Close)
	return []namedExecutor{
		{"serial", par.NewExecutor(par.Serial, 1)},
		{"goroutines-1", par.NewExecutor(par.NewGoroutines(1), 1)},
		{"goroutines-3", par.NewExecutor(par.NewGoroutines(3), 1)},
		{"goroutines-8", par.NewExecutor(par.NewGoroutines(8), 1)},
		{"pool-4", par.NewExecutor(pool, 1)},
	}
}

func TestForCoversRangeOnce(t *testing.T) {
	ctx := context.Background()
	for _, e := range executors(t) {
		for _, n := range []int{0, 1, 2, 7, 100, 1000} {
			t.Run(fmt.Sprintf("%s/n=%d", e.name, n), func(t *testing.T) {
				hits := make([]int32, n)
				err := par.For(ctx, e.ex, 0, n, func(i, j int) {
					for k := i; k < j; k++ {
						atomic.AddInt32(&hits[k], 1)
					}
				})
				require.NoError(t, err)
				for k, h := range hits {
					if h != 1 {
						t.Fatalf("index %d visited %d times", k, h)
					}
				}
			})
		}
	}
}

func TestReduceKeepsOrder(t *testing.T) {
	ctx := context.Background()
	for _, e := range executors(t) {
		t.Run(e.name, func(t *testing.T) {
			n := 300
			var want strings.Builder
			for i := range n {
				want.WriteString(strconv.Itoa(i % 10))
			}
			// String concatenation is associative but not commutative.
			got, err := par.Reduce(ctx, e.ex, 0, n, "",
				func(i, j int, acc string) string {
					for k := i; k < j; k++ {
						acc += strconv.Itoa(k % 10)
					}
					return acc
				},
				func(a, b string) string { return a + b },
			)
			require.NoError(t, err)
			assert.Equal(t, want.String(), got)
		})
	}
}

type tile struct {
	start, length, offset int
}

func TestStrictScanTiling(t *testing.T) {
	ctx := context.Background()
	for _, e := range executors(t) {
		for n := 0; n <= 130; n++ {
			data := make([]int, n)
			for i := range data {
				data[i] = i%7 + 1
			}

			var mu sync.Mutex
			var tiles []tile
			sums := map[int]int{}
			apexCalls := 0
			apex := -1

			err := par.StrictScan(ctx, e.ex, n, 100,
				func(i, length int) int {
					s := 0
					for _, v := range data[i : i+length] {
						s += v
					}
					mu.Lock()
					sums[i] = s
					mu.Unlock()
					return s
				},
				func(a, b int) int { return a + b },
				func(i, length, offset int) {
					mu.Lock()
					tiles = append(tiles, tile{i, length, offset})
					mu.Unlock()
				},
				func(total int) {
					apexCalls++
					apex = total
				},
			)
			require.NoError(t, err)

			slices.SortFunc(tiles, func(a, b tile) int { return cmp.Compare(a.start, b.start) })
			next, prefix, total := 0, 100, 100
			for _, v := range data {
				total += v
			}
			for _, tl := range tiles {
				if tl.start != next {
					t.Fatalf("%s n=%d: tile starts at %d, want %d", e.name, n, tl.start, next)
				}
				if tl.offset != prefix {
					t.Fatalf("%s n=%d: tile %d offset = %d, want %d", e.name, n, tl.start, tl.offset, prefix)
				}
				next += tl.length
				prefix += sums[tl.start]
			}
			if next != n {
				t.Fatalf("%s n=%d: tiles cover %d elements", e.name, n, next)
			}
			if apexCalls != 1 || apex != total {
				t.Fatalf("%s n=%d: apex = %d (%d calls), want %d", e.name, n, apex, apexCalls, total)
			}
		}
	}
}

func TestOr(t *testing.T) {
	ctx := context.Background()
	nonzero := func(s []int) func(i, j int) bool {
		return func(i, j int) bool {
			return slices.ContainsFunc(s[i:j], func(v int) bool { return v != 0 })
		}
	}
	for _, e := range executors(t) {
		t.Run(e.name, func(t *testing.T) {
			hit := []int{0, 0, 0, 1, 0}
			got, err := par.Or(ctx, e.ex, 0, len(hit), nonzero(hit))
			require.NoError(t, err)
			assert.True(t, got)

			miss := []int{0, 0, 0, 0, 0}
			got, err = par.Or(ctx, e.ex, 0, len(miss), nonzero(miss))
			require.NoError(t, err)
			assert.False(t, got)
		})
	}
}

func TestFirstLeftmost(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(3))
	for _, e := range executors(t) {
		t.Run(e.name, func(t *testing.T) {
			for range 50 {
				n := rng.Intn(500)
				s := make([]int, n)
				for i := range s {
					s[i] = rng.Intn(50)
				}
				want := slices.Index(s, 0)
				if want < 0 {
					want = n
				}
				got, err := par.First(ctx, e.ex, 0, n, func(i, j int) int {
					if k := slices.Index(s[i:j], 0); k >= 0 {
						return i + k
					}
					return j
				})
				require.NoError(t, err)
				require.Equal(t, want, got)
			}
		})
	}
}

type keyed struct {
	key, index int
}

func TestStableSortKeepsTies(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(4))
	byKey := func(a, b keyed) int { return cmp.Compare(a.key, b.key) }
	for _, e := range executors(t) {
		for _, n := range []int{0, 1, 2, 3, 17, 256, 1000} {
			data := make([]keyed, n)
			for i := range data {
				data[i] = keyed{key: rng.Intn(10), index: i}
			}
			want := slices.Clone(data)
			slices.SortStableFunc(want, byKey)

			require.NoError(t, par.StableSort(ctx, e.ex, data, byKey, nil))
			require.Equal(t, want, data, "%s n=%d", e.name, n)
		}
	}
}

func TestMergeStable(t *testing.T) {
	ctx := context.Background()
	byKey := func(a, b keyed) int { return cmp.Compare(a.key, b.key) }
	for _, e := range executors(t) {
		a := make([]keyed, 40)
		b := make([]keyed, 25)
		for i := range a {
			a[i] = keyed{key: i / 4, index: i}
		}
		for i := range b {
			b[i] = keyed{key: i / 2, index: 100 + i}
		}
		want := make([]keyed, len(a)+len(b))
		par.SerialMoveMerge(a, b, want, byKey)

		got := make([]keyed, len(a)+len(b))
		require.NoError(t, par.Merge(ctx, e.ex, a, b, got, byKey))
		require.Equal(t, want, got, e.name)

		for i := 1; i < len(got); i++ {
			if got[i-1].key == got[i].key && got[i-1].index > got[i].index {
				t.Fatalf("%s: tie order broken at %d", e.name, i)
			}
		}
	}
}

func TestPanicBecomesError(t *testing.T) {
	ctx := context.Background()
	for _, e := range executors(t) {
		t.Run(e.name, func(t *testing.T) {
			err := par.For(ctx, e.ex, 0, 100, func(i, j int) {
				if i <= 50 && 50 < j {
					panic("boom")
				}
			})
			var pe *par.PanicError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, "boom", pe.Value)
			assert.NotEmpty(t, pe.Stack)

			_, err = par.Reduce(ctx, e.ex, 0, 100, 0,
				func(i, j int, acc int) int { panic(errors.New("reduce failed")) },
				func(a, b int) int { return a + b })
			require.ErrorAs(t, err, &pe)
		})
	}
}

type closedScheduler struct{}

func (closedScheduler) Workers() int                        { return 2 }
func (closedScheduler) Join(left, right func() error) error { return par.Serial.Join(left, right) }
func (closedScheduler) Err() error                          { return errors.New("shut down") }

func TestUnavailableScheduler(t *testing.T) {
	ex := par.NewExecutor(closedScheduler{}, 1)
	called := false
	err := par.For(context.Background(), ex, 0, 10, func(i, j int) { called = true })
	require.ErrorIs(t, err, par.ErrUnavailable)
	assert.False(t, called)
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, e := range executors(t) {
		called := false
		err := par.For(ctx, e.ex, 0, 10, func(i, j int) { called = true })
		require.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
	}
}

func TestExecutorDefaults(t *testing.T) {
	ex := par.NewExecutor(nil, 0)
	assert.Equal(t, par.DefaultGrain, ex.Grain())
	assert.Equal(t, 1, ex.Workers())
	assert.NoError(t, ex.Err())
}
