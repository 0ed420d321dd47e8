// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package syncx

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"go.astrophena.name/xmon/internal/testutil"
)

func TestLazy(t *testing.T) {
	t.Parallel()

	t.Run("computes once", func(t *testing.T) {
		var calls atomic.Int32
		var l Lazy[int]

		var wg sync.WaitGroup
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				l.Get(func() int {
					calls.Add(1)
					return 42
				})
			}()
		}
		wg.Wait()

		testutil.AssertEqual(t, l.Get(func() int { return 0 }), 42)
		testutil.AssertEqual(t, calls.Load(), int32(1))
	})

	t.Run("caches error", func(t *testing.T) {
		wantErr := errors.New("boom")
		var l Lazy[string]

		_, err := l.GetErr(func() (string, error) { return "", wantErr })
		if !errors.Is(err, wantErr) {
			t.Fatalf("want %v, got %v", wantErr, err)
		}

		// Subsequent calls must not recompute.
		val, err := l.GetErr(func() (string, error) { return "other", nil })
		testutil.AssertEqual(t, val, "")
		if !errors.Is(err, wantErr) {
			t.Fatalf("want %v, got %v", wantErr, err)
		}
	})
}
