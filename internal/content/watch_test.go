package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatch_ReloadsOnChangeAndStopsCleanly(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	file := filepath.Join(dir, "tiny.yaml")
	require.NoError(t, os.WriteFile(file, []byte(minimalYAML), 0o644))

	type result struct {
		cat *Catalog
		err error
	}
	results := make(chan result, 8)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, dir, func(c *Catalog, err error) {
			select {
			case results <- result{c, err}:
			default:
			}
		}, WithDebounce(20*time.Millisecond))
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(file, []byte("category: ["), 0o644))

	// An editor save can produce several events; wait for the first reload
	// that matches rather than the first reload.
	waitFor := func(what string, ok func(result) bool) result {
		t.Helper()
		deadline := time.After(3 * time.Second)
		for {
			select {
			case r := <-results:
				if ok(r) {
					return r
				}
			case <-deadline:
				t.Fatalf("no reload %s", what)
				return result{}
			}
		}
	}

	waitFor("after breaking the file", func(r result) bool { return r.err != nil })

	require.NoError(t, os.WriteFile(file, []byte(minimalYAML), 0o644))
	r := waitFor("after fixing the file", func(r result) bool { return r.err == nil })
	assert.Equal(t, 1, r.cat.Len())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatch_MissingDir(t *testing.T) {
	defer goleak.VerifyNone(t)

	err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope"), func(*Catalog, error) {})
	assert.Error(t, err)
}
