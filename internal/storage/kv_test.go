// ABOUTME: Conformance tests for key-value backends
// ABOUTME: Runs the same get/set/remove suite against every local backend

package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backendFactory func(t *testing.T, dir string) KV

func backends() map[string]backendFactory {
	return map[string]backendFactory{
		"memory": func(t *testing.T, dir string) KV {
			return NewMemoryKV()
		},
		"bolt": func(t *testing.T, dir string) KV {
			kv, err := NewBoltKV(filepath.Join(dir, "reel.db"))
			require.NoError(t, err)
			return kv
		},
		"badger": func(t *testing.T, dir string) KV {
			kv, err := NewBadgerKV(filepath.Join(dir, "badger"))
			require.NoError(t, err)
			return kv
		},
		"sqlite": func(t *testing.T, dir string) KV {
			kv, err := NewSQLiteKV(filepath.Join(dir, "reel.sqlite"))
			require.NoError(t, err)
			return kv
		},
	}
}

func TestKV_Conformance(t *testing.T) {
	for name, factory := range backends() {
		t.Run(name, func(t *testing.T) {
			kv := factory(t, t.TempDir())
			t.Cleanup(func() { _ = kv.Close() })

			_, err := kv.Get("movieapi.liked")
			assert.ErrorIs(t, err, ErrNotFound, "absent slot")

			require.NoError(t, kv.Set("movieapi.liked", []byte(`[{"id":1}]`)))
			got, err := kv.Get("movieapi.liked")
			require.NoError(t, err)
			assert.Equal(t, `[{"id":1}]`, string(got))

			require.NoError(t, kv.Set("movieapi.liked", []byte(`[]`)))
			got, err = kv.Get("movieapi.liked")
			require.NoError(t, err)
			assert.Equal(t, `[]`, string(got), "overwrite")

			// Slots are independent.
			require.NoError(t, kv.Set("movieapi.ratings", []byte(`[{"id":2}]`)))
			got, err = kv.Get("movieapi.liked")
			require.NoError(t, err)
			assert.Equal(t, `[]`, string(got))

			require.NoError(t, kv.Remove("movieapi.liked"))
			_, err = kv.Get("movieapi.liked")
			assert.ErrorIs(t, err, ErrNotFound, "removed slot")

			assert.NoError(t, kv.Remove("never-written"), "removing absent slot")
		})
	}
}

func TestKV_PersistsAcrossReopen(t *testing.T) {
	for name, factory := range backends() {
		if name == "memory" {
			continue
		}
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()

			kv := factory(t, dir)
			require.NoError(t, kv.Set("movieapi.watched", []byte(`[{"id":42}]`)))
			require.NoError(t, kv.Close())

			reopened := factory(t, dir)
			t.Cleanup(func() { _ = reopened.Close() })

			got, err := reopened.Get("movieapi.watched")
			require.NoError(t, err)
			assert.Equal(t, `[{"id":42}]`, string(got))
		})
	}
}

func TestMemoryKV_ReturnsCopies(t *testing.T) {
	kv := NewMemoryKV()
	value := []byte("abc")
	require.NoError(t, kv.Set("k", value))
	value[0] = 'z'

	got, err := kv.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[0] = 'y'
	again, _ := kv.Get("k")
	assert.Equal(t, "abc", string(again))
}

func TestMemoryKV_FailureInjection(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set("k", []byte("v")))

	quota := errors.New("quota exceeded")
	kv.FailWrites(quota)
	assert.ErrorIs(t, kv.Set("k", []byte("w")), quota)
	assert.ErrorIs(t, kv.Remove("k"), quota)

	kv.FailWrites(nil)
	kv.FailReads(ErrUnavailable)
	_, err := kv.Get("k")
	assert.ErrorIs(t, err, ErrUnavailable)

	kv.FailReads(nil)
	got, err := kv.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestMemoryKV_Closed(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Close())

	_, err := kv.Get("k")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, kv.Set("k", nil), ErrClosed)
}

func TestNewSQLiteKV_CreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	nestedDir := filepath.Join(tmpDir, "nested", "path")

	kv, err := NewSQLiteKV(filepath.Join(nestedDir, "reel.sqlite"))
	if err != nil {
		t.Fatalf("failed to create db: %v", err)
	}
	defer kv.Close()

	if _, err := os.Stat(nestedDir); os.IsNotExist(err) {
		t.Error("nested directory was not created")
	}
}

func TestNewBoltKV_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "reel.db")

	kv, err := NewBoltKV(path)
	if err != nil {
		t.Fatalf("failed to create db: %v", err)
	}
	defer kv.Close()

	if kv.Path() != path {
		t.Errorf("expected path %s, got %s", path, kv.Path())
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}
