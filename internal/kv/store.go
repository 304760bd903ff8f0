// Package kv is the persistent key-value store used for small JSON values
// such as quiz results and recently played paths.
package kv

import (
	"context"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
)

var (
	// ErrEncode wraps failures to marshal a value before it is written.
	ErrEncode = errors.New("kv: encode value")
	// ErrDecode wraps failures to unmarshal a stored value. A decode error
	// is a load failure, not "no data yet".
	ErrDecode = errors.New("kv: decode value")
)

// Store is the raw byte-level contract. Missing keys are reported through
// the found flag and never as an error.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Put(ctx context.Context, key string, value []byte) error
	// Update runs a read-modify-write of one key atomically with respect to
	// other Update and Put calls on the same store.
	Update(ctx context.Context, key string, fn func(current []byte, found bool) ([]byte, error)) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// Load reads and decodes the value stored under key. found is false when
// the key has never been written.
func Load[T any](ctx context.Context, s Store, key string) (T, bool, error) {
	var zero T
	raw, found, err := s.Get(ctx, key)
	if err != nil {
		return zero, false, fmt.Errorf("loading %s: %w", key, err)
	}
	if !found {
		return zero, false, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return zero, false, fmt.Errorf("loading %s: %w: %v", key, ErrDecode, err)
	}
	return v, true, nil
}

// Save encodes value and writes it under key, replacing any previous value.
func Save[T any](ctx context.Context, s Store, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("saving %s: %w: %v", key, ErrEncode, err)
	}
	if err := s.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

// UpdateValue decodes the current value (zero value if missing), applies fn
// and stores the result, all inside one Store.Update.
func UpdateValue[T any](ctx context.Context, s Store, key string, fn func(current T, found bool) (T, error)) error {
	err := s.Update(ctx, key, func(raw []byte, found bool) ([]byte, error) {
		var cur T
		if found {
			if err := json.Unmarshal(raw, &cur); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrDecode, err)
			}
		}
		next, err := fn(cur, found)
		if err != nil {
			return nil, err
		}
		out, err := json.Marshal(next)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEncode, err)
		}
		return out, nil
	})
	if err != nil {
		return fmt.Errorf("updating %s: %w", key, err)
	}
	return nil
}

// Append adds item to the list stored under key. Concurrent appends to the
// same key never drop items.
func Append[T any](ctx context.Context, s Store, key string, item T) error {
	return UpdateValue(ctx, s, key, func(list []T, _ bool) ([]T, error) {
		return append(list, item), nil
	})
}
