package storage

import (
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/deskfolio/deskos/internal/shared/paths"
)

// ErrNotFound is returned by Get when no value is stored under the key
var ErrNotFound = errors.New("storage: key not found")

// KV is a string-keyed blob store
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// Driver names accepted by Open
const (
	DriverMemory = "memory"
	DriverFile   = "file"
)

// Open creates a store for the named driver
func Open(driver, root string) (KV, error) {
	switch driver {
	case DriverMemory, "":
		return NewMemory(), nil
	case DriverFile:
		return NewFile(root)
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", driver)
	}
}

// Namespaced prefixes every key of kv
type Namespaced struct {
	kv     KV
	prefix string
}

// WithPrefix scopes kv to keys below prefix
func WithPrefix(kv KV, prefix string) *Namespaced {
	return &Namespaced{kv: kv, prefix: prefix}
}

func (n *Namespaced) key(k string) string {
	return paths.Join(n.prefix, k)
}

// Get retrieves a value
func (n *Namespaced) Get(key string) ([]byte, error) {
	return n.kv.Get(n.key(key))
}

// Set stores a value
func (n *Namespaced) Set(key string, value []byte) error {
	return n.kv.Set(n.key(key), value)
}

// Delete removes a value
func (n *Namespaced) Delete(key string) error {
	return n.kv.Delete(n.key(key))
}

// GetJSON decodes the value under key into v
func GetJSON(kv KV, key string, v interface{}) error {
	data, err := kv.Get(key)
	if err != nil {
		return err
	}
	if err := sonic.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// SetJSON encodes v and stores it under key
func SetJSON(kv KV, key string, v interface{}) error {
	data, err := sonic.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return kv.Set(key, data)
}
