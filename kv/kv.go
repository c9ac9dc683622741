// Package kv provides the small string key-value stores that back per-visitor
// state such as the admin flag and the shopping cart.
package kv

import (
	"strings"
	"sync"
)

// Storage is a flat string key-value store. A missing key is reported through
// the ok return value, not as an error.
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

// Memory is an in-process Storage. The zero value is ready to use.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	m.mu.Unlock()
	return nil
}

func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	delete(m.values, key)
	m.mu.Unlock()
	return nil
}

// Prefixed scopes every key of an underlying Storage under a fixed prefix.
type Prefixed struct {
	prefix string
	inner  Storage
}

// WithPrefix returns a Storage that stores key as prefix+key in inner.
func WithPrefix(inner Storage, prefix string) *Prefixed {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &Prefixed{prefix: prefix, inner: inner}
}

func (p *Prefixed) Get(key string) (string, bool, error) {
	return p.inner.Get(p.prefix + key)
}

func (p *Prefixed) Set(key, value string) error {
	return p.inner.Set(p.prefix+key, value)
}

func (p *Prefixed) Remove(key string) error {
	return p.inner.Remove(p.prefix + key)
}
