package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Store maps (session, logical key) pairs onto physical backend keys.
type Store struct {
	backend Backend
	prefix  string
	logger  *zap.Logger
	locks   *keyLocks
}

// NewStore wraps backend. prefix is prepended to every namespace, e.g. "neuroflow-".
func NewStore(backend Backend, prefix string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		backend: backend,
		prefix:  prefix,
		logger:  logger.Named("storage"),
		locks:   newKeyLocks(),
	}
}

func (s *Store) Backend() Backend { return s.backend }

// PhysicalKey returns prefix + namespace + "_" + key.
func (s *Store) PhysicalKey(sess Session, key string) (string, error) {
	if err := validateLogicalKey(key); err != nil {
		return "", err
	}
	return s.namespace(sess) + "_" + key, nil
}

func (s *Store) namespace(sess Session) string {
	return s.prefix + sess.Namespace()
}

func (s *Store) record(sess Session, key string, value []byte) (Record, error) {
	pk, err := s.PhysicalKey(sess, key)
	if err != nil {
		return Record{}, err
	}
	return Record{PhysicalKey: pk, Namespace: s.namespace(sess), LogicalKey: key, Value: value}, nil
}

// Sessions lists a session for every namespace under this store's prefix that holds data.
func (s *Store) Sessions(ctx context.Context) ([]Session, error) {
	namespaces, err := s.backend.Namespaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list namespaces: %w", err)
	}
	var out []Session
	for _, ns := range namespaces {
		id, ok := strings.CutPrefix(ns, s.prefix)
		if !ok {
			continue
		}
		if id == GuestNamespace {
			out = append(out, GuestSession())
			continue
		}
		sess, err := NewSession(id)
		if err != nil {
			s.logger.Warn("skipping unrecognised namespace", zap.String("namespace", ns))
			continue
		}
		out = append(out, sess)
	}
	return out, nil
}

type validator interface {
	Validate() error
}

// decode unmarshals raw into a T. Anything that does not decode or validate is reported as nil.
func decode[T any](s *Store, pk string, raw []byte) *T {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		s.logger.Warn("corrupt record treated as absent", zap.String("key", pk), zap.Error(err))
		return nil
	}
	if val, ok := any(v).(validator); ok {
		if err := val.Validate(); err != nil {
			s.logger.Warn("invalid record treated as absent", zap.String("key", pk), zap.Error(err))
			return nil
		}
	}
	return &v
}

// Get reads key for sess. It returns nil when the record is absent, corrupt, or fails validation.
// Only backend failures are returned as errors.
func Get[T any](ctx context.Context, s *Store, sess Session, key string) (*T, error) {
	pk, err := s.PhysicalKey(sess, key)
	if err != nil {
		return nil, err
	}
	raw, ok, err := s.backend.Load(ctx, pk)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", pk, err)
	}
	if !ok {
		return nil, nil
	}
	return decode[T](s, pk, raw), nil
}

// Put overwrites key for sess with value.
func Put[T any](ctx context.Context, s *Store, sess Session, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	rec, err := s.record(sess, key, raw)
	if err != nil {
		return err
	}
	unlock := s.locks.lock(rec.PhysicalKey)
	defer unlock()
	if err := s.backend.Save(ctx, rec); err != nil {
		return fmt.Errorf("failed to save %s: %w", rec.PhysicalKey, err)
	}
	return nil
}

// Update runs a read-modify-write cycle on key, serialized per physical key.
// fn receives nil when the record is absent or unreadable, and returns the value to store.
// An error from fn aborts the write and is returned unchanged.
func Update[T any](ctx context.Context, s *Store, sess Session, key string, fn func(cur *T) (T, error)) (T, error) {
	var result T
	pk, err := s.PhysicalKey(sess, key)
	if err != nil {
		return result, err
	}

	unlock := s.locks.lock(pk)
	defer unlock()

	err = s.backend.Atomic(ctx, pk, func(ctx context.Context, tx Tx) error {
		raw, ok, err := tx.Load(ctx, pk)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", pk, err)
		}
		var cur *T
		if ok {
			cur = decode[T](s, pk, raw)
		}
		next, err := fn(cur)
		if err != nil {
			return err
		}
		encoded, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", key, err)
		}
		if err := tx.Save(ctx, Record{PhysicalKey: pk, Namespace: s.namespace(sess), LogicalKey: key, Value: encoded}); err != nil {
			return fmt.Errorf("failed to save %s: %w", pk, err)
		}
		result = next
		return nil
	})
	return result, err
}

// keyLocks hands out one mutex per physical key and forgets it once nobody holds it.
type keyLocks struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func newKeyLocks() *keyLocks {
	return &keyLocks{locks: make(map[string]*refMutex)}
}

func (k *keyLocks) lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
