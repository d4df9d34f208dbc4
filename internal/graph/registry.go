package graph

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"sync"
)

// Resolver produces the value of one field from its parent entity.
// It returns a scalar, a single entity (possibly nil) or a slice of
// entities; relational resolvers issue exactly one store fetch.
type Resolver func(ctx context.Context, parent any, args Arguments) (any, error)

// Registry maps graph type name -> field name -> resolver, and binds
// entity Go types to their graph type names so the engine can pick the
// right field table for a resolved value.
type Registry struct {
	mu     sync.RWMutex
	fields map[string]map[string]Resolver
	names  map[reflect.Type]string
}

func NewRegistry() *Registry {
	return &Registry{
		fields: make(map[string]map[string]Resolver),
		names:  make(map[reflect.Type]string),
	}
}

// Bind associates an entity type with a graph type name. The model is
// passed by value; pointers resolved by the engine are dereferenced
// before lookup.
func (r *Registry) Bind(model any, typeName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names[reflect.TypeOf(model)] = typeName
	if _, ok := r.fields[typeName]; !ok {
		r.fields[typeName] = make(map[string]Resolver)
	}
}

// Register adds a field resolver under a graph type.
func (r *Registry) Register(typeName, field string, resolver Resolver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.fields[typeName]; !ok {
		r.fields[typeName] = make(map[string]Resolver)
	}
	r.fields[typeName][field] = resolver
}

func (r *Registry) resolver(typeName, field string) (Resolver, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	resolver, ok := r.fields[typeName][field]
	return resolver, ok
}

func (r *Registry) typeName(t reflect.Type) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.names[t]
	return name, ok
}

// Field adapts a resolver written against a concrete parent type. The
// resolver body never sees an untyped record; a mismatched parent is a
// registration bug and surfaces as an error.
func Field[P any](fn func(ctx context.Context, parent P, args Arguments) (any, error)) Resolver {
	return func(ctx context.Context, parent any, args Arguments) (any, error) {
		p, ok := parent.(P)
		if !ok {
			var zero P
			return nil, fmt.Errorf("resolver expects parent %T, got %T", zero, parent)
		}
		return fn(ctx, p, args)
	}
}

// Root adapts a root-level resolver, which has no parent entity.
func Root(fn func(ctx context.Context, args Arguments) (any, error)) Resolver {
	return func(ctx context.Context, _ any, args Arguments) (any, error) {
		return fn(ctx, args)
	}
}

// Arguments holds a field's caller-supplied arguments. Values come
// either from query literals or from the request's variables map, so
// numbers may arrive as int (literal) or float64 (JSON variable).
type Arguments map[string]any

func (a Arguments) String(key string) (string, error) {
	value, ok := a[key]
	if !ok || value == nil {
		return "", fmt.Errorf("argument %q is required", key)
	}
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("argument %q must be a string, got %T", key, value)
	}
	return s, nil
}

func (a Arguments) OptionalString(key string) (*string, error) {
	value, ok := a[key]
	if !ok || value == nil {
		return nil, nil
	}
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("argument %q must be a string, got %T", key, value)
	}
	return &s, nil
}

func (a Arguments) OptionalBool(key string) (*bool, error) {
	value, ok := a[key]
	if !ok || value == nil {
		return nil, nil
	}
	b, ok := value.(bool)
	if !ok {
		return nil, fmt.Errorf("argument %q must be a boolean, got %T", key, value)
	}
	return &b, nil
}

// ID reads an identifier argument. Identifiers are opaque strings at
// the boundary but numeric keys in the store, so string, int and
// float64 encodings are all accepted.
func (a Arguments) ID(key string) (int64, error) {
	value, ok := a[key]
	if !ok || value == nil {
		return 0, fmt.Errorf("argument %q is required", key)
	}
	return coerceID(key, value)
}

func (a Arguments) OptionalID(key string) (*int64, error) {
	value, ok := a[key]
	if !ok || value == nil {
		return nil, nil
	}
	id, err := coerceID(key, value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func coerceID(key string, value any) (int64, error) {
	switch v := value.(type) {
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("argument %q is not a valid id: %q", key, v)
		}
		return id, nil
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("argument %q is not a valid id: %T", key, value)
	}
}
