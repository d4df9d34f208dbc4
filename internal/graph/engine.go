package graph

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// Engine walks a selection tree depth-first against the resolver
// registry. Result maps mirror the requested shape exactly: list
// fields are never null, optional single-entity fields are null when
// no row matches.
type Engine struct {
	registry *Registry
}

func NewEngine(registry *Registry) *Engine {
	return &Engine{registry: registry}
}

// Execute resolves a parsed operation. Root fields run sequentially so
// mutations never interleave. List elements below the root resolve
// concurrently with index-stable assembly, so fetch completion order
// never changes result order.
func (e *Engine) Execute(ctx context.Context, op *Operation) (map[string]any, error) {
	var root string
	switch op.Kind {
	case "query":
		root = "Query"
	case "mutation":
		root = "Mutation"
	default:
		return nil, fmt.Errorf("unsupported operation %q", op.Kind)
	}

	out := make(map[string]any, len(op.Selections))
	for _, sel := range op.Selections {
		value, err := e.resolveField(ctx, root, nil, sel, nil)
		if err != nil {
			return nil, err
		}
		out[sel.Name] = value
	}
	return out, nil
}

func (e *Engine) resolveField(ctx context.Context, typeName string, parent any, sel Selection, path []string) (any, error) {
	fieldPath := appendPath(path, sel.Name)

	resolver, ok := e.registry.resolver(typeName, sel.Name)
	if !ok {
		return nil, fieldErr(fieldPath, fmt.Errorf("unknown field %q on type %s", sel.Name, typeName))
	}

	value, err := resolver(ctx, parent, sel.Arguments)
	if err != nil {
		var fe *FieldError
		if errors.As(err, &fe) {
			return nil, err
		}
		return nil, fieldErr(fieldPath, err)
	}

	return e.complete(ctx, value, sel, fieldPath)
}

// complete shapes a resolved value: entities recurse into their own
// sub-selection, slices complete each element independently, anything
// else is copied through as a scalar.
func (e *Engine) complete(ctx context.Context, value any, sel Selection, path []string) (any, error) {
	if value == nil {
		return nil, nil
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}

	if typeName, ok := e.registry.typeName(rv.Type()); ok {
		if len(sel.Children) == 0 {
			return nil, fieldErr(path, fmt.Errorf("field of type %s requires a selection of subfields", typeName))
		}
		return e.resolveObject(ctx, typeName, rv.Interface(), sel.Children, path)
	}

	if rv.Kind() == reflect.Slice {
		out := make([]any, rv.Len())
		g, gctx := errgroup.WithContext(ctx)
		for i := 0; i < rv.Len(); i++ {
			i := i
			elem := rv.Index(i).Interface()
			elemPath := appendPath(path, strconv.Itoa(i))
			g.Go(func() error {
				completed, err := e.complete(gctx, elem, sel, elemPath)
				if err != nil {
					return err
				}
				out[i] = completed
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return out, nil
	}

	if len(sel.Children) > 0 {
		return nil, fieldErr(path, errors.New("scalar field cannot have a selection of subfields"))
	}
	return rv.Interface(), nil
}

func (e *Engine) resolveObject(ctx context.Context, typeName string, entity any, children []Selection, path []string) (map[string]any, error) {
	out := make(map[string]any, len(children))
	for _, child := range children {
		value, err := e.resolveField(ctx, typeName, entity, child, path)
		if err != nil {
			return nil, err
		}
		out[child.Name] = value
	}
	return out, nil
}

// appendPath copies before appending; paths for sibling elements are
// built concurrently and must not share backing arrays.
func appendPath(path []string, segment string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, segment)
}
