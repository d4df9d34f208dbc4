package graph

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
	"github.com/graphql-go/graphql/language/source"
)

// Selection is one requested field with its arguments and nested
// sub-selection. Aliases and fragments are not supported.
type Selection struct {
	Name      string
	Arguments Arguments
	Children  []Selection
}

// Operation is a parsed request: a query or mutation plus its root
// selections.
type Operation struct {
	Kind       string // "query" or "mutation"
	Name       string
	Selections []Selection
}

// ParseRequest turns GraphQL query text into a selection tree, with
// variable references already substituted from the request's variables
// map.
func ParseRequest(query, operationName string, variables map[string]any) (*Operation, error) {
	doc, err := parser.Parse(parser.ParseParams{
		Source: source.NewSource(&source.Source{
			Body: []byte(query),
			Name: "GraphQL request",
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("parse query: %w", err)
	}

	var op *ast.OperationDefinition
	for _, def := range doc.Definitions {
		o, ok := def.(*ast.OperationDefinition)
		if !ok {
			return nil, errors.New("fragments are not supported")
		}
		if operationName == "" || (o.Name != nil && o.Name.Value == operationName) {
			op = o
			break
		}
	}
	if op == nil {
		if operationName != "" {
			return nil, fmt.Errorf("operation %q not found", operationName)
		}
		return nil, errors.New("no operation in query")
	}

	selections, err := convertSelectionSet(op.SelectionSet, variables)
	if err != nil {
		return nil, err
	}
	if len(selections) == 0 {
		return nil, errors.New("operation has no selections")
	}

	name := ""
	if op.Name != nil {
		name = op.Name.Value
	}
	return &Operation{
		Kind:       op.Operation,
		Name:       name,
		Selections: selections,
	}, nil
}

func convertSelectionSet(set *ast.SelectionSet, variables map[string]any) ([]Selection, error) {
	if set == nil {
		return nil, nil
	}
	out := make([]Selection, 0, len(set.Selections))
	for _, sel := range set.Selections {
		field, ok := sel.(*ast.Field)
		if !ok {
			return nil, errors.New("fragments are not supported")
		}
		args, err := convertArguments(field.Arguments, variables)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name.Value, err)
		}
		children, err := convertSelectionSet(field.GetSelectionSet(), variables)
		if err != nil {
			return nil, err
		}
		out = append(out, Selection{
			Name:      field.Name.Value,
			Arguments: args,
			Children:  children,
		})
	}
	return out, nil
}

func convertArguments(args []*ast.Argument, variables map[string]any) (Arguments, error) {
	if len(args) == 0 {
		return nil, nil
	}
	out := make(Arguments, len(args))
	for _, arg := range args {
		value, err := literalValue(arg.Value, variables)
		if err != nil {
			return nil, fmt.Errorf("argument %s: %w", arg.Name.Value, err)
		}
		out[arg.Name.Value] = value
	}
	return out, nil
}

func literalValue(value ast.Value, variables map[string]any) (any, error) {
	switch v := value.(type) {
	case *ast.Variable:
		name := v.Name.Value
		resolved, ok := variables[name]
		if !ok {
			return nil, fmt.Errorf("variable $%s not provided", name)
		}
		return resolved, nil
	case *ast.IntValue:
		n, err := strconv.Atoi(v.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid int literal %q", v.Value)
		}
		return n, nil
	case *ast.FloatValue:
		f, err := strconv.ParseFloat(v.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float literal %q", v.Value)
		}
		return f, nil
	case *ast.StringValue:
		return v.Value, nil
	case *ast.BooleanValue:
		return v.Value, nil
	case *ast.EnumValue:
		return v.Value, nil
	case *ast.ListValue:
		items := make([]any, 0, len(v.Values))
		for _, item := range v.Values {
			converted, err := literalValue(item, variables)
			if err != nil {
				return nil, err
			}
			items = append(items, converted)
		}
		return items, nil
	case *ast.ObjectValue:
		obj := make(map[string]any, len(v.Fields))
		for _, field := range v.Fields {
			converted, err := literalValue(field.Value, variables)
			if err != nil {
				return nil, err
			}
			obj[field.Name.Value] = converted
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported value kind %s", value.GetKind())
	}
}
