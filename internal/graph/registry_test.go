package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldRejectsWrongParentType(t *testing.T) {
	resolver := Field(func(_ context.Context, w widget, _ Arguments) (any, error) {
		return w.Name, nil
	})

	_, err := resolver(context.Background(), "not a widget", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolver expects parent")

	value, err := resolver(context.Background(), widget{Name: "ok"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", value)
}

func TestArgumentsID(t *testing.T) {
	tests := []struct {
		name    string
		args    Arguments
		want    int64
		wantErr bool
	}{
		{name: "string id", args: Arguments{"id": "42"}, want: 42},
		{name: "int literal", args: Arguments{"id": 7}, want: 7},
		{name: "json number variable", args: Arguments{"id": float64(13)}, want: 13},
		{name: "missing", args: Arguments{}, wantErr: true},
		{name: "not numeric", args: Arguments{"id": "abc"}, wantErr: true},
		{name: "wrong type", args: Arguments{"id": true}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.args.ID("id")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestArgumentsOptional(t *testing.T) {
	args := Arguments{"title": "hello", "published": true}

	title, err := args.OptionalString("title")
	require.NoError(t, err)
	require.NotNil(t, title)
	assert.Equal(t, "hello", *title)

	missing, err := args.OptionalString("content")
	require.NoError(t, err)
	assert.Nil(t, missing)

	published, err := args.OptionalBool("published")
	require.NoError(t, err)
	require.NotNil(t, published)
	assert.True(t, *published)

	_, err = args.OptionalBool("title")
	assert.Error(t, err)

	id, err := args.OptionalID("parentCommentId")
	require.NoError(t, err)
	assert.Nil(t, id)
}

func TestArgumentsRequiredString(t *testing.T) {
	args := Arguments{"username": "alice", "count": 3}

	username, err := args.String("username")
	require.NoError(t, err)
	assert.Equal(t, "alice", username)

	_, err = args.String("missing")
	assert.Error(t, err)

	_, err = args.String("count")
	assert.Error(t, err)
}
