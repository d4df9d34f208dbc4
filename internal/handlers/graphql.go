package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/BorisDmv/blog-graphql-api/internal/graph"
)

// Executor resolves a parsed operation into a result map.
type Executor interface {
	Execute(ctx context.Context, op *graph.Operation) (map[string]any, error)
}

type GraphQLHandler struct {
	executor Executor
}

func NewGraphQLHandler(executor Executor) *GraphQLHandler {
	return &GraphQLHandler{executor: executor}
}

type graphQLRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

type graphQLError struct {
	Message string   `json:"message"`
	Path    []string `json:"path,omitempty"`
}

// Serve handles a single GraphQL request. A request that fails before
// execution gets a 400 with no data key; an execution failure returns
// 200 with data null plus a structured error, per GraphQL convention.
func (h *GraphQLHandler) Serve(w http.ResponseWriter, r *http.Request) {
	var req graphQLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"errors": []graphQLError{{Message: "invalid request body"}},
		})
		return
	}
	if req.Query == "" {
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"errors": []graphQLError{{Message: "query is required"}},
		})
		return
	}

	op, err := graph.ParseRequest(req.Query, req.OperationName, req.Variables)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"errors": []graphQLError{{Message: err.Error()}},
		})
		return
	}

	data, err := h.executor.Execute(r.Context(), op)
	if err != nil {
		log.Printf("graphql error: %v", err)
		gqlErr := graphQLError{Message: err.Error()}
		var fieldErr *graph.FieldError
		if errors.As(err, &fieldErr) {
			gqlErr.Path = fieldErr.Path
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"data":   nil,
			"errors": []graphQLError{gqlErr},
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"data": data})
}
