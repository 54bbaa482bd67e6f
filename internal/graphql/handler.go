package graphql

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	apperrors "github.com/fintrack-app/fintrack/internal/errors"
	"github.com/fintrack-app/fintrack/pkg/logger"
)

// Handler serves the GraphQL endpoint: a single POST accepting a JSON body
// of {query, operationName, variables}.
type Handler struct {
	schema graphql.Schema
	log    *logger.Logger
}

// NewHandler builds the endpoint handler around an executable schema.
func NewHandler(schema graphql.Schema, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.NewDefault("graphql")
	}
	return &Handler{schema: schema, log: log}
}

type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"errors": []map[string]string{{"message": "invalid request body"}},
		})
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        r.Context(),
	})

	// Domain errors ride in errors[].extensions.code with HTTP 200; only an
	// unauthenticated caller flips the transport status.
	status := http.StatusOK
	for _, gqlErr := range result.Errors {
		if code, ok := gqlErr.Extensions["code"].(string); ok && code == string(apperrors.CodeUnauthenticated) {
			status = http.StatusUnauthorized
			break
		}
	}

	writeJSON(w, status, result)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
