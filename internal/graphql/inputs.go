package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/fintrack-app/fintrack/internal/app/domain/transaction"
	"github.com/fintrack-app/fintrack/internal/app/services/categories"
	"github.com/fintrack-app/fintrack/internal/app/services/transactions"
)

// Coercion helpers. The library hands arguments over as loosely typed maps;
// these keep the resolvers free of assertion noise.

func argString(p graphql.ResolveParams, key string) string {
	s, _ := p.Args[key].(string)
	return s
}

func inputMap(p graphql.ResolveParams, key string) map[string]interface{} {
	m, _ := p.Args[key].(map[string]interface{})
	return m
}

func inputString(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

func inputOptString(m map[string]interface{}, key string) *string {
	if s, ok := m[key].(string); ok {
		return &s
	}
	return nil
}

func inputFloat(m map[string]interface{}, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// inputTransactionType accepts both the enum-coerced type and a raw string,
// depending on whether the value arrived inline or through variables.
func inputTransactionType(m map[string]interface{}, key string) transaction.Type {
	switch v := m[key].(type) {
	case transaction.Type:
		return v
	case string:
		return transaction.Type(v)
	}
	return ""
}

func categoryInputFrom(m map[string]interface{}) categories.Input {
	return categories.Input{
		Title:       inputString(m, "title"),
		Description: inputString(m, "description"),
		Icon:        inputString(m, "icon"),
		Color:       inputString(m, "color"),
	}
}

func transactionInputFrom(m map[string]interface{}) transactions.Input {
	return transactions.Input{
		Description: inputString(m, "description"),
		Type:        inputTransactionType(m, "transactionType"),
		Date:        inputString(m, "date"),
		Value:       inputFloat(m, "value"),
		CategoryID:  inputString(m, "categoryId"),
	}
}
