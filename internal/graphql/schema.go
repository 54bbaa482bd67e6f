// Package graphql exposes the domain services as a GraphQL API over a
// single HTTP endpoint.
package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/fintrack-app/fintrack/internal/app"
	"github.com/fintrack-app/fintrack/internal/app/domain/category"
	"github.com/fintrack-app/fintrack/internal/app/domain/transaction"
	"github.com/fintrack-app/fintrack/internal/app/services/transactions"
	"github.com/fintrack-app/fintrack/internal/app/services/users"
	"github.com/fintrack-app/fintrack/internal/middleware"
)

// authPayload is the register/login result bundle.
type authPayload struct {
	Token        string      `json:"token"`
	RefreshToken string      `json:"refreshToken"`
	User         interface{} `json:"user"`
}

// NewSchema builds the executable schema bound to the application services.
func NewSchema(application *app.Application) (graphql.Schema, error) {
	b := &schemaBuilder{app: application}
	return b.build()
}

type schemaBuilder struct {
	app *app.Application

	transactionTypeEnum *graphql.Enum
	userType            *graphql.Object
	categoryType        *graphql.Object
	transactionType     *graphql.Object
	authPayloadType     *graphql.Object
	transactionListType *graphql.Object
}

func (b *schemaBuilder) build() (graphql.Schema, error) {
	b.transactionTypeEnum = graphql.NewEnum(graphql.EnumConfig{
		Name:        "TransactionType",
		Description: "Transaction type",
		Values: graphql.EnumValueConfigMap{
			"credit": &graphql.EnumValueConfig{Value: transaction.TypeCredit},
			"debit":  &graphql.EnumValueConfig{Value: transaction.TypeDebit},
		},
	})

	b.userType = graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
			"updatedAt": &graphql.Field{Type: graphql.DateTime},
		},
	})

	b.categoryType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Category",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"userId":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"title":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.Field{Type: graphql.String},
			"icon":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"color":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"createdAt":   &graphql.Field{Type: graphql.DateTime},
			"updatedAt":   &graphql.Field{Type: graphql.DateTime},
			"transactionsCount": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				// Derived per read; deliberately not cached.
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					identity, err := middleware.RequireIdentity(p.Context)
					if err != nil {
						return nil, err
					}
					c, ok := p.Source.(category.Category)
					if !ok {
						return 0, nil
					}
					return b.app.Transactions.CountByCategory(p.Context, c.ID, identity.UserID)
				},
			},
		},
	})

	b.transactionType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Transaction",
		Fields: graphql.Fields{
			"id":              &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"userId":          &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"transactionType": &graphql.Field{Type: graphql.NewNonNull(b.transactionTypeEnum)},
			"date":            &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"value":           &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"categoryId":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"createdAt":       &graphql.Field{Type: graphql.DateTime},
			"updatedAt":       &graphql.Field{Type: graphql.DateTime},
			"category": &graphql.Field{
				Type: b.categoryType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					identity, err := middleware.RequireIdentity(p.Context)
					if err != nil {
						return nil, err
					}
					tx, ok := p.Source.(transaction.Transaction)
					if !ok {
						return nil, nil
					}
					c, err := b.app.Categories.Find(p.Context, tx.CategoryID, identity.UserID)
					if err != nil {
						// The category may have been deleted; the edge is
						// simply absent then.
						return nil, nil
					}
					return c, nil
				},
			},
		},
	})

	b.authPayloadType = graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthPayload",
		Fields: graphql.Fields{
			"token":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"refreshToken": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"user":         &graphql.Field{Type: graphql.NewNonNull(b.userType)},
		},
	})

	b.transactionListType = graphql.NewObject(graphql.ObjectConfig{
		Name: "TransactionListOutput",
		Fields: graphql.Fields{
			"transactions": &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(b.transactionType))},
			"totalCredit":  &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"totalDebit":   &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Query",
		Fields: b.queryFields(),
	})
	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Mutation",
		Fields: b.mutationFields(),
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query, Mutation: mutation})
}

func (b *schemaBuilder) queryFields() graphql.Fields {
	listTransactionInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ListTransactionInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"description":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"transactionType": &graphql.InputObjectFieldConfig{Type: b.transactionTypeEnum},
			"categoryId":      &graphql.InputObjectFieldConfig{Type: graphql.String},
			"period":          &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	return graphql.Fields{
		"getUser": &graphql.Field{
			Type: b.userType,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				identity, err := middleware.RequireIdentity(p.Context)
				if err != nil {
					return nil, err
				}
				return b.app.Users.Get(p.Context, identity.UserID, identity.UserID)
			},
		},
		"getCategory": &graphql.Field{
			Type: b.categoryType,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				identity, err := middleware.RequireIdentity(p.Context)
				if err != nil {
					return nil, err
				}
				return b.app.Categories.Find(p.Context, argString(p, "id"), identity.UserID)
			},
		},
		"listCategories": &graphql.Field{
			Type: graphql.NewList(b.categoryType),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				identity, err := middleware.RequireIdentity(p.Context)
				if err != nil {
					return nil, err
				}
				return b.app.Categories.List(p.Context, identity.UserID)
			},
		},
		"getTransaction": &graphql.Field{
			Type: b.transactionType,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				identity, err := middleware.RequireIdentity(p.Context)
				if err != nil {
					return nil, err
				}
				return b.app.Transactions.Find(p.Context, argString(p, "id"), identity.UserID)
			},
		},
		"listTransactions": &graphql.Field{
			Type: b.transactionListType,
			Args: graphql.FieldConfigArgument{
				"data": &graphql.ArgumentConfig{Type: listTransactionInput},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				identity, err := middleware.RequireIdentity(p.Context)
				if err != nil {
					return nil, err
				}
				data := inputMap(p, "data")
				return b.app.Transactions.List(p.Context, identity.UserID, transactions.ListQuery{
					Description: inputString(data, "description"),
					Type:        inputTransactionType(data, "transactionType"),
					CategoryID:  inputString(data, "categoryId"),
					Period:      inputString(data, "period"),
				})
			},
		},
		"getTotalAmount": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Float),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				identity, err := middleware.RequireIdentity(p.Context)
				if err != nil {
					return nil, err
				}
				return b.app.Transactions.TotalAmount(p.Context, identity.UserID)
			},
		},
	}
}

func (b *schemaBuilder) mutationFields() graphql.Fields {
	registerInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "RegisterInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})
	loginInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "LoginInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})
	updateUserInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateUserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.String},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})
	categoryInputFields := func() graphql.InputObjectConfigFieldMap {
		return graphql.InputObjectConfigFieldMap{
			"title":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"icon":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"color":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		}
	}
	createCategoryInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name:   "CreateCategoryInput",
		Fields: categoryInputFields(),
	})
	updateCategoryInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name:   "UpdateCategoryInput",
		Fields: categoryInputFields(),
	})
	transactionInputFields := func() graphql.InputObjectConfigFieldMap {
		return graphql.InputObjectConfigFieldMap{
			"description":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"transactionType": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(b.transactionTypeEnum)},
			"date":            &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"value":           &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
			"categoryId":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		}
	}
	createTransactionInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name:   "CreateTransactionInput",
		Fields: transactionInputFields(),
	})
	updateTransactionInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name:   "UpdateTransactionInput",
		Fields: transactionInputFields(),
	})

	return graphql.Fields{
		"register": &graphql.Field{
			Type: graphql.NewNonNull(b.authPayloadType),
			Args: graphql.FieldConfigArgument{
				"data": &graphql.ArgumentConfig{Type: graphql.NewNonNull(registerInput)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				data := inputMap(p, "data")
				pair, u, err := b.app.Auth.Register(p.Context,
					inputString(data, "name"), inputString(data, "email"), inputString(data, "password"))
				if err != nil {
					return nil, err
				}
				return authPayload{Token: pair.Token, RefreshToken: pair.RefreshToken, User: u}, nil
			},
		},
		"login": &graphql.Field{
			Type: graphql.NewNonNull(b.authPayloadType),
			Args: graphql.FieldConfigArgument{
				"data": &graphql.ArgumentConfig{Type: graphql.NewNonNull(loginInput)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				data := inputMap(p, "data")
				pair, u, err := b.app.Auth.Login(p.Context,
					inputString(data, "email"), inputString(data, "password"))
				if err != nil {
					return nil, err
				}
				return authPayload{Token: pair.Token, RefreshToken: pair.RefreshToken, User: u}, nil
			},
		},
		"updateUser": &graphql.Field{
			Type: graphql.NewNonNull(b.userType),
			Args: graphql.FieldConfigArgument{
				"id":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"data": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateUserInput)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				identity, err := middleware.RequireIdentity(p.Context)
				if err != nil {
					return nil, err
				}
				data := inputMap(p, "data")
				return b.app.Users.Update(p.Context, argString(p, "id"), identity.UserID, users.UpdateInput{
					Name:     inputOptString(data, "name"),
					Email:    inputOptString(data, "email"),
					Password: inputOptString(data, "password"),
				})
			},
		},
		"deleteUser": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Boolean),
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				identity, err := middleware.RequireIdentity(p.Context)
				if err != nil {
					return nil, err
				}
				return b.app.Users.Delete(p.Context, argString(p, "id"), identity.UserID)
			},
		},
		"createCategory": &graphql.Field{
			Type: graphql.NewNonNull(b.categoryType),
			Args: graphql.FieldConfigArgument{
				"data": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createCategoryInput)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				identity, err := middleware.RequireIdentity(p.Context)
				if err != nil {
					return nil, err
				}
				return b.app.Categories.Create(p.Context, identity.UserID, categoryInputFrom(inputMap(p, "data")))
			},
		},
		"updateCategory": &graphql.Field{
			Type: graphql.NewNonNull(b.categoryType),
			Args: graphql.FieldConfigArgument{
				"id":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"data": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateCategoryInput)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				identity, err := middleware.RequireIdentity(p.Context)
				if err != nil {
					return nil, err
				}
				return b.app.Categories.Update(p.Context, argString(p, "id"), identity.UserID, categoryInputFrom(inputMap(p, "data")))
			},
		},
		"deleteCategory": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Boolean),
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				identity, err := middleware.RequireIdentity(p.Context)
				if err != nil {
					return nil, err
				}
				return b.app.Categories.Delete(p.Context, argString(p, "id"), identity.UserID)
			},
		},
		"createTransaction": &graphql.Field{
			Type: graphql.NewNonNull(b.transactionType),
			Args: graphql.FieldConfigArgument{
				"data": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createTransactionInput)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				identity, err := middleware.RequireIdentity(p.Context)
				if err != nil {
					return nil, err
				}
				return b.app.Transactions.Create(p.Context, identity.UserID, transactionInputFrom(inputMap(p, "data")))
			},
		},
		"updateTransaction": &graphql.Field{
			Type: graphql.NewNonNull(b.transactionType),
			Args: graphql.FieldConfigArgument{
				"id":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"data": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateTransactionInput)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				identity, err := middleware.RequireIdentity(p.Context)
				if err != nil {
					return nil, err
				}
				return b.app.Transactions.Update(p.Context, argString(p, "id"), identity.UserID, transactionInputFrom(inputMap(p, "data")))
			},
		},
		"deleteTransaction": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Boolean),
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				identity, err := middleware.RequireIdentity(p.Context)
				if err != nil {
					return nil, err
				}
				return b.app.Transactions.Delete(p.Context, argString(p, "id"), identity.UserID)
			},
		},
	}
}
