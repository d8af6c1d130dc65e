// Package graphql exposes the read side of the catalog over GraphQL. The
// products query runs through the same catalog service as GET /api/products.
package graphql

import (
	"time"

	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/bookstore/app/filters"
	"github.com/shashiranjanraj/bookstore/app/models"
	"github.com/shashiranjanraj/bookstore/app/services"
	gql "github.com/shashiranjanraj/bookstore/pkg/graphql"
)

var categoryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Category",
	Fields: graphql.Fields{
		"id":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"name": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var authorType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Author",
	Fields: graphql.Fields{
		"id":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"name": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

func product(p graphql.ResolveParams) models.Product {
	prod, _ := p.Source.(models.Product)
	return prod
}

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"title":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"description": &graphql.Field{Type: graphql.String},
		"rating":      &graphql.Field{Type: graphql.Float},
		"ratingCount": &graphql.Field{Type: graphql.Int},
		"price": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Float),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return product(p).Price.InexactFloat64(), nil
			},
		},
		"createdAt": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return product(p).CreatedAt.UTC().Format(time.RFC3339), nil
			},
		},
		"categories": &graphql.Field{
			Type: graphql.NewList(categoryType),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if ext := product(p).Extension; ext != nil {
					return ext.Categories, nil
				}
				return []models.Category{}, nil
			},
		},
		"authors": &graphql.Field{
			Type: graphql.NewList(authorType),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if ext := product(p).Extension; ext != nil {
					return ext.Authors, nil
				}
				return []models.Author{}, nil
			},
		},
	},
})

var productPageType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ProductPage",
	Fields: graphql.Fields{
		"data":       &graphql.Field{Type: graphql.NewList(productType)},
		"total":      &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"page":       &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"limit":      &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"totalPages": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
	},
})

// NewSchema builds the catalog schema:
//
//	products(title, categoryIds, minPrice, maxPrice, sortBy, sortOrder, page, limit): ProductPage
//	product(id): Product
//	categories: [Category]
//	authors: [Author]
func NewSchema(catalog *services.CatalogService) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: productPageType,
				Args: graphql.FieldConfigArgument{
					"title":       &graphql.ArgumentConfig{Type: graphql.String},
					"categoryIds": &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
					"minPrice":    &graphql.ArgumentConfig{Type: graphql.Float},
					"maxPrice":    &graphql.ArgumentConfig{Type: graphql.Float},
					"sortBy":      &graphql.ArgumentConfig{Type: graphql.String},
					"sortOrder":   &graphql.ArgumentConfig{Type: graphql.String},
					"page":        &graphql.ArgumentConfig{Type: graphql.Int},
					"limit":       &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					page, err := catalog.Search(p.Context, searchArgs(p.Args))
					if err != nil {
						return nil, err
					}
					return map[string]interface{}{
						"data":       page.Data,
						"total":      page.Total,
						"page":       page.Page,
						"limit":      page.Limit,
						"totalPages": page.TotalPages,
					}, nil
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(int)
					if id < 1 {
						return nil, nil
					}
					return catalog.Show(p.Context, uint(id))
				},
			},
			"categories": &graphql.Field{
				Type: graphql.NewList(categoryType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return catalog.Categories(p.Context)
				},
			},
			"authors": &graphql.Field{
				Type: graphql.NewList(authorType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return catalog.Authors(p.Context)
				},
			},
		},
	})
	return gql.NewSchema(query)
}

func searchArgs(args map[string]interface{}) filters.Request {
	req := filters.Request{}
	req.Title, _ = args["title"].(string)
	req.SortBy, _ = args["sortBy"].(string)
	req.SortOrder, _ = args["sortOrder"].(string)
	req.Page, _ = args["page"].(int)
	req.Limit, _ = args["limit"].(int)

	if ids, ok := args["categoryIds"].([]interface{}); ok {
		for _, id := range ids {
			if s, ok := id.(string); ok && s != "" {
				req.CategoryIDs = append(req.CategoryIDs, s)
			}
		}
	}
	if v, ok := args["minPrice"].(float64); ok {
		d := decimal.NewFromFloat(v)
		req.MinPrice = &d
	}
	if v, ok := args["maxPrice"].(float64); ok {
		d := decimal.NewFromFloat(v)
		req.MaxPrice = &d
	}
	return req
}
