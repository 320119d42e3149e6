// Package openapi exports the compiled routing surface as an OpenAPI
// document. Like the plan, it is a pure data structure; serving it is the
// surrounding tooling's business.
package openapi

import (
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/agsys/routeplan/internal/model"
)

// anyMethodExtension is how gateway exports conventionally spell a binding
// that covers every HTTP method.
const anyMethodExtension = "x-amazon-apigateway-any-method"

// Document builds an OpenAPI view of the table: one path item per bound
// node, the wildcard capture rendered as a greedy path parameter.
func Document(table *model.CompiledRouteTable, title, version string) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info:    &openapi3.Info{Title: title, Version: version},
		Paths:   openapi3.NewPaths(),
	}

	needsKey := false
	for _, n := range table.Nodes {
		if n.Binding == nil {
			continue
		}
		item := &openapi3.PathItem{}
		if n.Kind == model.WildcardCapture {
			item.Parameters = openapi3.Parameters{&openapi3.ParameterRef{
				Value: openapi3.NewPathParameter(model.CaptureName).
					WithSchema(openapi3.NewStringSchema()),
			}}
		}

		op := operationFor(n)
		if n.Binding.Auth == model.AuthAPIKey {
			needsKey = true
			op.Security = openapi3.NewSecurityRequirements().
				With(openapi3.NewSecurityRequirement().Authenticate("api_key"))
		}

		if n.Binding.Method == model.DefaultMethod {
			item.Extensions = map[string]any{anyMethodExtension: op}
		} else {
			item.SetOperation(n.Binding.Method, op)
		}
		doc.Paths.Set("/"+n.Path, item)
	}

	if needsKey {
		doc.Components = &openapi3.Components{
			SecuritySchemes: openapi3.SecuritySchemes{
				"api_key": &openapi3.SecuritySchemeRef{
					Value: openapi3.NewSecurityScheme().
						WithType("apiKey").
						WithIn("header").
						WithName("x-api-key"),
				},
			},
		}
	}
	return doc
}

func operationFor(n model.Node) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = operationID(n)
	op.Summary = fmt.Sprintf("%s via %s", n.Binding.Service, n.Binding.Shape)
	op.Responses = openapi3.NewResponses()
	return op
}

// operationID flattens the node path into a stable identifier, e.g.
// "runner-proxy" for runner/{proxy+}.
func operationID(n model.Node) string {
	if n.Path == "" {
		return n.Binding.Service + "-root"
	}
	p := strings.NewReplacer("/", "-", "{", "", "+", "", "}", "").Replace(n.Path)
	return n.Binding.Service + "-" + p
}
