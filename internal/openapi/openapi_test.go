package openapi

import (
	"testing"

	"github.com/agsys/routeplan/internal/compiler"
	"github.com/agsys/routeplan/internal/model"
)

func TestDocument_PathsAndWildcard(t *testing.T) {
	table, err := compiler.Compile([]model.Declaration{
		{Service: "api", Backend: model.FunctionBackend,
			Target: "arn:fn:api", AllowRootMethod: true},
		{Service: "runner", Backend: model.ContainerBackend,
			Target: "https://runner.internal", PathPrefix: "runner", Auth: model.AuthAPIKey},
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	doc := Document(table, "agsys gateway", "1.0.0")
	if doc.Info.Title != "agsys gateway" {
		t.Fatalf("title: got %q", doc.Info.Title)
	}

	for _, p := range []string{"/", "/runner", "/runner/{proxy+}", "/{proxy+}"} {
		if doc.Paths.Value(p) == nil {
			t.Fatalf("missing path %q", p)
		}
	}

	w := doc.Paths.Value("/runner/{proxy+}")
	if len(w.Parameters) != 1 || w.Parameters[0].Value.Name != model.CaptureName {
		t.Fatalf("wildcard path parameter unexpected: %+v", w.Parameters)
	}

	// ANY bindings render as the any-method extension, not a concrete verb
	if _, ok := w.Extensions[anyMethodExtension]; !ok {
		t.Fatalf("want %s extension on wildcard item", anyMethodExtension)
	}
	if w.Get != nil || w.Post != nil {
		t.Fatalf("ANY binding must not pin a concrete method")
	}

	if doc.Components == nil || doc.Components.SecuritySchemes["api_key"] == nil {
		t.Fatalf("api_key security scheme missing for an api_key-protected binding")
	}
}

func TestDocument_ConcreteMethod(t *testing.T) {
	table, err := compiler.Compile([]model.Declaration{
		{Service: "hooks", Backend: model.FunctionBackend,
			Target: "arn:fn:hooks", PathPrefix: "hooks", Method: "post"},
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	doc := Document(table, "t", "v")
	item := doc.Paths.Value("/hooks")
	if item == nil || item.Post == nil {
		t.Fatalf("want POST operation on /hooks, got %+v", item)
	}
	if item.Post.OperationID != "hooks-hooks" {
		t.Fatalf("operation id: got %q", item.Post.OperationID)
	}
}
