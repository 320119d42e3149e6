package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/agsys/routeplan/internal/compiler"
	"github.com/agsys/routeplan/internal/config"
	"github.com/agsys/routeplan/internal/openapi"
	"github.com/agsys/routeplan/internal/plan"
	"github.com/agsys/routeplan/internal/version"
)

func main() {
	manifestPath := flag.String("manifest", "./routes.yaml", "path to YAML route manifest")
	apiTitle := flag.String("title", "gateway", "API title for the OpenAPI document")
	emitOpenAPI := flag.Bool("openapi", false, "emit an OpenAPI document instead of the plan")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	decls, err := config.Load(*manifestPath)
	if err != nil {
		log.Error("manifest", "err", err)
		os.Exit(1)
	}

	table, err := compiler.Compile(decls)
	if err != nil {
		// Normalization and conflict errors are authoring mistakes; surface
		// them verbatim before any infrastructure change is attempted.
		log.Error("compile", "err", err)
		os.Exit(1)
	}
	log.Info("compiled", "version", version.Value,
		"services", len(table.Wiring), "nodes", len(table.Nodes))

	if *emitOpenAPI {
		doc := openapi.Document(table, *apiTitle, version.Value)
		b, err := doc.MarshalJSON()
		if err != nil {
			log.Error("openapi", "err", err)
			os.Exit(1)
		}
		os.Stdout.Write(append(b, '\n'))
		return
	}
	if err := plan.Write(os.Stdout, table); err != nil {
		log.Error("plan", "err", err)
		os.Exit(1)
	}
}
