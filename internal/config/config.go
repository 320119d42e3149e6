// Package config loads the YAML route manifest into declarations. It only
// checks what the parser can see (known backend kinds, known auth modes,
// required fields); structural rules belong to the normalizer.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/agsys/routeplan/internal/model"
)

type rawManifest struct {
	Services []struct {
		Name            string          `yaml:"name"`
		Backend         string          `yaml:"backend"`
		Target          string          `yaml:"target"`
		PathPrefix      string          `yaml:"path_prefix"`
		AllowRootMethod bool            `yaml:"allow_root_method"`
		Method          string          `yaml:"method"`
		Auth            string          `yaml:"auth"`
		TimeoutMillis   int             `yaml:"timeout_ms"`
		Throttle        *model.Throttle `yaml:"throttle"`
	} `yaml:"services"`
}

// Load reads and parses a manifest file.
func Load(path string) ([]model.Declaration, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(b)
}

// Parse decodes manifest bytes into declarations.
func Parse(b []byte) ([]model.Declaration, error) {
	var rm rawManifest
	if err := yaml.Unmarshal(b, &rm); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	if len(rm.Services) == 0 {
		return nil, fmt.Errorf("services: at least one is required")
	}

	decls := make([]model.Declaration, 0, len(rm.Services))
	for i, s := range rm.Services {
		var backend model.BackendKind
		switch s.Backend {
		case string(model.FunctionBackend):
			backend = model.FunctionBackend
		case string(model.ContainerBackend):
			backend = model.ContainerBackend
		case "":
			return nil, fmt.Errorf("services[%d]: backend is required", i)
		default:
			return nil, fmt.Errorf("services[%d]: unknown backend %q", i, s.Backend)
		}

		var auth model.AuthorizationMode
		switch s.Auth {
		case "", string(model.AuthNone):
			auth = model.AuthNone
		case string(model.AuthAPIKey):
			auth = model.AuthAPIKey
		case string(model.AuthCustom):
			auth = model.AuthCustom
		default:
			return nil, fmt.Errorf("services[%d]: unknown auth %q", i, s.Auth)
		}

		if s.Target == "" {
			return nil, fmt.Errorf("services[%d]: target is required", i)
		}

		decls = append(decls, model.Declaration{
			Service:         s.Name,
			Backend:         backend,
			Target:          s.Target,
			PathPrefix:      s.PathPrefix,
			AllowRootMethod: s.AllowRootMethod,
			Method:          s.Method,
			Auth:            auth,
			TimeoutMillis:   s.TimeoutMillis,
			Throttle:        s.Throttle,
		})
	}
	return decls, nil
}
