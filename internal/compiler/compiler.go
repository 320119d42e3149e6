// Package compiler is the pipeline façade: normalize, build, resolve.
// Compilation either fully succeeds or fully fails; there is no partial
// table, since a half-built routing table could silently misroute traffic.
package compiler

import (
	"github.com/agsys/routeplan/internal/model"
	"github.com/agsys/routeplan/internal/normalize"
	"github.com/agsys/routeplan/internal/resolve"
	"github.com/agsys/routeplan/internal/tree"
)

// Compile produces one immutable table per invocation. It is pure and shares
// no state, so concurrent calls need no synchronization. Errors from the
// normalizer and resolver propagate unchanged.
func Compile(decls []model.Declaration) (*model.CompiledRouteTable, error) {
	normalized, err := normalize.Normalize(decls)
	if err != nil {
		return nil, err
	}
	return resolve.Resolve(tree.Build(normalized))
}
