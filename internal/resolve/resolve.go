// Package resolve turns a built routing tree into the final compiled table.
// It rejects structural conflicts (two services on one prefix, two claims on
// the shared root) and attaches the wiring each bound node needs: integration
// shape, forwarding of the wildcard capture, CORS response headers, invoke
// permissions and throttle limits, scoped per owning service.
package resolve

import (
	"fmt"
	"sort"

	"github.com/agsys/routeplan/internal/model"
	"github.com/agsys/routeplan/internal/tree"
)

// ConflictKind names the violated structural invariant.
type ConflictKind string

const (
	DuplicateRootClaim ConflictKind = "duplicate_root_claim"
	DuplicatePrefix    ConflictKind = "duplicate_prefix"
)

// Conflict lists every service involved in a collision, sorted, so the
// operator can fix the set in one pass.
type Conflict struct {
	Kind     ConflictKind
	Services []string
}

func (e *Conflict) Error() string {
	return fmt.Sprintf("%s: services %v", e.Kind, e.Services)
}

// Resolve validates the tree and produces the compiled table. The table is
// fully resolved; the caller never consults the tree again.
func Resolve(t *tree.Tree) (*model.CompiledRouteTable, error) {
	var nodes []model.Node
	ownedPaths := make(map[string][]string)
	ownerDecl := make(map[string]model.Declaration)

	err := t.Walk(func(parent, n *tree.Node) error {
		if len(n.Claims) > 1 {
			return conflictAt(n)
		}
		node := model.Node{
			ID:      tree.NodeID(n.Path),
			Segment: n.Segment,
			Kind:    n.Kind,
			Path:    n.Path,
		}
		if parent != nil {
			node.ParentID = tree.NodeID(parent.Path)
		}
		if len(n.Claims) == 1 {
			d := n.Claims[0]
			node.Owner = d.Service
			node.Binding = bindingFor(d, n.Kind)
			ownedPaths[d.Service] = append(ownedPaths[d.Service], n.Path)
			ownerDecl[d.Service] = d
		}
		nodes = append(nodes, node)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Parent paths are strict prefixes of child paths, so path order keeps
	// parents ahead of their children.
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Path < nodes[j].Path })

	wiring := make(map[string][]model.Directive, len(ownerDecl))
	for svc, d := range ownerDecl {
		paths := ownedPaths[svc]
		sort.Strings(paths)
		wiring[svc] = directivesFor(d, paths)
	}

	return &model.CompiledRouteTable{Nodes: nodes, Wiring: wiring}, nil
}

func conflictAt(n *tree.Node) *Conflict {
	kind := DuplicatePrefix
	if n.Kind == model.RootSegment {
		kind = DuplicateRootClaim
	}
	seen := make(map[string]struct{}, len(n.Claims))
	var svcs []string
	for _, c := range n.Claims {
		if _, ok := seen[c.Service]; ok {
			continue
		}
		seen[c.Service] = struct{}{}
		svcs = append(svcs, c.Service)
	}
	sort.Strings(svcs)
	return &Conflict{Kind: kind, Services: svcs}
}

func bindingFor(d model.Declaration, kind model.SegmentKind) *model.Binding {
	b := &model.Binding{
		Service:       d.Service,
		Method:        d.Method,
		Auth:          d.Auth,
		TimeoutMillis: d.TimeoutMillis,
		Target:        d.Target,
	}
	switch d.Backend {
	case model.ContainerBackend:
		b.Shape = model.HTTPProxy
		if kind == model.WildcardCapture {
			// Only the capture node has a suffix to forward; the base
			// binding covers the exact prefix with no trailing segments.
			b.ForwardPath = "/{" + model.CaptureName + "}"
		}
		b.ResponseHeaders = append([]string(nil), model.DefaultCORSHeaders...)
	default:
		b.Shape = model.ProxyInvoke
	}
	return b
}

// directivesFor emits the per-service wiring in a fixed order: integration
// grant or forwarding first, then response headers, then throttling.
func directivesFor(d model.Declaration, paths []string) []model.Directive {
	var ds []model.Directive
	switch d.Backend {
	case model.ContainerBackend:
		ds = append(ds,
			model.Directive{
				Kind:        model.ForwardingRule,
				Service:     d.Service,
				Target:      d.Target,
				CapturePath: "{" + model.CaptureName + "}",
			},
			model.Directive{
				Kind:    model.CORSHeaders,
				Service: d.Service,
				Headers: append([]string(nil), model.DefaultCORSHeaders...),
			})
	default:
		// Least privilege: the grant covers exactly this service's nodes,
		// never the whole gateway.
		ds = append(ds, model.Directive{
			Kind:        model.InvokePermission,
			Service:     d.Service,
			Target:      d.Target,
			SourcePaths: paths,
		})
	}
	if d.Throttle != nil {
		t := *d.Throttle
		ds = append(ds, model.Directive{
			Kind:     model.ThrottleLimit,
			Service:  d.Service,
			Throttle: &t,
		})
	}
	return ds
}
