// Package tree expands normalized declarations into the shared routing node
// tree. Nodes are keyed by canonical path and identified by a SHA1-derived
// UUID over that path, so the result is independent of declaration order.
// Conflicting claims are accumulated here and rejected by the resolver.
package tree

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/agsys/routeplan/internal/model"
)

// nodeNamespace fixes the UUID namespace so node identity is stable across
// runs and processes.
var nodeNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("agsys/routeplan/node"))

// NodeID derives the deterministic identifier for a canonical node path.
func NodeID(path string) string {
	return uuid.NewSHA1(nodeNamespace, []byte(path)).String()
}

// Node is one routing node under construction. Claims holds every
// declaration that wants a method binding here; a valid tree ends up with at
// most one claim per node, enforced by the resolver.
type Node struct {
	Segment  string
	Kind     model.SegmentKind
	Path     string // canonical, "" for root
	Children map[string]*Node
	Claims   []model.Declaration
}

// Tree is the shared routing tree: a single root with one subtree per
// declared prefix plus the root-claim wildcard, if any.
type Tree struct {
	Root *Node
}

// shape is the per-declaration expansion plan. Modeling it as a closed set
// of variants keeps the graft logic exhaustive instead of flag-driven.
type shape interface {
	graft(root *Node, d model.Declaration)
}

// rootClaim: wildcard capture directly under the shared root, plus an
// optional binding on the root itself for the zero-segment path.
type rootClaim struct {
	bindRoot bool
}

func (s rootClaim) graft(root *Node, d model.Declaration) {
	if s.bindRoot {
		root.Claims = append(root.Claims, d)
	}
	w := root.child(model.WildcardSegment, model.WildcardCapture)
	w.Claims = append(w.Claims, d)
}

// prefixed: a literal chain for the prefix segments, a binding on the final
// base node for the exact-prefix path, and a claimed wildcard child below it.
// A wildcard alone would not match the zero-segment case, hence both nodes.
type prefixed struct {
	segments []string
}

func (s prefixed) graft(root *Node, d model.Declaration) {
	base := root
	for _, seg := range s.segments {
		base = base.child(seg, model.LiteralSegment)
	}
	base.Claims = append(base.Claims, d)
	w := base.child(model.WildcardSegment, model.WildcardCapture)
	w.Claims = append(w.Claims, d)
}

func shapeOf(d model.Declaration) shape {
	if d.PathPrefix == "" {
		return rootClaim{bindRoot: d.AllowRootMethod}
	}
	return prefixed{segments: strings.Split(d.PathPrefix, "/")}
}

// Build expands every declaration under a fresh shared root. Input must be
// normalized; Build itself never fails.
func Build(decls []model.Declaration) *Tree {
	root := &Node{Kind: model.RootSegment}
	for _, d := range decls {
		shapeOf(d).graft(root, d)
	}
	return &Tree{Root: root}
}

func (n *Node) child(segment string, kind model.SegmentKind) *Node {
	if n.Children == nil {
		n.Children = make(map[string]*Node)
	}
	if c, ok := n.Children[segment]; ok {
		return c
	}
	path := segment
	if n.Path != "" {
		path = n.Path + "/" + segment
	}
	c := &Node{Segment: segment, Kind: kind, Path: path}
	n.Children[segment] = c
	return c
}

// Walk visits nodes depth-first, parent before children, children in
// segment order, so traversal is deterministic regardless of build order.
func (t *Tree) Walk(visit func(parent, n *Node) error) error {
	return walk(nil, t.Root, visit)
}

func walk(parent, n *Node, visit func(parent, n *Node) error) error {
	if err := visit(parent, n); err != nil {
		return err
	}
	segs := make([]string, 0, len(n.Children))
	for s := range n.Children {
		segs = append(segs, s)
	}
	sort.Strings(segs)
	for _, s := range segs {
		if err := walk(n, n.Children[s], visit); err != nil {
			return err
		}
	}
	return nil
}
