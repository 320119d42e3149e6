package model

import "golang.org/x/time/rate"

// BackendKind selects how the gateway reaches a service.
type BackendKind string

const (
	FunctionBackend  BackendKind = "function"  // invoked through the provider's function API
	ContainerBackend BackendKind = "container" // plain HTTP upstream
)

// AuthorizationMode is recorded on the method binding; enforcement happens
// at the gateway, not here.
type AuthorizationMode string

const (
	AuthNone   AuthorizationMode = "none"
	AuthAPIKey AuthorizationMode = "api_key"
	AuthCustom AuthorizationMode = "custom"
)

// Integration timeout bounds imposed by the gateway.
const (
	MinTimeoutMillis     = 50
	MaxTimeoutMillis     = 29000
	DefaultTimeoutMillis = MaxTimeoutMillis
)

// WildcardSegment is the greedy capture segment; it matches any remaining
// path suffix and must not appear in a declared prefix.
const (
	WildcardSegment = "{proxy+}"
	CaptureName     = "proxy"
)

// DefaultMethod binds every HTTP method at once.
const DefaultMethod = "ANY"

// Throttle is a declarative request-rate ceiling compiled into a wiring
// directive; the core never counts requests.
type Throttle struct {
	Rate  rate.Limit `json:"requestsPerSecond" yaml:"requests_per_second"`
	Burst int        `json:"burst" yaml:"burst"`
}

// Declaration is one backend service's claim on the shared entry point.
type Declaration struct {
	Service         string            `json:"service"`
	Backend         BackendKind       `json:"backend"`
	Target          string            `json:"target"` // function ARN or upstream URL; opaque here
	PathPrefix      string            `json:"pathPrefix"`
	AllowRootMethod bool              `json:"allowRootMethod"`
	Method          string            `json:"method"`
	Auth            AuthorizationMode `json:"auth"`
	TimeoutMillis   int               `json:"timeoutMillis"`
	Throttle        *Throttle         `json:"throttle,omitempty"`
}

// IntegrationShape is how a bound node hands the request to its backend.
type IntegrationShape string

const (
	ProxyInvoke IntegrationShape = "proxy_invoke" // function proxy integration
	HTTPProxy   IntegrationShape = "http_proxy"   // pass-through to an HTTP upstream
)

// SegmentKind classifies a node's path segment.
type SegmentKind string

const (
	RootSegment     SegmentKind = "root"
	LiteralSegment  SegmentKind = "literal"
	WildcardCapture SegmentKind = "wildcard"
)

// Binding is the method attached to a bound node, fully resolved.
type Binding struct {
	Service         string            `json:"service"`
	Method          string            `json:"method"`
	Auth            AuthorizationMode `json:"auth"`
	TimeoutMillis   int               `json:"timeoutMillis"`
	Shape           IntegrationShape  `json:"shape"`
	Target          string            `json:"target"`
	ForwardPath     string            `json:"forwardPath,omitempty"`     // set on wildcard nodes of http_proxy bindings
	ResponseHeaders []string          `json:"responseHeaders,omitempty"` // sorted
}

// Node is one entry in the compiled tree. ParentID is empty only for the
// root; Owner is empty for structural-only nodes.
type Node struct {
	ID       string      `json:"id"`
	Segment  string      `json:"segment"`
	Kind     SegmentKind `json:"kind"`
	Path     string      `json:"path"` // canonical, no leading slash; "" for root
	ParentID string      `json:"parentId,omitempty"`
	Owner    string      `json:"owner,omitempty"`
	Binding  *Binding    `json:"binding,omitempty"`
}

// DirectiveKind tags a wiring directive.
type DirectiveKind string

const (
	InvokePermission DirectiveKind = "invoke_permission"
	ForwardingRule   DirectiveKind = "forwarding_rule"
	CORSHeaders      DirectiveKind = "cors_headers"
	ThrottleLimit    DirectiveKind = "throttle_limit"
)

// Directive is one compiled wiring instruction for the provisioning engine.
// Fields beyond Kind/Service are populated per kind.
type Directive struct {
	Kind        DirectiveKind `json:"kind"`
	Service     string        `json:"service"`
	Target      string        `json:"target,omitempty"`
	SourcePaths []string      `json:"sourcePaths,omitempty"` // invoke_permission: exact node scope
	CapturePath string        `json:"capturePath,omitempty"` // forwarding_rule: capture placeholder
	Headers     []string      `json:"headers,omitempty"`     // cors_headers
	Throttle    *Throttle     `json:"throttle,omitempty"`    // throttle_limit
}

// CompiledRouteTable is the compiler's only output: the flattened node tree
// (parents precede children) and per-service wiring. It is fully resolved;
// applying it requires no further lookups.
type CompiledRouteTable struct {
	Nodes  []Node                 `json:"nodes"`
	Wiring map[string][]Directive `json:"wiring"`
}

// DefaultCORSHeaders is the response header set attached to http_proxy
// method responses.
var DefaultCORSHeaders = []string{
	"Access-Control-Allow-Headers",
	"Access-Control-Allow-Methods",
	"Access-Control-Allow-Origin",
}
