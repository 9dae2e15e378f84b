package models

// QueryKind tags where a Query came from.
type QueryKind int

const (
	// QueryUsage is a bare GET / with no body; it carries no subject.
	QueryUsage QueryKind = iota
	// QueryPath is built from the /{command} path segment and the v flag.
	QueryPath
	// QueryBody is decoded from a JSON request body.
	QueryBody
	// QueryArgs comes from command-line arguments.
	QueryArgs
)

func (k QueryKind) String() string {
	switch k {
	case QueryPath:
		return "path"
	case QueryBody:
		return "body"
	case QueryArgs:
		return "args"
	default:
		return "usage"
	}
}

// Query is the per-request description lookup.
type Query struct {
	Kind    QueryKind
	Subject string
	Verbose bool
}

// NeedsBackend reports whether answering the query requires a generation call.
func (q Query) NeedsBackend() bool {
	return q.Kind != QueryUsage
}
