package schema

// NodeKind is the tag of a [Node], telling a consumer whether the node is a
// container (directory) or a leaf (any other resource).
type NodeKind int

const (
	// KindLeaf describes a non-directory resource, usually a regular file.
	KindLeaf NodeKind = iota

	// KindContainer describes a directory.
	KindContainer
)

// String returns a textual representation of a [NodeKind].
func (k NodeKind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindLeaf:
		return "leaf"
	default:
		return "unknown"
	}
}

// Node is a resolved location inside a tree. It is a tagged union over
// container and leaf, each wrapping exactly one absolute real path. A Node
// carries no cached filesystem state and is meant to be passed by value; it
// is created fresh on every resolution and simply discarded by the consumer.
type Node struct {
	// Kind is the tag consumers switch on.
	Kind NodeKind

	// Path is the absolute real path the [Node] wraps.
	Path string
}

// NewContainer returns a container-type [Node] for a real path.
func NewContainer(path string) Node {
	return Node{Kind: KindContainer, Path: path}
}

// NewLeaf returns a leaf-type [Node] for a real path.
func NewLeaf(path string) Node {
	return Node{Kind: KindLeaf, Path: path}
}

// IsContainer reports whether the [Node] is a container.
func (n Node) IsContainer() bool {
	return n.Kind == KindContainer
}

// IsLeaf reports whether the [Node] is a leaf.
func (n Node) IsLeaf() bool {
	return n.Kind == KindLeaf
}
