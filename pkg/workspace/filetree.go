package workspace

import "encoding/json"

// NodeKind distinguishes files from folders in the virtual layout.
type NodeKind string

const (
	KindFile   NodeKind = "file"
	KindFolder NodeKind = "folder"
)

// FileNode is the recursive wire shape of one node in the virtual codebase
// layout. Identity is positional: a node is addressed by the sequence of
// names from the tree root, not by a stable id. Child order is insertion
// order and is significant.
type FileNode struct {
	Name        string     `json:"name"`
	Kind        NodeKind   `json:"kind"`
	Description string     `json:"description,omitempty"`
	Content     string     `json:"content,omitempty"`
	Children    []FileNode `json:"children,omitempty"`
}

// nodeID is a synthetic arena index. IDs are internal only - they are never
// serialized and carry no meaning across trees.
type nodeID int

// treeNode is the arena representation of a single node.
type treeNode struct {
	name        string
	kind        NodeKind
	description string
	content     string
	children    []nodeID
}

// FileTree is the mutable file-layout artifact, stored as a flat arena of
// nodes indexed by synthetic id. Path resolution walks child id lists by
// name, so edits never deep-clone the whole structure: every operation
// returns a new FileTree sharing untouched nodes with its predecessor.
//
// All operations are pure. Operations addressing a path that does not
// resolve (or resolves to the wrong kind) return the receiver unchanged -
// stale paths are expected during ordinary editing, not exceptional.
type FileTree struct {
	nodes  map[nodeID]treeNode
	roots  []nodeID
	nextID nodeID
}

// NewFileTree returns an empty tree.
func NewFileTree() *FileTree {
	return &FileTree{nodes: make(map[nodeID]treeNode)}
}

// FileTreeFromNodes builds a tree from its recursive wire shape.
func FileTreeFromNodes(nodes []FileNode) *FileTree {
	t := NewFileTree()
	for _, n := range nodes {
		t.roots = append(t.roots, t.addSubtree(n))
	}
	return t
}

// addSubtree materializes a recursive FileNode into the arena, returning the
// id of the new root. Mutates the receiver; only called during construction
// or on a freshly cloned tree.
func (t *FileTree) addSubtree(n FileNode) nodeID {
	id := t.nextID
	t.nextID++

	node := treeNode{
		name:        n.Name,
		kind:        n.Kind,
		description: n.Description,
		content:     n.Content,
	}
	for _, child := range n.Children {
		node.children = append(node.children, t.addSubtree(child))
	}
	t.nodes[id] = node
	return id
}

// clone returns a shallow copy of the tree: the node table and root list are
// copied, node values are shared until individually replaced.
func (t *FileTree) clone() *FileTree {
	nodes := make(map[nodeID]treeNode, len(t.nodes))
	for id, n := range t.nodes {
		nodes[id] = n
	}
	roots := make([]nodeID, len(t.roots))
	copy(roots, t.roots)
	return &FileTree{nodes: nodes, roots: roots, nextID: t.nextID}
}

// resolve walks the path from the root, matching each segment against child
// names in order. Returns false if any segment is missing.
func (t *FileTree) resolve(path []string) (nodeID, bool) {
	if len(path) == 0 {
		return 0, false
	}

	siblings := t.roots
	var id nodeID
	for _, name := range path {
		found := false
		for _, candidate := range siblings {
			if t.nodes[candidate].name == name {
				id = candidate
				found = true
				break
			}
		}
		if !found {
			return 0, false
		}
		siblings = t.nodes[id].children
	}
	return id, true
}

// materialize converts an arena node back into its recursive wire shape.
func (t *FileTree) materialize(id nodeID) FileNode {
	node := t.nodes[id]
	out := FileNode{
		Name:        node.name,
		Kind:        node.kind,
		Description: node.description,
		Content:     node.content,
	}
	for _, child := range node.children {
		out.Children = append(out.Children, t.materialize(child))
	}
	return out
}

// Nodes returns the whole tree in its recursive wire shape.
func (t *FileTree) Nodes() []FileNode {
	out := make([]FileNode, 0, len(t.roots))
	for _, id := range t.roots {
		out = append(out, t.materialize(id))
	}
	return out
}

// FindByPath resolves a node by walking names from the root. Returns nil if
// any segment is missing. The returned node is a detached snapshot: editing
// it has no effect on the tree.
func (t *FileTree) FindByPath(path []string) *FileNode {
	id, ok := t.resolve(path)
	if !ok {
		return nil
	}
	node := t.materialize(id)
	return &node
}

// Insert appends newNode (and its subtree) to the children of the folder at
// parentPath. An empty parentPath appends to the top-level list. Returns the
// receiver unchanged if parentPath does not resolve to a folder.
func (t *FileTree) Insert(parentPath []string, newNode FileNode) *FileTree {
	if len(parentPath) == 0 {
		next := t.clone()
		next.roots = append(next.roots, next.addSubtree(newNode))
		return next
	}

	parentID, ok := t.resolve(parentPath)
	if !ok || t.nodes[parentID].kind != KindFolder {
		return t
	}

	next := t.clone()
	childID := next.addSubtree(newNode)

	parent := next.nodes[parentID]
	children := make([]nodeID, 0, len(parent.children)+1)
	children = append(children, parent.children...)
	children = append(children, childID)
	parent.children = children
	next.nodes[parentID] = parent

	return next
}

// Remove deletes the node addressed by path and its entire subtree. Removing
// a path with no matching node is a no-op. Relative order of the remaining
// siblings is preserved.
func (t *FileTree) Remove(path []string) *FileTree {
	id, ok := t.resolve(path)
	if !ok {
		return t
	}

	next := t.clone()

	if len(path) == 1 {
		next.roots = withoutID(next.roots, id)
	} else {
		parentID, _ := next.resolve(path[:len(path)-1])
		parent := next.nodes[parentID]
		parent.children = withoutID(parent.children, id)
		next.nodes[parentID] = parent
	}

	next.deleteSubtree(id)
	return next
}

// deleteSubtree drops a node and all its descendants from the arena.
func (t *FileTree) deleteSubtree(id nodeID) {
	for _, child := range t.nodes[id].children {
		t.deleteSubtree(child)
	}
	delete(t.nodes, id)
}

// withoutID returns a fresh id list with the first occurrence of id removed.
func withoutID(ids []nodeID, id nodeID) []nodeID {
	out := make([]nodeID, 0, len(ids))
	for _, candidate := range ids {
		if candidate == id {
			continue
		}
		out = append(out, candidate)
	}
	return out
}

// SetContent replaces the content of the file node at path. No-op on folders
// and missing paths. Structural identity (the path) is unaffected.
func (t *FileTree) SetContent(path []string, text string) *FileTree {
	id, ok := t.resolve(path)
	if !ok || t.nodes[id].kind != KindFile {
		return t
	}

	next := t.clone()
	node := next.nodes[id]
	node.content = text
	next.nodes[id] = node
	return next
}

// MarshalJSON serializes the tree as its recursive wire shape.
func (t *FileTree) MarshalJSON() ([]byte, error) {
	nodes := t.Nodes()
	if nodes == nil {
		nodes = []FileNode{}
	}
	return json.Marshal(nodes)
}

// UnmarshalJSON rebuilds the arena from the recursive wire shape.
func (t *FileTree) UnmarshalJSON(data []byte) error {
	var nodes []FileNode
	if err := json.Unmarshal(data, &nodes); err != nil {
		return err
	}
	*t = *FileTreeFromNodes(nodes)
	return nil
}
