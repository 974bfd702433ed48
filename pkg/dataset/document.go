package dataset

import (
	"slices"

	"github.com/google/uuid"

	dterrors "github.com/matzehuels/datatree/pkg/errors"
)

// NodeKind identifies the nesting level of a node in a [Document].
type NodeKind int

const (
	// KindRoot is the single root node (ID 0). It has no name.
	KindRoot NodeKind = iota
	// KindCategory nodes are children of the root (inner ring).
	KindCategory
	// KindSubcategory nodes are children of categories (mid ring).
	KindSubcategory
	// KindItem nodes are children of subcategories (outer ring).
	KindItem
)

// String returns the lower-case kind name.
func (k NodeKind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindCategory:
		return "category"
	case KindSubcategory:
		return "subcategory"
	case KindItem:
		return "item"
	}
	return "unknown"
}

// RootID is the ID of the root node of every document.
const RootID = 0

// Node is one entry of the document tree.
//
// Nodes live in an arena indexed by ID; Parent and Children hold arena
// indices. IDs are never reused within a document, so a removed node's ID
// stays invalid for the document's lifetime.
type Node struct {
	ID       int
	Kind     NodeKind
	Name     string
	Parent   int
	Children []int

	removed bool
}

// Document is an editable dataset.
//
// The tree is the source of truth; views (the terminal editor, the chart)
// are derived from it with [Document.Dataset] or [Document.Walk]. Every
// successful edit marks the document dirty until it is saved.
//
// The zero value is not usable - use [NewDocument], [FromDataset] or [Open].
// Document is not safe for concurrent use.
type Document struct {
	ID   string // Random identifier of this editing session
	Path string // File the document was loaded from or last saved to

	nodes []Node
	dirty bool
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		ID:    uuid.NewString(),
		nodes: []Node{{ID: RootID, Kind: KindRoot, Parent: -1}},
	}
}

// FromDataset builds a clean (not dirty) document holding d.
func FromDataset(d Dataset) *Document {
	doc := NewDocument()
	for _, c := range d {
		cid := doc.add(RootID, KindCategory, c.Name)
		for _, s := range c.Subcategories {
			sid := doc.add(cid, KindSubcategory, s.Name)
			for _, item := range s.Items {
				doc.add(sid, KindItem, item)
			}
		}
	}
	return doc
}

// Open loads the dataset file at path into a new document.
func Open(path string) (*Document, error) {
	d, err := Import(path)
	if err != nil {
		return nil, err
	}
	doc := FromDataset(d)
	doc.Path = path
	return doc, nil
}

// Save writes the document to its Path and clears the dirty flag.
func (doc *Document) Save() error {
	if doc.Path == "" {
		return dterrors.New(dterrors.ErrCodeInvalidInput, "document has no path")
	}
	return doc.SaveAs(doc.Path)
}

// SaveAs writes the document to path, makes path the document's Path and
// clears the dirty flag.
func (doc *Document) SaveAs(path string) error {
	if err := Export(doc.Dataset(), path); err != nil {
		return err
	}
	doc.Path = path
	doc.dirty = false
	return nil
}

// Dirty reports whether the document changed since it was loaded or saved.
func (doc *Document) Dirty() bool { return doc.dirty }

// Dataset projects the tree onto an ordered [Dataset].
func (doc *Document) Dataset() Dataset {
	root := doc.nodes[RootID]
	out := make(Dataset, 0, len(root.Children))
	for _, cid := range root.Children {
		c := doc.nodes[cid]
		cat := Category{Name: c.Name, Subcategories: make([]Subcategory, 0, len(c.Children))}
		for _, sid := range c.Children {
			s := doc.nodes[sid]
			sub := Subcategory{Name: s.Name, Items: make([]string, 0, len(s.Children))}
			for _, iid := range s.Children {
				sub.Items = append(sub.Items, doc.nodes[iid].Name)
			}
			cat.Subcategories = append(cat.Subcategories, sub)
		}
		out = append(out, cat)
	}
	return out
}

// Node returns a copy of the live node with the given ID.
func (doc *Document) Node(id int) (Node, bool) {
	if id < 0 || id >= len(doc.nodes) || doc.nodes[id].removed {
		return Node{}, false
	}
	n := doc.nodes[id]
	n.Children = slices.Clone(n.Children)
	return n, true
}

// Len returns the number of live nodes, root excluded.
func (doc *Document) Len() int {
	n := 0
	doc.Walk(func(Node, int) { n++ })
	return n
}

// Walk visits every live node except the root in display order (pre-order).
// depth is 0 for categories, 1 for subcategories and 2 for items.
func (doc *Document) Walk(fn func(n Node, depth int)) {
	var visit func(id, depth int)
	visit = func(id, depth int) {
		for _, child := range doc.nodes[id].Children {
			fn(doc.nodes[child], depth)
			visit(child, depth+1)
		}
	}
	visit(RootID, 0)
}

// AddCategory appends a category and returns its node ID.
func (doc *Document) AddCategory(name string) (int, error) {
	return doc.addChecked(RootID, KindRoot, KindCategory, name)
}

// AddSubcategory appends a subcategory to the category categoryID.
func (doc *Document) AddSubcategory(categoryID int, name string) (int, error) {
	return doc.addChecked(categoryID, KindCategory, KindSubcategory, name)
}

// AddItem appends an item to the subcategory subcategoryID.
// Items may repeat within a subcategory.
func (doc *Document) AddItem(subcategoryID int, name string) (int, error) {
	return doc.addChecked(subcategoryID, KindSubcategory, KindItem, name)
}

// Rename changes the name of a node.
func (doc *Document) Rename(id int, name string) error {
	n, err := doc.live(id)
	if err != nil {
		return err
	}
	if n.Kind == KindRoot {
		return dterrors.New(dterrors.ErrCodeInvalidNode, "the root node cannot be renamed")
	}
	if err := validateName(n.Kind, name); err != nil {
		return err
	}
	if n.Name == name {
		return nil
	}
	if err := doc.checkUnique(n.Parent, n.Kind, name); err != nil {
		return err
	}
	n.Name = name
	doc.dirty = true
	return nil
}

// Remove deletes a node and its whole subtree.
func (doc *Document) Remove(id int) error {
	n, err := doc.live(id)
	if err != nil {
		return err
	}
	if n.Kind == KindRoot {
		return dterrors.New(dterrors.ErrCodeInvalidNode, "the root node cannot be removed")
	}
	parent := &doc.nodes[n.Parent]
	parent.Children = slices.DeleteFunc(parent.Children, func(c int) bool { return c == id })
	doc.tombstone(id)
	doc.dirty = true
	return nil
}

// Move shifts a node among its siblings by delta positions. The target
// position is clamped to the sibling range; a move that changes nothing
// leaves the document clean.
func (doc *Document) Move(id, delta int) error {
	n, err := doc.live(id)
	if err != nil {
		return err
	}
	if n.Kind == KindRoot {
		return dterrors.New(dterrors.ErrCodeInvalidNode, "the root node cannot be moved")
	}
	siblings := doc.nodes[n.Parent].Children
	from := slices.Index(siblings, id)
	to := max(0, min(len(siblings)-1, from+delta))
	if from == to {
		return nil
	}
	siblings = slices.Delete(siblings, from, from+1)
	doc.nodes[n.Parent].Children = slices.Insert(siblings, to, id)
	doc.dirty = true
	return nil
}

// Clear removes every category.
func (doc *Document) Clear() {
	root := &doc.nodes[RootID]
	if len(root.Children) == 0 {
		return
	}
	for _, c := range root.Children {
		doc.tombstone(c)
	}
	root.Children = nil
	doc.dirty = true
}

func (doc *Document) addChecked(parent int, parentKind, kind NodeKind, name string) (int, error) {
	p, err := doc.live(parent)
	if err != nil {
		return 0, err
	}
	if p.Kind != parentKind {
		return 0, dterrors.New(dterrors.ErrCodeInvalidNode, "cannot add %s to %s %d", kind, p.Kind, parent)
	}
	if err := validateName(kind, name); err != nil {
		return 0, err
	}
	if err := doc.checkUnique(parent, kind, name); err != nil {
		return 0, err
	}
	id := doc.add(parent, kind, name)
	doc.dirty = true
	return id, nil
}

func (doc *Document) add(parent int, kind NodeKind, name string) int {
	id := len(doc.nodes)
	doc.nodes = append(doc.nodes, Node{ID: id, Kind: kind, Name: name, Parent: parent})
	doc.nodes[parent].Children = append(doc.nodes[parent].Children, id)
	return id
}

// checkUnique enforces unique names among category and subcategory siblings.
// validateName applies the label rules. Items may be blank, like an empty
// string in a dataset file; they draw as an unlabeled wedge.
func validateName(kind NodeKind, name string) error {
	if kind == KindItem && name == "" {
		return nil
	}
	return dterrors.ValidateName(name)
}

func (doc *Document) checkUnique(parent int, kind NodeKind, name string) error {
	if kind == KindItem {
		return nil
	}
	for _, c := range doc.nodes[parent].Children {
		if doc.nodes[c].Name == name {
			return dterrors.New(dterrors.ErrCodeDuplicateName, "%s %q already exists", kind, name)
		}
	}
	return nil
}

func (doc *Document) live(id int) (*Node, error) {
	if id < 0 || id >= len(doc.nodes) || doc.nodes[id].removed {
		return nil, dterrors.New(dterrors.ErrCodeNodeNotFound, "node %d not found", id)
	}
	return &doc.nodes[id], nil
}

func (doc *Document) tombstone(id int) {
	n := &doc.nodes[id]
	n.removed = true
	for _, c := range n.Children {
		doc.tombstone(c)
	}
	n.Children = nil
}
