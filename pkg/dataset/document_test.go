package dataset

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dterrors "github.com/matzehuels/datatree/pkg/errors"
)

func TestDocumentCommands(t *testing.T) {
	doc := NewDocument()
	require.NotEmpty(t, doc.ID)
	assert.False(t, doc.Dirty())

	a, err := doc.AddCategory("A")
	require.NoError(t, err)
	assert.True(t, doc.Dirty())

	x, err := doc.AddSubcategory(a, "x")
	require.NoError(t, err)
	_, err = doc.AddItem(x, "i1")
	require.NoError(t, err)
	_, err = doc.AddItem(x, "i2")
	require.NoError(t, err)

	b, err := doc.AddCategory("B")
	require.NoError(t, err)
	y, err := doc.AddSubcategory(b, "y")
	require.NoError(t, err)
	_, err = doc.AddItem(y, "i3")
	require.NoError(t, err)

	want := Dataset{
		{Name: "A", Subcategories: []Subcategory{{Name: "x", Items: []string{"i1", "i2"}}}},
		{Name: "B", Subcategories: []Subcategory{{Name: "y", Items: []string{"i3"}}}},
	}
	assert.Equal(t, want, doc.Dataset())
	assert.Equal(t, 7, doc.Len())
}

func TestDocumentAddRejectsWrongParent(t *testing.T) {
	doc := NewDocument()
	a, _ := doc.AddCategory("A")
	x, _ := doc.AddSubcategory(a, "x")
	item, _ := doc.AddItem(x, "i")

	tests := []struct {
		name string
		add  func() (int, error)
		code dterrors.Code
	}{
		{"subcategory under root", func() (int, error) { return doc.AddSubcategory(RootID, "s") }, dterrors.ErrCodeInvalidNode},
		{"item under category", func() (int, error) { return doc.AddItem(a, "i") }, dterrors.ErrCodeInvalidNode},
		{"item under item", func() (int, error) { return doc.AddItem(item, "i") }, dterrors.ErrCodeInvalidNode},
		{"unknown parent", func() (int, error) { return doc.AddItem(99, "i") }, dterrors.ErrCodeNodeNotFound},
		{"negative parent", func() (int, error) { return doc.AddSubcategory(-1, "s") }, dterrors.ErrCodeNodeNotFound},
		{"empty name", func() (int, error) { return doc.AddCategory("") }, dterrors.ErrCodeInvalidName},
		{"duplicate category", func() (int, error) { return doc.AddCategory("A") }, dterrors.ErrCodeDuplicateName},
		{"duplicate subcategory", func() (int, error) { return doc.AddSubcategory(a, "x") }, dterrors.ErrCodeDuplicateName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.add()
			require.Error(t, err)
			assert.Equal(t, tt.code, dterrors.GetCode(err))
		})
	}
}

func TestDocumentItemsMayRepeat(t *testing.T) {
	doc := NewDocument()
	a, _ := doc.AddCategory("A")
	x, _ := doc.AddSubcategory(a, "x")

	_, err := doc.AddItem(x, "same")
	require.NoError(t, err)
	_, err = doc.AddItem(x, "same")
	require.NoError(t, err)

	assert.Equal(t, []string{"same", "same"}, doc.Dataset()[0].Subcategories[0].Items)
}

func TestDocumentRemoveSubtree(t *testing.T) {
	doc := FromDataset(Dataset{
		{Name: "A", Subcategories: []Subcategory{{Name: "x", Items: []string{"i1"}}}},
		{Name: "B", Subcategories: []Subcategory{{Name: "y", Items: []string{"i2"}}}},
	})
	assert.False(t, doc.Dirty())

	require.NoError(t, doc.Remove(1)) // category A
	assert.True(t, doc.Dirty())
	assert.Equal(t, []string{"B"}, doc.Dataset().Names())

	// Descendants of A are gone as well.
	_, ok := doc.Node(2)
	assert.False(t, ok)
	_, ok = doc.Node(3)
	assert.False(t, ok)

	err := doc.Remove(1)
	assert.True(t, dterrors.Is(err, dterrors.ErrCodeNodeNotFound))

	err = doc.Remove(RootID)
	assert.True(t, dterrors.Is(err, dterrors.ErrCodeInvalidNode))
}

func TestDocumentRemovedIDsAreNotReused(t *testing.T) {
	doc := NewDocument()
	a, _ := doc.AddCategory("A")
	require.NoError(t, doc.Remove(a))

	b, err := doc.AddCategory("A")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDocumentRename(t *testing.T) {
	doc := NewDocument()
	a, _ := doc.AddCategory("A")
	_, _ = doc.AddCategory("B")
	require.NoError(t, doc.SaveAs(filepath.Join(t.TempDir(), "d.json")))

	require.NoError(t, doc.Rename(a, "A"))
	assert.False(t, doc.Dirty(), "renaming to the same name is not a change")

	err := doc.Rename(a, "B")
	assert.True(t, dterrors.Is(err, dterrors.ErrCodeDuplicateName))

	require.NoError(t, doc.Rename(a, "C"))
	assert.True(t, doc.Dirty())
	assert.Equal(t, []string{"C", "B"}, doc.Dataset().Names())

	err = doc.Rename(RootID, "root")
	assert.True(t, dterrors.Is(err, dterrors.ErrCodeInvalidNode))
}

func TestDocumentBlankItems(t *testing.T) {
	doc := NewDocument()
	a, _ := doc.AddCategory("A")
	x, _ := doc.AddSubcategory(a, "x")

	blank, err := doc.AddItem(x, "")
	require.NoError(t, err)
	i1, err := doc.AddItem(x, "i1")
	require.NoError(t, err)
	require.NoError(t, doc.Rename(i1, ""))

	want := Dataset{{Name: "A", Subcategories: []Subcategory{{Name: "x", Items: []string{"", ""}}}}}
	assert.Equal(t, want, doc.Dataset())

	require.NoError(t, doc.Rename(blank, "i0"))

	err = doc.Rename(x, "")
	assert.True(t, dterrors.Is(err, dterrors.ErrCodeInvalidName), "subcategories need a name")
	_, err = doc.AddItem(x, "bad\nname")
	assert.True(t, dterrors.Is(err, dterrors.ErrCodeInvalidName))
}

func TestDocumentMove(t *testing.T) {
	doc := NewDocument()
	a, _ := doc.AddCategory("A")
	_, _ = doc.AddCategory("B")
	c, _ := doc.AddCategory("C")

	require.NoError(t, doc.Move(a, 1))
	assert.Equal(t, []string{"B", "A", "C"}, doc.Dataset().Names())

	require.NoError(t, doc.Move(c, -10))
	assert.Equal(t, []string{"C", "B", "A"}, doc.Dataset().Names())

	require.NoError(t, doc.SaveAs(filepath.Join(t.TempDir(), "d.json")))
	require.NoError(t, doc.Move(c, -1))
	assert.False(t, doc.Dirty(), "a clamped no-op move is not a change")
}

func TestDocumentClear(t *testing.T) {
	doc := FromDataset(Dataset{{Name: "A"}, {Name: "B"}})
	doc.Clear()

	assert.True(t, doc.Dirty())
	assert.Empty(t, doc.Dataset())
	assert.Zero(t, doc.Len())

	_, err := doc.AddCategory("A")
	assert.NoError(t, err)
}

func TestDocumentWalk(t *testing.T) {
	doc := FromDataset(Dataset{
		{Name: "A", Subcategories: []Subcategory{{Name: "x", Items: []string{"i1", "i2"}}}},
		{Name: "B"},
	})

	var lines []string
	doc.Walk(func(n Node, depth int) {
		lines = append(lines, strings.Repeat(" ", depth)+n.Kind.String()+":"+n.Name)
	})

	assert.Equal(t, []string{
		"category:A",
		" subcategory:x",
		"  item:i1",
		"  item:i2",
		"category:B",
	}, lines)
}

func TestDocumentOpenSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.json")
	require.NoError(t, Export(Dataset{{Name: "A", Subcategories: []Subcategory{{Name: "x", Items: []string{"i"}}}}}, path))

	doc, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Path)
	assert.False(t, doc.Dirty())

	_, err = doc.AddCategory("B")
	require.NoError(t, err)
	require.NoError(t, doc.Save())
	assert.False(t, doc.Dirty())

	reloaded, err := Import(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, reloaded.Names())
}

func TestDocumentSaveWithoutPath(t *testing.T) {
	err := NewDocument().Save()
	assert.True(t, dterrors.Is(err, dterrors.ErrCodeInvalidInput))
}
