// Package dataset holds the three-level data behind a datatree chart.
//
// # Dataset
//
// A [Dataset] is an ordered mapping category → subcategory → items. Order is
// kept everywhere (in memory, in JSON, in the chart) because it determines
// the angular position of every wedge. The JSON form is an object of objects
// of string arrays:
//
//	{"Fruit": {"Citrus": ["Lemon", "Lime"]}, "Vegetables": {"Roots": []}}
//
// Use [ReadJSON]/[WriteJSON] for streams and [Import]/[Export] for files.
//
// # Document
//
// A [Document] is the editable form of a dataset: an arena of [Node] values
// with parent/child indices, edited through commands ([Document.AddCategory],
// [Document.AddSubcategory], [Document.AddItem], [Document.Rename],
// [Document.Remove], [Document.Move], [Document.Clear]). Each successful
// command marks the document dirty; [Document.Save] writes it and clears the
// flag. Editors render their view from the document instead of keeping their
// own copy of the data.
package dataset
