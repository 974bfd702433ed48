package dataset_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/matzehuels/datatree/pkg/dataset"
)

func ExampleReadJSON() {
	d, err := dataset.ReadJSON(strings.NewReader(`{"B": {"y": ["i3"]}, "A": {"x": ["i1", "i2"], "empty": []}}`))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	for _, c := range d {
		for _, s := range c.Subcategories {
			fmt.Printf("%s/%s: %v\n", c.Name, s.Name, s.Items)
		}
	}
	fmt.Printf("%+v\n", d.Stats())
	// Output:
	// B/y: [i3]
	// A/x: [i1 i2]
	// A/empty: []
	// {Categories:2 Subcategories:3 Items:3}
}

func ExampleWriteJSON() {
	d := dataset.Dataset{
		{Name: "B", Subcategories: []dataset.Subcategory{{Name: "y", Items: []string{"i3"}}}},
		{Name: "A", Subcategories: []dataset.Subcategory{{Name: "x", Items: []string{"i1", "i2"}}}},
	}
	if err := dataset.WriteJSON(d, os.Stdout); err != nil {
		fmt.Println("Error:", err)
	}
	// Output:
	// {
	//     "B": {
	//         "y": [
	//             "i3"
	//         ]
	//     },
	//     "A": {
	//         "x": [
	//             "i1",
	//             "i2"
	//         ]
	//     }
	// }
}

func ExampleDocument() {
	doc := dataset.NewDocument()
	fruit, _ := doc.AddCategory("Fruit")
	red, _ := doc.AddSubcategory(fruit, "Red")
	_, _ = doc.AddItem(red, "Apple")
	cherry, _ := doc.AddItem(red, "Cherry")
	_ = doc.Move(cherry, -1)

	fmt.Println(doc.Dirty())
	doc.Walk(func(n dataset.Node, depth int) {
		fmt.Printf("%s%s (%s)\n", strings.Repeat("  ", depth), n.Name, n.Kind)
	})
	// Output:
	// true
	// Fruit (category)
	//   Red (subcategory)
	//     Cherry (item)
	//     Apple (item)
}
