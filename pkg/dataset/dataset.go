package dataset

// Dataset is an ordered mapping from category name to its subcategories.
//
// Order is significant: it is the order in which wedges are laid out around
// the chart, so Dataset is a slice rather than a Go map. Names are unique
// within one level; [Dataset.Put] replaces an existing category in place.
type Dataset []Category

// Category is one inner-ring entry.
type Category struct {
	Name          string
	Subcategories []Subcategory
}

// Subcategory is one mid-ring entry. Items are leaves and may repeat.
type Subcategory struct {
	Name  string
	Items []string
}

// Stats summarizes the size of a dataset at each nesting level.
type Stats struct {
	Categories    int
	Subcategories int
	Items         int
}

// Category returns the category with the given name.
func (d Dataset) Category(name string) (*Category, bool) {
	for i := range d {
		if d[i].Name == name {
			return &d[i], true
		}
	}
	return nil, false
}

// Put adds c at the end, or replaces the category with the same name
// without changing its position.
func (d *Dataset) Put(c Category) {
	if existing, ok := d.Category(c.Name); ok {
		*existing = c
		return
	}
	*d = append(*d, c)
}

// Names returns the category names in order.
func (d Dataset) Names() []string {
	names := make([]string, len(d))
	for i, c := range d {
		names[i] = c.Name
	}
	return names
}

// Stats counts categories, subcategories and items.
func (d Dataset) Stats() Stats {
	s := Stats{Categories: len(d)}
	for _, c := range d {
		s.Subcategories += len(c.Subcategories)
		for _, sub := range c.Subcategories {
			s.Items += len(sub.Items)
		}
	}
	return s
}

// Clone returns a deep copy.
func (d Dataset) Clone() Dataset {
	if d == nil {
		return nil
	}
	out := make(Dataset, len(d))
	for i, c := range d {
		out[i] = c.Clone()
	}
	return out
}

// Subcategory returns the subcategory with the given name.
func (c *Category) Subcategory(name string) (*Subcategory, bool) {
	for i := range c.Subcategories {
		if c.Subcategories[i].Name == name {
			return &c.Subcategories[i], true
		}
	}
	return nil, false
}

// Put adds s at the end, or replaces the subcategory with the same name
// without changing its position.
func (c *Category) Put(s Subcategory) {
	if existing, ok := c.Subcategory(s.Name); ok {
		*existing = s
		return
	}
	c.Subcategories = append(c.Subcategories, s)
}

// ItemCount returns the number of items across all subcategories.
func (c Category) ItemCount() int {
	n := 0
	for _, s := range c.Subcategories {
		n += len(s.Items)
	}
	return n
}

// Clone returns a deep copy.
func (c Category) Clone() Category {
	out := Category{Name: c.Name}
	if c.Subcategories != nil {
		out.Subcategories = make([]Subcategory, len(c.Subcategories))
		for i, s := range c.Subcategories {
			out.Subcategories[i] = Subcategory{Name: s.Name, Items: append([]string(nil), s.Items...)}
			if s.Items != nil && len(s.Items) == 0 {
				out.Subcategories[i].Items = []string{}
			}
		}
	}
	return out
}
