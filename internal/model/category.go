package model

// Category is a labelled grouping that questions reference by id.
// Categories are seeded by migrations and are read-only over HTTP.
type Category struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// CategoryMap is the id → label mapping returned by the listing endpoints.
// encoding/json writes integer map keys as strings: {"1":"Science","2":"Art"}.
type CategoryMap map[int64]string

// NewCategoryMap builds the id → label mapping from a slice of categories.
func NewCategoryMap(categories []Category) CategoryMap {
	m := make(CategoryMap, len(categories))
	for _, c := range categories {
		m[c.ID] = c.Type
	}
	return m
}
