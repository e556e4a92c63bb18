package model

import (
	"fmt"
	"strings"
)

// Category is the fixed set of areas a task can belong to.
type Category string

const (
	CategoryLife          Category = "life"
	CategoryWork          Category = "work"
	CategoryRelationships Category = "relationships"
)

// AllCategories returns the supported categories in display order.
func AllCategories() []Category {
	return []Category{CategoryLife, CategoryWork, CategoryRelationships}
}

// ParseCategory converts a string to a Category or returns an error for
// unknown values.
func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	for _, candidate := range AllCategories() {
		if candidate == c {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", raw)
}

func (c Category) String() string {
	return string(c)
}
