package enums

import "fmt"

// Category classifies a hot take. The list is fixed; submissions that carry no
// category fall back to CategoryNone.
type Category string

const (
	CategoryLifestyle     Category = "Lifestyle & Habits"
	CategoryCultural      Category = "Cultural & Entertainment"
	CategoryEthical       Category = "Ethical & Moral Beliefs"
	CategorySocial        Category = "Social & Political Views"
	CategoryRelationships Category = "Relationship Dynamics"
	CategoryCareer        Category = "Career & Education"
	CategoryTravel        Category = "Travel & Adventure"
	CategoryFood          Category = "Food & Cuisine"
	CategoryAfterDark     Category = "After Dark"
	CategoryLocal         Category = "Local"
	CategoryNone          Category = "No Category"
)

var validCategories = []Category{
	CategoryLifestyle,
	CategoryCultural,
	CategoryEthical,
	CategorySocial,
	CategoryRelationships,
	CategoryCareer,
	CategoryTravel,
	CategoryFood,
	CategoryAfterDark,
	CategoryLocal,
	CategoryNone,
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// IsValid reports whether the value is a known Category.
func (c Category) IsValid() bool {
	for _, candidate := range validCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCategory converts raw input into a Category.
func ParseCategory(value string) (Category, error) {
	for _, candidate := range validCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid category %q", value)
}

// NormalizeCategories validates the provided names and applies the
// CategoryNone fallback when the list is empty.
func NormalizeCategories(values []string) ([]Category, error) {
	if len(values) == 0 {
		return []Category{CategoryNone}, nil
	}
	out := make([]Category, 0, len(values))
	for _, value := range values {
		category, err := ParseCategory(value)
		if err != nil {
			return nil, err
		}
		out = append(out, category)
	}
	return out, nil
}
