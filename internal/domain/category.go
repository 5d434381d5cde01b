package domain

type Category struct {
	CategoryID int64  `json:"category_ID"`
	Category   string `json:"category"`
}

type Region struct {
	RegionID int64  `json:"region_ID"`
	Region   string `json:"region"`
}

const UnknownCategory = "Unknown Category"

// CategoryLabels maps category_ID to its display label.
type CategoryLabels map[int64]string

func NewCategoryLabels(categories []Category) CategoryLabels {
	labels := make(CategoryLabels, len(categories))
	for _, c := range categories {
		if _, exists := labels[c.CategoryID]; exists {
			continue
		}
		labels[c.CategoryID] = c.Category
	}
	return labels
}

func (l CategoryLabels) Label(id int64) string {
	if label, ok := l[id]; ok {
		return label
	}
	return UnknownCategory
}
