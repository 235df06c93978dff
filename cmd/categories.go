package cmd

// Category groups commands for menus and help display.
type Category string

// Standard command categories, one per menu.
const (
	CategoryFile    Category = "File"
	CategoryEdit    Category = "Edit"
	CategoryView    Category = "View"
	CategoryPalette Category = "Palette"
	CategorySystem  Category = "System"
	CategorySpecial Category = "Special" // Hidden from main help
)

// CategoryOrder defines the display order for help screens
var CategoryOrder = []Category{
	CategoryFile,
	CategoryEdit,
	CategoryView,
	CategoryPalette,
	CategorySystem,
}

// GetCategoryPriority returns the display priority for a category (lower = higher priority)
func GetCategoryPriority(category Category) int {
	for i, cat := range CategoryOrder {
		if cat == category {
			return i
		}
	}
	return len(CategoryOrder) // Unknown categories go to the end
}

// IsHiddenCategory returns true if the category should be hidden from main help
func IsHiddenCategory(category Category) bool {
	return category == CategorySpecial
}
