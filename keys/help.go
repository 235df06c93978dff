package keys

// HelpCategory organizes UI keys by function
type HelpCategory string

const (
	HelpCategoryNavigation HelpCategory = "Navigation"
	HelpCategorySelection  HelpCategory = "Selection"
	HelpCategoryOther      HelpCategory = "Other"
	HelpCategoryUncategory HelpCategory = "Uncategorized" // For keys without categories
)

// KeyHelpInfo adds extended help information to key bindings
type KeyHelpInfo struct {
	Description string       // Extended description for help text
	Category    HelpCategory // Category for organizing in help screens
}

// KeyHelpMap maps KeyNames to their help information
var KeyHelpMap = map[KeyName]KeyHelpInfo{
	// Navigation category
	KeyUp:     {Description: "Move up (Vim j/k keys supported)", Category: HelpCategoryNavigation},
	KeyDown:   {Description: "Move down (Vim j/k keys supported)", Category: HelpCategoryNavigation},
	KeyLeft:   {Description: "Move left (Vim h/l keys supported)", Category: HelpCategoryNavigation},
	KeyRight:  {Description: "Move right (Vim h/l keys supported)", Category: HelpCategoryNavigation},
	KeyHome:   {Description: "Jump to the first palette entry", Category: HelpCategoryNavigation},
	KeyEnd:    {Description: "Jump to the last palette entry", Category: HelpCategoryNavigation},
	KeyPgUp:   {Description: "Scroll the palette grid up one page", Category: HelpCategoryNavigation},
	KeyPgDown: {Description: "Scroll the palette grid down one page", Category: HelpCategoryNavigation},

	// Selection category
	KeyShiftUp:    {Description: "Extend the palette selection upward", Category: HelpCategorySelection},
	KeyShiftDown:  {Description: "Extend the palette selection downward", Category: HelpCategorySelection},
	KeyShiftLeft:  {Description: "Extend the palette selection left", Category: HelpCategorySelection},
	KeyShiftRight: {Description: "Extend the palette selection right", Category: HelpCategorySelection},

	// Other category
	KeyTab:   {Description: "Switch focus between the palette grid and the color panel", Category: HelpCategoryOther},
	KeyEnter: {Description: "Choose the highlighted item", Category: HelpCategoryOther},
	KeyMenu:  {Description: "Activate the menu bar", Category: HelpCategoryOther},
	KeyEsc:   {Description: "Cancel/exit current mode", Category: HelpCategoryOther},
}

// GetKeyHelp returns the help information for a key
func GetKeyHelp(keyName KeyName) KeyHelpInfo {
	info, exists := KeyHelpMap[keyName]
	if !exists {
		// Return default help for unknown keys
		return KeyHelpInfo{
			Description: "No description",
			Category:    HelpCategoryUncategory,
		}
	}
	return info
}

// GetKeysInCategory returns all key bindings in a given category
func GetKeysInCategory(category HelpCategory) []KeyName {
	var keys []KeyName
	for k, info := range KeyHelpMap {
		if info.Category == category {
			keys = append(keys, k)
		}
	}
	return keys
}

// GetAllCategories returns all categories that have at least one key
func GetAllCategories() []HelpCategory {
	categoryMap := make(map[HelpCategory]bool)
	for _, info := range KeyHelpMap {
		categoryMap[info.Category] = true
	}

	// Convert map to slice
	categories := make([]HelpCategory, 0, len(categoryMap))
	for category := range categoryMap {
		categories = append(categories, category)
	}

	return categories
}
