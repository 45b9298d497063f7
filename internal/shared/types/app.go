package types

// Category groups apps in the start menu
type Category string

const (
	CategoryPersonal Category = "personal"
	CategoryWork     Category = "work"
	CategorySystem   Category = "system"
)

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	switch c {
	case CategoryPersonal, CategoryWork, CategorySystem:
		return true
	}
	return false
}

// AppMetadata is an immutable registry entry for an installable app.
// Component is resolved by the desktop shell to a mountable view; the core
// never inspects it.
type AppMetadata struct {
	ID             string   `json:"id" yaml:"id" toml:"id"`
	Name           string   `json:"name" yaml:"name" toml:"name"`
	Icon           string   `json:"icon" yaml:"icon" toml:"icon"`
	Component      string   `json:"component" yaml:"component" toml:"component"`
	Category       Category `json:"category" yaml:"category" toml:"category"`
	DefaultSize    Size     `json:"defaultSize" yaml:"defaultSize" toml:"defaultSize"`
	SearchKeywords []string `json:"searchKeywords" yaml:"searchKeywords" toml:"searchKeywords"`
	Description    string   `json:"description" yaml:"description" toml:"description"`
}

// RegistryStats contains registry statistics
type RegistryStats struct {
	TotalApps  int              `json:"totalApps"`
	Categories map[Category]int `json:"categories"`
}
