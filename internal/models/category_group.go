package models

// CategoryGroup is a user-defined bundle of categories. Grouped budgets
// target a group and count spend across every linked category.
type CategoryGroup struct {
	Base
	UserID      string `gorm:"type:uuid;not null;index" json:"user_id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`

	// Relationships
	Categories []Category `gorm:"many2many:category_group_members" json:"categories,omitempty"`
	Budgets    []Budget   `gorm:"foreignKey:GroupID" json:"budgets,omitempty"`
}

// CategoryIDs returns the ids of all linked categories.
func (g *CategoryGroup) CategoryIDs() []string {
	ids := make([]string, 0, len(g.Categories))
	for i := range g.Categories {
		ids = append(ids, g.Categories[i].ID)
	}
	return ids
}
