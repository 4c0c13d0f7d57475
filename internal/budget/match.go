package budget

import "monetra/internal/models"

// Matches reports whether a transaction counts toward a budget definition.
//
// Grouped budgets match any transaction whose category is linked to the
// group; single-category budgets match on category equality. Uncategorized
// transactions never match. A malformed definition with neither scope set,
// or a grouped budget whose group relation is missing or empty, matches
// nothing rather than erroring.
func Matches(def *models.Budget, txn *models.Transaction) bool {
	if txn.CategoryID == nil {
		return false
	}

	if def.GroupID != nil {
		if def.Group == nil {
			return false
		}
		for i := range def.Group.Categories {
			if def.Group.Categories[i].ID == *txn.CategoryID {
				return true
			}
		}
		return false
	}

	if def.CategoryID != nil {
		return *def.CategoryID == *txn.CategoryID
	}

	return false
}
