package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "monetra/internal/errors"
	"monetra/internal/models"
	"monetra/internal/pagination"
)

// groupService handles category-group business logic.
type groupService struct {
	db *gorm.DB
}

// NewGroupService creates a new GroupServicer.
func NewGroupService(db *gorm.DB) GroupServicer {
	return &groupService{db: db}
}

// CreateGroup creates a category group with an initial set of member
// categories. A group must start with at least one member; it can only
// become empty later through category deletion.
func (s *groupService) CreateGroup(userID, name, description string, categoryIDs []string) (*models.CategoryGroup, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "group name is required")
	}

	if len(categoryIDs) == 0 {
		return nil, apperrors.ErrEmptyGroup
	}

	categories, err := s.loadOwnedCategories(userID, categoryIDs)
	if err != nil {
		return nil, err
	}

	group := &models.CategoryGroup{
		UserID:      userID,
		Name:        name,
		Description: description,
		Categories:  categories,
	}

	if err := s.db.Create(group).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return group, nil
}

// GetUserGroups retrieves a paginated list of groups for a user, with
// member categories preloaded.
func (s *groupService) GetUserGroups(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.CategoryGroup], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.CategoryGroup{}).Where("user_id = ?", userID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var groups []models.CategoryGroup
	if err := base.Scopes(pagination.Paginate(page)).
		Preload("Categories").
		Order("name ASC").
		Find(&groups).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(groups, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetGroupByID retrieves a group by ID for a specific user, with member
// categories preloaded.
func (s *groupService) GetGroupByID(userID, groupID string) (*models.CategoryGroup, error) {
	var group models.CategoryGroup
	if err := s.db.Preload("Categories").
		Where("id = ? AND user_id = ?", groupID, userID).
		First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &group, nil
}

// UpdateGroup updates a group's name and description.
func (s *groupService) UpdateGroup(userID, groupID, name, description string) (*models.CategoryGroup, error) {
	group, err := s.GetGroupByID(userID, groupID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if description != "" {
		updates["description"] = description
	}

	if len(updates) > 0 {
		if err := s.db.Model(group).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.GetGroupByID(userID, groupID)
}

// SetGroupCategories replaces the group's membership with the given set.
func (s *groupService) SetGroupCategories(userID, groupID string, categoryIDs []string) (*models.CategoryGroup, error) {
	group, err := s.GetGroupByID(userID, groupID)
	if err != nil {
		return nil, err
	}

	if len(categoryIDs) == 0 {
		return nil, apperrors.ErrEmptyGroup
	}

	categories, err := s.loadOwnedCategories(userID, categoryIDs)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(group).Association("Categories").Replace(categories); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetGroupByID(userID, groupID)
}

// DeleteGroup soft-deletes a group and clears its memberships. Budgets
// scoped to the group stop matching from that point on.
func (s *groupService) DeleteGroup(userID, groupID string) error {
	group, err := s.GetGroupByID(userID, groupID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(group).Association("Categories").Clear(); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(group).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// loadOwnedCategories resolves category IDs to records, ensuring every
// one exists and belongs to the user.
func (s *groupService) loadOwnedCategories(userID string, categoryIDs []string) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Where("user_id = ? AND id IN ?", userID, categoryIDs).Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(categories) != len(categoryIDs) {
		return nil, apperrors.ErrCategoryNotFound
	}
	return categories, nil
}
