package repositories

import (
	"errors"
	"mgMessenger/internal/errs"
	"mgMessenger/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{
		db: db,
	}
}

// CreateGroup stores the group and its members in one transaction.
func (gr *GroupRepository) CreateGroup(group *models.ChatGroup, memberIDs []uuid.UUID) error {
	return gr.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			// return any error will rollback
			return err
		}
		return createMembers(tx, group.ID, memberIDs)
	})
}

func (gr *GroupRepository) GetGroupByID(id uuid.UUID) (*models.ChatGroup, error) {
	var group models.ChatGroup
	if err := gr.db.Preload("Owner").Where("id = ?", id).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrGroupNotFound
		}
		return nil, err
	}
	return &group, nil
}

// UpdateGroup saves the group fields and, when memberIDs is not nil, replaces
// the member list.
func (gr *GroupRepository) UpdateGroup(group *models.ChatGroup, memberIDs []uuid.UUID) error {
	return gr.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(group).Updates(map[string]any{
			"name":       group.Name,
			"avatar_url": group.AvatarURL,
			"owner_id":   group.OwnerID,
		}).Error; err != nil {
			return err
		}
		if memberIDs == nil {
			return nil
		}
		if err := tx.Where("group_id = ?", group.ID).Delete(&models.GroupMember{}).Error; err != nil {
			return err
		}
		return createMembers(tx, group.ID, memberIDs)
	})
}

func (gr *GroupRepository) DeleteGroup(group *models.ChatGroup) error {
	return gr.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", group.ID).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", group.ID).Delete(&models.GroupMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(group).Error
	})
}

func (gr *GroupRepository) MemberLogins(groupID uuid.UUID) ([]string, error) {
	var logins []string
	err := gr.db.Model(&models.User{}).
		Joins("JOIN group_members ON group_members.user_id = users.id").
		Where("group_members.group_id = ?", groupID).
		Order("users.login").
		Pluck("users.login", &logins).Error
	return logins, err
}

func createMembers(tx *gorm.DB, groupID uuid.UUID, memberIDs []uuid.UUID) error {
	for _, userID := range memberIDs {
		if err := tx.Create(&models.GroupMember{
			GroupID: groupID,
			UserID:  userID,
		}).Error; err != nil {
			return err
		}
	}
	return nil
}
