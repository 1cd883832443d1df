package repositories

import (
	"errors"
	"mgMessenger/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// SearchableUsers lists visible, non-blocked users other than excludeID,
// ordered by name.
func (ur *UserRepository) SearchableUsers(excludeID uuid.UUID) ([]models.User, error) {
	var users []models.User
	err := ur.db.
		Where("id <> ? AND is_blocked = ? AND is_visible = ?", excludeID, false, true).
		Order("first_name, last_name, login").
		Find(&users).Error
	return users, err
}

func (ur *UserRepository) UpdateProfile(user *models.User) error {
	return ur.db.Model(user).Select(
		"avatar_url", "phone", "email", "position", "last_name", "first_name", "middle_name",
	).Updates(user).Error
}

func (ur *UserRepository) UpdatePasswordHash(user *models.User) error {
	return ur.db.Model(user).Update("password_hash", user.PasswordHash).Error
}

// GetUserNote returns an empty note when none is stored.
func (ur *UserRepository) GetUserNote(ownerID, targetID uuid.UUID) (string, error) {
	var note models.UserNote
	err := ur.db.Where("owner_user_id = ? AND target_user_id = ?", ownerID, targetID).First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return note.Note, nil
}

func (ur *UserRepository) SaveUserNote(ownerID, targetID uuid.UUID, text string) error {
	note := models.UserNote{OwnerUserID: ownerID, TargetUserID: targetID, Note: text}
	return ur.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_user_id"}, {Name: "target_user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"note", "updated_at"}),
	}).Create(&note).Error
}

func (ur *UserRepository) DeleteUserNote(ownerID, targetID uuid.UUID) error {
	return ur.db.Where("owner_user_id = ? AND target_user_id = ?", ownerID, targetID).
		Delete(&models.UserNote{}).Error
}
