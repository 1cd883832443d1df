package repositories

import (
	"errors"
	"mgMessenger/internal/errs"
	"mgMessenger/internal/models"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{
		db: db,
	}
}

func (chr *ChatRepository) SaveMessage(message *models.Message) error {
	return chr.db.Create(message).Error
}

func (chr *ChatRepository) GetMessageByID(id uuid.UUID) (*models.Message, error) {
	var message models.Message
	if err := chr.db.Preload("Sender").Where("id = ?", id).First(&message).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrMessageNotFound
		}
		return nil, err
	}
	return &message, nil
}

func (chr *ChatRepository) UpdateMessageText(message *models.Message) error {
	return chr.db.Model(message).Update("text", message.Text).Error
}

func (chr *ChatRepository) DeleteMessage(message *models.Message) error {
	return chr.db.Delete(message).Error
}

func (chr *ChatRepository) IsGroupMember(groupID, userID uuid.UUID) bool {
	var count int64
	chr.db.Model(&models.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count)
	return count > 0
}

func (chr *ChatRepository) GroupMemberLogins(groupID uuid.UUID) ([]string, error) {
	var logins []string
	err := chr.db.Model(&models.User{}).
		Joins("JOIN group_members ON group_members.user_id = users.id").
		Where("group_members.group_id = ?", groupID).
		Pluck("users.login", &logins).Error
	return logins, err
}

// MessageParticipantLogins is everyone who can see the message: the group
// members, or the sender and receiver of a private message.
func (chr *ChatRepository) MessageParticipantLogins(message *models.Message) ([]string, error) {
	if message.GroupID != nil {
		return chr.GroupMemberLogins(*message.GroupID)
	}
	ids := []uuid.UUID{message.SenderID}
	if message.ReceiverUserID != nil {
		ids = append(ids, *message.ReceiverUserID)
	}
	var logins []string
	err := chr.db.Model(&models.User{}).Where("id IN ?", ids).Pluck("login", &logins).Error
	return logins, err
}

// PrivateHistory returns the messages between two users, oldest first, and
// marks the ones addressed to reader as read.
func (chr *ChatRepository) PrivateHistory(readerID, partnerID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := chr.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Message{}).
			Where("sender_id = ? AND receiver_user_id = ? AND group_id IS NULL AND is_read = ?", partnerID, readerID, false).
			Update("is_read", true).Error; err != nil {
			return err
		}
		return tx.Preload("Sender").
			Where("group_id IS NULL AND ((sender_id = ? AND receiver_user_id = ?) OR (sender_id = ? AND receiver_user_id = ?))",
				readerID, partnerID, partnerID, readerID).
			Order("created_at").
			Find(&messages).Error
	})
	return messages, err
}

// GroupHistory returns the group's messages, oldest first, and marks the ones
// not sent by reader as read.
func (chr *ChatRepository) GroupHistory(readerID, groupID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := chr.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Message{}).
			Where("group_id = ? AND sender_id <> ? AND is_read = ?", groupID, readerID, false).
			Update("is_read", true).Error; err != nil {
			return err
		}
		return tx.Preload("Sender").
			Where("group_id = ?", groupID).
			Order("created_at").
			Find(&messages).Error
	})
	return messages, err
}

type PrivateChatSummary struct {
	Partner     models.User
	LastMessage models.Message
	Unread      int64
}

type GroupChatSummary struct {
	Group       models.ChatGroup
	LastMessage *models.Message
	Unread      int64
}

type lastPrivateMessage struct {
	models.Message `gorm:"embedded"`
	PartnerID      uuid.UUID
}

// PrivateChats returns one summary per non-blocked partner the user has
// exchanged messages with, latest conversation first.
func (chr *ChatRepository) PrivateChats(userID uuid.UUID) ([]PrivateChatSummary, error) {
	var rows []lastPrivateMessage
	err := chr.db.Raw(`
		SELECT DISTINCT ON (partner_id) t.* FROM (
			SELECT m.*, CASE WHEN m.sender_id = @me THEN m.receiver_user_id ELSE m.sender_id END AS partner_id
			FROM messages m
			WHERE m.group_id IS NULL AND (m.sender_id = @me OR m.receiver_user_id = @me)
		) t
		WHERE t.partner_id IS NOT NULL
		ORDER BY partner_id, t.created_at DESC`,
		map[string]any{"me": userID},
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	partnerIDs := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		partnerIDs = append(partnerIDs, row.PartnerID)
	}
	var partners []models.User
	if len(partnerIDs) > 0 {
		if err := chr.db.Where("id IN ? AND is_blocked = ?", partnerIDs, false).Find(&partners).Error; err != nil {
			return nil, err
		}
	}
	partnerByID := make(map[uuid.UUID]models.User, len(partners))
	for _, partner := range partners {
		partnerByID[partner.ID] = partner
	}

	summaries := make([]PrivateChatSummary, 0, len(rows))
	for _, row := range rows {
		partner, ok := partnerByID[row.PartnerID]
		if !ok {
			continue
		}
		var unread int64
		if err := chr.db.Model(&models.Message{}).
			Where("sender_id = ? AND receiver_user_id = ? AND group_id IS NULL AND is_read = ?", row.PartnerID, userID, false).
			Count(&unread).Error; err != nil {
			return nil, err
		}
		summaries = append(summaries, PrivateChatSummary{
			Partner:     partner,
			LastMessage: row.Message,
			Unread:      unread,
		})
	}
	sortByLatest(summaries, func(s PrivateChatSummary) time.Time { return s.LastMessage.CreatedAt })
	return summaries, nil
}

// GroupChats returns one summary per group the user belongs to.
func (chr *ChatRepository) GroupChats(userID uuid.UUID) ([]GroupChatSummary, error) {
	var groups []models.ChatGroup
	if err := chr.db.
		Joins("JOIN group_members ON group_members.group_id = chat_groups.id").
		Where("group_members.user_id = ?", userID).
		Find(&groups).Error; err != nil {
		return nil, err
	}

	summaries := make([]GroupChatSummary, 0, len(groups))
	for _, group := range groups {
		summary := GroupChatSummary{Group: group}

		var last models.Message
		err := chr.db.Where("group_id = ?", group.ID).Order("created_at DESC").First(&last).Error
		switch {
		case err == nil:
			summary.LastMessage = &last
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, err
		}

		if err := chr.db.Model(&models.Message{}).
			Where("group_id = ? AND sender_id <> ? AND is_read = ?", group.ID, userID, false).
			Count(&summary.Unread).Error; err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	sortByLatest(summaries, func(s GroupChatSummary) time.Time {
		if s.LastMessage == nil {
			return s.Group.CreatedAt
		}
		return s.LastMessage.CreatedAt
	})
	return summaries, nil
}
