package services

import (
	"context"
	"errors"
	"io"
	"log"
	"mgMessenger/internal/enums"
	"mgMessenger/internal/errs"
	"mgMessenger/internal/interfaces"
	"mgMessenger/internal/models"
	socketModels "mgMessenger/internal/models/socket"
	"mgMessenger/internal/repositories"
	"mgMessenger/internal/utils"
	"mgMessenger/internal/validators"
	"strings"

	"github.com/google/uuid"
)

type chatStore interface {
	SaveMessage(message *models.Message) error
	GetMessageByID(id uuid.UUID) (*models.Message, error)
	UpdateMessageText(message *models.Message) error
	DeleteMessage(message *models.Message) error
	IsGroupMember(groupID, userID uuid.UUID) bool
	GroupMemberLogins(groupID uuid.UUID) ([]string, error)
	MessageParticipantLogins(message *models.Message) ([]string, error)
	PrivateHistory(readerID, partnerID uuid.UUID) ([]models.Message, error)
	GroupHistory(readerID, groupID uuid.UUID) ([]models.Message, error)
	PrivateChats(userID uuid.UUID) ([]repositories.PrivateChatSummary, error)
	GroupChats(userID uuid.UUID) ([]repositories.GroupChatSummary, error)
}

type attachmentUploader interface {
	UploadAttachment(ctx context.Context, originalName string, file io.Reader, fileSize int64, contentType string) (string, string, error)
}

// Attachment is a file sent along with a message.
type Attachment struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type ChatService struct {
	users    userStore
	chatRepo chatStore
	files    attachmentUploader
	notifier interfaces.Notifier
	presence interfaces.PresenceReader
}

func NewChatService(
	users userStore,
	chatRepo chatStore,
	files attachmentUploader,
	notifier interfaces.Notifier,
	presence interfaces.PresenceReader,
) *ChatService {
	return &ChatService{
		users:    users,
		chatRepo: chatRepo,
		files:    files,
		notifier: notifier,
		presence: presence,
	}
}

// SendMessage stores a private or group message and then notifies the sender
// and every recipient with message:new.
func (cs *ChatService) SendMessage(ctx context.Context, sender *models.User, request *models.SendMessageRequest, attachment *Attachment) []error {
	if validationErrs := validators.ValidateStruct(request); len(validationErrs) > 0 {
		return validationErrs
	}

	text := strings.TrimSpace(request.Text)
	if text == "" && attachment == nil {
		return []error{errs.ErrEmptyMessage}
	}

	message := &models.Message{
		SenderID: sender.ID,
		Text:     text,
	}
	recipients, err := cs.addressMessage(sender, request.ChatType, request.Target, message)
	if err != nil {
		return []error{err}
	}

	if attachment != nil {
		url, mime, err := cs.files.UploadAttachment(ctx, attachment.Name, attachment.Reader, attachment.Size, attachment.ContentType)
		if err != nil {
			log.Printf("SendMessage - upload failed: %v", err)
			return []error{errs.ErrUnableToUploadFile}
		}
		message.FileURL = url
		message.FileMime = mime
	}

	if err := cs.chatRepo.SaveMessage(message); err != nil {
		return []error{err}
	}

	cs.notifyNewMessage(sender, request.ChatType, request.Target, message, recipients)
	return nil
}

// ForwardMessage copies a message the forwarder can read into another chat,
// keeping who wrote it originally.
func (cs *ChatService) ForwardMessage(forwarder *models.User, messageID uuid.UUID, request *models.MessageForwardRequest) []error {
	if validationErrs := validators.ValidateStruct(request); len(validationErrs) > 0 {
		return validationErrs
	}

	source, err := cs.chatRepo.GetMessageByID(messageID)
	if err != nil {
		return []error{err}
	}
	if !cs.canRead(forwarder, source) {
		return []error{errs.ErrNoMessageAccess}
	}

	message := &models.Message{
		SenderID: forwarder.ID,
		Text:     source.Text,
		FileURL:  source.FileURL,
		FileMime: source.FileMime,
	}
	if source.Sender.ID != uuid.Nil {
		message.ForwardedFromLogin = source.Sender.Login
		message.ForwardedFromName = source.Sender.DisplayName()
	}
	recipients, err := cs.addressMessage(forwarder, request.ChatType, request.Target, message)
	if err != nil {
		return []error{err}
	}

	if err := cs.chatRepo.SaveMessage(message); err != nil {
		return []error{err}
	}
	cs.notifyNewMessage(forwarder, request.ChatType, request.Target, message, recipients)
	return nil
}

// addressMessage points message at a private partner or a group the sender
// belongs to and returns who besides the sender should hear about it.
func (cs *ChatService) addressMessage(sender *models.User, chatTypeName, target string, message *models.Message) ([]string, error) {
	switch chatTypeName {
	case enums.CHAT_TYPE_PRIVATE:
		partner, err := cs.users.GetActiveUserByLogin(target)
		if err != nil {
			return nil, errs.ErrUserNotFound
		}
		message.ReceiverUserID = &partner.ID
		return []string{partner.Login}, nil
	case enums.CHAT_TYPE_GROUP:
		groupID, err := uuid.Parse(target)
		if err != nil {
			return nil, errs.ErrGroupNotFound
		}
		if !cs.chatRepo.IsGroupMember(groupID, sender.ID) {
			return nil, errs.ErrNotGroupMember
		}
		members, err := cs.chatRepo.GroupMemberLogins(groupID)
		if err != nil {
			return nil, err
		}
		message.GroupID = &groupID
		return members, nil
	}
	return nil, errs.ErrInvalidChatType
}

func (cs *ChatService) notifyNewMessage(sender *models.User, chatTypeName, target string, message *models.Message, recipients []string) {
	cs.notifier.NotifyUsers(utils.Dedupe(append([]string{sender.Login}, recipients...)), socketModels.MessageEvent{
		Type:        enums.SOCKET_EVENT_MESSAGE_NEW,
		ChatType:    chatTypeName,
		Target:      target,
		SenderLogin: sender.Login,
		SenderName:  sender.DisplayName(),
		Preview:     utils.EventPreview(message.Text, message.FileURL),
	})
}

func (cs *ChatService) canRead(user *models.User, message *models.Message) bool {
	if message.GroupID != nil {
		return cs.chatRepo.IsGroupMember(*message.GroupID, user.ID)
	}
	return message.SenderID == user.ID ||
		(message.ReceiverUserID != nil && *message.ReceiverUserID == user.ID)
}

func (cs *ChatService) EditMessage(editor *models.User, messageID uuid.UUID, newText string) []error {
	message, err := cs.ownMessage(editor, messageID)
	if err != nil {
		return []error{err}
	}

	text := strings.TrimSpace(newText)
	if text == "" && message.FileURL == "" {
		return []error{errs.ErrEmptyMessage}
	}
	message.Text = text
	if err := cs.chatRepo.UpdateMessageText(message); err != nil {
		return []error{err}
	}

	participants, err := cs.chatRepo.MessageParticipantLogins(message)
	if err != nil {
		return []error{err}
	}
	cs.notifier.NotifyUsers(participants, socketModels.MessageEvent{
		Type:        enums.SOCKET_EVENT_MESSAGE_UPDATE,
		ChatType:    chatType(message),
		Target:      message.ChatTarget(),
		SenderLogin: editor.Login,
		SenderName:  editor.DisplayName(),
		Preview:     utils.EventPreview(message.Text, message.FileURL),
	})
	return nil
}

// DeleteMessage resolves the participants before the row is gone, then
// notifies them with message:delete.
func (cs *ChatService) DeleteMessage(deleter *models.User, messageID uuid.UUID) []error {
	message, err := cs.ownMessage(deleter, messageID)
	if err != nil {
		return []error{err}
	}

	participants, err := cs.chatRepo.MessageParticipantLogins(message)
	if err != nil {
		return []error{err}
	}
	if err := cs.chatRepo.DeleteMessage(message); err != nil {
		return []error{err}
	}

	cs.notifier.NotifyUsers(participants, socketModels.MessageDeleteEvent{
		Type:     enums.SOCKET_EVENT_MESSAGE_DELETE,
		ChatType: chatType(message),
		Target:   message.ChatTarget(),
	})
	return nil
}

func (cs *ChatService) ownMessage(user *models.User, messageID uuid.UUID) (*models.Message, error) {
	message, err := cs.chatRepo.GetMessageByID(messageID)
	if err != nil {
		return nil, err
	}
	if message.SenderID != user.ID {
		return nil, errs.ErrNotMessageSender
	}
	return message, nil
}

func (cs *ChatService) History(reader *models.User, chatTypeName, target string) ([]models.MessageResponse, []error) {
	var (
		messages []models.Message
		err      error
	)
	switch chatTypeName {
	case enums.CHAT_TYPE_PRIVATE:
		partner, lookupErr := cs.users.GetActiveUserByLogin(target)
		if lookupErr != nil {
			return nil, []error{errs.ErrUserNotFound}
		}
		messages, err = cs.chatRepo.PrivateHistory(reader.ID, partner.ID)
	case enums.CHAT_TYPE_GROUP:
		groupID, parseErr := uuid.Parse(target)
		if parseErr != nil {
			return nil, []error{errs.ErrGroupNotFound}
		}
		if !cs.chatRepo.IsGroupMember(groupID, reader.ID) {
			return nil, []error{errs.ErrNotGroupMember}
		}
		messages, err = cs.chatRepo.GroupHistory(reader.ID, groupID)
	default:
		return nil, []error{errs.ErrInvalidChatType}
	}
	if err != nil {
		return nil, []error{err}
	}

	result := make([]models.MessageResponse, 0, len(messages))
	for i := range messages {
		result = append(result, messages[i].ToMessageResponse(reader.ID))
	}
	return result, nil
}

// ActiveChats lists the private and group chats of user, each with the
// latest message preview and unread count.
func (cs *ChatService) ActiveChats(user *models.User) (*models.ActiveChatsResponse, []error) {
	privateChats, err := cs.chatRepo.PrivateChats(user.ID)
	if err != nil {
		return nil, []error{err}
	}
	groupChats, err := cs.chatRepo.GroupChats(user.ID)
	if err != nil {
		return nil, []error{err}
	}

	chats := make([]models.ActiveChat, 0, len(privateChats)+len(groupChats))
	for _, summary := range privateChats {
		last := summary.LastMessage
		chats = append(chats, models.ActiveChat{
			ChatType:  enums.CHAT_TYPE_PRIVATE,
			Target:    summary.Partner.Login,
			Name:      summary.Partner.DisplayName(),
			AvatarURL: summary.Partner.AvatarURL,
			Preview:   utils.ChatPreview(last.Text, last.FileURL, last.SenderID == user.ID),
			Unread:    summary.Unread,
			IsOnline:  cs.presence != nil && cs.presence.IsOnline(summary.Partner.Login),
			LastAt:    &last.CreatedAt,
		})
	}
	for _, summary := range groupChats {
		chat := models.ActiveChat{
			ChatType:  enums.CHAT_TYPE_GROUP,
			Target:    summary.Group.ID.String(),
			Name:      summary.Group.Name,
			AvatarURL: summary.Group.AvatarURL,
			Unread:    summary.Unread,
		}
		if last := summary.LastMessage; last != nil {
			chat.Preview = utils.ChatPreview(last.Text, last.FileURL, last.SenderID == user.ID)
			chat.LastAt = &last.CreatedAt
		}
		chats = append(chats, chat)
	}
	return &models.ActiveChatsResponse{Chats: chats}, nil
}

func chatType(message *models.Message) string {
	if message.IsGroup() {
		return enums.CHAT_TYPE_GROUP
	}
	return enums.CHAT_TYPE_PRIVATE
}

// IsNotFound reports errors that should be answered with 404.
func IsNotFound(err error) bool {
	return errors.Is(err, errs.ErrUserNotFound) ||
		errors.Is(err, errs.ErrGroupNotFound) ||
		errors.Is(err, errs.ErrMessageNotFound)
}

// IsForbidden reports errors that should be answered with 403.
func IsForbidden(err error) bool {
	return errors.Is(err, errs.ErrNotGroupMember) ||
		errors.Is(err, errs.ErrNotGroupOwner) ||
		errors.Is(err, errs.ErrNotMessageSender) ||
		errors.Is(err, errs.ErrNoMessageAccess)
}
