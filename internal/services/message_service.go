package services

import (
	"errors"
	"strings"

	"github.com/nidolabs/nido/internal/models"
)

var ErrMessageBodyMissing = errors.New("message body is required")

const messageHistoryLimit = 200

type MessageRepository interface {
	ListByProfile(profileID uint, limit int) ([]models.FamilyMessage, error)
	Create(message *models.FamilyMessage) error
}

type MessageService struct {
	messages MessageRepository
}

func NewMessageService(messages MessageRepository) *MessageService {
	return &MessageService{messages: messages}
}

func (service *MessageService) Thread(profileID uint) ([]models.FamilyMessage, error) {
	return service.messages.ListByProfile(profileID, messageHistoryLimit)
}

func (service *MessageService) Post(profileID uint, senderID uint, body string) (models.FamilyMessage, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return models.FamilyMessage{}, ErrMessageBodyMissing
	}

	message := models.FamilyMessage{
		ProfileID: profileID,
		SenderID:  senderID,
		Body:      body,
	}
	if err := service.messages.Create(&message); err != nil {
		return models.FamilyMessage{}, err
	}
	return message, nil
}
