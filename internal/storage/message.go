package storage

import "sync"

// QuestionMessage is the last question message shown in a chat.
type QuestionMessage struct {
	ChatID    int64
	MessageID int
}

// MessageStorage remembers the last question message per chat,
// so its answer keyboard can be removed once it is answered or abandoned.
type MessageStorage struct {
	mu       sync.RWMutex
	messages map[int64]QuestionMessage
}

func NewMessageStorage() *MessageStorage {
	return &MessageStorage{
		messages: make(map[int64]QuestionMessage),
	}
}

// Take returns and forgets the chat's last question message.
func (s *MessageStorage) Take(chatID int64) (QuestionMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, ok := s.messages[chatID]
	delete(s.messages, chatID)
	return msg, ok
}

// UpsertAndGetPrev records a new question message and returns the one it replaces.
func (s *MessageStorage) UpsertAndGetPrev(chatID int64, messageID int) (prev QuestionMessage, hadPrev bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, hadPrev = s.messages[chatID]

	s.messages[chatID] = QuestionMessage{
		ChatID:    chatID,
		MessageID: messageID,
	}

	return prev, hadPrev
}
