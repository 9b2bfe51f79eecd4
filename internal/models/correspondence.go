package models

import "time"

// Message is a single entry in a correspondence. EmojiTracker maps a username
// to its single reaction; the server keeps it last-write-wins per user.
type Message struct {
	ID              string            `json:"id"`
	MessageText     string            `json:"messageText"`
	MessageDateTime time.Time         `json:"messageDateTime"`
	MessageBy       string            `json:"messageBy"`
	MessageTo       []string          `json:"messageTo"`
	IsCodeStyle     bool              `json:"isCodeStyle"`
	FileName        string            `json:"fileName,omitempty"`
	FileData        []byte            `json:"fileData,omitempty"`
	EmojiTracker    map[string]string `json:"emojiTracker,omitempty"`
}

// Correspondence is a private conversation between 1 and 10 members. Views
// holds the usernames that have seen the latest state.
type Correspondence struct {
	ID             string    `json:"id"`
	Messages       []Message `json:"messages"`
	MessageMembers []string  `json:"messageMembers"`
	Views          []string  `json:"views"`
}

// HasMember reports whether the username participates in the correspondence.
func (c *Correspondence) HasMember(username string) bool {
	for _, member := range c.MessageMembers {
		if member == username {
			return true
		}
	}
	return false
}

// ViewedBy reports whether the username has seen the latest state.
func (c *Correspondence) ViewedBy(username string) bool {
	for _, viewer := range c.Views {
		if viewer == username {
			return true
		}
	}
	return false
}

// MessageIndex returns the position of the message with the given id, or -1.
func (c *Correspondence) MessageIndex(id string) int {
	for i := range c.Messages {
		if c.Messages[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the message.
func (m Message) Clone() Message {
	clone := m
	clone.MessageTo = append([]string(nil), m.MessageTo...)
	clone.FileData = append([]byte(nil), m.FileData...)
	if m.EmojiTracker != nil {
		clone.EmojiTracker = make(map[string]string, len(m.EmojiTracker))
		for user, emoji := range m.EmojiTracker {
			clone.EmojiTracker[user] = emoji
		}
	}
	return clone
}

// Clone returns a deep copy of the correspondence.
func (c Correspondence) Clone() Correspondence {
	clone := c
	clone.MessageMembers = append([]string(nil), c.MessageMembers...)
	clone.Views = append([]string(nil), c.Views...)
	clone.Messages = make([]Message, len(c.Messages))
	for i, message := range c.Messages {
		clone.Messages[i] = message.Clone()
	}
	return clone
}

// CloneCorrespondences deep-copies a correspondence slice.
func CloneCorrespondences(correspondences []Correspondence) []Correspondence {
	clones := make([]Correspondence, len(correspondences))
	for i, correspondence := range correspondences {
		clones[i] = correspondence.Clone()
	}
	return clones
}
