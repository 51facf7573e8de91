package common

import "strings"

// MessageType represents the kind of content a message carries
type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeAudio MessageType = "audio"
	MessageTypeFile  MessageType = "file"
)

// String returns the string representation
func (mt MessageType) String() string {
	return string(mt)
}

// IsValid checks if the message type is valid
func (mt MessageType) IsValid() bool {
	return mt == MessageTypeText || mt == MessageTypeAudio || mt == MessageTypeFile
}

// IsMedia reports whether messages of this type must carry a media reference
func (mt MessageType) IsMedia() bool {
	return mt == MessageTypeAudio || mt == MessageTypeFile
}

func DetectMessageType(mimeType string) MessageType {
	lowerMimeType := strings.ToLower(mimeType)
	if strings.HasPrefix(lowerMimeType, "audio/") {
		return MessageTypeAudio
	}
	return MessageTypeFile // Default fallback
}
