package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageType_IsValid(t *testing.T) {
	assert.True(t, MessageTypeText.IsValid())
	assert.True(t, MessageTypeAudio.IsValid())
	assert.True(t, MessageTypeFile.IsValid())
	assert.False(t, MessageType("carrier-pigeon").IsValid())
	assert.False(t, MessageType("").IsValid())
}

func TestMessageType_IsMedia(t *testing.T) {
	assert.False(t, MessageTypeText.IsMedia())
	assert.True(t, MessageTypeAudio.IsMedia())
	assert.True(t, MessageTypeFile.IsMedia())
}

func TestDetectMessageType(t *testing.T) {
	tests := []struct {
		mimeType string
		want     MessageType
	}{
		{"audio/webm", MessageTypeAudio},
		{"AUDIO/OGG", MessageTypeAudio},
		{"image/png", MessageTypeFile},
		{"application/pdf", MessageTypeFile},
		{"", MessageTypeFile},
	}

	for _, tt := range tests {
		t.Run(tt.mimeType, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectMessageType(tt.mimeType))
		})
	}
}
