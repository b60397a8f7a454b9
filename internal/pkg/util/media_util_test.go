package util

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestDetectImage(t *testing.T) {
	reader := bytes.NewReader(pngHeader)
	contentType, ext, err := DetectImage(reader)
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)
	assert.Equal(t, ".png", ext)

	offset, err := reader.Seek(0, 1)
	require.NoError(t, err)
	assert.Zero(t, offset)

	_, _, err = DetectImage(strings.NewReader("plain text pretending to be a jpg"))
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestFeaturedImageKey(t *testing.T) {
	key := FeaturedImageKey(time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC), ".png")
	assert.True(t, strings.HasPrefix(key, "posts/2024/03/07/"))
	assert.True(t, strings.HasSuffix(key, ".png"))
}
