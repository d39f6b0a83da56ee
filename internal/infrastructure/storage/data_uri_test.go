package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataURIStorageEncodesInline(t *testing.T) {
	s := NewDataURIStorage()

	uri, err := s.UploadFile(context.Background(), strings.NewReader("hi"), "image/png", "products")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,aGk=", uri)
	assert.NoError(t, s.DeleteFile(context.Background(), uri))
}

func TestObjectName(t *testing.T) {
	c := &CloudStorageClient{bucketName: "souq"}

	name, err := c.objectName("https://storage.googleapis.com/souq/public/products/a.png")
	require.NoError(t, err)
	assert.Equal(t, "public/products/a.png", name)

	_, err = c.objectName("https://storage.googleapis.com/other/a.png")
	assert.Error(t, err)

	_, err = c.objectName("data:image/png;base64,aGk=")
	assert.Error(t, err)
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, ".webp", extensionFor("image/webp"))
	assert.Equal(t, ".bin", extensionFor("application/zip"))
}
