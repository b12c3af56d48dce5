package storage

import (
	"context"
	"testing"

	"github.com/pu-ac-cn/geo-console/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestNewMinIODisabled(t *testing.T) {
	s, err := NewMinIO(context.Background(), config.MinIOConfig{})
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestObjectURL(t *testing.T) {
	assert.Equal(t, "http://minio:9000/geo-console/thumbnails/map/3.png",
		ObjectURL("http://minio:9000/", "geo-console", "/thumbnails/map/3.png"))
}
