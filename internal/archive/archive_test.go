package archive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoop(t *testing.T) {
	assert.NoError(t, Noop{}.Store(context.Background(), "k", "text/plain", []byte("x")))
}

func TestMemoryStore(t *testing.T) {
	m := NewMemory()
	data := []byte("report")
	require.NoError(t, m.Store(context.Background(), "reports/SCN-001/1.txt", "text/plain", data))
	data[0] = 'X'

	objs := m.Objects()
	require.Len(t, objs, 1)
	assert.Equal(t, "reports/SCN-001/1.txt", objs[0].Key)
	assert.Equal(t, "text/plain", objs[0].ContentType)
	assert.Equal(t, "report", string(objs[0].Data))
}

func TestMemoryStoreCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, NewMemory().Store(ctx, "k", "", nil), context.Canceled)
}

func TestNewMinioValidation(t *testing.T) {
	_, err := NewMinio(MinioConfig{Bucket: "reports"}, nil)
	assert.EqualError(t, err, "archive endpoint is required")

	_, err = NewMinio(MinioConfig{Endpoint: "localhost:9000"}, nil)
	assert.EqualError(t, err, "archive bucket is required")
}

func TestMinioObjectKey(t *testing.T) {
	a, err := NewMinio(MinioConfig{
		Endpoint:  "localhost:9000",
		AccessKey: "minio",
		SecretKey: "minio123",
		Bucket:    "trishul",
		Prefix:    "/kavach/",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "kavach/reports/SCN-001/1.txt", a.ObjectKey("reports/SCN-001/1.txt"))

	plain, err := NewMinio(MinioConfig{Endpoint: "localhost:9000", Bucket: "trishul"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "reports/a.txt", plain.ObjectKey("reports/a.txt"))
}
