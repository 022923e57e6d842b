package upload

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenfund/core/internal/infrastructure/config"
)

var namePattern = regexp.MustCompile(`^\d{13}-[0-9a-z]{12}(\.[0-9a-z]+)?$`)

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("campaignImage", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	t.Cleanup(func() { req.MultipartForm.RemoveAll() })

	return req.MultipartForm.File["campaignImage"][0]
}

func TestNewName(t *testing.T) {
	tests := []struct {
		original string
		ext      string
	}{
		{"photo.PNG", ".png"},
		{"archive.tar.gz", ".gz"},
		{"noext", ""},
		{"weird.p&g", ""},
		{`C:\Users\me\selfie.jpg`, ".jpg"},
		{"../../etc/passwd.txt", ".txt"},
	}

	for _, tt := range tests {
		name, err := NewName(tt.original)
		require.NoError(t, err)
		assert.Regexp(t, namePattern, name, tt.original)
		assert.Equal(t, tt.ext, filepath.Ext(name), tt.original)
	}

	a, _ := NewName("a.png")
	b, _ := NewName("a.png")
	assert.NotEqual(t, a, b)
}

func TestURL(t *testing.T) {
	assert.Equal(t, "/uploads/1-abc.png", URL("1-abc.png"))
}

func TestLocalStorage_SaveAndOpen(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocal(dir, nil)
	require.NoError(t, err)
	ctx := context.Background()

	name, err := store.Save(ctx, fileHeader(t, "garden.jpg", []byte("jpeg bytes")))
	require.NoError(t, err)
	assert.Regexp(t, namePattern, name)

	onDisk, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(onDisk))

	rc, err := store.Open(ctx, name)
	require.NoError(t, err)
	defer rc.Close()
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(got))
}

func TestLocalStorage_OpenRejectsBadNames(t *testing.T) {
	store, err := NewLocal(t.TempDir(), nil)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Open(ctx, "missing.png")
	assert.ErrorIs(t, err, ErrNotFound)

	for _, name := range []string{"", "..", "../secret", `a\b`, ".hidden"} {
		_, err = store.Open(ctx, name)
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}
}

func TestLocalStorage_Remove(t *testing.T) {
	store, err := NewLocal(t.TempDir(), nil)
	require.NoError(t, err)
	ctx := context.Background()

	name, err := store.Save(ctx, fileHeader(t, "garden.jpg", []byte("jpeg bytes")))
	require.NoError(t, err)

	require.NoError(t, store.Remove(ctx, name))
	_, err = store.Open(ctx, name)
	assert.ErrorIs(t, err, ErrNotFound)

	// already gone
	assert.NoError(t, store.Remove(ctx, name))
	assert.ErrorIs(t, store.Remove(ctx, "../secret"), ErrInvalidName)
}

func TestRemoveAll(t *testing.T) {
	store, err := NewLocal(t.TempDir(), nil)
	require.NoError(t, err)
	ctx := context.Background()

	var names []string
	for _, fn := range []string{"a.png", "b.png"} {
		name, err := store.Save(ctx, fileHeader(t, fn, []byte(fn)))
		require.NoError(t, err)
		names = append(names, name)
	}

	RemoveAll(ctx, store, append(names, ".bad"), nil)

	for _, name := range names {
		_, err := store.Open(ctx, name)
		assert.ErrorIs(t, err, ErrNotFound)
	}
}

func TestNew_SelectsDriver(t *testing.T) {
	u, err := New(context.Background(), config.UploadConfig{Driver: config.UploadDriverLocal, Dir: t.TempDir()}, nil)
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, u)

	_, err = New(context.Background(), config.UploadConfig{Driver: "ftp"}, nil)
	assert.Error(t, err)
}

type fakeObjects struct {
	objects map[string][]byte
	types   map[string]string
}

func (f *fakeObjects) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	key := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	f.objects[key] = data
	f.types[key] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjects) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeObjects) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Storage_SaveAndOpen(t *testing.T) {
	fake := &fakeObjects{objects: map[string][]byte{}, types: map[string]string{}}
	store := NewS3WithClient(fake, "greenfund", "uploads", nil)
	ctx := context.Background()

	name, err := store.Save(ctx, fileHeader(t, "pan.png", []byte("png")))
	require.NoError(t, err)

	key := "greenfund/uploads/" + name
	assert.Equal(t, []byte("png"), fake.objects[key])
	assert.Equal(t, "application/octet-stream", fake.types[key])

	rc, err := store.Open(ctx, name)
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "png", string(got))

	_, err = store.Open(ctx, "1-missing.png")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Remove(ctx, name))
	assert.NotContains(t, fake.objects, key)
	_, err = store.Open(ctx, name)
	assert.ErrorIs(t, err, ErrNotFound)
}
