package application

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	documentmemory "github.com/Apurer/pet-adoption-api/internal/domains/documents/adapters/memory"
	documenttypes "github.com/Apurer/pet-adoption-api/internal/domains/documents/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/documents/ports"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestUpload_StoresObjectAndMetadata(t *testing.T) {
	repo := documentmemory.NewRepository()
	store := documentmemory.NewObjectStore("https://cdn.example.com")
	svc := NewService(repo, store, WithKeyGenerator(func() string { return "fixed" }))

	result, err := svc.Upload(context.Background(), documenttypes.UploadInput{
		Description: "Comprovante de Endereço",
		Filename:    "scan.bin",
		Size:        int64(len(pngHeader)),
		Content:     bytes.NewReader(pngHeader),
	})

	require.NoError(t, err)
	assert.Equal(t, UploadedMessage, result.Message)
	assert.Equal(t, "comprovante-de-endereco.png", result.File.Entity.Name)
	assert.Equal(t, "image/png", result.File.Entity.Mime)
	assert.Equal(t, "https://cdn.example.com/documentos/fixed.png", result.File.Entity.URL)
	assert.Equal(t, int64(len(pngHeader)), result.File.Entity.Size)

	stored, ok := store.Get("documentos/fixed.png")
	require.True(t, ok)
	assert.Equal(t, pngHeader, stored.Data)

	saved, err := repo.GetByID(context.Background(), result.File.Entity.ID)
	require.NoError(t, err)
	assert.Equal(t, result.File.Entity.URL, saved.Entity.URL)
}

func TestUpload_FallsBackToFilenameExtension(t *testing.T) {
	store := documentmemory.NewObjectStore("http://local")
	svc := NewService(documentmemory.NewRepository(), store, WithKeyGenerator(func() string { return "k" }))

	result, err := svc.Upload(context.Background(), documenttypes.UploadInput{
		Description: "termo",
		Filename:    "termo.docx",
		Content:     strings.NewReader("plain words that do not sniff as docx"),
	})

	require.NoError(t, err)
	assert.Equal(t, "termo.txt", result.File.Entity.Name)

	result, err = svc.Upload(context.Background(), documenttypes.UploadInput{
		Description: "dados",
		Filename:    "dados.custom",
		Content:     bytes.NewReader([]byte{0x00, 0x01, 0x02, 0xfe}),
	})
	require.NoError(t, err)
	assert.Equal(t, "dados.custom", result.File.Entity.Name)
	assert.Equal(t, int64(4), result.File.Entity.Size)
}

func TestUpload_RejectsEmptyDescription(t *testing.T) {
	svc := NewService(documentmemory.NewRepository(), documentmemory.NewObjectStore("http://local"))

	_, err := svc.Upload(context.Background(), documenttypes.UploadInput{Description: "!!", Content: bytes.NewReader(pngHeader)})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Upload(context.Background(), documenttypes.UploadInput{Description: "rg"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

type failingStore struct{}

func (failingStore) Put(context.Context, ports.Object) (string, error) {
	return "", errors.New("bucket unavailable")
}

func TestUpload_StoreFailureSkipsMetadata(t *testing.T) {
	repo := documentmemory.NewRepository()
	svc := NewService(repo, failingStore{})

	_, err := svc.Upload(context.Background(), documenttypes.UploadInput{Description: "rg", Content: bytes.NewReader(pngHeader)})
	require.ErrorContains(t, err, "bucket unavailable")

	_, err = repo.GetByID(context.Background(), 1)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestGet_ReturnsStoredMetadata(t *testing.T) {
	repo := documentmemory.NewRepository()
	svc := NewService(repo, documentmemory.NewObjectStore("https://cdn.example.com"))

	result, err := svc.Upload(context.Background(), documenttypes.UploadInput{
		Description: "RG",
		Filename:    "rg.txt",
		Content:     strings.NewReader("identidade"),
	})
	require.NoError(t, err)

	found, err := svc.Get(context.Background(), documenttypes.FileIdentifier{ID: result.File.Entity.ID})
	require.NoError(t, err)
	assert.Equal(t, result.File.Entity.Name, found.Entity.Name)

	_, err = svc.Get(context.Background(), documenttypes.FileIdentifier{ID: 999})
	assert.ErrorIs(t, err, ports.ErrNotFound)
}
