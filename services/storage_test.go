package services

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalStorage(t *testing.T) {
	storage := NewLocalStorage(t.TempDir())
	ctx := context.Background()

	t.Run("Store And Get Roundtrip", func(t *testing.T) {
		key := "entidades/e1/documentos/plan_proteccion.pdf"
		data := []byte("%PDF-1.4 contenido")

		assert.NoError(t, storage.Store(ctx, key, "application/pdf", data))

		reader, contentType, err := storage.Get(ctx, key)
		assert.NoError(t, err)
		defer reader.Close()

		assert.Equal(t, "application/pdf", contentType)
		read, err := io.ReadAll(reader)
		assert.NoError(t, err)
		assert.Equal(t, data, read)
	})

	t.Run("Content Type By Extension", func(t *testing.T) {
		assert.NoError(t, storage.Store(ctx, "informes/registro.xlsx", "", []byte("xlsx")))

		reader, contentType, err := storage.Get(ctx, "informes/registro.xlsx")
		assert.NoError(t, err)
		reader.Close()
		assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", contentType)

		assert.NoError(t, storage.Store(ctx, "otros/archivo.bin", "", []byte("bin")))
		reader, contentType, err = storage.Get(ctx, "otros/archivo.bin")
		assert.NoError(t, err)
		reader.Close()
		assert.Equal(t, "application/octet-stream", contentType)
	})

	t.Run("Missing Key", func(t *testing.T) {
		_, _, err := storage.Get(ctx, "no/existe.pdf")
		assert.Error(t, err)
	})

	t.Run("Delete", func(t *testing.T) {
		key := "tmp/borrar.pdf"
		assert.NoError(t, storage.Store(ctx, key, "application/pdf", []byte("x")))
		assert.NoError(t, storage.Delete(ctx, key))

		_, _, err := storage.Get(ctx, key)
		assert.Error(t, err)

		// Deleting twice is not an error
		assert.NoError(t, storage.Delete(ctx, key))
	})

	t.Run("Keys Stay Inside Base Directory", func(t *testing.T) {
		path := storage.path("../../../etc/passwd")
		assert.True(t, strings.HasPrefix(path, storage.baseDir+string(filepath.Separator)))
	})

	t.Run("Is Configured", func(t *testing.T) {
		assert.True(t, storage.IsConfigured())
	})
}
