package services

import (
	"bytes"
	"compress/zlib"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"smartrent_backend/database"
	"smartrent_backend/internal/auth"
	"smartrent_backend/internal/config"
	"smartrent_backend/internal/mailer"
	"smartrent_backend/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func newTestJWT() *auth.JWTManager {
	return auth.NewJWTManager("test-secret", 1)
}

// newTestMailer builds a mailer with no SMTP host, so Enabled() is
// false and nothing leaves the process.
func newTestMailer() *mailer.Mailer {
	return mailer.New(&config.Config{})
}

// pdfStreamText inflates the deflate-compressed content streams of a
// generated PDF and concatenates them, so tests can inspect the bytes
// actually sent to the renderer.
func pdfStreamText(t *testing.T, data []byte) string {
	t.Helper()

	var out bytes.Buffer
	rest := data
	for {
		i := bytes.Index(rest, []byte("stream"))
		if i < 0 {
			break
		}
		chunk := bytes.TrimLeft(rest[i+len("stream"):], "\r\n")
		end := bytes.Index(chunk, []byte("endstream"))
		if end < 0 {
			break
		}
		if zr, err := zlib.NewReader(bytes.NewReader(chunk[:end])); err == nil {
			if raw, err := io.ReadAll(zr); err == nil {
				out.Write(raw)
			}
			zr.Close()
		}
		rest = chunk[end:]
	}
	if out.Len() == 0 {
		// Compression off: the content streams are already plain.
		return string(data)
	}
	return out.String()
}

func createTestUser(t *testing.T, db *gorm.DB, correo string) *models.User {
	t.Helper()

	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)

	user := &models.User{
		Nombre:     "Test",
		Correo:     correo,
		Contrasena: hash,
		TipoCuenta: "Usuario",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
