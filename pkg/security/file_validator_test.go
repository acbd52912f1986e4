package security_test

import (
	"testing"

	"myresume-backend/pkg/security"

	"github.com/stretchr/testify/assert"
)

func TestValidateResumeFile(t *testing.T) {
	pdf := []byte("%PDF-1.7\n%âãÏÓ\n1 0 obj\n")
	docx := append([]byte{0x50, 0x4B, 0x03, 0x04}, make([]byte, 32)...)
	doc := append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, make([]byte, 32)...)

	t.Run("accepts a real PDF", func(t *testing.T) {
		result := security.ValidateResumeFile("resume.pdf", pdf)
		assert.True(t, result.Valid, result.Error)
		assert.Equal(t, ".pdf", result.Extension)
		assert.Equal(t, "application/pdf", result.DetectedMIME)
	})

	t.Run("accepts docx and doc containers", func(t *testing.T) {
		assert.True(t, security.ValidateResumeFile("resume.docx", docx).Valid)
		assert.True(t, security.ValidateResumeFile("resume.DOC", doc).Valid)
	})

	t.Run("rejects disallowed extensions", func(t *testing.T) {
		for _, name := range []string{"resume.exe", "resume.txt", "resume.png", "resume"} {
			result := security.ValidateResumeFile(name, pdf)
			assert.False(t, result.Valid, name)
		}
	})

	t.Run("rejects content that does not match the extension", func(t *testing.T) {
		exe := append([]byte{0x4D, 0x5A}, make([]byte, 64)...) // MZ header
		result := security.ValidateResumeFile("resume.pdf", exe)
		assert.False(t, result.Valid)
		assert.Contains(t, result.Error, "spoofing")

		// A zip renamed to .pdf fails the magic byte layer too.
		result = security.ValidateResumeFile("resume.pdf", docx)
		assert.False(t, result.Valid)
	})

	t.Run("rejects truncated files", func(t *testing.T) {
		result := security.ValidateResumeFile("resume.pdf", []byte{0x25, 0x50})
		assert.False(t, result.Valid)
	})
}

func TestContentTypeForExtension(t *testing.T) {
	assert.Equal(t, "application/pdf", security.ContentTypeForExtension(".pdf"))
	assert.Equal(t, "application/msword", security.ContentTypeForExtension(".doc"))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		security.ContentTypeForExtension(".docx"))
	assert.Equal(t, "application/octet-stream", security.ContentTypeForExtension(".xyz"))
}
