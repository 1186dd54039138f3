package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileValidator_Validate(t *testing.T) {
	v := NewFileValidator(DefaultMaxFileSize)

	tests := []struct {
		name     string
		fileName string
		mimeType string
		size     int64
		valid    bool
	}{
		{name: "pdf with matching mime", fileName: "resume.pdf", mimeType: "application/pdf", size: 2 * 1024 * 1024, valid: true},
		{name: "uppercase extension", fileName: "RESUME.PDF", mimeType: "application/pdf", size: 1024, valid: true},
		{name: "docx without mime", fileName: "cv.docx", mimeType: "", size: 1024, valid: true},
		{name: "generic octet-stream mime", fileName: "cv.doc", mimeType: "application/octet-stream", size: 1024, valid: true},
		{name: "mime with parameters", fileName: "scan.png", mimeType: "image/png; charset=binary", size: 1024, valid: true},
		{name: "webp image", fileName: "scan.webp", mimeType: "image/webp", size: 1024, valid: true},
		{name: "exactly at the limit", fileName: "resume.pdf", mimeType: "application/pdf", size: DefaultMaxFileSize, valid: true},
		{name: "one byte over the limit", fileName: "resume.pdf", mimeType: "application/pdf", size: DefaultMaxFileSize + 1, valid: false},
		{name: "oversized image", fileName: "photo.jpg", mimeType: "image/jpeg", size: 50 * 1024 * 1024, valid: false},
		{name: "unsupported extension with valid mime", fileName: "resume.txt", mimeType: "application/pdf", size: 1024, valid: false},
		{name: "no extension", fileName: "resume", mimeType: "", size: 1024, valid: false},
		{name: "mismatched mime", fileName: "resume.pdf", mimeType: "application/zip", size: 1024, valid: false},
		{name: "empty file", fileName: "resume.pdf", mimeType: "application/pdf", size: 0, valid: false},
		{name: "accepted mime for another extension", fileName: "resume.pdf", mimeType: "image/png", size: 1024, valid: false},
		{name: "docx sent as msword", fileName: "cv.docx", mimeType: "application/msword", size: 1024, valid: false},
		{name: "jpg alias for jpeg", fileName: "photo.jpeg", mimeType: "image/jpg", size: 1024, valid: true},
		{name: "jpeg for jpg extension", fileName: "photo.jpg", mimeType: "IMAGE/JPEG", size: 1024, valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.Validate(tt.fileName, tt.mimeType, tt.size)
			assert.Equal(t, tt.valid, result.Valid)
			if tt.valid {
				assert.Empty(t, result.Reason)
			} else {
				assert.NotEmpty(t, result.Reason)
			}
		})
	}
}

func TestFileValidator_OversizedAlwaysInvalid(t *testing.T) {
	v := NewFileValidator(0)

	for ext := range acceptedExtensions {
		result := v.Validate("file"+ext, "", DefaultMaxFileSize+1)
		assert.False(t, result.Valid, ext)
		assert.Contains(t, result.Reason, "too large")
	}
}

func TestLookupFileType(t *testing.T) {
	kind, mimeType, ok := LookupFileType("Scan.JPEG")
	assert.True(t, ok)
	assert.Equal(t, KindImage, kind)
	assert.Equal(t, "image/jpeg", mimeType)

	kind, _, ok = LookupFileType("old.doc")
	assert.True(t, ok)
	assert.Equal(t, KindDOC, kind)

	_, _, ok = LookupFileType("notes.txt")
	assert.False(t, ok)
}
