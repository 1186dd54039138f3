package services

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

const DefaultMaxFileSize int64 = 10 * 1024 * 1024

type FileKind string

const (
	KindPDF   FileKind = "pdf"
	KindImage FileKind = "image"
	KindDOCX  FileKind = "docx"
	KindDOC   FileKind = "doc"
)

type fileType struct {
	kind     FileKind
	mimeType string
}

var acceptedExtensions = map[string]fileType{
	".pdf":  {KindPDF, "application/pdf"},
	".doc":  {KindDOC, "application/msword"},
	".docx": {KindDOCX, "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
	".jpg":  {KindImage, "image/jpeg"},
	".jpeg": {KindImage, "image/jpeg"},
	".png":  {KindImage, "image/png"},
	".gif":  {KindImage, "image/gif"},
	".bmp":  {KindImage, "image/bmp"},
	".webp": {KindImage, "image/webp"},
}

var acceptedMimeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/bmp":  true,
	"image/webp": true,
}

// genericMimeType is what multipart clients send when they do not know the type.
const genericMimeType = "application/octet-stream"

// LookupFileType returns the kind and canonical MIME type for a filename's extension.
func LookupFileType(fileName string) (FileKind, string, bool) {
	ft, ok := acceptedExtensions[strings.ToLower(filepath.Ext(fileName))]
	return ft.kind, ft.mimeType, ok
}

type ValidationResult struct {
	Valid  bool
	Reason string
}

type FileValidator interface {
	Validate(name, mimeType string, size int64) ValidationResult
}

type fileValidator struct {
	maxFileSize int64
}

func NewFileValidator(maxFileSize int64) FileValidator {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	return &fileValidator{maxFileSize: maxFileSize}
}

// Validate implements FileValidator.
func (v *fileValidator) Validate(name, mimeType string, size int64) ValidationResult {
	if size > v.maxFileSize {
		return ValidationResult{Reason: fmt.Sprintf("file too large: %d bytes exceeds the %d byte limit", size, v.maxFileSize)}
	}
	if size <= 0 {
		return ValidationResult{Reason: "file is empty"}
	}

	ext := strings.ToLower(filepath.Ext(name))
	ft, ok := acceptedExtensions[ext]
	if !ok {
		if ext == "" {
			ext = "(none)"
		}
		return ValidationResult{Reason: fmt.Sprintf("unsupported file type %s; accepted: PDF, DOC, DOCX, JPG, JPEG, PNG, GIF, BMP, WEBP", ext)}
	}

	mimeType = normalizeMimeType(mimeType)
	if mimeType == "" || mimeType == genericMimeType {
		return ValidationResult{Valid: true}
	}
	if !acceptedMimeTypes[mimeType] {
		return ValidationResult{Reason: fmt.Sprintf("unsupported MIME type %s", mimeType)}
	}
	if canonicalMimeType(mimeType) != ft.mimeType {
		return ValidationResult{Reason: fmt.Sprintf("MIME type %s does not match the %s extension", mimeType, ext)}
	}

	return ValidationResult{Valid: true}
}

// canonicalMimeType folds aliases some clients send onto the type registered for the extension.
func canonicalMimeType(mimeType string) string {
	if mimeType == "image/jpg" {
		return "image/jpeg"
	}
	return mimeType
}

func normalizeMimeType(mimeType string) string {
	mimeType = strings.TrimSpace(mimeType)
	if mimeType == "" {
		return ""
	}
	if mediaType, _, err := mime.ParseMediaType(mimeType); err == nil {
		return strings.ToLower(mediaType)
	}
	return strings.ToLower(mimeType)
}
