package security

import (
	"bytes"
	"net/http"
	"path/filepath"
	"strings"
)

// FileValidationResult contains the result of resume file validation
type FileValidationResult struct {
	Valid        bool   // Whether the file passed all validation checks
	Extension    string // Detected file extension
	DetectedMIME string // Detected MIME type
	Error        string // Error message if validation failed
}

// Magic byte signatures for allowed resume file types.
// Maps lowercase extension to possible magic byte prefixes.
var magicBytes = map[string][][]byte{
	".pdf":  {{0x25, 0x50, 0x44, 0x46}},                         // %PDF
	".doc":  {{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}}, // OLE Compound Document
	".docx": {{0x50, 0x4B, 0x03, 0x04}},                         // ZIP (PK..)
}

// Resumes may only be PDF or Word documents.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// Strict MIME types - application/octet-stream is handled separately
var strictMIMETypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	// ZIP-based documents (DOCX detection fallback)
	"application/zip": true,
}

// ValidateResumeFile performs 3-layer validation on an uploaded resume:
// 1. Extension whitelist check
// 2. Magic byte verification (content matches extension)
// 3. MIME type whitelist (sniffed from content)
func ValidateResumeFile(filename string, data []byte) FileValidationResult {
	result := FileValidationResult{}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		result.Error = "file has no extension"
		return result
	}
	result.Extension = ext

	// Layer 1: Extension whitelist
	if !allowedExtensions[ext] {
		result.Error = "file extension not allowed: " + ext
		return result
	}

	// Layer 2: Magic byte validation
	if !validateMagicBytes(ext, data) {
		result.Error = "file content does not match extension (potential file spoofing detected)"
		return result
	}

	// Layer 3: MIME type sniffed from the first bytes
	sniffLen := len(data)
	if sniffLen > 512 {
		sniffLen = 512
	}
	detected := http.DetectContentType(data[:sniffLen])
	if i := strings.Index(detected, ";"); i >= 0 {
		detected = detected[:i]
	}
	result.DetectedMIME = detected

	if detected == "application/octet-stream" {
		// .doc/.docx are often sniffed as octet-stream; the magic byte layer
		// already verified the container format, so allow them through.
		if ext != ".doc" && ext != ".docx" {
			result.Error = "file type could not be determined"
			return result
		}
	} else if !strictMIMETypes[detected] {
		result.Error = "MIME type not allowed: " + detected
		return result
	}

	result.Valid = true
	return result
}

// validateMagicBytes checks if file content starts with expected magic bytes
func validateMagicBytes(ext string, data []byte) bool {
	if len(data) < 4 {
		return false
	}

	signatures, ok := magicBytes[ext]
	if !ok {
		return false
	}

	for _, sig := range signatures {
		if len(data) >= len(sig) && bytes.HasPrefix(data, sig) {
			return true
		}
	}

	return false
}

// ContentTypeForExtension returns the canonical MIME type stored alongside
// the object in the bucket.
func ContentTypeForExtension(ext string) string {
	switch strings.ToLower(ext) {
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}
