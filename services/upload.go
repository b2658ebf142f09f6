package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// MaxLetterheadSize caps uploaded letterhead images at 5MB
const MaxLetterheadSize = 5 * 1024 * 1024

// ValidateLetterheadUpload checks that the uploaded file is a JPEG or
// PNG image within the size limit. The content check reads the file's
// magic bytes, not just its extension.
func ValidateLetterheadUpload(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size > MaxLetterheadSize {
		return fmt.Errorf("file size exceeds maximum allowed size of 5MB")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return fmt.Errorf("letterhead must be a JPG or PNG image")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	// Read the leading bytes to verify the actual content
	buffer := make([]byte, 8)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file content: %w", err)
	}
	buffer = buffer[:n]

	if !isJPEG(buffer) && !isPNG(buffer) {
		return fmt.Errorf("file is not a valid JPG or PNG image")
	}

	return nil
}

func isJPEG(b []byte) bool {
	return len(b) >= 3 && b[0] == 0xFF && b[1] == 0xD8 && b[2] == 0xFF
}

func isPNG(b []byte) bool {
	signature := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	if len(b) < len(signature) {
		return false
	}
	for i, expected := range signature {
		if b[i] != expected {
			return false
		}
	}
	return true
}
