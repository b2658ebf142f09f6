package services

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func multipartFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("letterhead", filename)
	assert.NoError(t, err)
	_, err = part.Write(content)
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	assert.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["letterhead"][0]
}

func TestValidateLetterheadUpload(t *testing.T) {
	jpeg := append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, []byte("fake jpeg body")...)
	png := append([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, []byte("fake png body")...)

	t.Run("accepts JPEG", func(t *testing.T) {
		fh := multipartFileHeader(t, "header.jpg", jpeg)
		assert.NoError(t, ValidateLetterheadUpload(fh))
	})

	t.Run("accepts PNG", func(t *testing.T) {
		fh := multipartFileHeader(t, "header.png", png)
		assert.NoError(t, ValidateLetterheadUpload(fh))
	})

	t.Run("rejects wrong extension", func(t *testing.T) {
		fh := multipartFileHeader(t, "header.gif", jpeg)
		assert.Error(t, ValidateLetterheadUpload(fh))
	})

	t.Run("rejects mismatched content", func(t *testing.T) {
		fh := multipartFileHeader(t, "header.jpg", []byte("plain text pretending"))
		err := ValidateLetterheadUpload(fh)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not a valid JPG or PNG")
	})
}
