package server

import (
	"bytes"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"code.sajari.com/docconv"
	"go.uber.org/zap"
)

// convertedTypes are converted with docconv; everything else is read as text.
var convertedTypes = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".rtf":  true,
	".odt":  true,
}

// documentText extracts plain text from an upload. Office and PDF documents go
// through docconv; other files must be UTF-8. A document that cannot be read
// yields no text and so scores zero on skills and experience.
func documentText(logger *zap.SugaredLogger, fileName string, data []byte) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if !convertedTypes[ext] {
		if !utf8.Valid(data) {
			return ""
		}
		return string(data)
	}

	res, err := docconv.Convert(bytes.NewReader(data), docconv.MimeTypeByExtension(fileName), false)
	if err != nil {
		logger.Warnw("Document conversion failed", "file", fileName, "error", err)
		return ""
	}
	return strings.TrimSpace(res.Body)
}
