package extract

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
)

// FromUpload pulls the plain text out of an uploaded resume. PDF and word
// processor formats go through docconv; plain text passes through unchanged.
// An upload that yields no text at all is an error, callers treat it as
// malformed input.
func FromUpload(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(fh.Filename))

	var text string
	switch ext {
	case ".pdf", ".docx", ".doc", ".rtf", ".odt":
		text, err = convertDocument(src, ext)
		if err != nil {
			return "", err
		}
	case ".txt", "":
		raw, readErr := io.ReadAll(src)
		if readErr != nil {
			return "", fmt.Errorf("read upload: %w", readErr)
		}
		text = string(raw)
	default:
		return "", fmt.Errorf("unsupported file type: %s", ext)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("no text extracted from %s", fh.Filename)
	}
	return text, nil
}

// convertDocument spools the upload to a temp file because docconv works from
// paths.
func convertDocument(src io.Reader, ext string) (string, error) {
	tmp, err := os.CreateTemp("", "resume-*"+ext)
	if err != nil {
		return "", fmt.Errorf("spool upload: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return "", fmt.Errorf("spool upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("spool upload: %w", err)
	}

	res, err := docconv.ConvertPath(tmp.Name())
	if err != nil {
		return "", fmt.Errorf("convert document: %w", err)
	}
	return res.Body, nil
}
