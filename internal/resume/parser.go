package resume

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"

	"crisp-interview/internal/models"
)

// ParseError is returned when an upload cannot be turned into résumé text:
// unsupported media type, failed binary decode, or no extractable text.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("resume parse: %s: %v", e.Reason, e.Err)
	}
	return "resume parse: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parser extracts text and heuristic fields from uploaded résumé files.
type Parser struct {
	uploadsDir string
}

func NewParser(uploadsDir string) *Parser {
	return &Parser{uploadsDir: uploadsDir}
}

// supportedExtensions gates uploads to the formats docconv can decode for us.
var supportedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// ParseFile stages the upload on disk, decodes it to plain text and runs the
// field-extraction pipeline. Manual entry remains the fallback for anything
// the heuristics miss, so a sparse ParsedFields is not an error — but a
// document with no text at all is.
func (p *Parser) ParseFile(filename string, reader io.Reader) (*models.ResumeData, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !supportedExtensions[ext] {
		return nil, &ParseError{Reason: fmt.Sprintf("unsupported file type %q (supported: PDF, DOC, DOCX)", ext)}
	}

	if err := os.MkdirAll(p.uploadsDir, 0755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	filePath := filepath.Join(p.uploadsDir, filepath.Base(filename))
	file, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("stage upload: %w", err)
	}
	if _, err := io.Copy(file, reader); err != nil {
		file.Close()
		return nil, fmt.Errorf("save upload: %w", err)
	}
	if err := file.Close(); err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}

	res, err := docconv.ConvertPath(filePath)
	if err != nil {
		return nil, &ParseError{Reason: "failed to decode document", Err: err}
	}

	text := strings.TrimSpace(res.Body)
	if text == "" {
		return nil, &ParseError{Reason: "no extractable text found (the document may be image-based or password-protected)"}
	}

	return &models.ResumeData{
		Filename:     filename,
		Text:         text,
		ParsedFields: ExtractFields(text),
	}, nil
}
