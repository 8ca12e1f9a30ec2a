package resume

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFile_UnsupportedType(t *testing.T) {
	p := NewParser(t.TempDir())

	_, err := p.ParseFile("resume.txt", strings.NewReader("plain text"))
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Contains(t, parseErr.Reason, "unsupported file type")
}

func TestParseFile_CorruptDocument(t *testing.T) {
	p := NewParser(t.TempDir())

	// A .docx is a zip archive; arbitrary bytes cannot be decoded.
	_, err := p.ParseFile("resume.docx", strings.NewReader("not a real docx"))
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
}

func TestParseErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &ParseError{Reason: "failed to decode document", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to decode document")
}
