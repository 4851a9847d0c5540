package extract

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// utf8BOM is stripped from the start of plain text files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// extractPlain returns content as a string. Invalid UTF-8 sequences become U+FFFD.
func extractPlain(content []byte) (string, error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	if !utf8.Valid(content) {
		return strings.ToValidUTF8(string(content), "\ufffd"), nil
	}
	return string(content), nil
}
