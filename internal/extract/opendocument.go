package extract

import "fmt"

// odfContentPath holds the body of every OpenDocument file (.odt, .odp, .ods).
const odfContentPath = "content.xml"

// extractODF reads the paragraphs and headings (text:p, text:h) of an
// OpenDocument file. kind names the format in errors.
func extractODF(content []byte, kind string) (string, error) {
	zr, err := openZip(content)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", kind, err)
	}
	data, err := readZipEntry(zr, odfContentPath)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", kind, err)
	}
	text, err := xmlText(data, odfLayout)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", kind, err)
	}
	return text, nil
}
