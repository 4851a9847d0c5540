package extract

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	// docxDocumentPath is the usual main document part inside a .docx zip.
	docxDocumentPath = "word/document.xml"
	contentTypesPath = "[Content_Types].xml"
	docxMainType     = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	pptxSlidePrefix  = "ppt/slides/slide"
)

// contentTypes is the subset of [Content_Types].xml needed to locate parts.
type contentTypes struct {
	Overrides []struct {
		PartName    string `xml:"PartName,attr"`
		ContentType string `xml:"ContentType,attr"`
	} `xml:"Override"`
}

// docxMainPart returns the main document part named in [Content_Types].xml,
// or the conventional path when the manifest is missing or silent.
func docxMainPart(zr *zip.Reader) string {
	data, err := readZipEntry(zr, contentTypesPath)
	if err != nil {
		return docxDocumentPath
	}
	var ct contentTypes
	if err := xml.Unmarshal(data, &ct); err != nil {
		return docxDocumentPath
	}
	for _, o := range ct.Overrides {
		if o.ContentType == docxMainType {
			return strings.TrimPrefix(o.PartName, "/")
		}
	}
	return docxDocumentPath
}

// extractDOCX reads the text runs (w:t) of the main document part.
func extractDOCX(content []byte) (string, error) {
	zr, err := openZip(content)
	if err != nil {
		return "", fmt.Errorf("extract DOCX: %w", err)
	}
	data, err := readZipEntry(zr, docxMainPart(zr))
	if err != nil {
		return "", fmt.Errorf("extract DOCX: %w", err)
	}
	text, err := xmlText(data, ooxmlLayout)
	if err != nil {
		return "", fmt.Errorf("extract DOCX: %w", err)
	}
	return text, nil
}

// extractPPTX reads the text runs (a:t) of every slide in slide-number order.
func extractPPTX(content []byte) (string, error) {
	zr, err := openZip(content)
	if err != nil {
		return "", fmt.Errorf("extract PPTX: %w", err)
	}
	var slides []string
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, pptxSlidePrefix) && strings.HasSuffix(f.Name, ".xml") {
			slides = append(slides, f.Name)
		}
	}
	sort.Slice(slides, func(i, j int) bool { return slideNumber(slides[i]) < slideNumber(slides[j]) })

	var parts []string
	for _, name := range slides {
		data, err := readZipEntry(zr, name)
		if err != nil {
			return "", fmt.Errorf("extract PPTX: %w", err)
		}
		text, err := xmlText(data, ooxmlLayout)
		if err != nil {
			return "", fmt.Errorf("extract PPTX: %s: %w", name, err)
		}
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n"), nil
}

// slideNumber parses N from ppt/slides/slideN.xml; unparsable names sort last.
func slideNumber(name string) int {
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, pptxSlidePrefix), ".xml"))
	if err != nil {
		return int(^uint(0) >> 1)
	}
	return n
}
