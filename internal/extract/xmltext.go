package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// xmlLayout describes where a document format keeps its text.
type xmlLayout struct {
	// run is the element whose character data is text (w:t, a:t). Empty means
	// all character data inside a paragraph counts, as in OpenDocument.
	run string
	// paragraphs end with a newline.
	paragraphs map[string]bool
}

var (
	ooxmlLayout = xmlLayout{run: "t", paragraphs: map[string]bool{"p": true}}
	odfLayout   = xmlLayout{paragraphs: map[string]bool{"p": true, "h": true}}
)

// xmlText walks data and returns its text, one paragraph per line. Runs inside
// a paragraph are concatenated as-is since word processors split words across runs.
func xmlText(data []byte, layout xmlLayout) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false

	var (
		b       strings.Builder
		inRun   int
		inPara  int
		lineLen int
	)
	endLine := func() {
		if lineLen > 0 {
			b.WriteByte('\n')
			lineLen = 0
		}
	}
	write := func(s string) {
		b.WriteString(s)
		lineLen += len(s)
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch name := t.Name.Local; {
			case layout.paragraphs[name]:
				inPara++
			case name == layout.run && layout.run != "":
				inRun++
			case name == "tab":
				write("\t")
			case name == "br" || name == "line-break":
				endLine()
			case name == "s" && layout.run == "":
				write(" ")
			}
		case xml.EndElement:
			switch name := t.Name.Local; {
			case layout.paragraphs[name]:
				if inPara > 0 {
					inPara--
				}
				endLine()
			case name == layout.run && layout.run != "":
				if inRun > 0 {
					inRun--
				}
			}
		case xml.CharData:
			if inRun > 0 || (layout.run == "" && inPara > 0) {
				write(string(t))
			}
		}
	}
	return strings.TrimSpace(b.String()), nil
}

// readZipEntry returns the content of the named entry.
func readZipEntry(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("%s not found", name)
}

func openZip(content []byte) (*zip.Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("not a zip: %w", err)
	}
	return zr, nil
}
