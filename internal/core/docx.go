package core

// docx.go extracts plain text from Word (.docx) files.
//
// A .docx is a ZIP container whose body lives in word/document.xml.
// The XML is walked token by token: text runs (w:t) are copied, w:tab
// becomes a tab, w:br and w:cr become newlines and every paragraph (w:p)
// ends with a newline.

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const docxBodyPart = "word/document.xml"

// maxDocumentBodySize caps the decompressed size of word/document.xml.
var maxDocumentBodySize int64 = 64 << 20

// ExtractDocumentText returns the body text of a .docx file, one line per
// paragraph.
func ExtractDocumentText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var body *zip.File
	for _, f := range zr.File {
		if f.Name == docxBodyPart {
			body = f
			break
		}
	}
	if body == nil {
		return "", fmt.Errorf("%s not found", docxBodyPart)
	}
	if body.UncompressedSize64 > uint64(maxDocumentBodySize) {
		return "", bodyTooLargeError()
	}

	rc, err := body.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	// The declared size can lie; stop reading one byte past the cap.
	lr := &io.LimitedReader{R: rc, N: maxDocumentBodySize + 1}
	text, err := paragraphText(lr)
	if lr.N <= 0 {
		return "", bodyTooLargeError()
	}
	return text, err
}

func bodyTooLargeError() error {
	return fmt.Errorf("%s is larger than %d bytes", docxBodyPart, maxDocumentBodySize)
}

func paragraphText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var b strings.Builder
	inText := false

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteByte('\t')
			case "br", "cr":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}
