// Package extract pulls plain text out of uploaded resume files (PDF and DOCX).
package extract

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Text extracts plain text from the file at path based on its declared type.
// Recognized types (case-insensitive): "pdf", "docx", "doc". Any other type
// fails with *UnsupportedTypeError without touching the file.
func Text(path, fileType string) (string, error) {
	switch strings.ToLower(fileType) {
	case "pdf":
		return fromPDF(path)
	case "docx", "doc":
		return fromDocx(path)
	default:
		return "", &UnsupportedTypeError{FileType: fileType}
	}
}

// fromPDF extracts text page by page, joining pages with newlines.
func fromPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", &ExtractionError{FileType: "pdf", Message: "failed to open document", Cause: err}
	}
	defer func() { _ = f.Close() }()

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", &ExtractionError{FileType: "pdf", Message: "failed to read page text", Cause: err}
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	return strings.TrimSpace(sb.String()), nil
}

// fromDocx extracts paragraph text in document order from the
// word/document.xml entry of the OOXML zip container.
func fromDocx(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", &ExtractionError{FileType: "docx", Message: "failed to open document", Cause: err}
	}
	defer func() { _ = zr.Close() }()

	var docXML io.ReadCloser
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return "", &ExtractionError{FileType: "docx", Message: "failed to open document.xml", Cause: err}
			}
			docXML = rc
			break
		}
	}
	if docXML == nil {
		return "", &ExtractionError{FileType: "docx", Message: "no document.xml found in archive"}
	}
	defer func() { _ = docXML.Close() }()

	paragraphs, err := docxParagraphs(docXML)
	if err != nil {
		return "", &ExtractionError{FileType: "docx", Message: "failed to parse document.xml", Cause: err}
	}

	return strings.TrimSpace(strings.Join(paragraphs, "\n")), nil
}

// docxParagraphs walks the WordprocessingML token stream, collecting the text
// runs of each w:p element.
func docxParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var paragraphs []string
	var current strings.Builder
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				current.WriteString("\t")
			case "br":
				current.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}

	return paragraphs, nil
}
