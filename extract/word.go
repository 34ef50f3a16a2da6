package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

var errNoDocumentXML = errors.New("no word/document.xml entry")

// wordText extracts text from a Word document buffer, best effort.
// Modern .docx files are ZIP archives holding word/document.xml; the text
// lives in <w:t> elements. Legacy binary .doc content fails the ZIP open
// and yields an error, which the caller maps to empty text.
func wordText(data []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", err
		}
		defer rc.Close()

		return documentXMLText(rc)
	}

	return "", errNoDocumentXML
}

// documentXMLText streams document.xml and collects the character data of
// text runs, inserting newlines at paragraph boundaries.
func documentXMLText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var builder strings.Builder
	inText := false
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Keep whatever was decoded before the malformed region.
			break
		}

		switch el := token.(type) {
		case xml.StartElement:
			if el.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				builder.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				builder.Write(el)
			}
		}
	}

	return builder.String(), nil
}
