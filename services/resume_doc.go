package services

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"unicode"
)

// SegmentKind classifies a line of resume text for document rendering.
type SegmentKind string

const (
	SegmentHeading   SegmentKind = "heading"
	SegmentBullet    SegmentKind = "bullet"
	SegmentParagraph SegmentKind = "paragraph"
)

type DocSegment struct {
	Kind SegmentKind
	Text string
}

// SegmentResumeText splits free resume text into document segments using
// simple textual heuristics: lines starting with "##"/"**" or written in all
// caps become headings, lines starting with "-"/"•" become bullets, anything
// else is a plain paragraph. Blank lines are dropped.
func SegmentResumeText(text string) []DocSegment {
	var segments []DocSegment

	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "##"):
			segments = append(segments, DocSegment{
				Kind: SegmentHeading,
				Text: strings.TrimSpace(strings.TrimLeft(line, "#")),
			})
		case strings.HasPrefix(line, "**"):
			segments = append(segments, DocSegment{
				Kind: SegmentHeading,
				Text: strings.TrimSpace(strings.Trim(line, "*")),
			})
		case isAllCaps(line):
			segments = append(segments, DocSegment{Kind: SegmentHeading, Text: line})
		case strings.HasPrefix(line, "-"), strings.HasPrefix(line, "•"):
			segments = append(segments, DocSegment{
				Kind: SegmentBullet,
				Text: strings.TrimSpace(strings.TrimLeft(line, "-•")),
			})
		default:
			segments = append(segments, DocSegment{Kind: SegmentParagraph, Text: line})
		}
	}

	return segments
}

// isAllCaps reports whether the line contains letters and none of them are
// lowercase.
func isAllCaps(line string) bool {
	hasLetter := false
	for _, r := range line {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

// ResumeFilename derives a download filename from the profile name.
func ResumeFilename(profileName string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			return r
		case r == ' ' || r == '-' || r == '_':
			return '_'
		default:
			return -1
		}
	}, strings.TrimSpace(profileName))

	if cleaned == "" {
		cleaned = "Resume"
	}
	return cleaned + "_Resume.docx"
}

const docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const docxRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

// BuildResumeDocument renders a DOCX with a title paragraph, a contact line,
// and the segmented resume body.
func BuildResumeDocument(title, contact, resumeText string) ([]byte, error) {
	var body strings.Builder

	body.WriteString(docxParagraph(title, 36, true))
	if contact != "" {
		body.WriteString(docxParagraph(contact, 22, false))
	}

	for _, segment := range SegmentResumeText(resumeText) {
		switch segment.Kind {
		case SegmentHeading:
			body.WriteString(docxParagraph(segment.Text, 28, true))
		case SegmentBullet:
			body.WriteString(docxParagraph("• "+segment.Text, 22, false))
		default:
			body.WriteString(docxParagraph(segment.Text, 22, false))
		}
	}

	document := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>%s</w:body>
</w:document>`, body.String())

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRels},
		{"word/document.xml", document},
	}

	for _, part := range parts {
		f, err := w.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("failed to create document part %s: %w", part.name, err)
		}
		if _, err := f.Write([]byte(part.content)); err != nil {
			return nil, fmt.Errorf("failed to write document part %s: %w", part.name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize document archive: %w", err)
	}

	return buf.Bytes(), nil
}

func docxParagraph(text string, size int, bold bool) string {
	var props strings.Builder
	fmt.Fprintf(&props, `<w:sz w:val="%d"/>`, size)
	if bold {
		props.WriteString(`<w:b/>`)
	}

	var escaped bytes.Buffer
	_ = xml.EscapeText(&escaped, []byte(text))

	return fmt.Sprintf(`<w:p><w:r><w:rPr>%s</w:rPr><w:t xml:space="preserve">%s</w:t></w:r></w:p>`,
		props.String(), escaped.String())
}
