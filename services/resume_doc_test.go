package services

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentResumeTextHeuristics(t *testing.T) {
	text := "## EDUCATION\n" +
		"**Experience**\n" +
		"SKILLS\n" +
		"- Go and distributed systems\n" +
		"• Technical writing\n" +
		"\n" +
		"Motivated student seeking research opportunities."

	segments := SegmentResumeText(text)
	require.Len(t, segments, 6, "blank lines are dropped")

	assert.Equal(t, DocSegment{Kind: SegmentHeading, Text: "EDUCATION"}, segments[0])
	assert.Equal(t, DocSegment{Kind: SegmentHeading, Text: "Experience"}, segments[1])
	assert.Equal(t, DocSegment{Kind: SegmentHeading, Text: "SKILLS"}, segments[2])
	assert.Equal(t, DocSegment{Kind: SegmentBullet, Text: "Go and distributed systems"}, segments[3])
	assert.Equal(t, DocSegment{Kind: SegmentBullet, Text: "Technical writing"}, segments[4])
	assert.Equal(t, DocSegment{Kind: SegmentParagraph, Text: "Motivated student seeking research opportunities."}, segments[5])
}

func TestIsAllCaps(t *testing.T) {
	assert.True(t, isAllCaps("PROJECTS"))
	assert.True(t, isAllCaps("WORK HISTORY 2024"))
	assert.False(t, isAllCaps("Projects"))
	assert.False(t, isAllCaps("2024"), "digits alone are not a heading")
	assert.False(t, isAllCaps("---"))
}

func TestResumeFilename(t *testing.T) {
	assert.Equal(t, "Jane_Doe_Resume.docx", ResumeFilename("Jane Doe"))
	assert.Equal(t, "OBrien_Resume.docx", ResumeFilename("O'Brien"))
	assert.Equal(t, "Resume_Resume.docx", ResumeFilename("!!!"))
	assert.Equal(t, "Resume_Resume.docx", ResumeFilename(""))
}

func TestBuildResumeDocumentStructure(t *testing.T) {
	doc, err := BuildResumeDocument("Jane <Doe>", "jane@example.com | Austin, TX",
		"## EDUCATION\n- BS Computer Science")
	require.NoError(t, err)

	reader, err := zip.NewReader(bytes.NewReader(doc), int64(len(doc)))
	require.NoError(t, err)

	parts := make(map[string]string)
	for _, f := range reader.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		parts[f.Name] = string(content)
	}

	require.Contains(t, parts, "[Content_Types].xml")
	require.Contains(t, parts, "_rels/.rels")
	require.Contains(t, parts, "word/document.xml")

	document := parts["word/document.xml"]
	assert.Contains(t, document, "Jane &lt;Doe&gt;", "title text is XML-escaped")
	assert.Contains(t, document, "jane@example.com | Austin, TX")
	assert.Contains(t, document, ">EDUCATION<")
	assert.Contains(t, document, "• BS Computer Science")
	assert.True(t, strings.Contains(parts["[Content_Types].xml"], "wordprocessingml"))
}
