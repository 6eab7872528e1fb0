// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	documentPart = "word/document.xml"
	wordNS       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
)

// Native reads .docx files directly. It renders paragraphs as Markdown
// blocks, heading styles as # headings, numbered or bulleted paragraphs as
// list items, and tables as pipe tables.
type Native struct{}

// Extract reads the main document part of the .docx at path.
func (Native) Extract(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer zr.Close()

	var part *zip.File
	for _, f := range zr.File {
		if f.Name == documentPart {
			part = f
			break
		}
	}
	if part == nil {
		return "", fmt.Errorf("%s: missing %s", path, documentPart)
	}

	rc, err := part.Open()
	if err != nil {
		return "", fmt.Errorf("reading %s from %s: %w", documentPart, path, err)
	}
	defer rc.Close()

	text, err := renderDocument(rc)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", path, err)
	}
	if text == "" {
		return "", fmt.Errorf("%s: %w", path, ErrNoContent)
	}
	return text, nil
}

type table struct {
	rows   [][]string
	row    []string
	cell   strings.Builder
	inCell bool
}

// paraState is an enclosing paragraph suspended while a nested one, such
// as a text box paragraph, is read.
type paraState struct {
	text    string
	heading int
	list    bool
}

type renderer struct {
	blocks  []string
	para    strings.Builder
	inPara  bool
	inText  bool
	inTabs  bool
	heading int
	list    bool
	outer   []paraState
	tables  []*table
}

func renderDocument(r io.Reader) (string, error) {
	var rd renderer
	dec := xml.NewDecoder(r)
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
			if t.Name.Space == wordNS {
				rd.start(t)
			}
		case xml.EndElement:
			if t.Name.Space == wordNS {
				rd.end(t.Name.Local)
			}
		case xml.CharData:
			if rd.inText && rd.inPara {
				rd.para.Write(t)
			}
		}
	}
	if len(rd.blocks) == 0 {
		return "", nil
	}
	return strings.Join(rd.blocks, "\n\n") + "\n", nil
}

func (rd *renderer) current() *table {
	if len(rd.tables) == 0 {
		return nil
	}
	return rd.tables[len(rd.tables)-1]
}

func (rd *renderer) start(el xml.StartElement) {
	switch el.Name.Local {
	case "p":
		if rd.inPara {
			rd.outer = append(rd.outer, paraState{text: rd.para.String(), heading: rd.heading, list: rd.list})
		}
		rd.para.Reset()
		rd.inPara = true
		rd.heading = 0
		rd.list = false
	case "pStyle":
		rd.heading = headingLevel(attr(el, "val"))
	case "numPr":
		rd.list = true
	case "t":
		rd.inText = true
	case "tabs":
		rd.inTabs = true
	case "tab":
		if rd.inPara && !rd.inTabs {
			rd.para.WriteByte('\t')
		}
	case "br", "cr":
		if rd.inPara {
			rd.para.WriteByte('\n')
		}
	case "tbl":
		rd.tables = append(rd.tables, &table{})
	case "tr":
		if t := rd.current(); t != nil {
			t.row = nil
		}
	case "tc":
		if t := rd.current(); t != nil {
			t.cell.Reset()
			t.inCell = true
		}
	}
}

func (rd *renderer) end(local string) {
	switch local {
	case "t":
		rd.inText = false
	case "tabs":
		rd.inTabs = false
	case "p":
		rd.inPara = false
		rd.endParagraph(rd.para.String())
		if n := len(rd.outer); n > 0 {
			st := rd.outer[n-1]
			rd.outer = rd.outer[:n-1]
			rd.para.Reset()
			rd.para.WriteString(st.text)
			rd.heading = st.heading
			rd.list = st.list
			rd.inPara = true
		}
	case "tc":
		if t := rd.current(); t != nil {
			t.row = append(t.row, t.cell.String())
			t.inCell = false
		}
	case "tr":
		if t := rd.current(); t != nil {
			t.rows = append(t.rows, t.row)
			t.row = nil
		}
	case "tbl":
		t := rd.current()
		if t == nil {
			return
		}
		rd.tables = rd.tables[:len(rd.tables)-1]
		rendered := renderTable(t.rows)
		if rendered == "" {
			return
		}
		// Nested tables collapse into the enclosing cell.
		if parent := rd.current(); parent != nil && parent.inCell {
			appendCell(parent, strings.ReplaceAll(rendered, "\n", " "))
			return
		}
		rd.blocks = append(rd.blocks, rendered)
	}
}

func (rd *renderer) endParagraph(text string) {
	if t := rd.current(); t != nil && t.inCell {
		appendCell(t, strings.TrimSpace(strings.ReplaceAll(text, "\n", " ")))
		return
	}
	if strings.TrimSpace(text) == "" {
		return
	}
	switch {
	case rd.heading > 0:
		text = strings.Repeat("#", rd.heading) + " " + strings.TrimSpace(text)
	case rd.list:
		text = "- " + strings.TrimSpace(text)
	}
	rd.blocks = append(rd.blocks, text)
}

func appendCell(t *table, text string) {
	if text == "" {
		return
	}
	if t.cell.Len() > 0 {
		t.cell.WriteByte(' ')
	}
	t.cell.WriteString(text)
}

func renderTable(rows [][]string) string {
	cols := 0
	for _, r := range rows {
		cols = max(cols, len(r))
	}
	if cols == 0 {
		return ""
	}

	var b strings.Builder
	for i, r := range rows {
		cells := make([]string, cols)
		for j := range cells {
			if j < len(r) {
				cells[j] = strings.ReplaceAll(r[j], "|", `\|`)
			}
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |")
		if i == 0 {
			b.WriteString("\n|" + strings.Repeat(" --- |", cols))
		}
	}
	return b.String()
}

// headingLevel maps paragraph style IDs such as "Heading2" or "Title" to a
// Markdown heading level, or 0 for body styles.
func headingLevel(style string) int {
	s := strings.ToLower(strings.ReplaceAll(style, " ", ""))
	if s == "title" {
		return 1
	}
	if !strings.HasPrefix(s, "heading") {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimPrefix(s, "heading"))
	if err != nil || n < 1 {
		return 0
	}
	return min(n, 6)
}

func attr(el xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
