package parser

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/tealeg/xlsx"
	"github.com/xuri/excelize/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/m1kezera/ai-faq-widget/internal/models"
)

const (
	defaultChunkSize    = 500 // bytes
	defaultChunkOverlap = 0
	defaultPageNumber   = 1
)

// Parse extracts text from an uploaded document and splits it into
// chunks ready for ingestion. The format is picked from the file
// extension.
func Parse(filePath string, chunkSize, chunkOverlap int) ([]models.Chunk, error) {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	if chunkOverlap < 0 {
		chunkOverlap = defaultChunkOverlap
	}

	p := &parser{chunkSize: chunkSize, chunkOverlap: chunkOverlap}

	switch ext := strings.ToLower(filepath.Ext(filePath)); ext {
	case ".pdf":
		return p.parsePDF(filePath)
	case ".docx":
		return p.parseDOCX(filePath)
	case ".pptx":
		return p.parsePPTX(filePath)
	case ".xlsx":
		return p.parseXLSX(filePath)
	case ".ods":
		return p.parseODS(filePath)
	case ".txt", ".md", ".markdown":
		return p.parseText(filePath)
	default:
		return nil, fmt.Errorf("unsupported file format: %s", ext)
	}
}

type parser struct {
	chunkSize    int
	chunkOverlap int
}

func (p *parser) parsePDF(filePath string) ([]models.Chunk, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return nil, err
	}

	var chunks []models.Chunk
	for i := 1; i <= reader.NumPage(); i++ {
		pageText, err := reader.Page(i).GetPlainText(nil)
		if err != nil {
			return nil, err
		}
		markdown, err := renderMarkdown(pageText)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, p.chunksForPage(markdown, i)...)
	}
	return chunks, nil
}

func (p *parser) parseDOCX(filePath string) ([]models.Chunk, error) {
	r, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	// DOCX has no page numbers; every paragraph lands on page 1
	var chunks []models.Chunk
	for _, paragraph := range strings.Split(r.Editable().GetContent(), "\n") {
		if strings.TrimSpace(paragraph) == "" {
			continue
		}
		markdown, err := renderMarkdown(paragraph)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(markdown) != "" {
			chunks = append(chunks, models.Chunk{Content: markdown, PageNumber: defaultPageNumber})
		}
	}
	return chunks, nil
}

func (p *parser) parsePPTX(filePath string) ([]models.Chunk, error) {
	f, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var chunks []models.Chunk
	slide := 0
	for _, file := range f.File {
		if !strings.HasPrefix(file.Name, "ppt/slides/slide") {
			continue
		}
		slide++
		rc, err := file.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			continue
		}
		markdown, err := renderMarkdown(drawingText(string(data)))
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(markdown) != "" {
			chunks = append(chunks, models.Chunk{Content: markdown, PageNumber: slide})
		}
	}
	return chunks, nil
}

func (p *parser) parseXLSX(filePath string) ([]models.Chunk, error) {
	f, err := xlsx.OpenFile(filePath)
	if err != nil {
		return nil, err
	}

	var chunks []models.Chunk
	for sheetNum, sheet := range f.Sheets {
		var text strings.Builder
		text.WriteString(fmt.Sprintf("## Sheet: %s\n", sheet.Name))
		for _, row := range sheet.Rows {
			for _, cell := range row.Cells {
				text.WriteString(cell.String() + "\t")
			}
			text.WriteString("\n")
		}
		markdown, err := renderMarkdown(text.String())
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(markdown) != "" {
			chunks = append(chunks, models.Chunk{Content: markdown, PageNumber: sheetNum + 1})
		}
	}
	return chunks, nil
}

func (p *parser) parseODS(filePath string) ([]models.Chunk, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var chunks []models.Chunk
	for sheetNum, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			continue
		}
		var text strings.Builder
		text.WriteString(fmt.Sprintf("## Sheet: %s\n", sheetName))
		for _, row := range rows {
			for _, cell := range row {
				text.WriteString(cell + "\t")
			}
			text.WriteString("\n")
		}
		markdown, err := renderMarkdown(text.String())
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(markdown) != "" {
			chunks = append(chunks, models.Chunk{Content: markdown, PageNumber: sheetNum + 1})
		}
	}
	return chunks, nil
}

func (p *parser) parseText(filePath string) ([]models.Chunk, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	markdown, err := renderMarkdown(string(data))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(markdown) == "" {
		return nil, nil
	}
	return p.chunksForPage(markdown, defaultPageNumber), nil
}

func (p *parser) chunksForPage(content string, pageNumber int) []models.Chunk {
	var chunks []models.Chunk
	for i, text := range ChunkText(content, p.chunkSize, p.chunkOverlap) {
		chunks = append(chunks, models.Chunk{
			Content:    text,
			PageNumber: pageNumber,
			ChunkID:    i + 1,
		})
	}
	return chunks
}

func renderMarkdown(text string) (string, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	return strings.Trim(buf.String(), " \t\n\r"), nil
}

// drawingText pulls the visible text runs out of a PPTX slide's
// DrawingML without a full XML parse.
func drawingText(xmlContent string) string {
	var text strings.Builder
	parts := strings.Split(xmlContent, "<a:t>")
	for i, part := range parts {
		if i == 0 {
			continue
		}
		if endIdx := strings.Index(part, "</a:t>"); endIdx >= 0 {
			text.WriteString(part[:endIdx] + " ")
		}
	}
	return text.String()
}

// ChunkText splits content into chunks of at most maxChars bytes with
// overlapChars of overlap between consecutive chunks. Break points
// prefer a space, newline or period within the last tenth of the chunk
// so words survive the cut.
func ChunkText(content string, maxChars, overlapChars int) []string {
	if maxChars <= 0 {
		return nil
	}
	if overlapChars < 0 {
		overlapChars = 0
	}
	if overlapChars >= maxChars {
		overlapChars = maxChars / 2
	}

	content = strings.TrimSpace(content)
	if len(content) == 0 {
		return nil
	}
	if len(content) <= maxChars {
		return []string{content}
	}

	var chunks []string
	start := 0
	for start < len(content) {
		end := min(start+maxChars, len(content))

		if end < len(content) {
			lookBack := min(maxChars/10, end-start)
			for i := end - 1; i >= end-lookBack && i > start; i-- {
				if content[i] == ' ' || content[i] == '\n' || content[i] == '.' {
					end = i + 1
					break
				}
			}
		}

		if chunk := strings.TrimSpace(content[start:end]); chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end >= len(content) {
			break
		}
		start = max(end-overlapChars, start+1)
	}
	return chunks
}
