package services

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"
)

type ExtractionMethod string

const (
	MethodModel     ExtractionMethod = "model"
	MethodDocxLocal ExtractionMethod = "docx-local"
)

var errNoText = errors.New("no text could be extracted")

type ExtractionResult struct {
	Text      string
	Method    ExtractionMethod
	PageCount int
}

type TextExtractor interface {
	Extract(ctx context.Context, filePath, fileName string) (*ExtractionResult, error)
}

// extractionAttempt is one step of a file kind's ordered fallback chain.
type extractionAttempt struct {
	method ExtractionMethod
	run    func(ctx context.Context, data []byte, mimeType string) (string, error)
}

type textExtractor struct {
	model      ModelClient
	pdfParser  PDFParserService
	prompts    *PromptBuilder
	docxReader func(data []byte) (string, error)
	plans      map[FileKind][]extractionAttempt
}

func NewTextExtractor(model ModelClient, pdfParser PDFParserService) TextExtractor {
	e := &textExtractor{
		model:      model,
		pdfParser:  pdfParser,
		prompts:    NewPromptBuilder(),
		docxReader: ExtractDocxText,
	}

	viaModel := extractionAttempt{method: MethodModel, run: e.extractWithModel}
	docxLocal := extractionAttempt{method: MethodDocxLocal, run: e.extractDocxLocally}

	// Legacy .doc is binary; only the model reads it reliably.
	e.plans = map[FileKind][]extractionAttempt{
		KindPDF:   {viaModel},
		KindImage: {viaModel},
		KindDOCX:  {docxLocal, viaModel},
		KindDOC:   {viaModel},
	}

	return e
}

// Extract implements TextExtractor.
func (e *textExtractor) Extract(ctx context.Context, filePath, fileName string) (*ExtractionResult, error) {
	kind, mimeType, ok := LookupFileType(fileName)
	if !ok {
		return nil, &ExtractionError{FileName: fileName, Message: "unsupported file type"}
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, &ExtractionError{FileName: fileName, Message: "failed to read uploaded file", Cause: err}
	}

	result := &ExtractionResult{}
	if kind == KindPDF && e.pdfParser != nil {
		if pages, err := e.pdfParser.PageCount(filePath); err == nil {
			result.PageCount = pages
		}
	}

	var lastErr error
	for _, attempt := range e.plans[kind] {
		text, err := attempt.run(ctx, data, mimeType)
		if err == nil {
			text = strings.TrimSpace(text)
			if text != "" {
				result.Text = text
				result.Method = attempt.method
				return result, nil
			}
			err = errNoText
		}

		log.Printf("⚠️ %s extraction failed for %s: %v", attempt.method, fileName, err)
		lastErr = err
	}

	if errors.Is(lastErr, errNoText) {
		return nil, &ExtractionError{FileName: fileName, Message: errNoText.Error()}
	}
	return nil, &ExtractionError{FileName: fileName, Message: "text extraction failed", Cause: lastErr}
}

func (e *textExtractor) extractWithModel(ctx context.Context, data []byte, mimeType string) (string, error) {
	return e.model.GenerateFromFile(ctx, e.prompts.BuildExtractionPrompt(), data, mimeType)
}

func (e *textExtractor) extractDocxLocally(_ context.Context, data []byte, _ string) (string, error) {
	return e.docxReader(data)
}
