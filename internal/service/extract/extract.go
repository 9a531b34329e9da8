// Package extract 从上传的文件字节中抽取纯文本
// 直接使用 eino-ext 的文档解析组件，按 MIME 类型选择解析器
package extract

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cloudwego/eino-ext/components/document/parser/docx"
	"github.com/cloudwego/eino-ext/components/document/parser/html"
	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoparser "github.com/cloudwego/eino/components/document/parser"
	"github.com/cloudwego/eino/schema"

	"github.com/mingyue-ai/agenthub/internal/apperrors"
)

const mimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Extractor 文本抽取器
type Extractor struct{}

// New 创建文本抽取器
func New() *Extractor {
	return &Extractor{}
}

// Extract 抽取文本
// 不支持的类型返回占位文本而不是错误，上传流程不因此中断；
// 解析器失败时返回包装了 ErrExtractionFailed 的错误，由调用方换成占位文本。
func (e *Extractor) Extract(ctx context.Context, reader io.Reader, filename, mimeType string) (string, error) {
	fileParser, err := e.newParser(ctx, mimeType)
	if err != nil {
		return fmt.Sprintf("[Unsupported file type: %s. Please use PDF, DOCX, HTML, TXT, MD or JSON]", mimeType), nil
	}

	docs, err := fileParser.Parse(ctx, reader)
	if err != nil {
		return "", fmt.Errorf("%w: parse %s: %v", apperrors.ErrExtractionFailed, filename, err)
	}

	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		if doc.Content != "" {
			parts = append(parts, doc.Content)
		}
	}
	return strings.Join(parts, "\n\n"), nil
}

// newParser 按 MIME 类型创建解析器
func (e *Extractor) newParser(ctx context.Context, mimeType string) (einoparser.Parser, error) {
	switch {
	case mimeType == "application/pdf":
		return pdf.NewPDFParser(ctx, &pdf.Config{ToPages: false})
	case mimeType == mimeDocx:
		return docx.NewDocxParser(ctx, &docx.Config{
			ToSections:      false,
			IncludeComments: false,
			IncludeHeaders:  true,
			IncludeFooters:  false,
			IncludeTables:   true,
		})
	case mimeType == "text/html":
		bodySelector := "body"
		return html.NewParser(ctx, &html.Config{Selector: &bodySelector})
	case strings.HasPrefix(mimeType, "text/"),
		mimeType == "application/json",
		mimeType == "application/javascript":
		return &textParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported mime type: %s", mimeType)
	}
}

// textParser 纯文本解析器
type textParser struct{}

func (p *textParser) Parse(_ context.Context, reader io.Reader, opts ...einoparser.Option) ([]*schema.Document, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read: %w", err)
	}

	text := string(content)
	if text == "" {
		return []*schema.Document{}, nil
	}

	return []*schema.Document{
		{
			Content:  text,
			MetaData: make(map[string]any),
		},
	}, nil
}
