package extract

import (
	"context"
	"strings"
	"testing"
)

func TestExtract_PlainText(t *testing.T) {
	e := New()

	text, err := e.Extract(context.Background(), strings.NewReader("hello world"), "notes.txt", "text/plain")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if text != "hello world" {
		t.Errorf("Extract() = %q, want the raw text", text)
	}
}

func TestExtract_Markdown(t *testing.T) {
	e := New()

	text, err := e.Extract(context.Background(), strings.NewReader("# Title\n\nBody."), "readme.md", "text/markdown")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !strings.Contains(text, "Body.") {
		t.Errorf("Extract() = %q, want markdown passed through as text", text)
	}
}

func TestExtract_JSON(t *testing.T) {
	e := New()

	text, err := e.Extract(context.Background(), strings.NewReader(`{"key":"value"}`), "data.json", "application/json")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if text != `{"key":"value"}` {
		t.Errorf("Extract() = %q, want raw JSON text", text)
	}
}

func TestExtract_EmptyText(t *testing.T) {
	e := New()

	text, err := e.Extract(context.Background(), strings.NewReader(""), "empty.txt", "text/plain")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if text != "" {
		t.Errorf("Extract() = %q, want empty string for empty input", text)
	}
}

func TestExtract_UnsupportedType(t *testing.T) {
	e := New()

	// 不支持的类型不报错，返回占位文本让上传继续
	text, err := e.Extract(context.Background(), strings.NewReader("binary"), "archive.zip", "application/zip")
	if err != nil {
		t.Fatalf("Extract() error = %v, want nil for unsupported type", err)
	}
	if !strings.Contains(text, "Unsupported file type") || !strings.Contains(text, "application/zip") {
		t.Errorf("Extract() = %q, want placeholder naming the type", text)
	}
}

func TestExtract_HTML(t *testing.T) {
	e := New()

	page := `<html><head><title>t</title></head><body><p>visible text</p></body></html>`
	text, err := e.Extract(context.Background(), strings.NewReader(page), "page.html", "text/html")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !strings.Contains(text, "visible text") {
		t.Errorf("Extract() = %q, want body text", text)
	}
}
