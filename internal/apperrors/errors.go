// Package apperrors 定义业务错误分类
// 调用方用 errors.Is 区分错误类别，handler 层据此映射 HTTP 状态码
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput 调用方提供的数据缺失或非法，不产生任何持久化副作用
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound 资源在 owner 作用域内不存在
	ErrNotFound = errors.New("not found")
	// ErrCompletionFailed 模型调用未返回可用输出
	ErrCompletionFailed = errors.New("completion failed")
	// ErrExtractionFailed 文本抽取失败，文件服务内部消化为占位文本
	ErrExtractionFailed = errors.New("extraction failed")
)

// NotFoundf 构造带消息的 NotFound 错误
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

// Invalidf 构造带消息的 InvalidInput 错误
func Invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidInput)
}

// CompletionFailedf 构造带消息的 CompletionFailed 错误
func CompletionFailedf(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrCompletionFailed)
}
