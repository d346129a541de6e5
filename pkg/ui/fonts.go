package ui

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// FontCache 按字号缓存字体
// 字体数据使用内置的 Go 字体，不依赖外部文件
type FontCache struct {
	regular *text.GoTextFaceSource
	bold    *text.GoTextFaceSource

	faces map[string]*text.GoTextFace
}

// NewFontCache 解析内置字体
func NewFontCache() (*FontCache, error) {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to create regular font source: %w", err)
	}
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to create bold font source: %w", err)
	}

	return &FontCache{
		regular: regular,
		bold:    bold,
		faces:   make(map[string]*text.GoTextFace),
	}, nil
}

// Regular 返回常规字重的字体
func (fc *FontCache) Regular(size float64) *text.GoTextFace {
	return fc.face("regular", fc.regular, size)
}

// Bold 返回粗体字体
func (fc *FontCache) Bold(size float64) *text.GoTextFace {
	return fc.face("bold", fc.bold, size)
}

func (fc *FontCache) face(kind string, source *text.GoTextFaceSource, size float64) *text.GoTextFace {
	cacheKey := fmt.Sprintf("%s:%.1f", kind, size)
	if cached, exists := fc.faces[cacheKey]; exists {
		return cached
	}

	face := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	fc.faces[cacheKey] = face
	return face
}
