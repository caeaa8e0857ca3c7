// Package markdown renders assistant replies to styled terminal lines.
package markdown

import (
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/wilbur182/campusdesk/internal/styles"
)

const (
	// MinWidthForMarkdown is the minimum width for markdown rendering.
	// Below this, falls back to plain text wrapping.
	MinWidthForMarkdown = 30

	// MaxCacheEntries is the maximum number of cached renders before eviction.
	MaxCacheEntries = 100
)

// Renderer wraps Glamour for markdown rendering with caching.
type Renderer struct {
	mu        sync.RWMutex
	renderer  *glamour.TermRenderer
	lastWidth int
	lastStyle string
	cache     map[uint64][]string
	log       *zap.Logger
}

// NewRenderer creates a new markdown renderer instance.
func NewRenderer(log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{
		cache: make(map[uint64][]string),
		log:   log,
	}
}

// RenderContent renders markdown content to styled lines using the active
// theme's glamour style.
func (r *Renderer) RenderContent(content string, width int) []string {
	if width < MinWidthForMarkdown {
		return WrapText(content, width)
	}

	if content == "" {
		return []string{}
	}

	style := styles.GetMarkdownTheme()
	key := r.cacheKey(content, width, style)

	r.mu.RLock()
	if cached, ok := r.cache[key]; ok {
		r.mu.RUnlock()
		return cached
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.cache[key]; ok {
		return cached
	}

	renderer, err := r.getOrCreateRenderer(width, style)
	if err != nil {
		r.log.Warn("glamour renderer error", zap.Error(err))
		return WrapText(content, width)
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		r.log.Warn("glamour render error", zap.Error(err))
		return WrapText(content, width)
	}

	rendered = strings.Trim(rendered, "\n\r\t ")
	lines := strings.Split(rendered, "\n")

	if len(r.cache) >= MaxCacheEntries {
		r.cache = make(map[uint64][]string)
	}
	r.cache[key] = lines

	return lines
}

// cacheKey generates a cache key from content, width and style using xxhash.
func (r *Renderer) cacheKey(content string, width int, style string) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(content)
	_, _ = h.Write([]byte{byte(width >> 8), byte(width)})
	_, _ = h.WriteString(style)
	return h.Sum64()
}

// getOrCreateRenderer lazily creates or recreates the renderer for the given
// width and style. Must be called with write lock held.
func (r *Renderer) getOrCreateRenderer(width int, style string) (*glamour.TermRenderer, error) {
	if r.renderer != nil && r.lastWidth == width && r.lastStyle == style {
		return r.renderer, nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	r.renderer = renderer
	r.lastWidth = width
	r.lastStyle = style
	r.cache = make(map[uint64][]string)

	return renderer, nil
}

// WrapText wraps text to fit within maxWidth display cells. Blank lines are
// kept and words wider than maxWidth are broken.
// Used as fallback when the sheet is too narrow for markdown rendering.
func WrapText(text string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{text}
	}

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		currentLine := ""
		for _, word := range words {
			if runewidth.StringWidth(word) > maxWidth {
				if currentLine != "" {
					lines = append(lines, currentLine)
				}
				pieces := strings.Split(ansi.Hardwrap(word, maxWidth, true), "\n")
				lines = append(lines, pieces[:len(pieces)-1]...)
				currentLine = pieces[len(pieces)-1]
				continue
			}
			switch {
			case currentLine == "":
				currentLine = word
			case runewidth.StringWidth(currentLine)+1+runewidth.StringWidth(word) <= maxWidth:
				currentLine += " " + word
			default:
				lines = append(lines, currentLine)
				currentLine = word
			}
		}
		lines = append(lines, currentLine)
	}

	return lines
}
