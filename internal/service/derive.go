package service

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pribylovaa/go-blog-service/internal/models"
)

const (
	wordsPerMinute = 200
	excerptRunes   = 200
)

var (
	slugNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	htmlTag      = regexp.MustCompile(`<[^>]*>`)
)

// Slugify строит slug вида "<база>-<unix millis>". Пустая база заменяется видом материала.
func Slugify(title string, kind models.Kind, at time.Time) string {
	base := slugNonAlnum.ReplaceAllString(strings.ToLower(title), "-")
	base = strings.Trim(base, "-")
	if base == "" {
		base = string(kind)
	}

	return fmt.Sprintf("%s-%d", base, at.UnixMilli())
}

// ReadingTime — оценка времени чтения в минутах, минимум 1.
func ReadingTime(b models.Body) int32 {
	words := 0
	for _, t := range bodyTexts(b) {
		words += len(strings.Fields(t))
	}

	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}

	return int32(minutes)
}

// Excerpt — первый извлекаемый фрагмент текста, не длиннее 200 символов.
func Excerpt(b models.Body) string {
	var text string

	if b.IsRich() {
		text = firstBlockText(b.Blocks, "paragraph")
		if text == "" {
			if items := listItems(b.Blocks); len(items) > 0 {
				text = items[0]
			}
		}
	} else {
		text = b.Text
	}

	text = strings.Join(strings.Fields(stripHTML(text)), " ")

	return truncateRunes(text, excerptRunes)
}

func stripHTML(s string) string {
	return html.UnescapeString(htmlTag.ReplaceAllString(s, " "))
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}

	r := []rune(s)

	return strings.TrimSpace(string(r[:n-3])) + "..."
}

// bodyTexts собирает текстовые фрагменты тела без HTML.
func bodyTexts(b models.Body) []string {
	if !b.IsRich() {
		return []string{stripHTML(b.Text)}
	}

	var out []string
	for _, bl := range b.Blocks {
		switch bl.Type {
		case "paragraph", "header", "quote":
			if t, ok := bl.Data["text"].(string); ok {
				out = append(out, stripHTML(t))
			}
		case "list":
			for _, it := range blockListItems(bl) {
				out = append(out, stripHTML(it))
			}
		}
	}

	return out
}

func firstBlockText(blocks []models.Block, typ string) string {
	for _, bl := range blocks {
		if bl.Type != typ {
			continue
		}

		if t, ok := bl.Data["text"].(string); ok && strings.TrimSpace(stripHTML(t)) != "" {
			return t
		}
	}

	return ""
}

func listItems(blocks []models.Block) []string {
	for _, bl := range blocks {
		if bl.Type == "list" {
			if items := blockListItems(bl); len(items) > 0 {
				return items
			}
		}
	}

	return nil
}

// blockListItems понимает оба формата элементов списка: строку и {"content": "..."}.
func blockListItems(bl models.Block) []string {
	raw, ok := bl.Data["items"].([]any)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(raw))
	for _, it := range raw {
		switch v := it.(type) {
		case string:
			out = append(out, v)
		case map[string]any:
			if c, ok := v["content"].(string); ok {
				out = append(out, c)
			}
		}
	}

	return out
}
