package models

import (
	"bytes"
	"encoding/json"
	"errors"
)

// ErrInvalidBody — тело не является ни строкой, ни объектом с blocks.
var ErrInvalidBody = errors.New("invalid body")

// Block — блок редактора (формат Editor.js): тип и произвольные данные.
type Block struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

// Body — тело материала. Либо богатая структура из блоков, либо простой текст.
// В JSON богатое тело — объект {"blocks":[...]}, простое — строка.
type Body struct {
	Text   string
	Blocks []Block
}

// IsRich — тело задано блоками (массив присутствует, даже пустой).
func (b Body) IsRich() bool {
	return b.Blocks != nil
}

// IsEmpty — нет ни блоков, ни текста.
func (b Body) IsEmpty() bool {
	return len(b.Blocks) == 0 && b.Text == ""
}

// ImageURLs возвращает URL всех встроенных изображений (блоки image с data.file.url).
func (b Body) ImageURLs() []string {
	var urls []string
	for _, bl := range b.Blocks {
		if bl.Type != "image" {
			continue
		}

		file, ok := bl.Data["file"].(map[string]any)
		if !ok {
			continue
		}

		if u, ok := file["url"].(string); ok && u != "" {
			urls = append(urls, u)
		}
	}

	return urls
}

type richBody struct {
	Blocks []Block `json:"blocks"`
}

func (b Body) MarshalJSON() ([]byte, error) {
	if b.IsRich() {
		return json.Marshal(richBody{Blocks: b.Blocks})
	}

	return json.Marshal(b.Text)
}

func (b *Body) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*b = Body{}

	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		return nil
	case data[0] == '"':
		return json.Unmarshal(data, &b.Text)
	case data[0] == '{':
		var rb struct {
			Blocks *[]Block `json:"blocks"`
		}
		if err := json.Unmarshal(data, &rb); err != nil {
			return err
		}

		if rb.Blocks == nil {
			return ErrInvalidBody
		}

		b.Blocks = *rb.Blocks
		if b.Blocks == nil {
			b.Blocks = []Block{}
		}

		return nil
	default:
		return ErrInvalidBody
	}
}
