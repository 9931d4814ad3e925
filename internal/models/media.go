package models

import "regexp"

// Media — ссылка на внешне хранимое изображение: публичный URL и непрозрачный id для удаления.
type Media struct {
	URL string
	ID  string
}

// Upload — полезная нагрузка загрузки.
type Upload struct {
	Data        []byte
	ContentType string
}

var mediaIDRe = regexp.MustCompile(`/v\d+/(.+)\.[a-zA-Z0-9]+$`)

// MediaIDFromURL извлекает id медиа: сегмент пути между маркером версии /v<N>/ и расширением.
// Возвращает "" если URL не похож на ссылку хранилища.
func MediaIDFromURL(url string) string {
	m := mediaIDRe.FindStringSubmatch(url)
	if len(m) != 2 {
		return ""
	}

	return m[1]
}
