package repo

import (
	"SpindleTracker/internal/model"
	"regexp"
	"strings"
)

const delimiter = ","

var (
	lineBreak = regexp.MustCompile(`\r?\n`)

	// запятая внутри значения сломала бы колонки, перевод строки — строки
	valueSanitizer = strings.NewReplacer(delimiter, " ", "\r\n", " ", "\n", " ", "\r", " ")
)

// encode сериализует заголовок и записи: по строке на запись, с завершающим \n.
func encode(header []string, rows []model.Record) []byte {
	var b strings.Builder
	b.WriteString(strings.Join(header, delimiter))
	b.WriteByte('\n')
	for _, r := range rows {
		for i, h := range header {
			if i > 0 {
				b.WriteString(delimiter)
			}
			b.WriteString(SanitizeValue(r.Get(h)))
		}
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// decode разбирает содержимое файла. Колонки сопоставляются по заголовку
// из первой строки файла; недостающие значения становятся пустыми строками.
// Пустой файл и файл из одного заголовка дают ноль записей.
func decode(data []byte) []model.Record {
	text := strings.Trim(string(data), "\r\n")
	if strings.TrimSpace(text) == "" {
		return []model.Record{}
	}
	lines := lineBreak.Split(text, -1)
	header := strings.Split(lines[0], delimiter)

	rows := make([]model.Record, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cols := strings.Split(line, delimiter)
		rec := model.Record{Fields: make(map[string]string, len(header))}
		for i, name := range header {
			v := ""
			if i < len(cols) {
				v = cols[i]
			}
			if name == model.FieldID {
				rec.ID = v
				continue
			}
			rec.Fields[name] = v
		}
		rows = append(rows, rec)
	}
	return rows
}

// SanitizeValue заменяет разделитель и переводы строк пробелом.
func SanitizeValue(v string) string {
	return valueSanitizer.Replace(v)
}
