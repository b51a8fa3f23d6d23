package service

import "time"

// DateLayout — короткая дата в формате tr-TR (gg.aa.yyyy).
const DateLayout = "02.01.2006"

// Clock возвращает текущее время; подменяется в тестах.
type Clock func() time.Time

// FormatDate форматирует дату для колонок "Son Güncelleme" и дат по умолчанию.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
