package model

// FieldID — имя служебной колонки идентификатора, всегда первая в заголовке.
const FieldID = "id"

// Record — строка хранилища: синтетический id и значения остальных колонок.
type Record struct {
	ID     string
	Fields map[string]string
}

// Get возвращает значение колонки; для отсутствующих колонок пустую строку.
func (r Record) Get(name string) string {
	if name == FieldID {
		return r.ID
	}
	return r.Fields[name]
}

// Clone делает независимую копию записи.
func (r Record) Clone() Record {
	fields := make(map[string]string, len(r.Fields))
	for k, v := range r.Fields {
		fields[k] = v
	}
	return Record{ID: r.ID, Fields: fields}
}
