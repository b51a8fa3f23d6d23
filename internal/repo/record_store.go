package repo

import (
	"SpindleTracker/internal/model"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/kjk/common/atomicfile"
)

// ErrIO — файл хранилища не удалось прочитать или записать.
var ErrIO = errors.New("record store i/o")

// Schema описывает вид записей: имя и фиксированный заголовок файла.
// Первая колонка заголовка всегда model.FieldID.
type Schema struct {
	Kind   string
	Header []string
}

// Option настраивает RecordStore.
type Option func(*RecordStore)

// WithWriteLock сериализует цикл чтение-изменение-запись всех мутаций хранилища.
// Без него два одновременных изменения могут потерять одно из них.
func WithWriteLock() Option {
	return func(s *RecordStore) { s.writeLock = true }
}

// RecordStore — хранилище однородных записей в одном текстовом файле
// с разделителем-запятой. Каждая мутация перечитывает и целиком перезаписывает файл.
type RecordStore struct {
	path      string
	schema    Schema
	writeLock bool
	mu        sync.Mutex
}

// NewRecordStore открывает хранилище, создавая файл с одним заголовком, если его нет.
func NewRecordStore(path string, schema Schema, opts ...Option) (*RecordStore, error) {
	if len(schema.Header) == 0 || schema.Header[0] != model.FieldID {
		return nil, fmt.Errorf("schema %q: first column must be %q", schema.Kind, model.FieldID)
	}
	s := &RecordStore{path: path, schema: schema}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.ensureFile(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path возвращает путь к файлу хранилища.
func (s *RecordStore) Path() string { return s.path }

// Schema возвращает схему хранилища.
func (s *RecordStore) Schema() Schema { return s.schema }

func (s *RecordStore) ensureFile() error {
	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return ioError("stat", s.path, err)
	}
	if err := os.WriteFile(s.path, encode(s.schema.Header, nil), 0o644); err != nil {
		return ioError("create", s.path, err)
	}
	return nil
}

// List возвращает все записи в порядке файла.
func (s *RecordStore) List() ([]model.Record, error) {
	return s.readAll()
}

// Add добавляет запись и возвращает присвоенный id (max+1, либо 1).
// Переданный в fields id игнорируется.
func (s *RecordStore) Add(fields map[string]string) (string, error) {
	defer s.begin()()

	rows, err := s.readAll()
	if err != nil {
		return "", err
	}
	rows, id := appendRecord(rows, fields)
	if err := s.writeAll(rows); err != nil {
		return "", err
	}
	return id, nil
}

// Update накладывает partial поверх существующей записи.
// Возвращает false и не трогает файл, если записи с таким id нет.
func (s *RecordStore) Update(id string, partial map[string]string) (bool, error) {
	defer s.begin()()

	rows, err := s.readAll()
	if err != nil {
		return false, err
	}
	rows, ok := mergeRecord(rows, id, partial)
	if !ok {
		return false, nil
	}
	if err := s.writeAll(rows); err != nil {
		return false, err
	}
	return true, nil
}

// Delete удаляет запись. Возвращает false, если ничего не совпало.
func (s *RecordStore) Delete(id string) (bool, error) {
	defer s.begin()()

	rows, err := s.readAll()
	if err != nil {
		return false, err
	}
	rows, ok := removeRecord(rows, id)
	if !ok {
		return false, nil
	}
	if err := s.writeAll(rows); err != nil {
		return false, err
	}
	return true, nil
}

func (s *RecordStore) begin() func() {
	if !s.writeLock {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *RecordStore) readAll() ([]model.Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, ioError("read", s.path, err)
	}
	return decode(data), nil
}

func (s *RecordStore) writeAll(rows []model.Record) error {
	if err := writeFileReplace(s.path, encode(s.schema.Header, rows)); err != nil {
		return ioError("write", s.path, err)
	}
	return nil
}

func appendRecord(rows []model.Record, fields map[string]string) ([]model.Record, string) {
	id := strconv.Itoa(nextID(rows))
	rec := model.Record{ID: id, Fields: make(map[string]string, len(fields))}
	for k, v := range fields {
		if k == model.FieldID {
			continue
		}
		rec.Fields[k] = v
	}
	return append(rows, rec), id
}

func mergeRecord(rows []model.Record, id string, partial map[string]string) ([]model.Record, bool) {
	for i := range rows {
		if rows[i].ID != id {
			continue
		}
		merged := rows[i].Clone()
		for k, v := range partial {
			if k == model.FieldID {
				continue
			}
			merged.Fields[k] = v
		}
		rows[i] = merged
		return rows, true
	}
	return rows, false
}

func removeRecord(rows []model.Record, id string) ([]model.Record, bool) {
	kept := make([]model.Record, 0, len(rows))
	for _, r := range rows {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	return kept, len(kept) != len(rows)
}

// nextID пропускает id, которые не являются числом.
func nextID(rows []model.Record) int {
	maxID := 0
	for _, r := range rows {
		n, err := strconv.Atoi(r.ID)
		if err != nil {
			continue
		}
		if n > maxID {
			maxID = n
		}
	}
	return maxID + 1
}

// atomicWriter — запись во временный файл, который Close переименовывает поверх цели.
type atomicWriter interface {
	io.WriteCloser
	RemoveIfNotClosed()
}

// openAtomic подменяется в тестах, чтобы сымитировать сбой записи.
var openAtomic = func(path string) (atomicWriter, error) {
	f, err := atomicfile.New(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// writeFileReplace заменяет содержимое path целиком: читатель видит
// либо старый файл, либо новый. При ошибке временный файл удаляется.
func writeFileReplace(path string, data []byte) error {
	f, err := openAtomic(path)
	if err != nil {
		return err
	}
	defer f.RemoveIfNotClosed()

	if _, err := f.Write(data); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// временный файл создаётся с правами 0600
	return os.Chmod(path, 0o644)
}

func ioError(op, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrIO, op, path, err)
}

// FilterByField оставляет записи, у которых поле field содержит query
// без учёта регистра. Пустой запрос пропускает всё.
func FilterByField(records []model.Record, field, query string) []model.Record {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return records
	}
	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Get(field)), q) {
			out = append(out, r)
		}
	}
	return out
}
