package repo

import (
	"SpindleTracker/internal/model"
	"path/filepath"
)

// Имена файлов хранилищ в каталоге данных.
const (
	SpindleFile = "spindle_data.csv"
	SpareFile   = "yedek_data.csv"
)

var (
	SpindleSchema = Schema{Kind: "spindle", Header: model.SpindleHeader}
	SpareSchema   = Schema{Kind: "yedek", Header: model.SpareHeader}
)

// Repository — типизированный доступ к записям одного вида для слоя сервиса.
type Repository[T any] interface {
	// List возвращает все записи в порядке добавления.
	List() ([]T, error)

	// Search фильтрует записи по подстроке Referans ID без учёта регистра.
	Search(refQuery string) ([]T, error)

	// GetByID возвращает запись; found=false, если её нет.
	GetByID(id string) (item T, found bool, err error)

	// Create сохраняет новую запись и возвращает её id.
	Create(item T) (string, error)

	// Update заменяет поля записи; false, если записи нет.
	Update(id string, item T) (bool, error)

	// Delete удаляет запись; false, если записи нет.
	Delete(id string) (bool, error)
}

type SpindleRepository = Repository[model.Spindle]

type SpareRepository = Repository[model.Spare]

type recordRepo[T any] struct {
	store      *RecordStore
	refField   string
	toFields   func(T) map[string]string
	fromRecord func(model.Record) T
}

// NewSpindleRepository создаёт репозиторий шпинделей поверх store.
func NewSpindleRepository(store *RecordStore) SpindleRepository {
	return &recordRepo[model.Spindle]{
		store:      store,
		refField:   model.SpindleRefID,
		toFields:   model.Spindle.ToFields,
		fromRecord: model.SpindleFromRecord,
	}
}

// NewSpareRepository создаёт репозиторий запчастей поверх store.
func NewSpareRepository(store *RecordStore) SpareRepository {
	return &recordRepo[model.Spare]{
		store:      store,
		refField:   model.SpareRefID,
		toFields:   model.Spare.ToFields,
		fromRecord: model.SpareFromRecord,
	}
}

// OpenStores открывает оба файла хранилищ в каталоге dir.
func OpenStores(dir string, opts ...Option) (spindles, spares *RecordStore, err error) {
	spindles, err = NewRecordStore(filepath.Join(dir, SpindleFile), SpindleSchema, opts...)
	if err != nil {
		return nil, nil, err
	}
	spares, err = NewRecordStore(filepath.Join(dir, SpareFile), SpareSchema, opts...)
	if err != nil {
		return nil, nil, err
	}
	return spindles, spares, nil
}

func (r *recordRepo[T]) List() ([]T, error) {
	records, err := r.store.List()
	if err != nil {
		return nil, err
	}
	return r.convert(records), nil
}

func (r *recordRepo[T]) Search(refQuery string) ([]T, error) {
	records, err := r.store.List()
	if err != nil {
		return nil, err
	}
	return r.convert(FilterByField(records, r.refField, refQuery)), nil
}

func (r *recordRepo[T]) GetByID(id string) (T, bool, error) {
	var zero T
	records, err := r.store.List()
	if err != nil {
		return zero, false, err
	}
	for _, rec := range records {
		if rec.ID == id {
			return r.fromRecord(rec), true, nil
		}
	}
	return zero, false, nil
}

func (r *recordRepo[T]) Create(item T) (string, error) {
	return r.store.Add(r.toFields(item))
}

func (r *recordRepo[T]) Update(id string, item T) (bool, error) {
	return r.store.Update(id, r.toFields(item))
}

func (r *recordRepo[T]) Delete(id string) (bool, error) {
	return r.store.Delete(id)
}

func (r *recordRepo[T]) convert(records []model.Record) []T {
	out := make([]T, 0, len(records))
	for _, rec := range records {
		out = append(out, r.fromRecord(rec))
	}
	return out
}
