package model

// Колонки файла spindle_data.csv.
const (
	SpindleRefID       = "Referans ID"
	SpindleHours       = "Çalışma Saati"
	SpindleMachine     = "Takılı Olduğu Makine"
	SpindleInstalledAt = "Makinaya Takıldığı Tarih"
	SpindleUpdatedAt   = "Son Güncelleme"
)

// SpindleHeader — порядок колонок на диске.
var SpindleHeader = []string{
	FieldID,
	SpindleRefID,
	SpindleHours,
	SpindleMachine,
	SpindleInstalledAt,
	SpindleUpdatedAt,
}

// Spindle — шпиндель, установленный на станок.
type Spindle struct {
	ID           string
	RefID        string
	WorkingHours string
	Machine      string
	InstalledAt  string
	UpdatedAt    string
}

// ToFields раскладывает запись по колонкам (без id).
func (s Spindle) ToFields() map[string]string {
	return map[string]string{
		SpindleRefID:       s.RefID,
		SpindleHours:       s.WorkingHours,
		SpindleMachine:     s.Machine,
		SpindleInstalledAt: s.InstalledAt,
		SpindleUpdatedAt:   s.UpdatedAt,
	}
}

// SpindleFromRecord собирает Spindle из строки хранилища.
func SpindleFromRecord(r Record) Spindle {
	return Spindle{
		ID:           r.ID,
		RefID:        r.Get(SpindleRefID),
		WorkingHours: r.Get(SpindleHours),
		Machine:      r.Get(SpindleMachine),
		InstalledAt:  r.Get(SpindleInstalledAt),
		UpdatedAt:    r.Get(SpindleUpdatedAt),
	}
}
