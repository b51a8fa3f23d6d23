package model

// Колонки файла yedek_data.csv.
const (
	SpareRefID       = "Referans ID"
	SpareDescription = "Açıklama"
	SpareInRepair    = "Tamirde mi"
	SpareSentAt      = "Bakıma Gönderilme"
	SpareReturnedAt  = "Geri Dönme"
	SpareMachine     = "Söküldüğü Makine"
	SpareRemovedAt   = "Sökülme Tarihi"
	SpareUpdatedAt   = "Son Güncelleme"
)

// Значения колонки "Tamirde mi".
const (
	InRepairYes = "Evet"
	InRepairNo  = "Hayır"
)

// SpareHeader — порядок колонок на диске.
var SpareHeader = []string{
	FieldID,
	SpareRefID,
	SpareDescription,
	SpareInRepair,
	SpareSentAt,
	SpareReturnedAt,
	SpareMachine,
	SpareRemovedAt,
	SpareUpdatedAt,
}

// Spare — запасная (yedek) деталь, снятая со станка.
type Spare struct {
	ID                 string
	RefID              string
	Description        string
	InRepair           string
	SentToRepairAt     string
	ReturnedAt         string
	RemovedFromMachine string
	RemovedAt          string
	UpdatedAt          string
}

// ToFields раскладывает деталь по колонкам (без id).
func (s Spare) ToFields() map[string]string {
	return map[string]string{
		SpareRefID:       s.RefID,
		SpareDescription: s.Description,
		SpareInRepair:    s.InRepair,
		SpareSentAt:      s.SentToRepairAt,
		SpareReturnedAt:  s.ReturnedAt,
		SpareMachine:     s.RemovedFromMachine,
		SpareRemovedAt:   s.RemovedAt,
		SpareUpdatedAt:   s.UpdatedAt,
	}
}

// SpareFromRecord собирает Spare из строки хранилища.
func SpareFromRecord(r Record) Spare {
	return Spare{
		ID:                 r.ID,
		RefID:              r.Get(SpareRefID),
		Description:        r.Get(SpareDescription),
		InRepair:           r.Get(SpareInRepair),
		SentToRepairAt:     r.Get(SpareSentAt),
		ReturnedAt:         r.Get(SpareReturnedAt),
		RemovedFromMachine: r.Get(SpareMachine),
		RemovedAt:          r.Get(SpareRemovedAt),
		UpdatedAt:          r.Get(SpareUpdatedAt),
	}
}
