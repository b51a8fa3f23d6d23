package service

import (
	"SpindleTracker/internal/model"
	"SpindleTracker/internal/repo"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Заголовки секций выгрузки takip_export.csv.
const (
	exportSpindleTitle  = "--- Spindle Takip ---"
	exportSpindleHeader = "Referans ID,Saat,Takılı Olduğu Makine,Takıldığı Tarih,Son Güncelleme"
	exportSpareTitle    = "--- Yedek Takip ---"
	exportSpareHeader   = "Referans ID,Açıklama,Tamirde,Gönderildi,Dönen,Söküldüğü Makine,Sökülme Tarihi,Son Güncelleme"
)

// ExportFileName — имя файла для скачивания.
const ExportFileName = "takip_export.csv"

// ExportService собирает обе таблицы в один текстовый файл.
type ExportService struct {
	spindles repo.SpindleRepository
	spares   repo.SpareRepository
}

func NewExportService(spindles repo.SpindleRepository, spares repo.SpareRepository) *ExportService {
	return &ExportService{spindles: spindles, spares: spares}
}

// Export читает оба хранилища параллельно и формирует выгрузку.
func (s *ExportService) Export() ([]byte, error) {
	var (
		spindles []model.Spindle
		spares   []model.Spare
	)
	var g errgroup.Group
	g.Go(func() error {
		var err error
		spindles, err = s.spindles.List()
		return err
	})
	g.Go(func() error {
		var err error
		spares, err = s.spares.List()
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	var b strings.Builder
	b.WriteString(exportSpindleTitle + "\n" + exportSpindleHeader + "\n")
	lines := make([]string, 0, len(spindles))
	for _, r := range spindles {
		lines = append(lines, exportLine(r.RefID, r.WorkingHours, r.Machine, r.InstalledAt, r.UpdatedAt))
	}
	b.WriteString(strings.Join(lines, "\n"))

	b.WriteString("\n\n" + exportSpareTitle + "\n" + exportSpareHeader + "\n")
	lines = lines[:0]
	for _, r := range spares {
		lines = append(lines, exportLine(r.RefID, r.Description, r.InRepair, r.SentToRepairAt,
			r.ReturnedAt, r.RemovedFromMachine, r.RemovedAt, r.UpdatedAt))
	}
	b.WriteString(strings.Join(lines, "\n"))

	return []byte(b.String()), nil
}

func exportLine(values ...string) string {
	for i, v := range values {
		values[i] = repo.SanitizeValue(v)
	}
	return strings.Join(values, ",")
}
