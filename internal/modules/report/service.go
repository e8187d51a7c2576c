package report

import (
	"fmt"
	"sort"
	"time"

	"equiptrack/internal/authz"
	"equiptrack/internal/domain"
	"equiptrack/internal/inventory"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	requestsSheet  = "Requests"
	equipmentSheet = "Equipment"
	dateFmt        = "2006-01-02"
)

type Filter struct {
	Status domain.RequestStatus
	From   *time.Time
	To     *time.Time
}

func (f Filter) match(r domain.EquipmentRequest) bool {
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if f.From != nil && r.RequestDate.Before(*f.From) {
		return false
	}
	if f.To != nil && r.RequestDate.After(*f.To) {
		return false
	}
	return true
}

var requestHeaders = []string{
	"ID", "Requested", "User", "Equipment", "Quantity", "Status", "Start", "End", "Returned", "Purpose",
}

var equipmentHeaders = []string{
	"ID", "Name", "Category", "Location", "Status", "Quantity", "Serial number", "Last maintenance",
}

type Service struct {
	repo *inventory.Repository
	log  *zap.Logger
}

func NewService(repo *inventory.Repository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, log: log}
}

// Ledger builds a workbook with the filtered request ledger and the current
// equipment stock. Admin only.
func (s *Service) Ledger(actor domain.Actor, f Filter) (*excelize.File, error) {
	if !actor.SignedIn() {
		return nil, domain.ErrUnauthorized
	}
	if !authz.CanManageRequests(actor) {
		return nil, domain.ErrForbidden
	}

	equipment := s.repo.Equipment()
	names := make(map[string]string, len(equipment))
	for _, eq := range equipment {
		names[eq.ID] = eq.Name
	}

	requests := make([]domain.EquipmentRequest, 0)
	for _, r := range s.repo.Requests() {
		if f.match(r) {
			requests = append(requests, r)
		}
	}
	sort.SliceStable(requests, func(i, j int) bool { return requests[i].RequestDate.After(requests[j].RequestDate) })

	file := excelize.NewFile()
	if err := file.SetSheetName("Sheet1", requestsSheet); err != nil {
		return nil, err
	}
	if _, err := file.NewSheet(equipmentSheet); err != nil {
		return nil, err
	}

	header, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	if err := writeSheet(file, requestsSheet, requestHeaders, header, len(requests), func(i int) []interface{} {
		return requestRow(requests[i], names)
	}); err != nil {
		return nil, err
	}
	if err := writeSheet(file, equipmentSheet, equipmentHeaders, header, len(equipment), func(i int) []interface{} {
		return equipmentRow(equipment[i])
	}); err != nil {
		return nil, err
	}

	_ = file.SetColWidth(requestsSheet, "B", "D", 22)
	_ = file.SetColWidth(requestsSheet, "J", "J", 40)
	_ = file.SetColWidth(equipmentSheet, "B", "D", 24)

	s.log.Info("request ledger exported", zap.String("actor_id", actor.ID), zap.Int("rows", len(requests)))
	return file, nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, style, rows int, row func(int) []interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return err
	}

	for i := 0; i < rows; i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row(i)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

func requestRow(r domain.EquipmentRequest, names map[string]string) []interface{} {
	equipment := names[r.EquipmentID]
	if equipment == "" {
		equipment = r.EquipmentID
	}
	var returned string
	if r.ReturnDate != nil {
		returned = r.ReturnDate.Format(dateFmt)
	}
	return []interface{}{
		r.ID, r.RequestDate.Format(dateFmt + " 15:04"), r.UserName, equipment, r.Quantity, string(r.Status),
		r.StartDate.Format(dateFmt), r.EndDate.Format(dateFmt), returned, r.Purpose,
	}
}

func equipmentRow(e domain.Equipment) []interface{} {
	var maintained string
	if e.LastMaintenance != nil {
		maintained = e.LastMaintenance.Format(dateFmt)
	}
	return []interface{}{
		e.ID, e.Name, e.Category, e.Location, string(e.Status), e.Quantity, e.SerialNumber, maintained,
	}
}
