package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"equipment-dashboard/internal/authz"
	"equipment-dashboard/internal/dto"
	"equipment-dashboard/internal/entities"
	apperrors "equipment-dashboard/pkg/errors"
)

// StructValidator is satisfied by validation.CustomValidator.
type StructValidator interface {
	Validate(i interface{}) error
}

type EquipmentImporter struct {
	equipment EquipmentServiceInterface
	validator StructValidator
	logger    *zap.Logger
}

func NewEquipmentImporter(equipment EquipmentServiceInterface, validator StructValidator, logger *zap.Logger) *EquipmentImporter {
	return &EquipmentImporter{equipment: equipment, validator: validator, logger: logger}
}

type importField int

const (
	fieldName importField = iota
	fieldType
	fieldStatus
	fieldLocation
	fieldSerial
	fieldManufacturer
	fieldPurchaseDate
	fieldWarranty
	fieldCost
)

// headerAliases maps a normalized header cell onto a field. Matching is by prefix so
// "Serial Number", "Serial No." and "serial" all land on the serial column.
var headerAliases = []struct {
	prefix string
	field  importField
}{
	{"serial", fieldSerial},
	{"name", fieldName},
	{"equipment", fieldName},
	{"type", fieldType},
	{"category", fieldType},
	{"status", fieldStatus},
	{"location", fieldLocation},
	{"manufacturer", fieldManufacturer},
	{"brand", fieldManufacturer},
	{"purchase", fieldPurchaseDate},
	{"warranty", fieldWarranty},
	{"cost", fieldCost},
	{"price", fieldCost},
}

func matchHeader(cell string) (importField, bool) {
	c := strings.ToLower(strings.TrimSpace(cell))
	for _, a := range headerAliases {
		if strings.HasPrefix(c, a.prefix) {
			return a.field, true
		}
	}
	return 0, false
}

// detectHeader finds the first row that names both a name column and a serial column.
func detectHeader(rows [][]string) (int, map[importField]int, bool) {
	for i, row := range rows {
		cols := make(map[importField]int)
		for j, cell := range row {
			if f, ok := matchHeader(cell); ok {
				if _, seen := cols[f]; !seen {
					cols[f] = j
				}
			}
		}
		_, hasName := cols[fieldName]
		_, hasSerial := cols[fieldSerial]
		if hasName && hasSerial {
			return i, cols, true
		}
	}
	return -1, nil, false
}

var importDateLayouts = []string{"2006-01-02", "01/02/2006", "1/2/2006", "01-02-06", "1-2-06", "Jan 02, 2006", "2006/01/02"}

// normalizeDate accepts the layouts spreadsheets commonly produce, including raw
// Excel serial numbers, and returns YYYY-MM-DD.
func normalizeDate(raw string) (*string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range importDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			s := t.Format(dto.DateLayout)
			return &s, nil
		}
	}
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			s := t.Format(dto.DateLayout)
			return &s, nil
		}
	}
	return nil, apperrors.NewInvalidInputError("unrecognized date %q", raw)
}

func parseCost(raw string) (null.Float64, error) {
	raw = strings.NewReplacer("$", "", ",", "", " ", "").Replace(strings.TrimSpace(raw))
	if raw == "" {
		return null.Float64{}, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return null.Float64{}, apperrors.NewInvalidInputError("unrecognized cost %q", raw)
	}
	return null.Float64From(v), nil
}

func cell(row []string, cols map[importField]int, f importField) string {
	i, ok := cols[f]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func rowToCreateDTO(row []string, cols map[importField]int) (dto.CreateEquipmentDTO, error) {
	payload := dto.CreateEquipmentDTO{
		Name:         cell(row, cols, fieldName),
		Type:         cell(row, cols, fieldType),
		Status:       cell(row, cols, fieldStatus),
		Location:     cell(row, cols, fieldLocation),
		SerialNumber: cell(row, cols, fieldSerial),
	}
	if payload.Status == "" {
		payload.Status = string(entities.EquipmentAvailable)
	}
	if m := cell(row, cols, fieldManufacturer); m != "" {
		payload.Manufacturer = null.StringFrom(m)
	}

	var err error
	if payload.PurchaseDate, err = normalizeDate(cell(row, cols, fieldPurchaseDate)); err != nil {
		return payload, err
	}
	if payload.WarrantyExpiry, err = normalizeDate(cell(row, cols, fieldWarranty)); err != nil {
		return payload, err
	}
	if payload.Cost, err = parseCost(cell(row, cols, fieldCost)); err != nil {
		return payload, err
	}
	return payload, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Import reads the first sheet that has a recognizable header. Every data row is created
// in its own transaction: duplicates by serial are skipped, invalid rows are reported.
func (im *EquipmentImporter) Import(ctx context.Context, session authz.Session, r io.Reader) (*dto.EquipmentImportResultDTO, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("file is not a readable xlsx workbook")
	}
	defer f.Close()

	var (
		rows      [][]string
		headerRow = -1
		cols      map[importField]int
	)
	for _, sheet := range f.GetSheetList() {
		sheetRows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		if idx, found, ok := detectHeader(sheetRows); ok {
			rows, headerRow, cols = sheetRows, idx, found
			break
		}
	}
	if headerRow == -1 {
		return nil, apperrors.NewInvalidInputError("no header row with name and serial number columns found")
	}

	result := &dto.EquipmentImportResultDTO{Errors: []string{}}
	for i := headerRow + 1; i < len(rows); i++ {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		row := rows[i]
		if blank(row) {
			continue
		}
		line := i + 1

		payload, err := rowToCreateDTO(row, cols)
		if err == nil {
			err = im.validator.Validate(payload)
		}
		if err == nil {
			_, err = im.equipment.CreateEquipment(ctx, session, payload)
		}

		var conflict *apperrors.ConflictError
		switch {
		case err == nil:
			result.Created++
		case errors.As(err, &conflict):
			result.Skipped++
		default:
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %s", line, importErrorMessage(err)))
			if rowRejected(err) {
				im.logger.Debug("import row rejected", zap.Int("row", line), zap.Error(err))
			} else {
				im.logger.Warn("import row failed", zap.Int("row", line), zap.Error(err))
			}
		}
	}

	im.logger.Info("equipment import finished",
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

// importErrorMessage keeps storage details out of the per-row report.
func importErrorMessage(err error) string {
	var invalid *apperrors.InvalidInputError
	if errors.As(err, &invalid) {
		return invalid.Message
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		parts := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			parts = append(parts, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
		}
		return strings.Join(parts, "; ")
	}
	return "could not be saved"
}

// rowRejected reports whether the row itself was bad, as opposed to a storage failure.
func rowRejected(err error) bool {
	var fieldErrs validator.ValidationErrors
	return apperrors.IsValidation(err) || errors.As(err, &fieldErrs)
}
