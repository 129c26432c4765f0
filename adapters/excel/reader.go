package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"leanfunnel/domain/enquiry"
	"leanfunnel/internal"
	"leanfunnel/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DataReader reads enquiry rows from an .xlsx workbook or a .csv export
type DataReader struct {
	config   ExcelConfig
	fileType string // "xlsx" or "csv"
	logger   *internal.Logger
}

// NewDataReader creates a reader; the file type follows the extension
func NewDataReader(config ExcelConfig, logger *internal.Logger) *DataReader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	fileType := "xlsx"
	if strings.EqualFold(filepath.Ext(config.FilePath), ".csv") {
		fileType = "csv"
	}
	return &DataReader{config: config, fileType: fileType, logger: logger.With("DataReader")}
}

// Name identifies the source
func (r *DataReader) Name() string {
	return "file:" + filepath.Base(r.config.FilePath)
}

// FetchSheet reads the file on every call so edits show up on the next load
func (r *DataReader) FetchSheet(ctx context.Context) (*enquiry.Sheet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(r.config.FilePath); err != nil {
		return nil, errors.Wrapf(err, "%s file not found: %s", strings.ToUpper(r.fileType), r.config.FilePath)
	}

	var (
		name string
		rows [][]string
		err  error
	)
	start := time.Now()
	switch r.fileType {
	case "csv":
		name = strings.TrimSuffix(filepath.Base(r.config.FilePath), filepath.Ext(r.config.FilePath))
		rows, err = r.readCSV()
	default:
		name, rows, err = r.readWorkbook()
	}
	if err != nil {
		return nil, err
	}

	sheet, err := enquiry.SheetFromGrid(name, rows)
	if err != nil {
		return nil, err
	}

	r.logger.Info("%s read in %.2fms (%d columns, %d rows)",
		r.config.FilePath, float64(time.Since(start).Nanoseconds())/1e6, len(sheet.Headers), len(sheet.Records))
	return sheet, nil
}

// readWorkbook reads the configured worksheet, or the first one when it is missing
func (r *DataReader) readWorkbook() (string, [][]string, error) {
	f, err := excelize.OpenFile(r.config.FilePath)
	if err != nil {
		return "", nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := r.config.Worksheet
	if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 || sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return "", nil, errors.InvalidInput("workbook has no worksheets")
		}
		r.logger.Warn("worksheet %q not found in %s, using %q", r.config.Worksheet, r.config.FilePath, sheets[0])
		sheetName = sheets[0]
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read %s: %w", sheetName, err)
	}
	return sheetName, rows, nil
}

// readCSV reads every record; rows may have differing widths
func (r *DataReader) readCSV() ([][]string, error) {
	file, err := os.Open(r.config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}
