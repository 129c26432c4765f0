package excel

// ExcelConfig holds configuration for a local workbook data source
type ExcelConfig struct {
	FilePath  string `json:"file_path"`
	Worksheet string `json:"worksheet"` // xlsx only; falls back to the first sheet when absent
}

// DefaultExcelConfig returns the worksheet name used by the enquiry tracker
func DefaultExcelConfig() ExcelConfig {
	return ExcelConfig{
		Worksheet: "System_Logic",
	}
}
