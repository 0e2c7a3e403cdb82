package utils

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core"
	appLogger "github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core/logger"
)

// DataInput abstrai a fonte dos dados de exportação. As telas do
// portal exportam exatamente a visão filtrada e ordenada da tabela,
// convertida para linhas de texto.
type DataInput interface {
	Headers() ([]string, error) // Cabeçalhos das colunas
	Rows() ([][]string, error)  // Linhas de dados, sem o cabeçalho
	RowCount() (int, error)     // Número de linhas de dados
	GetSheetName() string       // Nome da planilha (XLSX)
}

// SliceDataInput é uma implementação de DataInput para um `[][]string`.
// A primeira linha é considerada o cabeçalho.
type SliceDataInput struct {
	data      [][]string
	sheetName string
}

// NewSliceDataInput cria um DataInput a partir de um slice de slices de string.
func NewSliceDataInput(data [][]string, sheetName string) (*SliceDataInput, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: nenhum dado fornecido para SliceDataInput", core.ErrInvalidInput)
	}
	if sheetName == "" {
		sheetName = "Dados"
	}
	return &SliceDataInput{data: data, sheetName: sheetName}, nil
}

func (s *SliceDataInput) Headers() ([]string, error) {
	if len(s.data) == 0 {
		return []string{}, fmt.Errorf("%w: dados vazios, sem cabeçalhos", core.ErrInvalidInput)
	}
	return s.data[0], nil
}

func (s *SliceDataInput) Rows() ([][]string, error) {
	if len(s.data) <= 1 {
		return [][]string{}, nil
	}
	return s.data[1:], nil
}

func (s *SliceDataInput) RowCount() (int, error) {
	if len(s.data) <= 1 {
		return 0, nil
	}
	return len(s.data) - 1, nil
}

func (s *SliceDataInput) GetSheetName() string { return s.sheetName }

// --- Mascaramento de dados sensíveis ---
var (
	cpfRegex   = regexp.MustCompile(`\b(\d{3}[.-]?\d{3}[.-]?\d{3}-?\d{2})\b`)
	cnpjRegex  = regexp.MustCompile(`\b(\d{2}[.-]?\d{3}[.-]?\d{3}/?\d{4}-?\d{2})\b`)
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)
)

func sanitizeString(s string) string {
	s = cpfRegex.ReplaceAllString(s, "***.***.***-**")
	s = cnpjRegex.ReplaceAllString(s, "**.***.***/****-**")
	s = emailRegex.ReplaceAllString(s, "****@****.***")
	return s
}

func sanitizeData(headers []string, rows [][]string, sanitizeColumns []string) [][]string {
	if len(sanitizeColumns) == 0 || len(rows) == 0 {
		return rows
	}

	colIndicesToSanitize := make(map[int]bool)
	for _, colName := range sanitizeColumns {
		found := false
		for i, h := range headers {
			if strings.EqualFold(h, colName) {
				colIndicesToSanitize[i] = true
				found = true
				break
			}
		}
		if !found {
			appLogger.Warnf("Coluna de mascaramento '%s' não encontrada nos cabeçalhos. Ignorando.", colName)
		}
	}
	if len(colIndicesToSanitize) == 0 {
		return rows
	}

	sanitizedRows := make([][]string, len(rows))
	for i, row := range rows {
		newRow := make([]string, len(row))
		copy(newRow, row)
		for colIdx := range row {
			if colIndicesToSanitize[colIdx] {
				newRow[colIdx] = sanitizeString(row[colIdx])
			}
		}
		sanitizedRows[i] = newRow
	}
	return sanitizedRows
}

// ExportOptions contém opções para a exportação.
type ExportOptions struct {
	SheetName       string
	CreateBackup    bool
	Sanitize        bool
	SanitizeColumns []string // Nomes das colunas a serem mascaradas
}

// ExportToCSV exporta dados para um arquivo CSV com delimitador ';'.
func ExportToCSV(input DataInput, outputPath string, cfg *core.Config, opts *ExportOptions) (string, error) {
	finalPath := resolveOutputPath(outputPath, cfg.ExportDir, ".csv")

	if opts == nil {
		opts = &ExportOptions{}
	}
	if opts.CreateBackup && fileExists(finalPath) {
		if err := createBackup(finalPath); err != nil {
			return "", core.WrapErrorf(err, "falha ao criar backup para CSV")
		}
	}

	file, err := os.Create(finalPath)
	if err != nil {
		return "", fmt.Errorf("%w: falha ao criar arquivo CSV '%s': %v", core.ErrExport, finalPath, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	writer.Comma = ';'

	headers, err := input.Headers()
	if err != nil {
		return "", err
	}
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("%w: falha ao escrever cabeçalhos CSV: %v", core.ErrExport, err)
	}

	rows, err := input.Rows()
	if err != nil {
		return "", err
	}
	if opts.Sanitize {
		rows = sanitizeData(headers, rows, opts.SanitizeColumns)
	}

	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("%w: falha ao escrever linha CSV: %v", core.ErrExport, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("%w: falha ao finalizar escrita CSV: %v", core.ErrExport, err)
	}
	appLogger.Infof("Dados exportados para CSV: %s", finalPath)
	return finalPath, nil
}

// ExportToXLSX exporta dados para um arquivo XLSX, uma planilha por
// DataInput.
func ExportToXLSX(inputs []DataInput, outputPath string, cfg *core.Config, globalOpts *ExportOptions) (string, error) {
	finalPath := resolveOutputPath(outputPath, cfg.ExportDir, ".xlsx")

	if globalOpts == nil {
		globalOpts = &ExportOptions{}
	}
	if globalOpts.CreateBackup && fileExists(finalPath) {
		if err := createBackup(finalPath); err != nil {
			return "", core.WrapErrorf(err, "falha ao criar backup para XLSX")
		}
	}

	xlsx := excelize.NewFile()
	defer func() {
		if err := xlsx.Close(); err != nil {
			appLogger.Errorf("Erro ao fechar arquivo XLSX: %v", err)
		}
	}()

	headerStyle, _ := xlsx.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1A659E"}, Pattern: 1},
		Font:      &excelize.Font{Color: "FFFFFF", Bold: true, Size: 11, Family: "Segoe UI"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border: []excelize.Border{
			{Type: "bottom", Color: "FFFFFF", Style: 1},
		},
	})

	for i, input := range inputs {
		sheetName := input.GetSheetName()
		if sheetName == "" {
			sheetName = fmt.Sprintf("Planilha%d", i+1)
		}
		if i == 0 {
			xlsx.SetSheetName("Sheet1", sheetName)
		} else {
			if _, err := xlsx.NewSheet(sheetName); err != nil {
				return "", fmt.Errorf("%w: falha ao criar planilha '%s': %v", core.ErrExport, sheetName, err)
			}
		}
		sheetIdx, _ := xlsx.GetSheetIndex(sheetName)
		xlsx.SetActiveSheet(sheetIdx)

		headers, err := input.Headers()
		if err != nil {
			return "", err
		}
		for colIdx, headerVal := range headers {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
			xlsx.SetCellValue(sheetName, cell, headerVal)
			xlsx.SetCellStyle(sheetName, cell, cell, headerStyle)
		}

		rows, err := input.Rows()
		if err != nil {
			return "", err
		}
		if globalOpts.Sanitize {
			rows = sanitizeData(headers, rows, globalOpts.SanitizeColumns)
		}

		for rowIdx, rowData := range rows {
			for colIdx, cellData := range rowData {
				cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)

				// Números viram células numéricas para que o Excel some
				// e formate; o resto entra como texto.
				if num, errConv := strconv.ParseFloat(strings.Replace(cellData, ",", ".", -1), 64); errConv == nil {
					xlsx.SetCellValue(sheetName, cell, num)
				} else {
					xlsx.SetCellValue(sheetName, cell, cellData)
				}
			}
		}

		// Largura mínima legível para todas as colunas com dados.
		if len(headers) > 0 {
			first, _ := excelize.ColumnNumberToName(1)
			last, _ := excelize.ColumnNumberToName(len(headers))
			if err := xlsx.SetColWidth(sheetName, first, last, 18); err != nil {
				appLogger.Warnf("Falha ao ajustar largura das colunas de '%s': %v", sheetName, err)
			}
		}
	}

	if len(inputs) == 0 {
		xlsx.SetCellValue("Sheet1", "A1", "Nenhum dado para exportar.")
	}

	if err := xlsx.SaveAs(finalPath); err != nil {
		return "", fmt.Errorf("%w: falha ao salvar arquivo XLSX '%s': %v", core.ErrExport, finalPath, err)
	}
	appLogger.Infof("Dados exportados para XLSX: %s", finalPath)
	return finalPath, nil
}

// --- Funções Utilitárias Internas ---

func resolveOutputPath(path string, defaultDir string, defaultExt string) string {
	p := filepath.Clean(path)
	if !filepath.IsAbs(p) {
		absDefaultDir, _ := filepath.Abs(defaultDir)
		p = filepath.Join(absDefaultDir, p)
	}

	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		appLogger.Warnf("Não foi possível criar diretório de exportação '%s': %v. Usando diretório atual.", dir, err)
		p = filepath.Base(p)
	}

	ext := filepath.Ext(p)
	if ext == "" {
		p += defaultExt
	}
	return p
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

func createBackup(path string) error {
	timestamp := time.Now().Format("20060102_150405")
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	backupPath := fmt.Sprintf("%s_backup_%s%s", base, timestamp, ext)

	err := os.Rename(path, backupPath)
	if err == nil {
		appLogger.Infof("Backup criado: %s", backupPath)
	}
	return err
}
