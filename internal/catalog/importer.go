package catalog

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"validapro-backend/internal/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

// ImportProducts lê a primeira planilha de um arquivo XLSX e cadastra um
// produto por linha. A planilha precisa de um cabeçalho com as colunas
// "name" e "ean"; linhas inválidas ou com EAN duplicado são puladas e
// reportadas, sem abortar a importação.
func ImportProducts(db *gorm.DB, r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("não foi possível abrir a planilha: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("planilha sem abas")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("não foi possível ler a planilha: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("planilha vazia. Campos obrigatórios: name, ean")
	}

	nameCol, eanCol := -1, -1
	for i, h := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "name":
			nameCol = i
		case "ean":
			eanCol = i
		}
	}
	if nameCol < 0 || eanCol < 0 {
		return nil, fmt.Errorf("cabeçalho inválido. Campos obrigatórios: name, ean")
	}

	result := &ImportResult{Errors: make([]string, 0)}
	for i, row := range rows[1:] {
		line := i + 2 // numeração da planilha, contando o cabeçalho

		var name, ean string
		if nameCol < len(row) {
			name = strings.TrimSpace(row[nameCol])
		}
		if eanCol < len(row) {
			ean = strings.TrimSpace(row[eanCol])
		}

		if name == "" && ean == "" {
			continue // linha em branco
		}
		if name == "" || ean == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("linha %d: name e ean são obrigatórios", line))
			continue
		}
		if len(ean) < 8 {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("linha %d: EAN deve ter pelo menos 8 caracteres", line))
			continue
		}

		product := models.Product{Name: name, EAN: ean}
		if err := db.Create(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("linha %d: EAN %s já cadastrado", line, ean))
				continue
			}
			return nil, fmt.Errorf("erro ao cadastrar produto da linha %d: %w", line, err)
		}
		result.Imported++
	}

	return result, nil
}
