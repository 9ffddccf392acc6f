package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/studyplan/pkg/models"
)

// TopicCreator is what the importer needs to create subjects and topics
type TopicCreator interface {
	GetSubjects(ctx context.Context) ([]models.Subject, error)
	AddSubject(ctx context.Context, name string) error
	AddStudyTopic(ctx context.Context, info models.StudyTopicInfo) (int64, error)
}

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath          string // Path to the Excel or CSV file
	NameColumn        string // Column with the topic name
	DescriptionColumn string // Column with the description
	SubjectColumn     string // Column with the subject
	SheetName         string // Sheet to import, the first one when empty
	StartRow          int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		NameColumn:        "A",
		DescriptionColumn: "B",
		SubjectColumn:     "C",
		StartRow:          2, // skip header
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed  int
	SubjectsCreated int
	Created         int
	Skipped         int
	Errors          []string
}

// ImportTopics imports topics from an Excel or CSV file
func ImportTopics(ctx context.Context, creator TopicCreator, config ImportConfig) (*ImportResult, error) {
	rows, err := readRows(config)
	if err != nil {
		return nil, err
	}

	subjects, err := creator.GetSubjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get existing subjects: %w", err)
	}
	known := make(map[string]bool, len(subjects))
	for _, s := range subjects {
		known[s.Name] = true
	}

	result := &ImportResult{Errors: make([]string, 0)}
	for i, row := range rows {
		rowNum := i + 1
		if rowNum < config.StartRow {
			continue
		}
		if isBlank(row) {
			continue
		}

		result.TotalProcessed++
		if err := processRow(ctx, creator, config, row, known, result); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
	}

	return result, nil
}

func readRows(config ImportConfig) ([][]string, error) {
	if strings.ToLower(filepath.Ext(config.FilePath)) == ".csv" {
		return readCSV(config.FilePath)
	}
	return readExcel(config)
}

func readExcel(config ImportConfig) ([][]string, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := config.SheetName
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func processRow(ctx context.Context, creator TopicCreator, config ImportConfig, row []string,
	known map[string]bool, result *ImportResult) error {
	info := models.StudyTopicInfo{
		Name:        cell(row, config.NameColumn),
		Description: cell(row, config.DescriptionColumn),
		SubjectName: cell(row, config.SubjectColumn),
	}

	if info.Name == "" {
		return fmt.Errorf("topic name cannot be empty")
	}
	if info.SubjectName == "" {
		return fmt.Errorf("subject cannot be empty")
	}

	if !known[info.SubjectName] {
		if err := creator.AddSubject(ctx, info.SubjectName); err != nil {
			return fmt.Errorf("failed to create subject: %w", err)
		}
		known[info.SubjectName] = true
		result.SubjectsCreated++
	}

	if _, err := creator.AddStudyTopic(ctx, info); err != nil {
		return fmt.Errorf("failed to create topic: %w", err)
	}
	result.Created++
	return nil
}

func cell(row []string, column string) string {
	if column == "" {
		return ""
	}
	if idx := columnToIndex(column); idx >= 0 && idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Helper function to convert Excel column letter to index
func columnToIndex(column string) int {
	column = strings.ToUpper(column)
	index := 0
	for i := 0; i < len(column); i++ {
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}
