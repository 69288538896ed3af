package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"biasaudit/domain/core"
	"biasaudit/domain/trial"

	"github.com/xuri/excelize/v2"
)

// TrialReader loads a recorded trial history from an xlsx or csv file
type TrialReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewTrialReader creates a reader; the file type follows the extension
func NewTrialReader(filePath string) *TrialReader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &TrialReader{filePath: filePath, fileType: fileType}
}

// ReadTrials reads and validates every row, in file order
func (r *TrialReader) ReadTrials() ([]trial.Trial, error) {
	log.Printf("[TrialReader] Reading %s file: %s", r.fileType, r.filePath)

	switch r.fileType {
	case "csv":
		f, err := os.Open(r.filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open CSV file: %w", err)
		}
		defer f.Close()
		return ReadCSV(f)
	default:
		f, err := excelize.OpenFile(r.filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open Excel file: %w", err)
		}
		defer f.Close()
		return readWorkbook(f)
	}
}

// ReadCSV parses trials from CSV with a TrialColumns header
func ReadCSV(rd io.Reader) ([]trial.Trial, error) {
	records, err := csv.NewReader(rd).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return parseRows(records)
}

// ReadWorkbook parses trials from the Trials sheet (or the first sheet) of an xlsx stream
func ReadWorkbook(rd io.Reader) ([]trial.Trial, error) {
	f, err := excelize.OpenReader(rd)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()
	return readWorkbook(f)
}

func readWorkbook(f *excelize.File) ([]trial.Trial, error) {
	sheet := SheetTrials
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	return parseRows(rows)
}

func parseRows(rows [][]string) ([]trial.Trial, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}
	for _, required := range []string{"score_a", "score_b", "user_choice", "is_choice_correct"} {
		if !contains(headers, required) {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	trials := make([]trial.Trial, 0, len(rows)-1)
	for i, row := range rows[1:] {
		raw := make(RawRowData, len(headers))
		for j, h := range headers {
			if j < len(row) {
				raw[h] = strings.TrimSpace(row[j])
			}
		}
		if isBlank(raw) {
			continue
		}

		t, err := parseTrial(raw)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		trials = append(trials, t)
	}
	return trials, nil
}

func parseTrial(raw RawRowData) (trial.Trial, error) {
	scoreA, err := strconv.ParseFloat(raw["score_a"], 64)
	if err != nil {
		return trial.Trial{}, core.NewValidationError("score_a", err.Error())
	}
	scoreB, err := strconv.ParseFloat(raw["score_b"], 64)
	if err != nil {
		return trial.Trial{}, core.NewValidationError("score_b", err.Error())
	}
	choice, err := strconv.Atoi(raw["user_choice"])
	if err != nil {
		return trial.Trial{}, core.NewValidationError("user_choice", err.Error())
	}
	correct, err := parseBool(raw["is_choice_correct"])
	if err != nil {
		return trial.Trial{}, core.NewValidationError("is_choice_correct", err.Error())
	}

	var at time.Time
	if s := raw["recorded_at"]; s != "" {
		at, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return trial.Trial{}, core.NewValidationError("recorded_at", err.Error())
		}
	}

	return trial.New(core.SubjectID(raw["subject_id"]), scoreA, scoreB, raw["label_a"], raw["label_b"],
		trial.Choice(choice), correct, raw["comment"], at)
}

// parseBool accepts yes/no alongside the strconv forms
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "y":
		return true, nil
	case "no", "n":
		return false, nil
	}
	return strconv.ParseBool(s)
}

func isBlank(raw RawRowData) bool {
	for _, v := range raw {
		if v != "" {
			return false
		}
	}
	return true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
