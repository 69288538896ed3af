package excel

// TrialColumns is the header of a trial sheet, shared by reader and exporter
var TrialColumns = []string{
	"subject_id",
	"score_a",
	"score_b",
	"label_a",
	"label_b",
	"user_choice",
	"is_choice_correct",
	"comment",
	"recorded_at",
}

// Sheet names of an exported audit workbook
const (
	SheetTrials   = "Trials"
	SheetMetrics  = "Metrics"
	SheetAccuracy = "Running Accuracy"
	SheetPersonas = "Personas"
)

// RawRowData represents a row of raw sheet data keyed by header
type RawRowData map[string]string
