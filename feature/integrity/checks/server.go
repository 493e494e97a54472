package checks

import (
	"fmt"
	"strings"

	"follower-tracker/core/database"

	"gorm.io/gorm"
)

// ServerReport strictly types the result of a schema integrity check.
type ServerReport struct {
	Driver  string                 `json:"driver"`
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Status         string   `json:"status"` // "ok", "missing", "error"
}

// CheckServerIntegrity verifies the database schema using GORM models as the source of truth.
func CheckServerIntegrity(db *gorm.DB, models ...any) (*ServerReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &ServerReport{
		Driver:  db.Dialector.Name(),
		Tables:  make(map[string]TableReport),
		Matched: true,
		Errors:  []string{},
	}

	for _, model := range models {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("failed to parse model %T: %w", model, err)
		}
		table := stmt.Schema.Table

		actualCols, err := database.GetTableColumns(db, table)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", table, err))
			report.Matched = false
			continue
		}

		tblReport := TableReport{
			MissingColumns: []string{},
			TypeMismatches: []string{},
			Status:         "ok",
		}
		if len(actualCols) == 0 {
			tblReport.Status = "missing"
			report.Matched = false
			report.Tables[table] = tblReport
			continue
		}
		actual := database.ColumnSet(actualCols)

		for _, field := range stmt.Schema.Fields {
			if field.DBName == "" {
				continue
			}

			col, exists := actual[field.DBName]
			if !exists {
				tblReport.MissingColumns = append(tblReport.MissingColumns, field.DBName)
				tblReport.Status = "error"
				report.Matched = false
				continue
			}

			// Only explicit type tags are compared, loosely.
			expType := strings.ToLower(field.TagSettings["TYPE"])
			if expType != "" && !strings.Contains(strings.ToLower(col.Type), expType) {
				mismatch := fmt.Sprintf("%s: expected %s, got %s", field.DBName, expType, col.Type)
				tblReport.TypeMismatches = append(tblReport.TypeMismatches, mismatch)
				tblReport.Status = "error"
				report.Matched = false
			}
		}

		report.Tables[table] = tblReport
	}

	return report, nil
}
