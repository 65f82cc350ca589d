// Package planstore persists staging-plan runs and their outcomes to
// SQLite so a failed, partially-applied plan can be inspected after the
// process exits (there is no resume operation) — the record spec.md §5's "caller
// wishing to abort mid-plan" and §7's "prior successful applications
// remain in the index and are reported" guarantees need to survive a
// process restart.
package planstore

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"

	errs "commitsmith/pkg/errors"
	"commitsmith/pkg/executor"
	"commitsmith/pkg/stagingplan"
)

// jsonColumn is a generic JSON-serialized column, the same
// marshal-on-write/unmarshal-on-read shape as the teacher's stateMap.
type jsonColumn[T any] struct {
	value T
}

func (jsonColumn[T]) GormDataType() string { return "text" }

func (jsonColumn[T]) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "sqlite":
		return "TEXT"
	case "postgres":
		return "JSONB"
	case "mysql":
		return "LONGTEXT"
	default:
		return ""
	}
}

func (j jsonColumn[T]) Value() (driver.Value, error) {
	b, err := json.Marshal(j.value)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (j *jsonColumn[T]) Scan(value any) error {
	if value == nil {
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal JSON value: %T", value)
	}
	if len(bytes) == 0 {
		return nil
	}
	return json.Unmarshal(bytes, &j.value)
}

func (j jsonColumn[T]) GormValue(ctx context.Context, db *gorm.DB) clause.Expr {
	data, _ := json.Marshal(j.value)
	return gorm.Expr("?", string(data))
}

// storedRun is the row-level representation of one apply invocation.
type storedRun struct {
	ID            string `gorm:"primaryKey;"`
	CreatedAt     time.Time
	CommitMessage string
	Plan          jsonColumn[stagingplan.StagingPlan] `gorm:"type:text"`
	Success       bool
	StagedHunks   jsonColumn[[]string] `gorm:"type:text"`
	ErrorCode     string
	ErrorMessage  string
}

func (storedRun) TableName() string { return "plan_runs" }

// Run is the caller-facing record of one apply invocation: the plan
// that was executed and the result of executing it.
type Run struct {
	ID        string
	CreatedAt time.Time
	Plan      *stagingplan.StagingPlan
	Result    *executor.ExecResult
}

// Store persists staging-plan runs to a SQLite database.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if necessary) the SQLite database at dbPath and
// ensures its schema exists.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.AutoMigrate(&storedRun{}); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// RecordRun persists the outcome of one apply invocation and returns
// its generated run ID.
func (s *Store) RecordRun(ctx context.Context, plan *stagingplan.StagingPlan, result *executor.ExecResult) (string, error) {
	row := storedRun{
		ID:            uuid.NewString(),
		CreatedAt:     time.Now(),
		CommitMessage: plan.CommitMessage,
		Plan:          jsonColumn[stagingplan.StagingPlan]{value: *plan},
		Success:       result.Success,
		StagedHunks:   jsonColumn[[]string]{value: result.StagedHunks},
	}
	if result.Err != nil {
		row.ErrorCode = string(result.Err.Code)
		row.ErrorMessage = result.Err.Message
	}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", fmt.Errorf("record plan run: %w", err)
	}
	return row.ID, nil
}

// GetRun loads a single run by its ID.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	var row storedRun
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("load plan run %s: %w", id, err)
	}
	return toRun(&row), nil
}

// ListRuns returns every recorded run, most recent first.
func (s *Store) ListRuns(ctx context.Context) ([]*Run, error) {
	var rows []storedRun
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list plan runs: %w", err)
	}
	runs := make([]*Run, len(rows))
	for i := range rows {
		runs[i] = toRun(&rows[i])
	}
	return runs, nil
}

func toRun(row *storedRun) *Run {
	plan := row.Plan.value
	result := &executor.ExecResult{
		Success:     row.Success,
		StagedHunks: row.StagedHunks.value,
	}
	if row.ErrorMessage != "" {
		result.Err = errs.New(errs.Code(row.ErrorCode), row.ErrorMessage)
	}
	return &Run{
		ID:        row.ID,
		CreatedAt: row.CreatedAt,
		Plan:      &plan,
		Result:    result,
	}
}
