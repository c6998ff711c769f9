package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/aidcase/workflow/internal/domain/request"
	"github.com/aidcase/workflow/internal/domain/workflow"
)

// Exporter renders assistance requests as an XLSX register, one row per
// request. Deadline, overdue flag and completion estimate are derived at
// export time so the register never disagrees with the SLA calculator.
type Exporter struct {
	sheetName  string
	catalog    *workflow.StatusCatalog
	sla        *workflow.SLACalculator
	categories map[request.Category]workflow.CategoryProfile
	logger     *zap.Logger
}

// Register layout
const (
	defaultSheetName = "Requests"

	headerRow    = 1
	dataRowStart = 2

	colSequence  = "A"
	colRequestID = "B"
	colApplicant = "C"
	colCategory  = "D"
	colStatus    = "E"
	colUrgency   = "F"
	colPriority  = "G"
	colRequested = "H"
	colApproved  = "I"
	colAssignee  = "J"
	colSubmitted = "K"
	colDeadline  = "L"
	colOverdue   = "M"
	colEstimated = "N"

	timeLayout = "2006-01-02 15:04"
)

var headerCells = []struct {
	col   string
	title string
}{
	{colSequence, "#"},
	{colRequestID, "Request ID"},
	{colApplicant, "Applicant"},
	{colCategory, "Category"},
	{colStatus, "Status"},
	{colUrgency, "Urgency"},
	{colPriority, "Priority"},
	{colRequested, "Requested Amount"},
	{colApproved, "Approved Amount"},
	{colAssignee, "Assigned To"},
	{colSubmitted, "Submitted At"},
	{colDeadline, "Deadline"},
	{colOverdue, "Overdue"},
	{colEstimated, "Estimated Completion"},
}

// NewExporter creates an Exporter over the given catalog, SLA calculator and
// category table. A blank sheetName falls back to the default register name.
func NewExporter(sheetName string, catalog *workflow.StatusCatalog, sla *workflow.SLACalculator, categories map[request.Category]workflow.CategoryProfile, logger *zap.Logger) *Exporter {
	if sheetName == "" {
		sheetName = defaultSheetName
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{
		sheetName:  sheetName,
		catalog:    catalog,
		sla:        sla,
		categories: categories,
		logger:     logger,
	}
}

// Write builds the workbook and streams it to w
func (e *Exporter) Write(w io.Writer, requests []*request.Request) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName(file.GetSheetName(0), e.sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := e.fillHeaderRow(file); err != nil {
		return fmt.Errorf("failed to fill header: %w", err)
	}

	for i, req := range requests {
		if err := e.fillRequestRow(file, dataRowStart+i, i+1, req); err != nil {
			return fmt.Errorf("failed to fill row for request %s: %w", req.ID, err)
		}
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	e.logger.Debug("Request register exported",
		zap.String("sheet", e.sheetName),
		zap.Int("request_count", len(requests)))

	return nil
}

// WriteFile renders the register to a file, creating parent directories as needed
func (e *Exporter) WriteFile(path string, requests []*request.Request) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	if err := e.Write(file, requests); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close export file: %w", err)
	}

	e.logger.Info("Request register written",
		zap.String("path", path),
		zap.Int("request_count", len(requests)))

	return nil
}

// fillHeaderRow writes the column titles into row 1
func (e *Exporter) fillHeaderRow(file *excelize.File) error {
	for _, h := range headerCells {
		if err := e.setCell(file, h.col, headerRow, h.title); err != nil {
			return err
		}
	}
	return nil
}

// fillRequestRow writes one request into the given row
func (e *Exporter) fillRequestRow(file *excelize.File, row, sequence int, req *request.Request) error {
	info, err := e.catalog.Describe(req.Status)
	if err != nil {
		return err
	}

	categoryLabel := string(req.Category)
	if profile, ok := e.categories[req.Category]; ok && profile.Label != "" {
		categoryLabel = profile.Label
	}

	if err := e.setCell(file, colSequence, row, sequence); err != nil {
		return err
	}
	if err := e.setCell(file, colRequestID, row, req.ID); err != nil {
		return err
	}
	if err := e.setCell(file, colApplicant, row, req.ApplicantID); err != nil {
		return err
	}
	if err := e.setCell(file, colCategory, row, categoryLabel); err != nil {
		return err
	}
	if err := e.setCell(file, colStatus, row, info.Label); err != nil {
		return err
	}
	if err := e.setCell(file, colUrgency, row, string(req.Urgency)); err != nil {
		return err
	}
	if err := e.setCell(file, colPriority, row, string(req.Priority)); err != nil {
		return err
	}
	if err := e.setCell(file, colRequested, row, req.RequestedAmount); err != nil {
		return err
	}
	if req.ApprovedAmount != nil {
		if err := e.setCell(file, colApproved, row, *req.ApprovedAmount); err != nil {
			return err
		}
	}
	if err := e.setCell(file, colAssignee, row, req.AssignedTo); err != nil {
		return err
	}

	// Drafts have no submission instant, so the SLA columns stay blank
	if req.SubmittedAt.IsZero() {
		return nil
	}

	if err := e.setCell(file, colSubmitted, row, req.SubmittedAt.Format(timeLayout)); err != nil {
		return err
	}

	deadline, err := e.sla.Deadline(req.SubmittedAt, req.Urgency, req.Priority)
	if err != nil {
		return err
	}
	if err := e.setCell(file, colDeadline, row, deadline.Format(timeLayout)); err != nil {
		return err
	}

	overdue, err := e.sla.IsOverdue(req.SubmittedAt, req.Urgency, req.Status, req.Priority)
	if err != nil {
		return err
	}
	if err := e.setCell(file, colOverdue, row, overdueLabel(overdue)); err != nil {
		return err
	}

	estimated, err := e.sla.EstimatedCompletion(req.SubmittedAt, req.Urgency, req.Priority)
	if err != nil {
		return err
	}
	return e.setCell(file, colEstimated, row, estimated.Format(timeLayout))
}

// setCell writes one value, folding the coordinate into any error
func (e *Exporter) setCell(file *excelize.File, col string, row int, value interface{}) error {
	cell := fmt.Sprintf("%s%d", col, row)
	if err := file.SetCellValue(e.sheetName, cell, value); err != nil {
		return fmt.Errorf("failed to set cell %s: %w", cell, err)
	}
	return nil
}

func overdueLabel(overdue bool) string {
	if overdue {
		return "yes"
	}
	return "no"
}
