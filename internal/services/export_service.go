package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"github.com/xuri/excelize/v2"
)

var eventExportHeaders = []string{
	"Timestamp", "Event", "Test ID", "Exercise", "User ID", "Session ID", "Section", "Score",
}

func (s *analyticsService) ExportEventsToCSV(ctx context.Context, filters *repositories.EventFilters) ([]byte, error) {
	events, err := s.getEventsForExport(ctx, filters)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(eventExportHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, event := range events {
		if err := writer.Write(eventToRow(event)); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

func (s *analyticsService) ExportEventsToExcel(ctx context.Context, filters *repositories.EventFilters) ([]byte, error) {
	events, err := s.getEventsForExport(ctx, filters)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheetName := "Events"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)

	for i, header := range eventExportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, event := range events {
		for colIndex, value := range eventToRow(event) {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.Info("Analytics events exported", "format", "xlsx", "rows", len(events))
	return buf.Bytes(), nil
}

// getEventsForExport pages through every event matching filters. Limit and
// offset of the filters are ignored.
func (s *analyticsService) getEventsForExport(ctx context.Context, filters *repositories.EventFilters) ([]*models.AnalyticsEvent, error) {
	if filters == nil {
		filters = &repositories.EventFilters{}
	}
	if err := s.validator.Validate(filters); err != nil {
		return nil, err
	}

	page := *filters
	page.Limit = maxEventLimit
	page.Offset = 0
	if page.SortOrder == "" {
		page.SortOrder = "asc"
	}

	var all []*models.AnalyticsEvent
	for {
		events, total, err := s.repo.List(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("failed to list analytics events: %w", err)
		}
		all = append(all, events...)
		if len(events) == 0 || int64(len(all)) >= total {
			break
		}
		page.Offset += len(events)
	}
	return all, nil
}

func eventToRow(event *models.AnalyticsEvent) []string {
	row := []string{
		event.Time().UTC().Format(time.RFC3339Nano),
		string(event.EventName),
		"", "", "", event.SessionID, "", "",
	}
	if event.TestID != nil {
		row[2] = strconv.Itoa(int(*event.TestID))
		row[3] = event.TestID.String()
	}
	if event.UserID != nil {
		row[4] = *event.UserID
	}
	if event.Section != nil {
		row[6] = *event.Section
	}
	if event.Score != nil {
		row[7] = strconv.FormatFloat(*event.Score, 'f', -1, 64)
	}
	return row
}
