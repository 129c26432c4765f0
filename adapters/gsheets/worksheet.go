package gsheets

import (
	"context"

	"leanfunnel/domain/enquiry"
	"leanfunnel/internal"
	"leanfunnel/internal/errors"
)

// Worksheet is one tab of a spreadsheet, usable as a ports.RowSource
type Worksheet struct {
	client        *Client
	spreadsheetID string
	title         string
	logger        *internal.Logger
}

// NewWorksheet binds a client to a spreadsheet tab
func NewWorksheet(client *Client, spreadsheetID, title string) *Worksheet {
	return &Worksheet{
		client:        client,
		spreadsheetID: spreadsheetID,
		title:         title,
		logger:        client.logger,
	}
}

// Name identifies the source
func (w *Worksheet) Name() string {
	return "gsheets:" + w.spreadsheetID + "/" + w.title
}

// FetchSheet reads every row of the worksheet
func (w *Worksheet) FetchSheet(ctx context.Context) (*enquiry.Sheet, error) {
	vr, err := w.client.GetValues(ctx, w.spreadsheetID, WorksheetRange(w.title))
	if err != nil {
		return nil, errors.ExternalServiceError("google sheets", err)
	}

	sheet, err := enquiry.SheetFromGrid(w.title, vr.Grid())
	if err != nil {
		return nil, err
	}

	if dups := enquiry.DuplicateHeaders(sheet.Headers); len(dups) > 0 {
		w.logger.Warn("worksheet %s has duplicate headers %v, rightmost column wins", w.title, dups)
	}
	w.logger.Info("fetched %s: %d columns, %d rows", w.Name(), len(sheet.Headers), len(sheet.Records))
	return sheet, nil
}
