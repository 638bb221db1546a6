package sheetsclient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jakechorley/shmira-scheduler/pkg/sheetssql"
)

// sheetsAPI is the subset of Client the store needs
type sheetsAPI interface {
	GetValues(ctx context.Context, spreadsheetID, sheetRange string) ([][]interface{}, error)
	AppendRows(ctx context.Context, spreadsheetID, sheetRange string, values [][]interface{}) error
	UpdateValues(ctx context.Context, spreadsheetID, sheetRange string, values [][]interface{}) error
	SheetIDs(ctx context.Context, spreadsheetID string) (map[string]int64, error)
	CreateSheet(ctx context.Context, spreadsheetID, sheetTitle string) (int64, error)
	DeleteRow(ctx context.Context, spreadsheetID string, sheetID int64, row int) error
}

var errSheetNotFound = errors.New("sheet not found")

// Store is a record store where each collection is a sheet of one spreadsheet
type Store struct {
	api           sheetsAPI
	spreadsheetID string

	mu       sync.Mutex
	sheetIDs map[string]int64
}

var _ sheetssql.Backend = (*Store)(nil)

// NewStore creates a record store over the given spreadsheet
func NewStore(client *Client, spreadsheetID string) *Store {
	return newStore(client, spreadsheetID)
}

func newStore(api sheetsAPI, spreadsheetID string) *Store {
	return &Store{api: api, spreadsheetID: spreadsheetID}
}

func (s *Store) ReadAll(ctx context.Context, collection string) ([][]interface{}, error) {
	if _, err := s.sheetID(ctx, collection); err != nil {
		return nil, err
	}
	return s.api.GetValues(ctx, s.spreadsheetID, quoteSheet(collection))
}

func (s *Store) AppendRows(ctx context.Context, collection string, rows [][]interface{}) error {
	return s.api.AppendRows(ctx, s.spreadsheetID, quoteSheet(collection), rows)
}

func (s *Store) DeleteRow(ctx context.Context, collection string, row int) error {
	id, err := s.sheetID(ctx, collection)
	if err != nil {
		return err
	}
	return s.api.DeleteRow(ctx, s.spreadsheetID, id, row)
}

func (s *Store) OverwriteCell(ctx context.Context, collection string, row, col int, value interface{}) error {
	cell := fmt.Sprintf("%s!%s%d", quoteSheet(collection), ColumnLetter(col), row)
	return s.api.UpdateValues(ctx, s.spreadsheetID, cell, [][]interface{}{{value}})
}

func (s *Store) EnsureExists(ctx context.Context, collection string, header []interface{}) error {
	_, err := s.sheetID(ctx, collection)
	if errors.Is(err, errSheetNotFound) {
		id, err := s.api.CreateSheet(ctx, s.spreadsheetID, collection)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.sheetIDs[collection] = id
		s.mu.Unlock()
		return s.AppendRows(ctx, collection, [][]interface{}{header})
	}
	if err != nil {
		return err
	}

	values, err := s.api.GetValues(ctx, s.spreadsheetID, quoteSheet(collection))
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return s.AppendRows(ctx, collection, [][]interface{}{header})
	}
	return nil
}

// sheetID resolves a sheet title to its numeric id, loading the list once
func (s *Store) sheetID(ctx context.Context, collection string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sheetIDs == nil {
		ids, err := s.api.SheetIDs(ctx, s.spreadsheetID)
		if err != nil {
			return 0, err
		}
		s.sheetIDs = ids
	}

	id, ok := s.sheetIDs[collection]
	if !ok {
		return 0, fmt.Errorf("%w: %q", errSheetNotFound, collection)
	}
	return id, nil
}

// quoteSheet quotes a sheet title for use as an A1 range
func quoteSheet(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

// ColumnLetter converts a 1-based column index to A1 letters: 1 is A, 27 is AA
func ColumnLetter(col int) string {
	var letters []byte
	for col > 0 {
		col--
		letters = append([]byte{byte('A' + col%26)}, letters...)
		col /= 26
	}
	return string(letters)
}
