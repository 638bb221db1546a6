package sheetsclient

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/jakechorley/shmira-scheduler/internal/config"
	"github.com/jakechorley/shmira-scheduler/pkg/utils"
)

// Client wraps the Google Sheets API client
type Client struct {
	service *sheets.Service
	token   *oauth2.Token
}

// NewClient creates a new Sheets client, performing the OAuth flow if needed.
// Every scope the scheduler uses is requested up front so the token can be
// shared with the Gmail client.
func NewClient(ctx context.Context, oauthCfg *config.OAuthClientConfig, env string) (*Client, error) {
	oauthConfig, err := utils.GetOAuthConfig(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth config: %w", err)
	}

	token, err := utils.GetTokenWithFlow(ctx, oauthConfig, env)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth token: %w", err)
	}

	service, err := sheets.NewService(ctx, option.WithHTTPClient(oauthConfig.Client(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{service: service, token: token}, nil
}

// Service returns the underlying sheets service for direct API access
func (c *Client) Service() *sheets.Service {
	return c.service
}

// Token returns the OAuth token used by this client
func (c *Client) Token() *oauth2.Token {
	return c.token
}

// GetValues reads formatted values from a spreadsheet range
func (c *Client) GetValues(ctx context.Context, spreadsheetID, sheetRange string) ([][]interface{}, error) {
	resp, err := c.service.Spreadsheets.Values.Get(spreadsheetID, sheetRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get values: %w", err)
	}
	return resp.Values, nil
}

// AppendRows appends rows to the end of a sheet
func (c *Client) AppendRows(ctx context.Context, spreadsheetID, sheetRange string, values [][]interface{}) error {
	_, err := c.service.Spreadsheets.Values.Append(spreadsheetID, sheetRange, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append rows: %w", err)
	}
	return nil
}

// UpdateValues overwrites a range with raw values
func (c *Client) UpdateValues(ctx context.Context, spreadsheetID, sheetRange string, values [][]interface{}) error {
	_, err := c.service.Spreadsheets.Values.Update(spreadsheetID, sheetRange, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to update values: %w", err)
	}
	return nil
}

// SheetIDs returns the numeric id of every sheet keyed by title
func (c *Client) SheetIDs(ctx context.Context, spreadsheetID string) (map[string]int64, error) {
	resp, err := c.service.Spreadsheets.Get(spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	ids := make(map[string]int64, len(resp.Sheets))
	for _, s := range resp.Sheets {
		if s.Properties != nil {
			ids[s.Properties.Title] = s.Properties.SheetId
		}
	}
	return ids, nil
}

// CreateSheet creates a new sheet/tab in the spreadsheet
func (c *Client) CreateSheet(ctx context.Context, spreadsheetID, sheetTitle string) (int64, error) {
	req := &sheets.Request{
		AddSheet: &sheets.AddSheetRequest{
			Properties: &sheets.SheetProperties{Title: sheetTitle},
		},
	}

	resp, err := c.batchUpdate(ctx, spreadsheetID, req)
	if err != nil {
		return 0, fmt.Errorf("failed to create sheet: %w", err)
	}
	if len(resp.Replies) == 0 || resp.Replies[0].AddSheet == nil {
		return 0, fmt.Errorf("unexpected response from create sheet")
	}
	return resp.Replies[0].AddSheet.Properties.SheetId, nil
}

// DeleteRow removes one 1-based row from a sheet, shifting later rows up
func (c *Client) DeleteRow(ctx context.Context, spreadsheetID string, sheetID int64, row int) error {
	req := &sheets.Request{
		DeleteDimension: &sheets.DeleteDimensionRequest{
			Range: &sheets.DimensionRange{
				SheetId:    sheetID,
				Dimension:  "ROWS",
				StartIndex: int64(row - 1),
				EndIndex:   int64(row),
				// The first sheet has id 0, which would otherwise be omitted
				ForceSendFields: []string{"SheetId", "StartIndex"},
			},
		},
	}

	if _, err := c.batchUpdate(ctx, spreadsheetID, req); err != nil {
		return fmt.Errorf("failed to delete row %d: %w", row, err)
	}
	return nil
}

func (c *Client) batchUpdate(ctx context.Context, spreadsheetID string, reqs ...*sheets.Request) (*sheets.BatchUpdateSpreadsheetResponse, error) {
	return c.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{Requests: reqs}).
		Context(ctx).
		Do()
}
