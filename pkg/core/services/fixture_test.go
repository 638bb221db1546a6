package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jakechorley/shmira-scheduler/internal/config"
	"github.com/jakechorley/shmira-scheduler/pkg/db"
	"github.com/jakechorley/shmira-scheduler/pkg/sheetssql"
)

// sentEmail is one email captured by mockMailer
type sentEmail struct {
	to      string
	subject string
	body    string
}

// mockMailer implements Mailer
type mockMailer struct {
	sentEmails []sentEmail
	err        error
	failFor    map[string]bool
}

func (m *mockMailer) SendEmail(ctx context.Context, to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	if m.failFor[to] {
		return fmt.Errorf("mailbox unavailable: %s", to)
	}
	m.sentEmails = append(m.sentEmails, sentEmail{to: to, subject: subject, body: body})
	return nil
}

const (
	eventsSheet  = "Form Responses 1"
	membersSheet = "Members"
)

func testConfig() config.Config {
	return config.Config{
		Backend:       config.BackendSheets,
		SpreadsheetID: "sheet123",
		Timezone:      "UTC",
		PortalURL:     "https://portal.example.org/select",
		Organization: config.Organization{
			Name:  "Boulder Chevra Kadisha",
			Phone: "303-555-0100",
			Email: "chevra@example.org",
		},
		Collections: config.DefaultCollections(),
	}
}

// setClock pins timeNow for the duration of the test
func setClock(t *testing.T, now time.Time) {
	t.Helper()
	prev := timeNow
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = prev })
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 1, hour, minute, 0, 0, time.UTC)
}

// newFixture seeds one event (Ruth Cohen, 6:00 PM to 9:30 PM on March 1 2026 UTC),
// three members of whom two are approved and one has no email, and one approved
// guest connected to Ruth Cohen
func newFixture(t *testing.T) (*db.DB, *sheetssql.MemoryBackend) {
	t.Helper()
	backend := sheetssql.NewMemoryBackend()

	backend.Seed(eventsSheet,
		[]interface{}{"Chevra Kadisha intake"},
		[]interface{}{"Timestamp", "Email Address", "Deceased Name", "Location", "Start Date", "Start Time", "End Date", "End Time", "Personal Information", "Pronoun", "Met-or-Meita", "Token"},
		[]interface{}{"2/28/2026 9:12:00", "fd@example.com", "Ruth Cohen", "Feldman Mortuary", "3/1/2026", "6:00 PM", "3/1/2026", "9:30 PM", "A beloved grandmother.", "Her", "meita", "E1"},
	)
	backend.Seed(membersSheet,
		[]interface{}{"Approvals", "Timestamp", "Email Address", "First Name", "Last Name", "Phone", "Token"},
		[]interface{}{"Yes", "1/1/2026", "miriam@example.org", "Miriam", "Adler", "303-555-0101", "M1"},
		[]interface{}{"yes", "1/1/2026", "", "Noah", "Berg", "", "M2"},
		[]interface{}{"", "1/1/2026", "pending@example.org", "Pending", "Person", "", "M3"},
	)
	backend.Seed("Guests",
		[]interface{}{"Approvals", "Email Address", "First Name", "Last Name", "Phone", "Name of Deceased", "Token"},
		[]interface{}{"TRUE", "dana@example.org", "Dana", "Levi", "", " Ruth Cohen , Sam Gold", "G1"},
	)
	backend.Seed("Locations",
		[]interface{}{"Mortuary Name", "Street Address", "City", "State", "Zip"},
		[]interface{}{"Feldman Mortuary", "1673 S Colorado Blvd", "Denver", "CO", "80222"},
	)

	database := db.NewDB(sheetssql.NewDB(backend), config.DefaultCollections())
	require.NoError(t, database.EnsureSchema(context.Background()))
	return database, backend
}
