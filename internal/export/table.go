// Package export renders operator console tables as CSV or XLSX and
// cards as QR codes.
package export

import (
	"strconv"
	"time"

	"cardlink/internal/models"
)

// Table is a header row plus data rows of cell values.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]any
}

// UsersTable builds the profile export table.
func UsersTable(profiles []models.Profile) Table {
	t := Table{
		Name:    "Users",
		Headers: []string{"ID", "Email", "Name", "Global Username", "Role", "Created At"},
	}
	for _, p := range profiles {
		t.Rows = append(t.Rows, []any{
			p.ID.String(),
			p.Email,
			p.Name,
			p.GlobalUsername,
			p.Role,
			p.CreatedAt,
		})
	}
	return t
}

// CardsTable builds the card export table.
func CardsTable(cards []models.CardWithOwner) Table {
	t := Table{
		Name:    "Cards",
		Headers: []string{"ID", "Slug", "Title", "Company", "Position", "Owner", "Owner Email", "Published", "Views", "Created At"},
	}
	for _, c := range cards {
		t.Rows = append(t.Rows, []any{
			c.ID.String(),
			c.Slug,
			c.Title,
			c.Company,
			c.Position,
			c.OwnerName,
			c.OwnerEmail,
			c.IsPublished,
			c.ViewCount,
			c.CreatedAt,
		})
	}
	return t
}

// text formats a cell for text outputs.
func text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		return x.UTC().Format(time.RFC3339)
	default:
		return ""
	}
}
