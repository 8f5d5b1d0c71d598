// Package export renders request and customer lists as CSV for the
// back-office download buttons. Column names and order are part of the
// format consumed by the shop's spreadsheet templates; do not reorder.
package export

import (
	"encoding/csv"
	"strings"
	"time"

	"github.com/fixware/repairdesk/internal/domain"
)

var requestHeader = []string{
	"Ticket ID", "Customer Name", "Email", "Phone", "Address", "Service Type",
	"Description", "Custom Service", "Urgency", "Preferred Date", "Status",
	"Created At", "Updated At",
}

var userHeader = []string{
	"User ID", "Name", "Email", "Phone", "Street", "City", "State", "Zip Code",
	"Created At", "Updated At",
}

var userHistoryHeader = []string{
	"User Name", "User Email", "User Phone", "User ID", "Ticket ID", "Service Type",
	"Description", "Custom Service", "Urgency", "Preferred Date", "Status",
	"Created At", "Updated At", "Address",
}

// ServiceRequestsCSV serializes requests into the ticket export format.
func ServiceRequestsCSV(requests []domain.ServiceRequest) string {
	rows := make([][]string, 0, len(requests)+1)
	rows = append(rows, requestHeader)
	for _, req := range requests {
		rows = append(rows, []string{
			req.ID,
			req.CustomerName,
			req.Email,
			req.Phone,
			req.Address,
			string(req.ServiceType),
			req.Description,
			req.CustomService,
			string(req.Urgency),
			req.PreferredDate,
			string(req.Status),
			timestampCell(req.CreatedAt),
			timestampCell(req.UpdatedAt),
		})
	}
	return render(rows)
}

// UserProfilesCSV serializes profiles into the user export format.
func UserProfilesCSV(profiles []domain.UserProfile) string {
	rows := make([][]string, 0, len(profiles)+1)
	rows = append(rows, userHeader)
	for _, profile := range profiles {
		rows = append(rows, []string{
			profile.UID,
			profile.Name,
			profile.Email,
			profile.Phone,
			profile.Address.Street,
			profile.Address.City,
			profile.Address.State,
			profile.Address.ZipCode,
			timestampCell(profile.CreatedAt),
			timestampCell(profile.UpdatedAt),
		})
	}
	return render(rows)
}

// UserHistoryCSV serializes one customer's requests into the per-user export
// format, repeating the profile columns on every row.
func UserHistoryCSV(profile domain.UserProfile, requests []domain.ServiceRequest) string {
	rows := make([][]string, 0, len(requests)+1)
	rows = append(rows, userHistoryHeader)
	for _, req := range requests {
		rows = append(rows, []string{
			profile.Name,
			profile.Email,
			profile.Phone,
			profile.UID,
			req.ID,
			string(req.ServiceType),
			req.Description,
			req.CustomService,
			string(req.Urgency),
			req.PreferredDate,
			string(req.Status),
			timestampCell(req.CreatedAt),
			timestampCell(req.UpdatedAt),
			req.Address,
		})
	}
	return render(rows)
}

func timestampCell(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func render(rows [][]string) string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	for _, row := range rows {
		_ = w.Write(row)
	}
	w.Flush()
	return sb.String()
}
