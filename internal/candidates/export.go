package candidates

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

var exportHeader = []string{
	"Name", "Email", "Phone", "LinkedIn", "Role", "Stage", "Score", "Source", "Created",
}

// ExportCSV writes candidates (optionally filtered by project) as CSV.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer, projectID string) error {
	list, err := s.Repo.List(ctx, Filter{ProjectID: projectID})
	if err != nil {
		return err
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return err
	}
	for _, c := range list {
		score := ""
		if c.Score != nil {
			score = strconv.Itoa(*c.Score)
		}
		record := []string{
			c.Name, c.Email, c.Phone, c.LinkedIn, c.Role, c.Stage,
			score, c.Source, c.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
