package api

import (
	"strconv"
	"strings"

	"github.com/lei/jobtabs/internal/models"
)

// FilterJobs filters jobs by a case-insensitive search on title and company
func FilterJobs(jobs []models.Job, search string) []models.Job {
	if search == "" {
		return jobs
	}

	filtered := make([]models.Job, 0, len(jobs))
	searchLower := strings.ToLower(search)

	for _, j := range jobs {
		if strings.Contains(strings.ToLower(j.Title), searchLower) ||
			strings.Contains(strings.ToLower(j.Company), searchLower) {
			filtered = append(filtered, j)
		}
	}

	return filtered
}

// parseIndexParam parses a selection index. Any integer is accepted,
// including negative values.
func parseIndexParam(value string) (int, bool) {
	index, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, false
	}
	return index, true
}
