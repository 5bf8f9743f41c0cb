package service

import (
	"time"

	"github.com/lit-planner/scheduler-api/internal/models"
)

// Overlaps reports whether the half-open ranges [aStart, aEnd) and
// [bStart, bEnd) intersect: aStart < bEnd && bStart < aEnd. Ranges that
// touch at a boundary do not overlap, so back-to-back shifts never conflict.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// FilterOverlapping returns the assignments whose shift window overlaps
// [start, end).
func FilterOverlapping(assignments []models.AssignmentDetail, start, end time.Time) []models.AssignmentDetail {
	var overlapping []models.AssignmentDetail
	for _, a := range assignments {
		if Overlaps(a.StartTime, a.EndTime, start, end) {
			overlapping = append(overlapping, a)
		}
	}
	return overlapping
}

// ExcludeAssignment removes the assignment with the given id from the slice.
// Swap re-validation uses it to keep the shift being traded out of its own
// conflict set.
func ExcludeAssignment(assignments []models.AssignmentDetail, id string) []models.AssignmentDetail {
	filtered := make([]models.AssignmentDetail, 0, len(assignments))
	for _, a := range assignments {
		if a.ID != id {
			filtered = append(filtered, a)
		}
	}
	return filtered
}
