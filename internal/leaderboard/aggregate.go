// Package leaderboard ranks agents by production over a time window and
// derives the funnel analytics shown to managers.
package leaderboard

import (
	"sort"

	model "github.com/novaxiii/agency-backend/internal/models"
)

// group is the running total of one user's records, in discovery order.
type group struct {
	userID string
	totals model.Metrics
	count  int
}

// groupByUser filters records to the window and sums them per user.
// Groups keep the order in which their first record was seen.
func groupByUser(window model.Window, records []model.PerformanceRecord, keep func(model.PerformanceRecord) bool) []*group {
	index := make(map[string]*group)
	var groups []*group

	for _, r := range records {
		if !window.Contains(r.Date) {
			continue
		}
		if keep != nil && !keep(r) {
			continue
		}
		g, ok := index[r.UserID]
		if !ok {
			g = &group{userID: r.UserID}
			index[r.UserID] = g
			groups = append(groups, g)
		}
		g.totals.Add(r.Metrics)
		g.count++
	}
	return groups
}

func indexUsers(users []model.User) map[string]model.User {
	byID := make(map[string]model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID
}

// Aggregate builds the ranked leaderboard for window. Groups whose user is
// unknown are dropped; their number is returned as orphans.
func Aggregate(window model.Window, records []model.PerformanceRecord, users []model.User) (entries []model.LeaderboardEntry, orphans int) {
	byID := indexUsers(users)
	entries = []model.LeaderboardEntry{}

	for _, g := range groupByUser(window, records, nil) {
		u, ok := byID[g.userID]
		if !ok {
			orphans++
			continue
		}
		entries = append(entries, model.LeaderboardEntry{
			UserID:               g.userID,
			FirstName:            u.FirstName,
			LastName:             u.LastName,
			AgencyName:           u.AgencyName,
			AgentType:            u.AgentType,
			ProfileImage:         u.ProfileImage,
			TotalALP:             g.totals.ALP,
			TotalRefALP:          g.totals.RefALP,
			TotalNetALP:          g.totals.ALP + g.totals.RefALP,
			TotalCalls:           g.totals.Calls,
			TotalAppointments:    g.totals.Appointments,
			TotalSits:            g.totals.Sits,
			TotalSales:           g.totals.Sales,
			TotalRefs:            g.totals.Refs,
			TotalRefAppointments: g.totals.RefAppointments,
			TotalRefSales:        g.totals.RefSales,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalNetALP > entries[j].TotalNetALP
	})
	return entries, orphans
}
