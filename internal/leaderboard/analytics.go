package leaderboard

import (
	"sort"

	model "github.com/novaxiii/agency-backend/internal/models"
)

// percent returns num/den*100, or 0 when den is 0.
func percent(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den) * 100
}

func ratio(num float64, den int) float64 {
	if den == 0 {
		return 0
	}
	return num / float64(den)
}

func agentName(u model.User) string {
	return u.FirstName + " " + u.LastName
}

// Conversion computes the call → appointment → sit → sale funnel per user,
// best close rate first.
func Conversion(window model.Window, records []model.PerformanceRecord, users []model.User) (rates []model.ConversionRates, orphans int) {
	byID := indexUsers(users)
	rates = []model.ConversionRates{}

	for _, g := range groupByUser(window, records, nil) {
		u, ok := byID[g.userID]
		if !ok {
			orphans++
			continue
		}
		t := g.totals
		rates = append(rates, model.ConversionRates{
			UserID:          g.userID,
			AgentName:       agentName(u),
			AgencyName:      u.AgencyName,
			AppointmentRate: percent(t.Appointments, t.Calls),
			ShowRate:        percent(t.Sits, t.Appointments),
			CloseRate:       percent(t.Sales, t.Sits),
			AvgALPPerSale:   ratio(t.ALP+t.RefALP, t.Sales),
		})
	}

	sort.SliceStable(rates, func(i, j int) bool {
		return rates[i].CloseRate > rates[j].CloseRate
	})
	return rates, orphans
}

// Referrals analyses referral-sourced production. Only days with at least one
// referral count.
func Referrals(window model.Window, records []model.PerformanceRecord, users []model.User) (out []model.ReferralEfficiency, orphans int) {
	byID := indexUsers(users)
	out = []model.ReferralEfficiency{}

	withRefs := func(r model.PerformanceRecord) bool { return r.Refs > 0 }
	for _, g := range groupByUser(window, records, withRefs) {
		u, ok := byID[g.userID]
		if !ok {
			orphans++
			continue
		}
		t := g.totals
		out = append(out, model.ReferralEfficiency{
			UserID:             g.userID,
			AgentName:          agentName(u),
			AgencyName:         u.AgencyName,
			TotalRefs:          t.Refs,
			RefAppointmentRate: percent(t.RefAppointments, t.Refs),
			RefCloseRate:       percent(t.RefSales, t.RefAppointments),
			AvgRefALPPerSale:   ratio(t.RefALP, t.RefSales),
			AvgRefValuePerRef:  ratio(t.RefALP, t.Refs),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AvgRefValuePerRef > out[j].AvgRefValuePerRef
	})
	return out, orphans
}

type monthKey struct {
	userID string
	year   int
	month  int
}

// Monthly sums alp+refAlp per user per calendar month, oldest month first.
func Monthly(window model.Window, records []model.PerformanceRecord, users []model.User) (out []model.MonthlyALP, orphans int) {
	byID := indexUsers(users)
	index := make(map[monthKey]int)
	out = []model.MonthlyALP{}
	dropped := make(map[string]bool)

	for _, r := range records {
		if !window.Contains(r.Date) {
			continue
		}
		u, ok := byID[r.UserID]
		if !ok {
			if !dropped[r.UserID] {
				dropped[r.UserID] = true
				orphans++
			}
			continue
		}
		k := monthKey{userID: r.UserID, year: r.Date.Year(), month: int(r.Date.Month())}
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, model.MonthlyALP{
				UserID:     r.UserID,
				Year:       k.year,
				Month:      k.month,
				AgentName:  agentName(u),
				AgencyName: u.AgencyName,
			})
		}
		out[i].MonthlyALP += r.ALP + r.RefALP
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out, orphans
}
