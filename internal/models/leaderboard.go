package model

// LeaderboardEntry is one user's totals over a window. Computed per request, never stored.
type LeaderboardEntry struct {
	UserID               string    `json:"_id"`
	FirstName            string    `json:"firstName"`
	LastName             string    `json:"lastName"`
	AgencyName           string    `json:"agencyName"`
	AgentType            AgentType `json:"agentType"`
	ProfileImage         string    `json:"profileImage"`
	TotalALP             float64   `json:"totalAlp"`
	TotalRefALP          float64   `json:"totalRefAlp"`
	TotalNetALP          float64   `json:"totalNetAlp"`
	TotalCalls           int       `json:"totalCalls"`
	TotalAppointments    int       `json:"totalAppointments"`
	TotalSits            int       `json:"totalSits"`
	TotalSales           int       `json:"totalSales"`
	TotalRefs            int       `json:"totalRefs"`
	TotalRefAppointments int       `json:"totalRefAppointments"`
	TotalRefSales        int       `json:"totalRefSales"`
}

// ConversionRates mesure le funnel appel → rendez-vous → sit → vente (en pourcentage).
type ConversionRates struct {
	UserID          string  `json:"_id"`
	AgentName       string  `json:"agentName"`
	AgencyName      string  `json:"agencyName"`
	AppointmentRate float64 `json:"appointmentRate"`
	ShowRate        float64 `json:"showRate"`
	CloseRate       float64 `json:"closeRate"`
	AvgALPPerSale   float64 `json:"avgAlpPerSale"`
}

type ReferralEfficiency struct {
	UserID             string  `json:"_id"`
	AgentName          string  `json:"agentName"`
	AgencyName         string  `json:"agencyName"`
	TotalRefs          int     `json:"totalRefs"`
	RefAppointmentRate float64 `json:"refAppointmentRate"`
	RefCloseRate       float64 `json:"refCloseRate"`
	AvgRefALPPerSale   float64 `json:"avgRefAlpPerSale"`
	AvgRefValuePerRef  float64 `json:"avgRefValuePerRef"`
}

type MonthlyALP struct {
	UserID     string  `json:"_id"`
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	AgentName  string  `json:"agentName"`
	AgencyName string  `json:"agencyName"`
	MonthlyALP float64 `json:"monthlyAlp"`
}
