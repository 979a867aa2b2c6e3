package domain

// Recap is one raw row of the weekly timeliness recap as stored by the
// upstream export, before normalization.
type Recap struct {
	WeekStart string
	Code      int
	Region    string
	Sex       string
	AreaType  string
	DoseStage string
	Regime    string
	Timely    int64
	Untimely  int64
	Total     int64
	Ratio     *float64 // stored timely ratio in percent, nil when absent

	// MissingCounts marks a row whose ratio and counts were left blank by the
	// export. Its count fields are not meaningful.
	MissingCounts bool
}
