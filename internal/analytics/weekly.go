package analytics

import (
	"time"

	"github.com/google/uuid"
)

// DayStat is the activity total for one calendar day.
type DayStat struct {
	Date     time.Time `json:"date"`
	Sessions int       `json:"sessions"`
	Sets     int       `json:"sets"`
	Reps     int       `json:"reps"`
	Volume   float64   `json:"volume"`
}

// WeeklySummary is the day-by-day activity breakdown over a range.
type WeeklySummary struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
	Days []DayStat `json:"days"`
}

// SessionSummary is the per-session totals line.
type SessionSummary struct {
	SessionID  uuid.UUID  `json:"session_id"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Sets       int        `json:"sets"`
	Reps       int        `json:"reps"`
	Volume     float64    `json:"volume"`
}

// BuildWeeklySummary accumulates sessions, sets, reps and volume into one
// bucket per calendar day of [from, to]. Every day in the range appears, even
// with no activity.
func BuildWeeklySummary(in Input, from, to time.Time) WeeklySummary {
	from, to = DayOf(from), DayOf(to)

	index := make(map[time.Time]int)
	var days []DayStat
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		index[d] = len(days)
		days = append(days, DayStat{Date: d})
	}

	sessions := in.sessionIndex()
	for _, s := range in.Sessions {
		if i, ok := index[DayOf(s.StartedAt)]; ok {
			days[i].Sessions++
		}
	}

	for _, ws := range in.Sets {
		s, ok := sessions[ws.SessionID]
		if !ok {
			continue
		}
		i, ok := index[DayOf(s.StartedAt)]
		if !ok {
			continue
		}
		days[i].Sets++
		if ws.Reps != nil {
			days[i].Reps += *ws.Reps
		}
		if v, ok := mainSetVolume(ws); ok {
			days[i].Volume += v
		}
	}

	if days == nil {
		days = []DayStat{}
	}
	return WeeklySummary{From: from, To: to, Days: days}
}

// SessionSummaries returns session totals in the order sessions were
// supplied.
func SessionSummaries(in Input) []SessionSummary {
	setsBySession := make(map[uuid.UUID][]int)
	for i, ws := range in.Sets {
		setsBySession[ws.SessionID] = append(setsBySession[ws.SessionID], i)
	}

	out := make([]SessionSummary, 0, len(in.Sessions))
	for _, s := range in.Sessions {
		summary := SessionSummary{
			SessionID:  s.ID,
			StartedAt:  s.StartedAt,
			FinishedAt: s.FinishedAt,
		}
		for _, i := range setsBySession[s.ID] {
			ws := in.Sets[i]
			summary.Sets++
			if ws.Reps != nil {
				summary.Reps += *ws.Reps
			}
			if v, ok := mainSetVolume(ws); ok {
				summary.Volume += v
			}
		}
		out = append(out, summary)
	}
	return out
}
