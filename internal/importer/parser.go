package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Row is one parsed line of a workout history export.
type Row struct {
	SessionName string
	SessionDate time.Time
	Duration    string
	Exercise    string
	MuscleGroup string
	SetNumber   int
	Weight      *float64
	Reps        *int
	Warmup      bool
	GroupType   string
	GroupOrder  *int
}

// Parse reads a semicolon-delimited workout history export. The first line
// is a header naming the columns; session, date, exercise and set are
// required, the rest are optional.
func Parse(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"session", "date", "exercise", "set"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []Row
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("reading line %d: %w", line, err)
		}
		if len(record) == 0 || (len(record) == 1 && record[0] == "") {
			continue
		}

		date, err := parseSessionDate(field(record, "date"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		setNum, err := strconv.Atoi(field(record, "set"))
		if err != nil {
			return nil, fmt.Errorf("line %d: parsing set number %q: %w", line, field(record, "set"), err)
		}

		row := Row{
			SessionName: field(record, "session"),
			SessionDate: date,
			Duration:    field(record, "duration"),
			Exercise:    field(record, "exercise"),
			MuscleGroup: strings.ToUpper(field(record, "muscle_group")),
			SetNumber:   setNum,
			Warmup:      parseBool(field(record, "warmup")),
			GroupType:   strings.ToUpper(field(record, "group_type")),
		}
		if row.Exercise == "" {
			return nil, fmt.Errorf("line %d: empty exercise name", line)
		}
		if w := field(record, "weight"); w != "" {
			v := parseEuropeanFloat(w)
			row.Weight = &v
		}
		if rp := field(record, "reps"); rp != "" {
			n, err := strconv.Atoi(rp)
			if err != nil {
				return nil, fmt.Errorf("line %d: parsing reps %q: %w", line, rp, err)
			}
			row.Reps = &n
		}
		if g := field(record, "group_order"); g != "" {
			n, err := strconv.Atoi(g)
			if err != nil {
				return nil, fmt.Errorf("line %d: parsing group order %q: %w", line, g, err)
			}
			row.GroupOrder = &n
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// parseSessionDate accepts "2026-02-19 16:54", "2026-02-19 4:54" and plain
// "2026-02-19".
func parseSessionDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02 3:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse date %q", s)
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "y", "wu":
		return true
	}
	return false
}

// parseEuropeanFloat converts a European decimal string to float64.
// "102,5" -> 102.5, "0,5" -> 0.5
func parseEuropeanFloat(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

// parseDuration parses "1:02" (h:mm) or "45" (minutes) session durations.
func parseDuration(s string) (time.Duration, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "hr"))
	if s == "" {
		return 0, false
	}
	if h, m, ok := strings.Cut(s, ":"); ok {
		hours, err1 := strconv.Atoi(strings.TrimSpace(h))
		mins, err2 := strconv.Atoi(strings.TrimSpace(m))
		if err1 != nil || err2 != nil {
			return 0, false
		}
		return time.Duration(hours)*time.Hour + time.Duration(mins)*time.Minute, true
	}
	mins, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return time.Duration(mins) * time.Minute, true
}
