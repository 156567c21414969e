package waste

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"
)

// ParseCSV reads reporter spreadsheets exported as CSV. Header names are
// matched case-insensitively and column order is free. Measure columns are
// kept as raw text; only year and month must parse, and month must be 1-12.
// Expected columns: district, school, year, month, enrollment, recycle_lbs,
// compost_lbs.
func ParseCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	hdr, err := cr.Read()
	if err != nil {
		return nil, err
	}
	idx := map[string]int{}
	for i, h := range hdr {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	required := []string{"district", "school", "year", "month", "enrollment", "recycle_lbs", "compost_lbs"}
	for _, k := range required {
		if _, ok := idx[k]; !ok {
			return nil, errors.New("missing column: " + k)
		}
	}

	var out []Record
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		year, err := strconv.Atoi(strings.TrimSpace(rec[idx["year"]]))
		if err != nil {
			return nil, errors.New("line " + strconv.Itoa(line) + ": bad year")
		}
		month, err := strconv.Atoi(strings.TrimSpace(rec[idx["month"]]))
		if err != nil || month < 1 || month > 12 {
			return nil, errors.New("line " + strconv.Itoa(line) + ": bad month")
		}
		out = append(out, Record{
			District:   strings.TrimSpace(rec[idx["district"]]),
			School:     strings.TrimSpace(rec[idx["school"]]),
			Year:       year,
			Month:      month,
			Enrollment: rec[idx["enrollment"]],
			RecycleLbs: rec[idx["recycle_lbs"]],
			CompostLbs: rec[idx["compost_lbs"]],
		})
	}
	return out, nil
}
