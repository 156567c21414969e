package waste

import "github.com/eco-academy/ecoacademy/internal/diversion"

// Record is a persisted waste report. The measure fields keep whatever text
// the reporter typed ("1,234", "n/a", ...); interpretation happens in the
// diversion engine only, so a re-read always normalizes the same way.
type Record struct {
	ID          string `json:"id"`
	District    string `json:"district"`
	School      string `json:"school"`
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	Enrollment  string `json:"enrollment"`
	RecycleLbs  string `json:"recycle_lbs"`
	CompostLbs  string `json:"compost_lbs"`
	SubmittedBy string `json:"submitted_by,omitempty"`
	CreatedAt   int64  `json:"created_at,omitempty"`
}

// Diversion bridges to the engine's input type.
func (r Record) Diversion() diversion.Record {
	return diversion.Record{
		District:   r.District,
		School:     r.School,
		Year:       r.Year,
		Month:      r.Month,
		Enrollment: r.Enrollment,
		RecycleLbs: r.RecycleLbs,
		CompostLbs: r.CompostLbs,
	}
}

func toDiversion(records []Record) []diversion.Record {
	out := make([]diversion.Record, len(records))
	for i, r := range records {
		out[i] = r.Diversion()
	}
	return out
}
