package availability

import "time"

// Wall-clock times travel as "15:04" strings, same convention as the
// stored columns. Zero-padded strings also compare correctly with <.
const LayoutHM = "15:04"

func ParseHM(hm string) (time.Time, error) {
	return time.Parse(LayoutHM, hm)
}

// AddHours shifts a wall-clock value by whole hours. Returns "" for a
// malformed input.
func AddHours(hm string, hours int) string {
	t, err := ParseHM(hm)
	if err != nil {
		return ""
	}
	return t.Add(time.Duration(hours) * time.Hour).Format(LayoutHM)
}

// Duration between two wall-clock values on the same day.
func Duration(startHM, endHM string) (time.Duration, error) {
	start, err := ParseHM(startHM)
	if err != nil {
		return 0, err
	}
	end, err := ParseHM(endHM)
	if err != nil {
		return 0, err
	}
	return end.Sub(start), nil
}

// At pins a wall-clock value onto a calendar date.
func At(date time.Time, hm string) (time.Time, error) {
	t, err := ParseHM(hm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	), nil
}

// DateOnly truncates a timestamp to its calendar date.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDate compares two timestamps by calendar date, ignoring location
// differences between a stored DATE column and an in-memory value.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
