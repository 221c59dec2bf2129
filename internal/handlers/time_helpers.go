package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const layoutDate = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	return time.Parse(layoutDate, s)
}

// dateRangeQuery reads date_from/date_to, defaulting to the next
// defaultDays days when either side is missing.
func dateRangeQuery(c *gin.Context, defaultDays int) (time.Time, time.Time, bool) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 0, defaultDays)

	if s := c.Query("date_from"); s != "" {
		d, err := parseDate(s)
		if err != nil {
			return from, to, false
		}
		from = d
	}
	if s := c.Query("date_to"); s != "" {
		d, err := parseDate(s)
		if err != nil {
			return from, to, false
		}
		to = d
	}

	return from, to, !to.Before(from)
}

func paramUint(c *gin.Context, key string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}
