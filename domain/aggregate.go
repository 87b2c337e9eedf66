package domain

import (
	"sort"
	"strings"
)

// MaxDisplayDates caps how many date groups a program page shows.
const MaxDisplayDates = 7

// OtherHourLabel buckets entries whose time has no ':' separator.
const OtherHourLabel = "その他"

var weekdayLabels = [...]string{"日", "月", "火", "水", "木", "金", "土"}

type Entry struct {
	Type  string   `json:"type"`
	Time  string   `json:"time"`
	Name  string   `json:"name"`
	Title string   `json:"title"`
	Names []string `json:"names"`
}

type HourGroup struct {
	Hour    string  `json:"hour"`
	Entries []Entry `json:"entries"`
}

type DateGroup struct {
	Date    string      `json:"date"`
	Weekday string      `json:"weekday"`
	Hours   []HourGroup `json:"hours"`
}

// HourLabel is the part of t before the first ':', or OtherHourLabel.
func HourLabel(t string) string {
	i := strings.Index(t, ":")
	if i < 0 {
		return OtherHourLabel
	}
	return t[:i]
}

// Aggregate buckets published posts by date (newest first) and hour (ascending),
// keeping source order inside an hour, and returns the MaxDisplayDates newest dates.
func Aggregate(posts []Post) []DateGroup {
	type dateBucket struct {
		group DateGroup
		hours map[string]int
	}
	buckets := map[string]*dateBucket{}
	var dates []string

	for _, p := range posts {
		date := FormatDate(p.Date)
		b, ok := buckets[date]
		if !ok {
			b = &dateBucket{
				group: DateGroup{Date: date, Weekday: weekdayLabels[p.Date.Weekday()]},
				hours: map[string]int{},
			}
			buckets[date] = b
			dates = append(dates, date)
		}
		hour := HourLabel(p.Time)
		i, ok := b.hours[hour]
		if !ok {
			i = len(b.group.Hours)
			b.hours[hour] = i
			b.group.Hours = append(b.group.Hours, HourGroup{Hour: hour})
		}
		b.group.Hours[i].Entries = append(b.group.Hours[i].Entries, Entry{
			Type:  p.Type,
			Time:  p.Time,
			Name:  p.Name,
			Title: p.Title,
			Names: p.Names(),
		})
	}

	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	if len(dates) > MaxDisplayDates {
		dates = dates[:MaxDisplayDates]
	}

	out := make([]DateGroup, 0, len(dates))
	for _, d := range dates {
		g := buckets[d].group
		sort.SliceStable(g.Hours, func(i, j int) bool { return g.Hours[i].Hour < g.Hours[j].Hour })
		out = append(out, g)
	}
	return out
}
