package domain

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(t *testing.T, date, tm, groupNames string) Post {
	t.Helper()
	d, err := ParseDate(date)
	require.NoError(t, err)
	return Post{ProgramID: "hybrid", Date: d, Time: tm, Type: "M", GroupNames: groupNames, IsPublished: true}
}

func TestAggregateSingleHour(t *testing.T) {
	got := Aggregate([]Post{
		post(t, "2024-05-01", "09:00", "A、B"),
		post(t, "2024-05-01", "09:30", ""),
	})

	require.Len(t, got, 1)
	assert.Equal(t, "2024-05-01", got[0].Date)
	assert.Equal(t, "水", got[0].Weekday)
	require.Len(t, got[0].Hours, 1)
	h := got[0].Hours[0]
	assert.Equal(t, "09", h.Hour)
	require.Len(t, h.Entries, 2)
	assert.Equal(t, "09:00", h.Entries[0].Time)
	assert.Equal(t, []string{"A", "B"}, h.Entries[0].Names)
	assert.Equal(t, "09:30", h.Entries[1].Time)
	assert.Equal(t, []string{}, h.Entries[1].Names)
}

func TestAggregateCapsDates(t *testing.T) {
	var posts []Post
	for day := 1; day <= 10; day++ {
		posts = append(posts, post(t, fmt.Sprintf("2024-05-%02d", day), "10:00", ""))
	}

	got := Aggregate(posts)

	require.Len(t, got, MaxDisplayDates)
	assert.Equal(t, "2024-05-10", got[0].Date)
	assert.Equal(t, "2024-05-04", got[len(got)-1].Date)
}

func TestAggregateOrdering(t *testing.T) {
	// deliberately unsorted input
	got := Aggregate([]Post{
		post(t, "2024-04-30", "22:10", ""),
		post(t, "2024-05-02", "13:00", ""),
		post(t, "2024-05-02", "07:05", ""),
		post(t, "2024-05-01", "0915", ""),
		post(t, "2024-05-01", "08:00", ""),
		post(t, "2024-05-02", "07:45", ""),
	})

	require.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.Greater(t, got[i-1].Date, got[i].Date)
	}
	for _, g := range got {
		for i := 1; i < len(g.Hours); i++ {
			assert.Less(t, g.Hours[i-1].Hour, g.Hours[i].Hour)
		}
	}

	may2 := got[0]
	require.Len(t, may2.Hours, 2)
	assert.Equal(t, "07", may2.Hours[0].Hour)
	assert.Equal(t, []string{"07:05", "07:45"}, []string{may2.Hours[0].Entries[0].Time, may2.Hours[0].Entries[1].Time})
	assert.Equal(t, "13", may2.Hours[1].Hour)

	may1 := got[1]
	require.Len(t, may1.Hours, 2)
	assert.Equal(t, "08", may1.Hours[0].Hour)
	assert.Equal(t, OtherHourLabel, may1.Hours[1].Hour)
	assert.Equal(t, "0915", may1.Hours[1].Entries[0].Time)
}

func TestAggregateEmpty(t *testing.T) {
	got := Aggregate(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestWeekdayLabels(t *testing.T) {
	// 2024-05-06 is a Monday
	start := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	want := []string{"月", "火", "水", "木", "金", "土", "日"}
	for i, w := range want {
		d := start.AddDate(0, 0, i)
		got := Aggregate([]Post{{Date: d, Time: "12:00"}})
		require.Len(t, got, 1)
		assert.Equal(t, w, got[0].Weekday, d.Format(DateLayout))
	}
}

func TestHourLabel(t *testing.T) {
	assert.Equal(t, "09", HourLabel("09:15"))
	assert.Equal(t, "25", HourLabel("25:30"))
	assert.Equal(t, OtherHourLabel, HourLabel("0915"))
	assert.Equal(t, OtherHourLabel, HourLabel(""))
	assert.Equal(t, "", HourLabel(":30"))
}

func TestSplitNamesRoundTrip(t *testing.T) {
	for _, in := range []string{"A", "A、B", "太郎、花子、次郎", "、", "A、、B"} {
		assert.Equal(t, in, strings.Join(SplitNames(in), GroupNamesSeparator))
	}
	assert.Equal(t, []string{}, SplitNames(""))
}
