package board

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"radioboard/domain"
	"radioboard/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func newBoard(t *testing.T) (*Board, *store.Store) {
	t.Helper()
	s, err := store.Open(context.Background(), store.DriverSQLite, filepath.Join(t.TempDir(), "board.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return New(s, func() time.Time { return today }), s
}

func input(date, tm string) domain.PostInput {
	return domain.PostInput{Date: date, Time: tm, Type: "M"}
}

func TestAddCreatesDraft(t *testing.T) {
	b, _ := newBoard(t)
	ctx := context.Background()

	p, err := b.Add(ctx, "hybrid", domain.PostInput{Date: "2024-05-01", Time: "09:00", Type: "M", GroupNames: "A、B"})
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.False(t, p.IsPublished)

	drafts, err := b.Drafts(ctx, "hybrid")
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "A、B", drafts[0].GroupNames)
	assert.Equal(t, "", drafts[0].Name)

	page, err := b.ProgramPage(ctx, "hybrid")
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestAddValidation(t *testing.T) {
	b, _ := newBoard(t)
	ctx := context.Background()

	_, err := b.Add(ctx, "hybrid", domain.PostInput{Time: "09:00", Type: "M"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = b.Add(ctx, "hybrid", input("01/05/2024", "09:00"))
	assert.ErrorIs(t, err, domain.ErrValidation)

	drafts, err := b.Drafts(ctx, "hybrid")
	require.NoError(t, err)
	assert.Empty(t, drafts)
}

func TestPublish(t *testing.T) {
	b, _ := newBoard(t)
	ctx := context.Background()

	for _, tm := range []string{"09:00", "09:30", "10:15"} {
		_, err := b.Add(ctx, "hybrid", input("2024-05-09", tm))
		require.NoError(t, err)
	}
	_, err := b.Add(ctx, "baby", input("2024-05-09", "22:00"))
	require.NoError(t, err)

	n, msg, err := b.Publish(ctx, "hybrid")
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
	assert.Contains(t, msg, "3件")

	n, msg, err = b.Publish(ctx, "hybrid")
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
	assert.Contains(t, msg, "0件")

	page, err := b.ProgramPage(ctx, "hybrid")
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "木", page[0].Weekday)
	require.Len(t, page[0].Hours, 2)
	assert.Len(t, page[0].Hours[0].Entries, 2)
	assert.Len(t, page[0].Hours[1].Entries, 1)

	drafts, err := b.Drafts(ctx, "baby")
	require.NoError(t, err)
	assert.Len(t, drafts, 1)
}

func TestProgramPageCapsDates(t *testing.T) {
	b, _ := newBoard(t)
	ctx := context.Background()

	for day := 1; day <= 10; day++ {
		_, err := b.Add(ctx, "mimikoi", input(fmt.Sprintf("2024-04-%02d", day), "23:00"))
		require.NoError(t, err)
	}
	_, _, err := b.Publish(ctx, "mimikoi")
	require.NoError(t, err)

	page, err := b.ProgramPage(ctx, "mimikoi")
	require.NoError(t, err)
	require.Len(t, page, domain.MaxDisplayDates)
	assert.Equal(t, "2024-04-10", page[0].Date)
	assert.Equal(t, "2024-04-04", page[6].Date)
}

func TestRecentHistory(t *testing.T) {
	b, _ := newBoard(t)
	ctx := context.Background()

	for _, d := range []string{"2024-05-02", "2024-05-03", "2024-05-10", "2024-04-20"} {
		_, err := b.Add(ctx, "hybrid", input(d, "08:00"))
		require.NoError(t, err)
	}
	_, err := b.Add(ctx, "hybrid", input("2024-05-10", "09:00"))
	require.NoError(t, err)
	_, _, err = b.Publish(ctx, "hybrid")
	require.NoError(t, err)
	_, err = b.Add(ctx, "hybrid", input("2024-05-10", "10:00"))
	require.NoError(t, err)

	history, err := b.RecentHistory(ctx, "hybrid")
	require.NoError(t, err)
	var got []string
	for _, p := range history {
		got = append(got, domain.FormatDate(p.Date)+" "+p.Time)
	}
	assert.Equal(t, []string{"2024-05-10 09:00", "2024-05-10 08:00", "2024-05-03 08:00"}, got)
}

func TestEdit(t *testing.T) {
	b, _ := newBoard(t)
	ctx := context.Background()

	p, err := b.Add(ctx, "baby", domain.PostInput{Date: "2024-05-01", Time: "22:00", Type: "M", Name: "n", Title: "t", GroupNames: "A"})
	require.NoError(t, err)
	_, _, err = b.Publish(ctx, "baby")
	require.NoError(t, err)

	program, msg, err := b.Edit(ctx, p.ID, domain.PostInput{Date: "2024-05-02", Time: "22:30", Type: "R", Title: "new"})
	require.NoError(t, err)
	assert.Equal(t, "baby", program)
	assert.NotEmpty(t, msg)

	got, err := b.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-02", domain.FormatDate(got.Date))
	assert.Equal(t, "22:30", got.Time)
	assert.Equal(t, "R", got.Type)
	assert.Equal(t, "", got.Name)
	assert.Equal(t, "new", got.Title)
	assert.Equal(t, "", got.GroupNames)
	assert.True(t, got.IsPublished)

	_, _, err = b.Edit(ctx, p.ID, domain.PostInput{Date: "2024-05-02"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDeleteThenNotFound(t *testing.T) {
	b, _ := newBoard(t)
	ctx := context.Background()

	p, err := b.Add(ctx, "hybrid", input("2024-05-01", "09:00"))
	require.NoError(t, err)

	program, err := b.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "hybrid", program)

	_, err = b.Delete(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, _, err = b.Edit(ctx, p.ID, input("2024-05-01", "09:00"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = b.Get(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
