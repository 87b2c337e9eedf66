// Package board implements the public program pages and the admin workflow
// on top of a post store.
package board

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"radioboard/domain"
)

// HistoryDays is the length of the admin page's published history window.
const HistoryDays = 7

// Store is the persistence the board needs. *store.Store implements it.
type Store interface {
	Published(ctx context.Context, programID string) ([]domain.Post, error)
	Drafts(ctx context.Context, programID string) ([]domain.Post, error)
	PublishedSince(ctx context.Context, programID string, since string) ([]domain.Post, error)
	Get(ctx context.Context, id int64) (domain.Post, error)
	Create(ctx context.Context, p domain.Post) (int64, error)
	Update(ctx context.Context, p domain.Post) (string, error)
	Delete(ctx context.Context, id int64) (string, error)
	PublishDrafts(ctx context.Context, programID string) (int64, error)
}

type Board struct {
	store Store
	now   func() time.Time
}

func New(store Store, now func() time.Time) *Board {
	if now == nil {
		now = time.Now
	}
	return &Board{store: store, now: now}
}

// ProgramPage returns the aggregated published history of a program.
func (b *Board) ProgramPage(ctx context.Context, programID string) ([]domain.DateGroup, error) {
	posts, err := b.store.Published(ctx, programID)
	if err != nil {
		return nil, err
	}
	return domain.Aggregate(posts), nil
}

func (b *Board) Drafts(ctx context.Context, programID string) ([]domain.Post, error) {
	return b.store.Drafts(ctx, programID)
}

// RecentHistory returns published posts dated within the last HistoryDays days.
func (b *Board) RecentHistory(ctx context.Context, programID string) ([]domain.Post, error) {
	since := domain.FormatDate(b.now().AddDate(0, 0, -HistoryDays))
	return b.store.PublishedSince(ctx, programID, since)
}

func (b *Board) Get(ctx context.Context, id int64) (domain.Post, error) {
	return b.store.Get(ctx, id)
}

// Add creates an unpublished post for the program.
func (b *Board) Add(ctx context.Context, programID string, in domain.PostInput) (domain.Post, error) {
	date, err := in.Validate()
	if err != nil {
		return domain.Post{}, err
	}
	p := domain.Post{
		ProgramID:  programID,
		Date:       date,
		Time:       in.Time,
		Type:       in.Type,
		Name:       in.Name,
		Title:      in.Title,
		GroupNames: in.GroupNames,
	}
	p.ID, err = b.store.Create(ctx, p)
	if err != nil {
		return domain.Post{}, err
	}
	slog.Info("post.added", "id", p.ID, "program", programID, "date", in.Date, "time", in.Time)
	return p, nil
}

// Publish flips every draft of the program to published and reports how many changed.
func (b *Board) Publish(ctx context.Context, programID string) (int64, string, error) {
	n, err := b.store.PublishDrafts(ctx, programID)
	if err != nil {
		return 0, "", err
	}
	slog.Info("posts.published", "program", programID, "count", n)
	return n, fmt.Sprintf("🚀 %d件のデータをサイトに公開しました！", n), nil
}

// Edit overwrites every mutable field of post id. Optional fields left empty
// in the input are cleared. It returns the post's program id.
func (b *Board) Edit(ctx context.Context, id int64, in domain.PostInput) (string, string, error) {
	date, err := in.Validate()
	if err != nil {
		return "", "", err
	}
	programID, err := b.store.Update(ctx, domain.Post{
		ID:         id,
		Date:       date,
		Time:       in.Time,
		Type:       in.Type,
		Name:       in.Name,
		Title:      in.Title,
		GroupNames: in.GroupNames,
	})
	if err != nil {
		return "", "", err
	}
	slog.Info("post.edited", "id", id, "program", programID)
	return programID, "✏️ データを修正しました", nil
}

// Delete removes post id and returns its program id.
func (b *Board) Delete(ctx context.Context, id int64) (string, error) {
	programID, err := b.store.Delete(ctx, id)
	if err != nil {
		return "", err
	}
	slog.Info("post.deleted", "id", id, "program", programID)
	return programID, nil
}
