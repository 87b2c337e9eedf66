package handler

import (
	"net/http"
	"strconv"

	"radioboard/domain"

	"github.com/labstack/echo/v4"
)

type postForm struct {
	Date       string `form:"date"`
	Time       string `form:"time"`
	Type       string `form:"type"`
	Name       string `form:"name"`
	Title      string `form:"title"`
	GroupNames string `form:"group_names"`
}

func (f postForm) input() domain.PostInput {
	return domain.PostInput{
		Date:       f.Date,
		Time:       f.Time,
		Type:       f.Type,
		Name:       f.Name,
		Title:      f.Title,
		GroupNames: f.GroupNames,
	}
}

func bindPostForm(c echo.Context) (domain.PostInput, error) {
	var f postForm
	if err := (&echo.DefaultBinder{}).BindBody(c, &f); err != nil {
		return domain.PostInput{}, err
	}
	return f.input(), nil
}

func postID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "投稿が見つかりません")
	}
	return id, nil
}

func adminPath(programID string) string {
	return "/admin/" + programID
}

func (h *Handler) GetAdminDashboard(c echo.Context) error {
	return c.Render(http.StatusOK, "admin-dashboard.html", struct {
		Programs []domain.Program
	}{
		Programs: h.Programs.All(),
	})
}

// GetAdminInput lists a program's drafts and its recently published posts.
func (h *Handler) GetAdminInput(c echo.Context) error {
	ctx := c.Request().Context()
	program, _ := h.Programs.Lookup(c.Param("program"))

	drafts, err := h.Board.Drafts(ctx, program.ID)
	if err != nil {
		return httpError(err)
	}
	history, err := h.Board.RecentHistory(ctx, program.ID)
	if err != nil {
		return httpError(err)
	}

	return c.Render(http.StatusOK, "admin-input.html", struct {
		Program domain.Program
		Flash   string
		Drafts  []PostDTO
		History []PostDTO
	}{
		Program: program,
		Flash:   popFlash(c),
		Drafts:  toPostDTOs(drafts),
		History: toPostDTOs(history),
	})
}

func (h *Handler) NewPost(c echo.Context) error {
	programID := c.Param("program")
	in, err := bindPostForm(c)
	if err != nil {
		return err
	}
	if _, err := h.Board.Add(c.Request().Context(), programID, in); err != nil {
		return httpError(err)
	}
	return c.Redirect(http.StatusFound, adminPath(programID))
}

func (h *Handler) PublishPosts(c echo.Context) error {
	programID := c.Param("program")
	_, msg, err := h.Board.Publish(c.Request().Context(), programID)
	if err != nil {
		return httpError(err)
	}
	if err := setFlash(c, h.FlashSecret, msg); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, adminPath(programID))
}

func (h *Handler) GetEditPostForm(c echo.Context) error {
	id, err := postID(c)
	if err != nil {
		return err
	}
	p, err := h.Board.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.Render(http.StatusOK, "post-edit.html", struct {
		Programs []domain.Program
		Post     PostDTO
	}{
		Programs: h.Programs.All(),
		Post:     toPostDTO(p),
	})
}

func (h *Handler) EditPost(c echo.Context) error {
	id, err := postID(c)
	if err != nil {
		return err
	}
	in, err := bindPostForm(c)
	if err != nil {
		return err
	}
	programID, msg, err := h.Board.Edit(c.Request().Context(), id, in)
	if err != nil {
		return httpError(err)
	}
	if err := setFlash(c, h.FlashSecret, msg); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, adminPath(programID))
}

func (h *Handler) DeletePost(c echo.Context) error {
	id, err := postID(c)
	if err != nil {
		return err
	}
	programID, err := h.Board.Delete(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.Redirect(http.StatusFound, adminPath(programID))
}
