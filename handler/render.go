package handler

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"radioboard/domain"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"
)

type PostDTO struct {
	ID          int64
	ProgramID   string
	Date        string
	Time        string
	Type        string
	Name        string
	Title       string
	GroupNames  string
	IsPublished bool
}

func toPostDTO(p domain.Post) PostDTO {
	return PostDTO{
		ID:          p.ID,
		ProgramID:   p.ProgramID,
		Date:        domain.FormatDate(p.Date),
		Time:        p.Time,
		Type:        p.Type,
		Name:        p.Name,
		Title:       p.Title,
		GroupNames:  p.GroupNames,
		IsPublished: p.IsPublished,
	}
}

func toPostDTOs(posts []domain.Post) []PostDTO {
	out := make([]PostDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostDTO(p))
	}
	return out
}

type errorPage struct {
	Code    int
	Message string
}

// httpError maps board errors onto HTTP statuses.
func httpError(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "投稿が見つかりません").SetInternal(err)
	case errors.Is(err, domain.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
	}
}

func customHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if s, ok := he.Message.(string); ok {
			msg = s
		}
		if code == http.StatusInternalServerError {
			msg = http.StatusText(code)
		}
		if c.Echo().Debug && he.Internal != nil {
			msg += ": " + he.Internal.Error()
		}
	}
	switch code {
	case http.StatusNotFound, http.StatusUnauthorized:
	default:
		slog.Error("request failed", "status", code, "uri", c.Request().RequestURI, "err", err)
	}
	if code == http.StatusUnauthorized {
		msg = "このサイトを見るにはログインが必要です。正しいIDとパスワードを入力してください。"
	}

	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		err = c.JSON(code, map[string]string{"error": msg})
	} else if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.Render(code, "error.html", errorPage{Code: code, Message: msg})
	}
	if err != nil {
		slog.Error("error page failed", "err", err)
	}
}

func mdToHTML(md string) []byte {
	// create markdown parser with extensions
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs | parser.NoEmptyLineBeforeBlock
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse([]byte(md))

	htmlFlags := html.CommonFlags | html.HrefTargetBlank
	opts := html.RendererOptions{Flags: htmlFlags}
	renderer := html.NewRenderer(opts)

	return markdown.Render(doc, renderer)
}

func safeMd(content string) template.HTML {
	return template.HTML(bluemonday.UGCPolicy().SanitizeBytes(mdToHTML(content)))
}
