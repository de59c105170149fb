package ui

import (
	"strconv"

	"github.com/jimmydengpeng/BaziMiao/internal/domain"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func appPage(title string, body ...Node) Node {
	return Doctype(HTML(
		Lang("zh-CN"),
		Attr("data-color-mode", "auto"),
		Head(
			Meta(Charset("utf-8")),
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			TitleEl(Text(title+" | BaziMiao")),
			Link(Rel("icon"), Href("data:,")),
			Script(Raw(themeInitScript)),
			StyleEl(Raw(stylesheet)),
		),
		Body(
			Main(
				Class("layout"),
				Div(
					Class("topbar"),
					H1(Class("page-title"), Text(title)),
					Button(ID("theme-toggle"), Type("button"), Text("明/暗")),
				),
				Group(body),
			),
			Script(Raw(themeToggleScript)),
		),
	))
}

func errorPage(title, message string) Node {
	return appPage(title,
		Div(Class("card"), P(Text(message))),
		P(A(Href("/charts/view"), Text("重新输入"))),
	)
}

// elementClass colours a character by its five-element.
func elementClass(e domain.Element) Node {
	return Class("el-" + e.String())
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func itoa(n int) string { return strconv.Itoa(n) }
