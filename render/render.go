// Package render formats the client views for the terminal.
package render

import (
	"embed"
	"fmt"
	"io"
	"text/template"

	"github.com/bookbazaar/bookbazaar/model"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("render").Funcs(template.FuncMap{
	"price": formatPrice,
}).ParseFS(templateFS, "templates/*.tmpl"))

func formatPrice(cents int) string {
	return fmt.Sprintf("$%d", cents)
}

// BookCard is one catalog entry plus the viewer's favorite mark.
type BookCard struct {
	Book     *model.Book
	Favorite bool
}

// HasDiscount controls the struck-through price markup.
func (c BookCard) HasDiscount() bool {
	return c.Book.DiscountPercentage > 0
}

type bookListView struct {
	Cards       []BookCard
	Placeholder string
}

// BookList writes the catalog. An empty catalog prints the placeholder.
func BookList(w io.Writer, cards []BookCard) error {
	view := bookListView{Cards: cards}
	if len(cards) == 0 {
		view.Placeholder = "No books available yet."
	}
	return templates.ExecuteTemplate(w, "book_list.tmpl", view)
}

type bookDetailView struct {
	Card BookCard
}

func BookDetail(w io.Writer, card BookCard) error {
	return templates.ExecuteTemplate(w, "book_detail.tmpl", bookDetailView{Card: card})
}

type cartView struct {
	Items []model.CartItem
	Total int
}

func Cart(w io.Writer, items []model.CartItem, total int) error {
	return templates.ExecuteTemplate(w, "cart.tmpl", cartView{Items: items, Total: total})
}

type pendingView struct {
	Books []*model.Book
}

// PendingList writes the review queue for the admin.
func PendingList(w io.Writer, books []*model.Book) error {
	return templates.ExecuteTemplate(w, "pending.tmpl", pendingView{Books: books})
}

type navView struct {
	User  *model.SessionUser
	Admin bool
}

// Nav writes the header: the entries are recomputed from the session every
// time, so repeated calls render the same thing.
func Nav(w io.Writer, user *model.SessionUser, admin bool) error {
	return templates.ExecuteTemplate(w, "nav.tmpl", navView{User: user, Admin: admin})
}
