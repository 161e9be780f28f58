package app

import (
	"fmt"

	"github.com/bookbazaar/bookbazaar/model"
	"github.com/bookbazaar/bookbazaar/render"
	"github.com/bookbazaar/bookbazaar/state"
	"github.com/pkg/errors"
)

// ToggleFavorite flips the favorite mark on a book. It needs a session.
func (a *App) ToggleFavorite(bookID string) error {
	added, err := a.state.ToggleFavorite(bookID)
	if err != nil {
		if errors.Is(err, state.ErrNoSession) {
			fmt.Fprintln(a.out, "Please log in to favorite books.")
			return nil
		}
		return err
	}

	if added {
		fmt.Fprintln(a.out, "Added to favorites.")
	} else {
		fmt.Fprintln(a.out, "Removed from favorites.")
	}
	return nil
}

// ShowFavorites renders the user's favorites from the cached catalog.
// Favorites whose book is no longer cached are skipped.
func (a *App) ShowFavorites() error {
	if a.state.CurrentUser() == nil {
		fmt.Fprintln(a.out, "Please log in to see your favorites.")
		return nil
	}

	var books []*model.Book
	for _, id := range a.state.FavoriteIDs() {
		if book := a.state.BookByID(id); book != nil {
			books = append(books, book)
		}
	}

	if len(books) == 0 {
		fmt.Fprintln(a.out, "No favorites yet.")
		return nil
	}
	return render.BookList(a.out, a.cards(books))
}
