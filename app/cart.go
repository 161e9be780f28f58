package app

import (
	"fmt"

	"github.com/bookbazaar/bookbazaar/model"
	"github.com/bookbazaar/bookbazaar/render"
)

// AddToCart puts a cached catalog book into the cart at its effective
// price. The book must have been listed before.
func (a *App) AddToCart(bookID string) error {
	book := a.state.BookByID(bookID)
	if book == nil {
		fmt.Fprintln(a.out, "Book not found. List the books first.")
		return nil
	}

	a.state.AddToCart(model.CartItem{
		Title: book.Title,
		Price: book.EffectivePrice(),
	})
	fmt.Fprintf(a.out, "Added %q to the cart.\n", book.Title)
	return nil
}

// RemoveFromCart drops a cart line by index. Bad indexes are ignored.
func (a *App) RemoveFromCart(index int) error {
	a.state.RemoveFromCart(index)
	return a.ShowCart()
}

func (a *App) ShowCart() error {
	return render.Cart(a.out, a.state.CartItems(), a.state.CartTotal())
}
