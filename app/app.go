// Package app wires the API client, the local state and the views into
// the flows a shopper or the admin walks through.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/bookbazaar/bookbazaar/authz"
	"github.com/bookbazaar/bookbazaar/client"
	"github.com/bookbazaar/bookbazaar/log"
	"github.com/bookbazaar/bookbazaar/model"
	"github.com/bookbazaar/bookbazaar/render"
	"github.com/bookbazaar/bookbazaar/state"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type App struct {
	api   *client.Client
	state *state.AppState
	out   io.Writer
}

func New(api *client.Client, st *state.AppState, out io.Writer) *App {
	a := &App{api: api, state: st, out: out}
	// The header tracks the session, login and logout only change state.
	st.Subscribe(func(topic state.Topic) {
		if topic != state.TopicSession {
			return
		}
		if err := a.Nav(); err != nil {
			log.Error("Failed to redraw header", zap.Error(err))
		}
	})
	return a
}

// Init loads persisted state and draws the header. Subscribers registered
// before Init see the hydrated state immediately.
func (a *App) Init() error {
	if err := a.state.Hydrate(); err != nil {
		return errors.Wrap(err, "failed to hydrate state")
	}
	if user := a.state.CurrentUser(); user != nil && user.Token != "" {
		a.api.SetToken(user.Token)
	}
	return a.Nav()
}

// Nav draws the header for the current session. Calling it repeatedly is
// harmless, it only reads state.
func (a *App) Nav() error {
	user := a.state.CurrentUser()
	admin := user != nil && authz.IsAdmin(user.Email)
	return render.Nav(a.out, user, admin)
}

// Register creates an account. The password check happens here, a
// mismatch never reaches the server.
func (a *App) Register(ctx context.Context, name, email, password, confirm string) error {
	if password != confirm {
		fmt.Fprintln(a.out, "Passwords do not match.")
		return nil
	}

	if err := a.api.Register(ctx, name, email, password); err != nil {
		if errors.Is(err, client.ErrEmailExists) {
			fmt.Fprintln(a.out, "That email is already registered.")
			return nil
		}
		return errors.Wrap(err, "registration failed")
	}
	fmt.Fprintln(a.out, "Registered. You can log in now.")
	return nil
}

func (a *App) Login(ctx context.Context, email, password string) error {
	user, err := a.api.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, client.ErrInvalidCredentials) {
			fmt.Fprintln(a.out, "Invalid email or password.")
			return nil
		}
		return errors.Wrap(err, "login failed")
	}

	a.state.SetSession(user)
	log.Debug("User logged in", zap.String("email", user.Email))
	return nil
}

func (a *App) Logout() error {
	a.api.SetToken("")
	a.state.ClearSession()
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// ShowBooks fetches the catalog, caches it and renders it. When the fetch
// fails the cached catalog is shown instead.
func (a *App) ShowBooks(ctx context.Context) error {
	books, err := a.api.ListBooks(ctx)
	if err != nil {
		log.Warn("Falling back to cached catalog", zap.Error(err))
		books = a.state.Books()
	} else {
		a.state.ReplaceBooks(books)
	}

	return render.BookList(a.out, a.cards(books))
}

func (a *App) cards(books []*model.Book) []render.BookCard {
	cards := make([]render.BookCard, 0, len(books))
	for _, book := range books {
		cards = append(cards, render.BookCard{
			Book:     book,
			Favorite: a.state.IsFavorite(book.UID),
		})
	}
	return cards
}

// ShowBookDetail re-fetches the catalog and renders one book from it.
func (a *App) ShowBookDetail(ctx context.Context, id string) error {
	books, err := a.api.ListBooks(ctx)
	if err != nil {
		log.Warn("Falling back to cached catalog", zap.Error(err))
		books = a.state.Books()
	} else {
		a.state.ReplaceBooks(books)
	}

	for _, book := range books {
		if book.UID == id {
			return render.BookDetail(a.out, render.BookCard{
				Book:     book,
				Favorite: a.state.IsFavorite(book.UID),
			})
		}
	}

	fmt.Fprintln(a.out, "Book not found.")
	return nil
}
