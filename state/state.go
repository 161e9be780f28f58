// Package state holds the client-side application state: cart, session,
// favorites and the cached catalog. Mutations are written through to the
// local store and broadcast to subscribers.
package state

import (
	"sync"
	"time"

	"github.com/bookbazaar/bookbazaar/localstore"
	"github.com/bookbazaar/bookbazaar/log"
	"github.com/bookbazaar/bookbazaar/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrNoSession is returned by operations that need a logged-in user.
var ErrNoSession = errors.New("no active session")

// Topic names a slice of the state that changed.
type Topic string

const (
	TopicCart      Topic = "cart"
	TopicSession   Topic = "session"
	TopicFavorites Topic = "favorites"
	TopicBooks     Topic = "books"
)

type AppState struct {
	mu          sync.Mutex
	local       *localstore.Store
	cart        []model.CartItem
	favorites   []model.Favorite
	books       []*model.Book
	session     *model.SessionUser
	subscribers []func(Topic)
}

func New(local *localstore.Store) *AppState {
	return &AppState{local: local}
}

// Subscribe registers fn to run after every state change. Callbacks run
// synchronously on the mutating goroutine.
func (s *AppState) Subscribe(fn func(Topic)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Hydrate loads persisted state from the local store. Missing keys leave
// the zero state in place.
func (s *AppState) Hydrate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.local.GetJSON(localstore.KeyCart, &s.cart); err != nil {
		return errors.Wrap(err, "failed to hydrate cart")
	}
	if _, err := s.local.GetJSON(localstore.KeyFavorites, &s.favorites); err != nil {
		return errors.Wrap(err, "failed to hydrate favorites")
	}
	if _, err := s.local.GetJSON(localstore.KeyBooks, &s.books); err != nil {
		return errors.Wrap(err, "failed to hydrate books")
	}

	var user model.SessionUser
	ok, err := s.local.GetJSON(localstore.KeyCurrentUser, &user)
	if err != nil {
		return errors.Wrap(err, "failed to hydrate session")
	}
	if ok {
		s.session = &user
	}
	return nil
}

// notify runs the subscribers outside the state lock, so a callback may
// read state without deadlocking.
func (s *AppState) notify(topic Topic) {
	s.mu.Lock()
	subscribers := make([]func(Topic), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(topic)
	}
}

func (s *AppState) persist(key string, v any) {
	if err := s.local.SetJSON(key, v); err != nil {
		log.Error("Failed to persist state", zap.String("key", key), zap.Error(err))
	}
}

// AddToCart appends an item. Duplicates are allowed, each copy is a line.
func (s *AppState) AddToCart(item model.CartItem) {
	s.mu.Lock()
	s.cart = append(s.cart, item)
	s.persist(localstore.KeyCart, s.cart)
	s.mu.Unlock()

	s.notify(TopicCart)
}

// RemoveFromCart drops the item at index. Out of range indexes are a no-op.
func (s *AppState) RemoveFromCart(index int) {
	s.mu.Lock()
	if index < 0 || index >= len(s.cart) {
		s.mu.Unlock()
		return
	}
	s.cart = append(s.cart[:index], s.cart[index+1:]...)
	s.persist(localstore.KeyCart, s.cart)
	s.mu.Unlock()

	s.notify(TopicCart)
}

func (s *AppState) CartItems() []model.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]model.CartItem, len(s.cart))
	copy(items, s.cart)
	return items
}

func (s *AppState) CartTotal() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CartTotal(s.cart)
}

func (s *AppState) SetSession(user *model.SessionUser) {
	s.mu.Lock()
	s.session = user
	s.persist(localstore.KeyCurrentUser, user)
	s.mu.Unlock()

	s.notify(TopicSession)
}

func (s *AppState) ClearSession() {
	s.mu.Lock()
	s.session = nil
	if err := s.local.RemoveItem(localstore.KeyCurrentUser); err != nil {
		log.Error("Failed to clear session", zap.Error(err))
	}
	s.mu.Unlock()

	s.notify(TopicSession)
}

// CurrentUser returns the active session, nil when logged out.
func (s *AppState) CurrentUser() *model.SessionUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// ToggleFavorite flips the favorite mark for the current user. It reports
// whether the book is a favorite afterwards. Without a session it fails.
func (s *AppState) ToggleFavorite(bookID string) (bool, error) {
	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return false, ErrNoSession
	}

	added := true
	email := s.session.Email
	for i, fav := range s.favorites {
		if fav.BookID == bookID && fav.UserEmail == email {
			s.favorites = append(s.favorites[:i], s.favorites[i+1:]...)
			added = false
			break
		}
	}
	if added {
		s.favorites = append(s.favorites, model.Favorite{
			BookID:    bookID,
			UserEmail: email,
			AddedAt:   time.Now().Format(time.RFC3339),
		})
	}
	s.persist(localstore.KeyFavorites, s.favorites)
	s.mu.Unlock()

	s.notify(TopicFavorites)
	return added, nil
}

// IsFavorite reports whether the current user marked the book. Always
// false when logged out.
func (s *AppState) IsFavorite(bookID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return false
	}
	for _, fav := range s.favorites {
		if fav.BookID == bookID && fav.UserEmail == s.session.Email {
			return true
		}
	}
	return false
}

// FavoriteIDs lists the current user's favorite book ids in insertion order.
func (s *AppState) FavoriteIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil
	}
	ids := make([]string, 0, len(s.favorites))
	for _, fav := range s.favorites {
		if fav.UserEmail == s.session.Email {
			ids = append(ids, fav.BookID)
		}
	}
	return ids
}

// ReplaceBooks swaps the cached catalog for a fresh fetch.
func (s *AppState) ReplaceBooks(books []*model.Book) {
	s.mu.Lock()
	s.books = books
	s.persist(localstore.KeyBooks, books)
	s.mu.Unlock()

	s.notify(TopicBooks)
}

func (s *AppState) Books() []*model.Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	books := make([]*model.Book, len(s.books))
	copy(books, s.books)
	return books
}

// BookByID finds a book in the cached catalog, nil when absent.
func (s *AppState) BookByID(id string) *model.Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, book := range s.books {
		if book.UID == id {
			return book
		}
	}
	return nil
}
