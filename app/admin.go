package app

import (
	"context"
	"fmt"

	"github.com/bookbazaar/bookbazaar/authz"
	"github.com/bookbazaar/bookbazaar/render"
	"github.com/pkg/errors"
)

// requireAdmin checks the session locally before any network call. The
// server enforces the same rule again.
func (a *App) requireAdmin() (string, bool) {
	user := a.state.CurrentUser()
	if user == nil || !authz.IsAdmin(user.Email) {
		fmt.Fprintln(a.out, "Admin access only.")
		return "", false
	}
	return user.Email, true
}

// AdminPending shows the uploads waiting for review.
func (a *App) AdminPending(ctx context.Context) error {
	adminEmail, ok := a.requireAdmin()
	if !ok {
		return nil
	}

	books, err := a.api.ListPending(ctx, adminEmail)
	if err != nil {
		return errors.Wrap(err, "failed to list pending books")
	}
	return render.PendingList(a.out, books)
}

// AdminApprove publishes a pending book.
func (a *App) AdminApprove(ctx context.Context, bookID string) error {
	adminEmail, ok := a.requireAdmin()
	if !ok {
		return nil
	}

	if err := a.api.ApproveBook(ctx, bookID, adminEmail); err != nil {
		return errors.Wrap(err, "failed to approve book")
	}
	fmt.Fprintln(a.out, "Book approved.")
	return a.AdminPending(ctx)
}

// AdminReject deletes a pending book.
func (a *App) AdminReject(ctx context.Context, bookID string) error {
	adminEmail, ok := a.requireAdmin()
	if !ok {
		return nil
	}

	if err := a.api.RejectBook(ctx, bookID, adminEmail); err != nil {
		return errors.Wrap(err, "failed to reject book")
	}
	fmt.Fprintln(a.out, "Book rejected.")
	return a.AdminPending(ctx)
}
