package app

import (
	"context"
	"fmt"
	"time"

	"github.com/bookbazaar/bookbazaar/client"
	"github.com/bookbazaar/bookbazaar/model"
	"github.com/bookbazaar/bookbazaar/util"
	"github.com/pkg/errors"
)

// UploadParams is what the seller fills in on the upload form.
type UploadParams struct {
	Title              string
	Author             string
	Publisher          string
	Price              int
	DiscountPercentage int
	Description        string
	// CoverDataURL is the cover as a base64 data URL, optional.
	CoverDataURL string
}

// Upload submits a new book for review. The id, the ISBN and the
// discounted price are generated on this side.
func (a *App) Upload(ctx context.Context, params UploadParams) error {
	user := a.state.CurrentUser()
	if user == nil {
		fmt.Fprintln(a.out, "Please log in to upload books.")
		return nil
	}
	if params.CoverDataURL == "" {
		fmt.Fprintln(a.out, "Please choose a cover image.")
		return nil
	}

	isbn, err := util.GenISBN()
	if err != nil {
		return errors.Wrap(err, "failed to generate ISBN")
	}

	upload := &model.BookUploadRequest{
		UID:                fmt.Sprintf("%d", time.Now().UnixMilli()),
		Title:              params.Title,
		Author:             params.Author,
		Publisher:          params.Publisher,
		Price:              params.Price,
		DiscountPercentage: params.DiscountPercentage,
		DiscountedPrice:    model.ComputeDiscountedPrice(params.Price, params.DiscountPercentage),
		Description:        params.Description,
		CoverImage:         params.CoverDataURL,
		ISBN:               isbn,
		UploadedBy:         user.Email,
	}

	status, err := a.api.UploadBook(ctx, upload)
	if err != nil {
		if errors.Is(err, client.ErrInvalidImage) {
			fmt.Fprintln(a.out, "The cover image could not be read.")
			return nil
		}
		return errors.Wrap(err, "upload failed")
	}

	fmt.Fprintf(a.out, "Book submitted (%s), status: %s. An admin will review it.\n", isbn, status)
	return nil
}
