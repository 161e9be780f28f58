package validator

import (
	"github.com/pkg/errors"

	"github.com/bookbazaar/bookbazaar/model"
)

func ValidateBookUploadRequest(req *model.BookUploadRequest) error {
	if req == nil {
		return errors.New("request is nil")
	}
	if req.Title == "" {
		return errors.New("title is empty")
	}
	if req.Author == "" {
		return errors.New("author is empty")
	}
	if req.Price < 0 {
		return errors.New("price is negative")
	}
	if req.DiscountPercentage < 0 || req.DiscountPercentage > 100 {
		return errors.New("discount percentage is out of range")
	}
	return nil
}
