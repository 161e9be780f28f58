package v1

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/bookbazaar/bookbazaar/config"
	"github.com/bookbazaar/bookbazaar/http/request"
	"github.com/bookbazaar/bookbazaar/http/response"
	"github.com/bookbazaar/bookbazaar/log"
	"github.com/bookbazaar/bookbazaar/model"
	"github.com/bookbazaar/bookbazaar/util"
	"github.com/bookbazaar/bookbazaar/validator"
	"github.com/vincent-petithory/dataurl"
	"go.uber.org/zap"
)

// listBooks returns the published catalog. Pending uploads stay hidden
// until an admin approves them.
func (h *Handler) listBooks(w http.ResponseWriter, r *http.Request) {
	status := model.BookStatusApproved
	books, err := h.store.ListBooks(&model.FindBook{Status: &status})
	if err != nil {
		log.Logger.Error("Error listing books", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	for _, book := range books {
		book.CoverImage = coverPath(book.UID)
	}
	response.OK(w, r, model.BookListResponse{OK: true, Books: books})
}

func (h *Handler) uploadBook(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, config.Opts.MaxUploadSize<<20)

	upload := &model.BookUploadRequest{}
	if err := json.NewDecoder(r.Body).Decode(upload); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, response.CodeInvalidInput)
		return
	}

	if err := validator.ValidateBookUploadRequest(upload); err != nil {
		log.Debug("Failed to validate upload request", zap.Error(err))
		response.BadRequest(w, r, response.CodeInvalidInput)
		return
	}

	// The client generates the id and the ISBN; fill in both for callers
	// that talk to the API directly.
	if upload.UID == "" {
		upload.UID = util.GenUUID()
	}
	if upload.ISBN == "" {
		isbn, err := util.GenISBN()
		if err != nil {
			log.Error("Failed to generate ISBN", zap.Error(err))
			response.ServerError(w, r, err)
			return
		}
		upload.ISBN = isbn
	}
	if upload.DiscountedPrice == 0 {
		upload.DiscountedPrice = model.ComputeDiscountedPrice(upload.Price, upload.DiscountPercentage)
	}

	var cover []byte
	var coverType string
	if upload.CoverImage != "" {
		dataURL, err := dataurl.DecodeString(upload.CoverImage)
		if err != nil {
			log.Debug("Failed to decode cover data URL", zap.Error(err))
			response.BadRequest(w, r, response.CodeInvalidImage)
			return
		}
		cover = dataURL.Data
		coverType = dataURL.ContentType()
		if !strings.HasPrefix(coverType, "image/") {
			log.Debug("Cover is not an image", zap.String("content_type", coverType))
			response.BadRequest(w, r, response.CodeInvalidImage)
			return
		}
	}

	book := &model.Book{
		UID:                upload.UID,
		Title:              upload.Title,
		Author:             upload.Author,
		Publisher:          upload.Publisher,
		Price:              upload.Price,
		DiscountPercentage: upload.DiscountPercentage,
		DiscountedPrice:    upload.DiscountedPrice,
		Description:        upload.Description,
		ISBN:               upload.ISBN,
		UploadedBy:         upload.UploadedBy,
		Status:             model.BookStatusPending,
	}
	if upload.UploadedBy == "" {
		book.UploadedBy = request.GetUserEmail(r)
	}

	newBook, err := h.store.AddBook(book)
	if err != nil {
		log.Error("Failed to add book", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	if len(cover) > 0 {
		if err := h.store.SetCover(newBook.UID, cover, coverType); err != nil {
			log.Error("Failed to store cover", zap.Error(err))
			response.ServerError(w, r, err)
			return
		}
		job, err := h.store.AddJob(model.Job{
			BookUID: newBook.UID,
			Type:    model.JobTypeCover,
			Status:  model.JobStatusPending,
		})
		if err != nil {
			log.Error("Failed to add cover job", zap.Error(err))
			response.ServerError(w, r, err)
			return
		}
		go h.coverPool.Push(*job)
	}

	response.Created(w, r, model.UploadResponse{OK: true, Status: model.BookStatusPending.String()})
}

func (h *Handler) getCover(w http.ResponseWriter, r *http.Request) {
	uid := request.RouteStringParam(r, "uid")
	cover, coverType, err := h.store.GetCover(uid)
	if err != nil {
		log.Error("Failed to get cover", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if len(cover) == 0 {
		response.NotFound(w, r)
		return
	}

	response.New(w, r).
		WithHeader("Content-Type", coverType).
		WithBody(cover).
		Write()
}

func coverPath(uid string) string {
	return fmt.Sprintf("/api/books/%s/cover", uid)
}
