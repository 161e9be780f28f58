package v1

import (
	"encoding/json"
	"net/http"

	"github.com/bookbazaar/bookbazaar/authz"
	"github.com/bookbazaar/bookbazaar/http/request"
	"github.com/bookbazaar/bookbazaar/http/response"
	"github.com/bookbazaar/bookbazaar/log"
	"github.com/bookbazaar/bookbazaar/model"
	"go.uber.org/zap"
)

// listPending returns uploads waiting for review. Only the admin sees them.
func (h *Handler) listPending(w http.ResponseWriter, r *http.Request) {
	adminEmail := request.QueryStringParam(r, "admin_email", "")
	if !authz.IsAdmin(adminEmail) {
		log.Debug("Pending list refused", zap.String("email", adminEmail))
		response.Forbidden(w, r)
		return
	}

	status := model.BookStatusPending
	books, err := h.store.ListBooks(&model.FindBook{Status: &status})
	if err != nil {
		log.Error("Failed to list pending books", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	for _, book := range books {
		book.CoverImage = coverPath(book.UID)
	}
	response.OK(w, r, model.BookListResponse{OK: true, Books: books})
}

type approveRequest struct {
	AdminEmail string `json:"admin_email"`
}

func (h *Handler) approveBook(w http.ResponseWriter, r *http.Request) {
	var approve approveRequest
	if err := json.NewDecoder(r.Body).Decode(&approve); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, response.CodeInvalidInput)
		return
	}
	if !authz.IsAdmin(approve.AdminEmail) {
		log.Debug("Approval refused", zap.String("email", approve.AdminEmail))
		response.Forbidden(w, r)
		return
	}

	uid := request.RouteStringParam(r, "uid")
	book, err := h.store.GetBook(&model.FindBook{UID: &uid})
	if err != nil {
		log.Error("Failed to get book", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if book == nil {
		response.NotFound(w, r)
		return
	}

	if err := h.store.SetBookStatus(uid, model.BookStatusApproved); err != nil {
		log.Error("Failed to approve book", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	log.Info("Book approved", zap.String("uid", uid), zap.String("admin", approve.AdminEmail))
	response.OK(w, r, model.UploadResponse{OK: true, Status: model.BookStatusApproved.String()})
}

// rejectBook deletes a pending upload outright.
func (h *Handler) rejectBook(w http.ResponseWriter, r *http.Request) {
	adminEmail := request.QueryStringParam(r, "admin_email", "")
	if !authz.IsAdmin(adminEmail) {
		log.Debug("Rejection refused", zap.String("email", adminEmail))
		response.Forbidden(w, r)
		return
	}

	uid := request.RouteStringParam(r, "uid")
	book, err := h.store.GetBook(&model.FindBook{UID: &uid})
	if err != nil {
		log.Error("Failed to get book", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if book == nil {
		response.NotFound(w, r)
		return
	}

	if err := h.store.RemoveBook(uid); err != nil {
		log.Error("Failed to reject book", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	log.Info("Book rejected", zap.String("uid", uid), zap.String("admin", adminEmail))
	response.NoContent(w, r)
}
