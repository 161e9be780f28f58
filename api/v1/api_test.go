package v1

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/bookbazaar/bookbazaar/config"
	"github.com/bookbazaar/bookbazaar/log"
	"github.com/bookbazaar/bookbazaar/model"
	"github.com/bookbazaar/bookbazaar/store"
	"github.com/bookbazaar/bookbazaar/worker"
	"github.com/gorilla/mux"
	"github.com/vincent-petithory/dataurl"
	_ "modernc.org/sqlite"
)

func init() {
	config.Opts = config.GetDefaultOptions()
	log.Logger = log.NewLogger()
}

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()

	dir, err := os.MkdirTemp("", "bookbazaar-api-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	db, err := sql.Open("sqlite", filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema, err := os.ReadFile(filepath.Join("..", "..", "store", "db", "migration", "LATEST_SCHEMA.sql"))
	if err != nil {
		t.Fatalf("Failed to read schema: %v", err)
	}
	if _, err := db.Exec(string(schema)); err != nil {
		t.Fatalf("Failed to apply schema: %v", err)
	}

	s := store.NewStore(db)
	router := mux.NewRouter()
	Server(router, s, worker.NewCoverPool(s, 1))
	return router
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("Failed to decode error body %q: %v", w.Body.String(), err)
	}
	return payload.Error
}

func registerUser(t *testing.T, router *mux.Router, name, email string) {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/register", model.RegisterRequest{
		Name: name, Email: email, Password: "secret",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201 on register, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router := newTestRouter(t)

	registerUser(t, router, "Reader", "reader@bookbazaar.com")

	w := doJSON(t, router, http.MethodPost, "/api/register", model.RegisterRequest{
		Name: "Other", Email: "reader@bookbazaar.com", Password: "secret",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("Expected 409, got %d", w.Code)
	}
	if code := errorCode(t, w); code != "email_exists" {
		t.Errorf("Expected email_exists, got %s", code)
	}
}

func TestRegisterInvalidInput(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/register", model.RegisterRequest{
		Name: "NoEmail", Email: "not-an-email", Password: "secret",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
	if code := errorCode(t, w); code != "invalid_input" {
		t.Errorf("Expected invalid_input, got %s", code)
	}
}

func TestLogin(t *testing.T) {
	router := newTestRouter(t)
	registerUser(t, router, "Reader", "reader@bookbazaar.com")

	w := doJSON(t, router, http.MethodPost, "/api/login", model.LoginRequest{
		Email: "Reader@BookBazaar.com", Password: "secret",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp model.LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.User == nil || resp.User.Email != "reader@bookbazaar.com" {
		t.Errorf("Expected user payload with lowered email, got %+v", resp.User)
	}
	if resp.Token == "" {
		t.Error("Expected an access token")
	}

	w = doJSON(t, router, http.MethodPost, "/api/login", model.LoginRequest{
		Email: "reader@bookbazaar.com", Password: "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 for a bad password, got %d", w.Code)
	}
	if code := errorCode(t, w); code != "invalid_credentials" {
		t.Errorf("Expected invalid_credentials, got %s", code)
	}
}

func testUpload(uid string) model.BookUploadRequest {
	return model.BookUploadRequest{
		UID:        uid,
		Title:      "The Go Programming Language",
		Author:     "Donovan & Kernighan",
		Price:      1000,
		UploadedBy: "reader@bookbazaar.com",
	}
}

func TestUploadStaysPendingUntilApproved(t *testing.T) {
	router := newTestRouter(t)
	adminEmail := config.Opts.AdminEmail

	w := doJSON(t, router, http.MethodPost, "/api/books", testUpload("b1"))
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var uploadResp model.UploadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &uploadResp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if uploadResp.Status != "pending" {
		t.Errorf("Expected pending status, got %s", uploadResp.Status)
	}

	// Not published yet.
	w = doJSON(t, router, http.MethodGet, "/api/books", nil)
	var listResp model.BookListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(listResp.Books) != 0 {
		t.Fatalf("Expected no published books, got %d", len(listResp.Books))
	}

	// Visible in the review queue.
	w = doJSON(t, router, http.MethodGet, "/api/pending?admin_email="+adminEmail, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(listResp.Books) != 1 {
		t.Fatalf("Expected 1 pending book, got %d", len(listResp.Books))
	}

	// Approve and it shows up in the catalog.
	w = doJSON(t, router, http.MethodPost, "/api/books/b1/approve", map[string]string{"admin_email": adminEmail})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 on approve, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/api/books", nil)
	if err := json.Unmarshal(w.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(listResp.Books) != 1 {
		t.Fatalf("Expected 1 published book, got %d", len(listResp.Books))
	}
	if listResp.Books[0].CoverImage != "/api/books/b1/cover" {
		t.Errorf("Expected cover path, got %s", listResp.Books[0].CoverImage)
	}
}

func TestAdminGate(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/pending?admin_email=reader@bookbazaar.com", nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("Expected 403, got %d", w.Code)
	}
	if code := errorCode(t, w); code != "forbidden" {
		t.Errorf("Expected forbidden, got %s", code)
	}

	w = doJSON(t, router, http.MethodPost, "/api/books/b1/approve", map[string]string{"admin_email": ""})
	if w.Code != http.StatusForbidden {
		t.Fatalf("Expected 403 on approve, got %d", w.Code)
	}

	// Case differences do not matter.
	upper := "Admin@BookBazaar.com"
	w = doJSON(t, router, http.MethodGet, "/api/pending?admin_email="+upper, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for the admin in any case, got %d", w.Code)
	}
}

func TestRejectDeletesBook(t *testing.T) {
	router := newTestRouter(t)
	adminEmail := config.Opts.AdminEmail

	w := doJSON(t, router, http.MethodPost, "/api/books", testUpload("b2"))
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodDelete, "/api/books/b2?admin_email="+adminEmail, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/pending?admin_email="+adminEmail, nil)
	var listResp model.BookListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(listResp.Books) != 0 {
		t.Errorf("Expected empty review queue, got %d", len(listResp.Books))
	}

	w = doJSON(t, router, http.MethodDelete, "/api/books/missing?admin_email="+adminEmail, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 rejecting a missing book, got %d", w.Code)
	}
}

func pngDataURL(t *testing.T) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode png: %v", err)
	}
	return dataurl.New(buf.Bytes(), "image/png").String()
}

func TestUploadCover(t *testing.T) {
	router := newTestRouter(t)

	upload := testUpload("b3")
	upload.CoverImage = pngDataURL(t)
	w := doJSON(t, router, http.MethodPost, "/api/books", upload)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/api/books/b3/cover", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if len(w.Body.Bytes()) == 0 {
		t.Error("Expected cover bytes")
	}

	w = doJSON(t, router, http.MethodGet, "/api/books/missing/cover", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for a missing cover, got %d", w.Code)
	}
}

func TestUploadInvalidCover(t *testing.T) {
	router := newTestRouter(t)

	upload := testUpload("b4")
	upload.CoverImage = "not-a-data-url"
	w := doJSON(t, router, http.MethodPost, "/api/books", upload)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
	if code := errorCode(t, w); code != "invalid_image" {
		t.Errorf("Expected invalid_image, got %s", code)
	}

	upload.UID = "b5"
	upload.CoverImage = fmt.Sprintf("data:text/plain;base64,%s", "aGVsbG8=")
	w = doJSON(t, router, http.MethodPost, "/api/books", upload)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for a non-image data URL, got %d", w.Code)
	}
}

func TestUploadFillsDiscountedPrice(t *testing.T) {
	router := newTestRouter(t)
	adminEmail := config.Opts.AdminEmail

	upload := testUpload("b6")
	upload.Price = 1000
	upload.DiscountPercentage = 20
	w := doJSON(t, router, http.MethodPost, "/api/books", upload)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/pending?admin_email="+adminEmail, nil)
	var listResp model.BookListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(listResp.Books) != 1 {
		t.Fatalf("Expected 1 pending book, got %d", len(listResp.Books))
	}
	if got := listResp.Books[0].DiscountedPrice; got != 800 {
		t.Errorf("Expected discounted price 800, got %d", got)
	}
	if listResp.Books[0].ISBN == "" {
		t.Error("Expected a generated ISBN")
	}
}
