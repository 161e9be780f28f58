package model //import "github.com/bookbazaar/bookbazaar/model"

// BookStatus is the review state of an uploaded book.
type BookStatus string

const (
	// BookStatusPending is an uploaded book waiting for review.
	BookStatusPending BookStatus = "pending"
	// BookStatusApproved is a published book.
	BookStatusApproved BookStatus = "approved"
)

func (s BookStatus) String() string {
	switch s {
	case BookStatusPending:
		return "pending"
	case BookStatusApproved:
		return "approved"
	}
	return "pending"
}

// Book field names follow the wire contract, camelCase on the JSON side.
type Book struct {
	// UID is the client-generated identifier ("id" on the wire); the
	// numeric row id stays server internal.
	UID                string `json:"id"`
	Title              string `json:"title"`
	Author             string `json:"author"`
	Publisher          string `json:"publisher"`
	Price              int    `json:"price"`
	DiscountPercentage int    `json:"discountPercentage"`
	DiscountedPrice    int    `json:"discountedPrice"`
	Description        string `json:"description"`
	CoverImage         string `json:"coverImage"`
	ISBN               string `json:"isbn"`
	UploadedBy         string `json:"uploadedBy"`

	Status    BookStatus `json:"-"`
	CreatedAt string     `json:"-"`
}

// EffectivePrice is what a buyer actually pays.
func (b *Book) EffectivePrice() int {
	if b.DiscountPercentage > 0 {
		return b.DiscountedPrice
	}
	return b.Price
}

// DiscountedPrice computes the discounted price with integer truncation.
func ComputeDiscountedPrice(price, discountPercentage int) int {
	return price - price*discountPercentage/100
}

type FindBook struct {
	UID        *string     `json:"id"`
	Status     *BookStatus `json:"status"`
	UploadedBy *string     `json:"uploaded_by"`
	ISBN       *string     `json:"isbn"`

	// The maximum number of books to return.
	Limit *int
}

// BookUploadRequest is the payload the client POSTs to /api/books.
type BookUploadRequest struct {
	UID                string `json:"id"`
	Title              string `json:"title"`
	Author             string `json:"author"`
	Publisher          string `json:"publisher"`
	Price              int    `json:"price"`
	DiscountPercentage int    `json:"discountPercentage"`
	DiscountedPrice    int    `json:"discountedPrice"`
	Description        string `json:"description"`
	// CoverImage is a base64 data URL
	CoverImage string `json:"coverImage"`
	ISBN       string `json:"isbn"`
	UploadedBy string `json:"uploadedBy"`
}

type BookListResponse struct {
	OK    bool    `json:"ok"`
	Books []*Book `json:"books"`
}

type UploadResponse struct {
	OK     bool   `json:"ok"`
	Status string `json:"status"`
}
