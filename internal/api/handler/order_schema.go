package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

// submitOrderRequest carries the preorder form exactly as typed. Fields intentionally
// carry no validate tags: the submission pipeline owns the rules and their ordering.
type submitOrderRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Size     string `json:"size"`
	Lining   string `json:"lining"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Landmark string `json:"landmark"`
	Payment  string `json:"payment"`
}

type orderConfirmationResponse struct {
	OrderID       string    `json:"order_id"`
	FullName      string    `json:"full_name"`
	Size          string    `json:"size"`
	AmountNPR     int       `json:"amount_npr"`
	PaymentMethod string    `json:"payment_method"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	CreatedAt     time.Time `json:"created_at"`
}

// orderSummaryResponse is the lightweight item used in the staff list view.
type orderSummaryResponse struct {
	OrderID       string    `json:"order_id"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Size          string    `json:"size"`
	LiningColor   string    `json:"lining_color"`
	PaymentMethod string    `json:"payment_method"`
	AmountNPR     int       `json:"amount_npr"`
	SyncStatus    string    `json:"sync_status"`
	CreatedAt     time.Time `json:"created_at"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listOrdersResponse struct {
	Data       []orderSummaryResponse `json:"data"`
	Pagination paginationResponse     `json:"pagination"`
}
