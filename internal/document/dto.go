// AngelaMos | 2026
// dto.go

package document

import (
	"strings"
	"time"
)

type GenerateRequest struct {
	Template       string            `json:"template"        validate:"required,min=1,max=100"`
	RecipientEmail string            `json:"recipient_email" validate:"required,email,max=255"`
	FullName       string            `json:"full_name"       validate:"max=200"`
	FirstName      string            `json:"first_name"      validate:"max=100"`
	Address1       string            `json:"address1"        validate:"max=255"`
	Address2       string            `json:"address2"        validate:"max=255"`
	Address3       string            `json:"address3"        validate:"max=255"`
	DeliveryDate   string            `json:"delivery_date"   validate:"max=100"`
	OrderNumber    string            `json:"order_number"    validate:"max=100"`
	ItemName       string            `json:"item_name"       validate:"max=255"`
	Size           string            `json:"size"            validate:"max=50"`
	Price          string            `json:"price"           validate:"max=50"`
	Total          string            `json:"total"           validate:"max=50"`
	CardLast4      string            `json:"card_last4"      validate:"max=4"`
	Currency       string            `json:"currency"        validate:"max=10"`
	Subject        string            `json:"subject"         validate:"max=255"`
	ProductImage   string            `json:"product_image"   validate:"omitempty,url"`
	Quantity       string            `json:"quantity"        validate:"max=20"`
	TrackingNumber string            `json:"tracking_number" validate:"max=100"`
	Phone          string            `json:"phone"           validate:"max=50"`
	Notes          string            `json:"notes"           validate:"max=1000"`
	Shipping       string            `json:"shipping"        validate:"max=100"`
	Color          string            `json:"color"           validate:"max=50"`
	AdditionalData map[string]string `json:"additional_data" validate:"omitempty,max=50"`
}

const defaultProductImage = "https://via.placeholder.com/280x280?text=Product"

// buildReplacements expands the request into the full placeholder
// vocabulary, including every legacy alias a template may still carry.
func buildReplacements(req GenerateRequest, now time.Time) map[string]string {
	itemName := req.ItemName
	if itemName == "" {
		itemName = "Your Item"
	}

	price := req.Price
	if price == "" {
		price = "0.00"
	}

	total := req.Total
	if total == "" {
		total = price
	}

	quantity := req.Quantity
	if quantity == "" {
		quantity = "1"
	}

	currency := req.Currency
	if currency == "" {
		currency = "$"
	}

	dateStr := req.DeliveryDate
	if dateStr == "" {
		dateStr = now.Format("January 2, 2006")
	}

	firstName := req.FirstName
	if firstName == "" {
		if names := strings.Fields(req.FullName); len(names) > 0 {
			firstName = names[0]
		}
	}

	cardEnd := req.CardLast4
	if cardEnd == "" {
		cardEnd = "****"
	}

	productImage := req.ProductImage
	if productImage == "" {
		productImage = defaultProductImage
	}

	shipping := req.Shipping
	if shipping == "" {
		shipping = "Free Shipping"
	}

	return map[string]string{
		"WHOLE_NAME": req.FullName,
		"FIRSTNAME":  firstName,

		"ADDRESS1": req.Address1,
		"ADDRESS2": req.Address2,
		"ADDRESS3": req.Address3,
		"ADDRESS4": req.Address1,
		"ADDRESS5": req.Address2,

		"DATE":     dateStr,
		"DELIVERY": dateStr,

		"ORDER_NUM":    req.OrderNumber,
		"ORDER_NUMBER": req.OrderNumber,
		"ORDERNUMBER":  req.OrderNumber,

		"ITEM_NAME":    itemName,
		"PRODUCT_NAME": itemName,

		"SIZE": req.Size,

		"PRICE":            currency + price,
		"PRODUCT_PRICE":    currency + price,
		"PRODUCT_SUBTOTAL": currency + price,

		"TOTAL": currency + total,

		"QUANTITY":    quantity,
		"QTY":         quantity,
		"PRODUCT_QTY": quantity,

		"CARD_END": cardEnd,
		"CURRENCY": currency,

		"PRODUCT_IMAGE": productImage,
		"SHIPPING":      shipping,

		"PRODUCT_COLOUR": req.Color,

		"TRACKING_NUMBER": req.TrackingNumber,

		"PHONE": req.Phone,
		"EMAIL": req.RecipientEmail,

		"NOTES": req.Notes,
	}
}

type GenerateResponse struct {
	Success    bool   `json:"success"`
	DocumentID string `json:"document_id"`
	Message    string `json:"message"`
	EmailSent  bool   `json:"email_sent"`
}

type DocumentResponse struct {
	ID             string     `json:"id"`
	AccountID      *string    `json:"account_id,omitempty"`
	Template       string     `json:"template"`
	RecipientEmail string     `json:"recipient_email"`
	OrderNumber    string     `json:"order_number"`
	FullName       string     `json:"full_name"`
	Status         string     `json:"status"`
	StatusDetail   *string    `json:"status_detail,omitempty"`
	SentAt         *time.Time `json:"sent_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type TemplateListResponse struct {
	Templates []string `json:"templates"`
	Count     int      `json:"count"`
}

type ListDocumentsParams struct {
	Page      int    `json:"page"`
	PageSize  int    `json:"page_size"`
	AccountID string `json:"account_id"`
	Status    string `json:"status"`
}

func (p *ListDocumentsParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListDocumentsParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToDocumentResponse(d *Document) DocumentResponse {
	return DocumentResponse{
		ID:             d.ID,
		AccountID:      d.AccountID,
		Template:       d.Template,
		RecipientEmail: d.RecipientEmail,
		OrderNumber:    d.OrderNumber,
		FullName:       d.FullName,
		Status:         string(d.Status),
		StatusDetail:   d.StatusDetail,
		SentAt:         d.SentAt,
		CreatedAt:      d.CreatedAt,
	}
}

func ToDocumentResponseList(docs []Document) []DocumentResponse {
	responses := make([]DocumentResponse, 0, len(docs))
	for _, d := range docs {
		responses = append(responses, ToDocumentResponse(&d))
	}
	return responses
}
