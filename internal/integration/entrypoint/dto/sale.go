// Package dto defines request/response structures for the API endpoints.
package dto

import (
	"github.com/stockbook/backend/internal/domain/entity"
)

// RecordSaleRequest represents the request body for recording a sale.
type RecordSaleRequest struct {
	Date          string  `json:"date" binding:"required"`
	ProductID     *string `json:"productId,omitempty"`
	ProductName   string  `json:"productName"`
	Quantity      int     `json:"quantity" binding:"required"`
	UnitPrice     float64 `json:"unitPrice"`
	Customer      string  `json:"customer"`
	PaymentMethod string  `json:"paymentMethod" binding:"required"`
}

// SaleResponse represents a sale in API responses.
type SaleResponse struct {
	ID            string  `json:"id"`
	Date          string  `json:"date"`
	ProductID     *string `json:"productId,omitempty"`
	ProductName   string  `json:"productName"`
	Quantity      int     `json:"quantity"`
	UnitPrice     string  `json:"unitPrice"`
	Total         string  `json:"total"`
	Customer      string  `json:"customer"`
	PaymentMethod string  `json:"paymentMethod"`
}

// SaleListResponse represents the response for listing sales.
type SaleListResponse struct {
	Sales []SaleResponse `json:"sales"`
	Range RangeResponse  `json:"range"`
}

// ToSaleResponse converts a Sale entity to a SaleResponse.
func ToSaleResponse(sale *entity.Sale) SaleResponse {
	var productID *string
	if sale.ProductID != nil {
		id := sale.ProductID.String()
		productID = &id
	}

	return SaleResponse{
		ID:            sale.ID.String(),
		Date:          sale.Date.Format("2006-01-02"),
		ProductID:     productID,
		ProductName:   sale.ProductName,
		Quantity:      sale.Quantity,
		UnitPrice:     sale.UnitPrice.StringFixed(2),
		Total:         sale.Total.StringFixed(2),
		Customer:      sale.Customer,
		PaymentMethod: string(sale.PaymentMethod),
	}
}

// ToSaleListResponse converts a slice of sales with its range.
func ToSaleListResponse(sales []*entity.Sale, rangeResp RangeResponse) SaleListResponse {
	responses := make([]SaleResponse, len(sales))
	for i, s := range sales {
		responses[i] = ToSaleResponse(s)
	}
	return SaleListResponse{
		Sales: responses,
		Range: rangeResp,
	}
}
