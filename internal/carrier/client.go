// Package carrier is the HTTP client for the shipping carrier's
// order-creation API.
package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/config"
	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/entities"
)

type BookingRequest struct {
	OrderID        string
	Courier        string
	CourierService string
	Destination    entities.Address
	Items          []entities.Item
}

type BookingResponse struct {
	TrackingID string
	Status     string
}

var ErrBookingRejected = errors.New("carrier rejected booking")

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string

	defaultWeightGrams int
}

func NewClient(cfg config.Carrier) *Client {
	return &Client{
		httpClient:         &http.Client{Timeout: cfg.Timeout},
		baseURL:            cfg.BaseURL,
		apiKey:             cfg.APIKey,
		defaultWeightGrams: cfg.DefaultWeightGrams,
	}
}

type bookingItem struct {
	Name        string `json:"name"`
	Value       int64  `json:"value"`
	Quantity    int    `json:"quantity"`
	WeightGrams int    `json:"weight"`
}

type bookingPayload struct {
	ReferenceID    string        `json:"reference_id"`
	Courier        string        `json:"courier_company"`
	CourierService string        `json:"courier_type"`
	Destination    destination   `json:"destination"`
	Items          []bookingItem `json:"items"`
}

type destination struct {
	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone,omitempty"`
	Address      string `json:"address"`
	City         string `json:"city"`
	Province     string `json:"province,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
}

type bookingResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Courier struct {
		TrackingID string `json:"tracking_id"`
	} `json:"courier"`
	Status string `json:"status"`
}

// CreateOrder books a shipment. Items without a recorded weight are sent with
// the configured default so the carrier can still price the parcel.
func (c *Client) CreateOrder(ctx context.Context, req BookingRequest) (BookingResponse, error) {
	items := make([]bookingItem, 0, len(req.Items))
	for _, it := range req.Items {
		weight := it.WeightGrams
		if weight <= 0 {
			weight = c.defaultWeightGrams
		}
		items = append(items, bookingItem{
			Name:        it.Name,
			Value:       it.UnitPrice,
			Quantity:    it.Quantity,
			WeightGrams: weight,
		})
	}

	payload := bookingPayload{
		ReferenceID:    req.OrderID,
		Courier:        req.Courier,
		CourierService: req.CourierService,
		Destination: destination{
			ContactName:  req.Destination.Name,
			ContactPhone: req.Destination.Phone,
			Address:      req.Destination.Line,
			City:         req.Destination.City,
			Province:     req.Destination.Province,
			PostalCode:   req.Destination.PostalCode,
		},
		Items: items,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return BookingResponse{}, fmt.Errorf("failed to marshal booking request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return BookingResponse{}, fmt.Errorf("failed to build booking request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return BookingResponse{}, fmt.Errorf("booking request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return BookingResponse{}, fmt.Errorf("failed to read booking response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return BookingResponse{}, fmt.Errorf("%w: status %d: %s", ErrBookingRejected, resp.StatusCode, data)
	}

	var result bookingResult
	if err := json.Unmarshal(data, &result); err != nil {
		return BookingResponse{}, fmt.Errorf("failed to decode booking response: %w", err)
	}
	if !result.Success {
		return BookingResponse{}, fmt.Errorf("%w: %s", ErrBookingRejected, result.Message)
	}
	if result.Courier.TrackingID == "" {
		return BookingResponse{}, fmt.Errorf("%w: response carries no tracking id", ErrBookingRejected)
	}

	return BookingResponse{TrackingID: result.Courier.TrackingID, Status: result.Status}, nil
}
