package http

import (
	"time"

	"github.com/oapi-codegen/runtime/types"
)

// Request bodies.

type registerSellerRequest struct {
	Name     string      `json:"name"`
	Email    types.Email `json:"email"`
	Password string      `json:"password"`
	Zipcode  string      `json:"zipcode"`
}

type registerPartnerRequest struct {
	Name                string      `json:"name"`
	Email               types.Email `json:"email"`
	Password            string      `json:"password"`
	ServiceableZipcodes []string    `json:"serviceable_zipcodes"`
	MaxCapacity         int         `json:"max_capacity"`
}

type loginRequest struct {
	Email    types.Email `json:"email"`
	Password string      `json:"password"`
	Role     string      `json:"role"`
}

type createShipmentRequest struct {
	Content       string      `json:"content"`
	Weight        float64     `json:"weight"`
	Destination   string      `json:"destination"`
	CustomerEmail types.Email `json:"customer_email"`
	CustomerPhone *string     `json:"customer_phone,omitempty"`
}

type updateShipmentRequest struct {
	Status            *string    `json:"status,omitempty"`
	Location          *string    `json:"location,omitempty"`
	Description       string     `json:"description,omitempty"`
	EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`
	VerificationCode  *string    `json:"verification_code,omitempty"`
}

type cancelShipmentRequest struct {
	Reason string `json:"reason,omitempty"`
}

type addTagRequest struct {
	Tag string `json:"tag"`
}

type submitReviewRequest struct {
	Rating  int     `json:"rating"`
	Comment *string `json:"comment,omitempty"`
}

// Response bodies.

type registeredResponse struct {
	ID string `json:"id"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

type shipmentSummaryResponse struct {
	ID                string    `json:"id"`
	Content           string    `json:"content"`
	Destination       string    `json:"destination"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	EstimatedDelivery time.Time `json:"estimated_delivery"`
}

type timelineEntryResponse struct {
	Status      string    `json:"status"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type tagResponse struct {
	Name        string `json:"name"`
	Instruction string `json:"instruction"`
}

type reviewResponse struct {
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type trackShipmentResponse struct {
	ID                string                  `json:"id"`
	Content           string                  `json:"content"`
	Destination       string                  `json:"destination"`
	Status            string                  `json:"status"`
	CreatedAt         time.Time               `json:"created_at"`
	EstimatedDelivery time.Time               `json:"estimated_delivery"`
	Timeline          []timelineEntryResponse `json:"timeline"`
	Tags              []tagResponse           `json:"tags"`
	Review            *reviewResponse         `json:"review,omitempty"`
}
