package http

import "time"

// ErrorResponse is the uniform error body returned by the API.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// LineItemRequest is one order line of a stop draft.
type LineItemRequest struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// StopRequest is one stop draft of a route creation request.
type StopRequest struct {
	ShopID          string            `json:"shopId"`
	Lon             float64           `json:"lon"`
	Lat             float64           `json:"lat"`
	PaymentMethod   string            `json:"paymentMethod"`
	AmountToCollect float64           `json:"amountToCollect"`
	Notes           string            `json:"notes"`
	LineItems       []LineItemRequest `json:"lineItems"`
}

// CreateRouteRequest plans a new route for a courier.
type CreateRouteRequest struct {
	Code      string        `json:"code"`
	CourierID string        `json:"courierId"`
	Optimize  bool          `json:"optimize"`
	StartLon  float64       `json:"startLon"`
	StartLat  float64       `json:"startLat"`
	Stops     []StopRequest `json:"stops"`
}

// CreateRouteResponse returns the identifier of the planned route.
type CreateRouteResponse struct {
	RouteID string `json:"routeId"`
}

// ArriveRequest carries the courier's position at the arrival attempt.
type ArriveRequest struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// PaymentRequest records a collection at an arrived stop. ExternalRef is
// required for mobile-money payments and ignored for cash.
type PaymentRequest struct {
	Amount      float64 `json:"amount"`
	ExternalRef string  `json:"externalRef"`
}

// CompleteRequest carries the proof-of-delivery confirmation.
type CompleteRequest struct {
	RecipientName  string `json:"recipientName"`
	RecipientPhone string `json:"recipientPhone"`
	SignatureURI   string `json:"signatureUri"`
	PhotoURI       string `json:"photoUri"`
	Notes          string `json:"notes"`
}

// RequestSkipRequest opens a skip request for an unreachable stop.
type RequestSkipRequest struct {
	Reason   string `json:"reason"`
	Notes    string `json:"notes"`
	PhotoURI string `json:"photoUri"`
}

// ResolveSkipRequest resolves a pending skip request.
type ResolveSkipRequest struct {
	Approve bool   `json:"approve"`
	Notes   string `json:"notes"`
}

// UnlockRequest releases a stop from sequential enforcement.
type UnlockRequest struct {
	Reason string `json:"reason"`
}

// OverrideRouteRequest grants free stop order on a whole route.
type OverrideRouteRequest struct {
	Reason string `json:"reason"`
}

// LocationRequest is a rider position report.
type LocationRequest struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// ReviewDeviationRequest attaches a review outcome to a deviation record.
type ReviewDeviationRequest struct {
	Notes string `json:"notes"`
}

// GeoPointResponse is a lon/lat pair.
type GeoPointResponse struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// ActiveRouteStopResponse is one stop of the courier's active route.
type ActiveRouteStopResponse struct {
	DeliveryID      string           `json:"deliveryId"`
	Code            string           `json:"code"`
	SequenceNumber  int              `json:"sequenceNumber"`
	Status          string           `json:"status"`
	CanProceed      bool             `json:"canProceed"`
	Destination     GeoPointResponse `json:"destination"`
	PaymentMethod   string           `json:"paymentMethod"`
	AmountToCollect float64          `json:"amountToCollect"`
	AmountCollected float64          `json:"amountCollected"`
	SkipStatus      string           `json:"skipStatus"`
}

// ActiveRouteResponse is the courier's in-progress route.
type ActiveRouteResponse struct {
	RouteID          string                    `json:"routeId"`
	Code             string                    `json:"code"`
	CurrentShopIndex int                       `json:"currentShopIndex"`
	CanSkipShops     bool                      `json:"canSkipShops"`
	StartedAt        *time.Time                `json:"startedAt,omitempty"`
	Stops            []ActiveRouteStopResponse `json:"stops"`
}

// DeliveryResponse is the full state of one stop.
type DeliveryResponse struct {
	ID                   string           `json:"id"`
	Code                 string           `json:"code"`
	RouteID              string           `json:"routeId"`
	SequenceNumber       int              `json:"sequenceNumber"`
	Status               string           `json:"status"`
	CanProceed           bool             `json:"canProceed"`
	Destination          GeoPointResponse `json:"destination"`
	PaymentMethod        string           `json:"paymentMethod"`
	PaymentStatus        string           `json:"paymentStatus"`
	AmountToCollect      float64          `json:"amountToCollect"`
	AmountCollected      float64          `json:"amountCollected"`
	SkipStatus           string           `json:"skipStatus"`
	RecipientName        string           `json:"recipientName,omitempty"`
	ArrivedAt            *time.Time       `json:"arrivedAt,omitempty"`
	CompletedAt          *time.Time       `json:"completedAt,omitempty"`
	ActualDurationMins   *int             `json:"actualDurationMins,omitempty"`
	EstimatedArrivalMins *int             `json:"estimatedArrivalMins,omitempty"`
}

// WalletEntryResponse is one wallet movement.
type WalletEntryResponse struct {
	ID           string    `json:"id"`
	DeliveryID   *string   `json:"deliveryId,omitempty"`
	EntryType    string    `json:"entryType"`
	Amount       float64   `json:"amount"`
	BalanceAfter float64   `json:"balanceAfter"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"createdAt"`
}

// WalletResponse is a courier's balance and movement history.
type WalletResponse struct {
	CourierID string                `json:"courierId"`
	Balance   float64               `json:"balance"`
	Entries   []WalletEntryResponse `json:"entries"`
}

// DeviationResponse is one recorded deviation of a route.
type DeviationResponse struct {
	ID         string           `json:"id"`
	CourierID  string           `json:"courierId"`
	Position   GeoPointResponse `json:"position"`
	DistanceKm float64          `json:"distanceKm"`
	Severity   string           `json:"severity"`
	ObservedAt time.Time        `json:"observedAt"`
	Reviewed   bool             `json:"reviewed"`
	ReviewedAt *time.Time       `json:"reviewedAt,omitempty"`
}
