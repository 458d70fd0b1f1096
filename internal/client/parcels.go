package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/shipapi/internal/http"
	"github.com/fivetwenty-io/shipapi/pkg/shipapi"
)

type parcelEnvelope struct {
	Parcel *shipapi.ParcelCreateRequest `json:"parcel"`
}

// ParcelsClient implements shipapi.ParcelsClient.
type ParcelsClient struct {
	httpClient *http.Client
}

// NewParcelsClient creates a new parcels client.
func NewParcelsClient(httpClient *http.Client) *ParcelsClient {
	return &ParcelsClient{
		httpClient: httpClient,
	}
}

// Create implements shipapi.ParcelsClient.Create.
func (c *ParcelsClient) Create(ctx context.Context, request *shipapi.ParcelCreateRequest) (*shipapi.Parcel, error) {
	resp, err := c.httpClient.Post(ctx, "/parcels", &parcelEnvelope{Parcel: request})
	if err != nil {
		return nil, fmt.Errorf("creating parcel: %w", err)
	}

	return decode[shipapi.Parcel](resp, "parcel")
}

// Retrieve implements shipapi.ParcelsClient.Retrieve.
func (c *ParcelsClient) Retrieve(ctx context.Context, id string) (*shipapi.Parcel, error) {
	if id == "" {
		return nil, shipapi.ErrIDRequired
	}

	resp, err := c.httpClient.Get(ctx, "/parcels/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("getting parcel: %w", err)
	}

	return decode[shipapi.Parcel](resp, "parcel")
}
