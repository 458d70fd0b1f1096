package shipapi

import (
	"fmt"
	"net/url"
	"time"

	"github.com/google/go-querystring/query"
)

// ListParams represents the cursor parameters accepted by list endpoints.
type ListParams struct {
	PageSize      int        `url:"page_size,omitempty"`
	BeforeID      string     `url:"before_id,omitempty"`
	AfterID       string     `url:"after_id,omitempty"`
	StartDatetime *time.Time `url:"start_datetime,omitempty"`
	EndDatetime   *time.Time `url:"end_datetime,omitempty"`
}

// NewListParams creates empty list parameters.
func NewListParams() *ListParams {
	return &ListParams{}
}

// WithPageSize sets the page size.
func (p *ListParams) WithPageSize(size int) *ListParams {
	p.PageSize = size

	return p
}

// WithBeforeID sets the cursor to the records created before id.
func (p *ListParams) WithBeforeID(id string) *ListParams {
	p.BeforeID = id

	return p
}

// WithAfterID sets the cursor to the records created after id.
func (p *ListParams) WithAfterID(id string) *ListParams {
	p.AfterID = id

	return p
}

// ToValues converts the parameters to URL values.
func (p *ListParams) ToValues() (url.Values, error) {
	if p == nil {
		return url.Values{}, nil
	}

	values, err := query.Values(p)
	if err != nil {
		return nil, fmt.Errorf("encoding list parameters: %w", err)
	}

	return values, nil
}
