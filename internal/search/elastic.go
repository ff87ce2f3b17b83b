package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
)

const (
	OrdersIndex    = "backoffice-orders"
	ShipmentsIndex = "backoffice-shipments"
)

// Indexer keeps a searchable copy of documents. Usecases treat a nil Indexer as disabled.
type Indexer interface {
	Index(ctx context.Context, index string, id int64, doc interface{}) error
	Delete(ctx context.Context, index string, id int64) error
}

type Config struct {
	Addresses []string
	Username  string
	Password  string
}

type Client struct {
	es *elasticsearch.Client
}

func NewClient(cfg *Config) (*Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}

	res, err := es.Info()
	if err != nil {
		return nil, fmt.Errorf("failed to reach elasticsearch: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch info: %s", res.Status())
	}
	return &Client{es: es}, nil
}

// CreateIndex creates the index with the given mapping; an existing index is not an error.
func (c *Client) CreateIndex(ctx context.Context, index, mapping string) error {
	res, err := c.es.Indices.Create(index,
		c.es.Indices.Create.WithContext(ctx),
		c.es.Indices.Create.WithBody(strings.NewReader(mapping)),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusBadRequest {
		return responseError(res.Status(), res.Body)
	}
	return nil
}

func (c *Client) Index(ctx context.Context, index string, id int64, doc interface{}) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	res, err := c.es.Index(index, bytes.NewReader(body),
		c.es.Index.WithContext(ctx),
		c.es.Index.WithDocumentID(strconv.FormatInt(id, 10)),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError(res.Status(), res.Body)
	}
	return nil
}

func (c *Client) Delete(ctx context.Context, index string, id int64) error {
	res, err := c.es.Delete(index, strconv.FormatInt(id, 10), c.es.Delete.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return responseError(res.Status(), res.Body)
	}
	return nil
}

func responseError(status string, body io.Reader) error {
	msg, _ := io.ReadAll(io.LimitReader(body, 1024))
	return fmt.Errorf("elasticsearch: %s: %s", status, msg)
}

// Mappings used when the service starts with search enabled.
const (
	OrdersMapping = `{
		"mappings": {
			"properties": {
				"order_id": { "type": "long" },
				"customer_id": { "type": "long" },
				"status": { "type": "keyword" },
				"order_date": { "type": "date" },
				"total_amount": { "type": "scaled_float", "scaling_factor": 100 },
				"shipping_address": { "type": "text" },
				"items": { "type": "nested" }
			}
		}
	}`
	ShipmentsMapping = `{
		"mappings": {
			"properties": {
				"shipment_id": { "type": "long" },
				"supplier_id": { "type": "long" },
				"status": { "type": "keyword" },
				"shipment_date": { "type": "date" },
				"expected_delivery_date": { "type": "date" },
				"total_cost": { "type": "scaled_float", "scaling_factor": 100 },
				"items": { "type": "nested" }
			}
		}
	}`
)

var _ Indexer = (*Client)(nil)
