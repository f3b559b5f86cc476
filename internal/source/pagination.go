package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/asset-sync/pkg/util"
)

// pageEnvelope is the paginated collection response shape. Older API
// versions return a bare array instead; newer ones wrap items in data or
// value with meta/links pagination cursors.
type pageEnvelope struct {
	Data  json.RawMessage `json:"data"`
	Value json.RawMessage `json:"value"`
	Meta  struct {
		CurrentPage int `json:"current_page"`
		LastPage    int `json:"last_page"`
		Total       int `json:"total"`
	} `json:"meta"`
	Links struct {
		Next string `json:"next"`
	} `json:"links"`
}

// FetchCollection retrieves every page of one collection endpoint. A 404 on
// the collection itself means the endpoint is not entitled for this account
// and yields an empty result, not an error. Any other non-2xx aborts the
// whole fetch: a missing page breaks pagination integrity.
func (c *Client) FetchCollection(ctx context.Context, entity, path string) ([]Record, error) {
	var all []Record
	page := 1

	for {
		body, err := c.get(ctx, fmt.Sprintf("%s?page=%d", path, page))
		if err != nil {
			if util.IsNotFound(err) && page == 1 {
				c.logger.Warn("collection endpoint not available",
					zap.String("entity", entity), zap.String("path", path))
				return nil, nil
			}
			return nil, err
		}
		c.metrics.RecordPage(entity)

		// Bare array: single page, no cursor.
		if isJSONArray(body) {
			var items []Record
			if err := json.Unmarshal(body, &items); err != nil {
				return nil, fmt.Errorf("decode %s page %d: %w", entity, page, err)
			}
			all = append(all, items...)
			c.metrics.RecordItems(entity, len(items))
			break
		}

		var env pageEnvelope
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, fmt.Errorf("decode %s page %d: %w", entity, page, err)
		}

		items, err := envelopeItems(body, env)
		if err != nil {
			return nil, fmt.Errorf("decode %s page %d: %w", entity, page, err)
		}
		all = append(all, items...)
		c.metrics.RecordItems(entity, len(items))

		currentPage := env.Meta.CurrentPage
		if currentPage == 0 {
			currentPage = page
		}

		c.logger.Info("fetched page",
			zap.String("entity", entity),
			zap.Int("page", currentPage),
			zap.Int("items", len(items)),
			zap.Int("total_so_far", len(all)),
			zap.Int("total", env.Meta.Total))

		if env.Links.Next == "" || (env.Meta.LastPage > 0 && currentPage >= env.Meta.LastPage) {
			break
		}
		page++
	}

	return all, nil
}

// envelopeItems extracts the item list from an object response: data wins,
// then value, then the object itself as a single record.
func envelopeItems(body []byte, env pageEnvelope) ([]Record, error) {
	raw := env.Data
	if len(raw) == 0 || string(raw) == "null" {
		raw = env.Value
	}
	if len(raw) == 0 || string(raw) == "null" {
		rec, err := decodeObject(body)
		if err != nil {
			return nil, err
		}
		return []Record{rec}, nil
	}
	if isJSONArray(raw) {
		var items []Record
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
		return items, nil
	}
	rec, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}
	return []Record{rec}, nil
}

func isJSONArray(body []byte) bool {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}
