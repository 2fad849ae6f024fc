package responses

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrMalformedPayload = errors.New("malformed catalog payload")

type Aggregate struct {
	MinPrice int
	MaxPrice int
}

// Listing is a product listing response after shape normalization.
// Aggregate is set only when the payload carried min_price/max_price.
type Listing struct {
	Count     int
	Items     []Product
	Aggregate *Aggregate
}

// ParseListing normalizes the listing shapes the catalog returns.
// Precedence:
//  1. top-level array: items, count = len(items)
//  2. {"count", "results": [...]}: items, count from "count" (len(items) if absent)
//  3. {"count", "results": {"results": [...], "min_price", "max_price"}}:
//     nested items plus the aggregate, count from the top level
//
// Anything else is ErrMalformedPayload. Item entries that are not objects
// are skipped; an object that does not decode as a product is
// ErrMalformedPayload.
func ParseListing(b []byte) (Listing, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return Listing{}, fmt.Errorf("%w: empty body", ErrMalformedPayload)
	}

	switch b[0] {
	case '[':
		items, err := parseItems(b)
		if err != nil {
			return Listing{}, err
		}
		return Listing{Count: len(items), Items: items}, nil

	case '{':
		var env struct {
			Count   *Int            `json:"count"`
			Results json.RawMessage `json:"results"`
		}
		if err := json.Unmarshal(b, &env); err != nil {
			return Listing{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}

		res := bytes.TrimSpace(env.Results)
		if len(res) == 0 {
			return Listing{}, fmt.Errorf("%w: missing results", ErrMalformedPayload)
		}

		var out Listing
		switch res[0] {
		case '[':
			items, err := parseItems(res)
			if err != nil {
				return Listing{}, err
			}
			out.Items = items

		case '{':
			var nested struct {
				Results  json.RawMessage `json:"results"`
				MinPrice Int             `json:"min_price"`
				MaxPrice Int             `json:"max_price"`
			}
			if err := json.Unmarshal(res, &nested); err != nil {
				return Listing{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
			}
			if inner := bytes.TrimSpace(nested.Results); len(inner) > 0 && string(inner) != "null" {
				items, err := parseItems(inner)
				if err != nil {
					return Listing{}, err
				}
				out.Items = items
			}
			if nested.MinPrice.Valid && nested.MaxPrice.Valid {
				out.Aggregate = &Aggregate{
					MinPrice: nested.MinPrice.Value,
					MaxPrice: nested.MaxPrice.Value,
				}
			}

		default:
			return Listing{}, fmt.Errorf("%w: results is neither array nor object", ErrMalformedPayload)
		}

		out.Count = len(out.Items)
		if env.Count != nil && env.Count.Valid {
			out.Count = env.Count.Value
		}
		if out.Count < 0 {
			return Listing{}, fmt.Errorf("%w: negative count %d", ErrMalformedPayload, out.Count)
		}
		return out, nil

	default:
		return Listing{}, fmt.Errorf("%w: unexpected top-level json", ErrMalformedPayload)
	}
}

func parseItems(b []byte) ([]Product, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	out := make([]Product, 0, len(raw))
	for _, r := range raw {
		r = bytes.TrimSpace(r)
		if len(r) == 0 || r[0] != '{' {
			continue
		}
		var p Product
		if err := json.Unmarshal(r, &p); err != nil {
			return nil, fmt.Errorf("%w: product %d: %v", ErrMalformedPayload, len(out), err)
		}
		out = append(out, p)
	}
	return out, nil
}
