package responses

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type Product struct {
	ID          Int           `json:"id"`
	Name        string        `json:"product_name"`
	Description string        `json:"product_description"`
	Price       Int           `json:"price"`
	ImageURL    string        `json:"image_url"`
	Tags        []CategoryRef `json:"tags"`
	Labels      []CategoryRef `json:"labels"`
	Promotions  []CategoryRef `json:"promotion_tags"`
}

// Int accepts a JSON number, a numeric string ("1200.00") or null.
// Non-finite values and values outside the int32 range are errors.
type Int struct {
	Value int
	Valid bool
}

func (n *Int) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	s = strings.Trim(s, `"`)
	if s == "" || s == "null" {
		*n = Int{}
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("not a number: %q", s)
	}
	f = math.Round(f)
	if f < math.MinInt32 || f > math.MaxInt32 {
		return fmt.Errorf("number out of range: %q", s)
	}
	*n = Int{Value: int(f), Valid: true}
	return nil
}

// CategoryRef is a tag/label/promotion reference. The catalog sends
// {"name": "..."} objects, older dumps send bare strings.
type CategoryRef struct {
	Name string
}

func (c *CategoryRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}

	switch b[0] {
	case '"':
		return json.Unmarshal(b, &c.Name)
	case '{':
		var obj map[string]any
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		if s, ok := obj["name"].(string); ok {
			c.Name = s
		}
		return nil
	default:
		// numbers, bools: keep the literal text
		c.Name = string(b)
		return nil
	}
}
