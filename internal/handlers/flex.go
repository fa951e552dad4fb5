package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"stays-backend/internal/services"
)

// flexString accepts a JSON string or number. Forms send phone numbers either way.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*s = flexString(n.String())
	return nil
}

func (s flexString) String() string {
	return strings.TrimSpace(string(s))
}

// flexNumber accepts a JSON number or a numeric string.
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", v)
		}
		*n = flexNumber(parsed)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = flexNumber(f)
	return nil
}

func floatOrNil(n *flexNumber) *float64 {
	if n == nil {
		return nil
	}
	v := float64(*n)
	return &v
}

// wholeOrNil converts n to an int. Fractional or out of range values are rejected
// rather than truncated.
func wholeOrNil(n *flexNumber, field string) (*int, error) {
	if n == nil {
		return nil, nil
	}
	f := float64(*n)
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return nil, &services.ValidationError{Field: field, Message: field + " must be a whole number"}
	}
	v := int(f)
	return &v, nil
}

func wholeOrZero(n *flexNumber, field string) (int, error) {
	v, err := wholeOrNil(n, field)
	if err != nil || v == nil {
		return 0, err
	}
	return *v, nil
}

func stringOrNil(s *flexString) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}
