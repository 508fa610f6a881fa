package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ===== DTOs =====

type portfolioDTO struct {
	Name    string `json:"name"`
	BaseCCY string `json:"base_ccy,omitempty"`
}

func (d portfolioDTO) toDomain(now time.Time, idOpt ...string) (Portfolio, error) {
	if strings.TrimSpace(d.Name) == "" {
		return Portfolio{}, invalidInput(fieldName, "required")
	}
	id := ""
	if len(idOpt) > 0 {
		id = idOpt[0]
	}
	if id == "" {
		id = uuid.NewString()
	}
	return Portfolio{
		ID:        id,
		Name:      strings.TrimSpace(d.Name),
		BaseCCY:   strings.ToUpper(strings.TrimSpace(d.BaseCCY)),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// holdingDTO mirrors the "add investment" dialog. Values stay raw so that
// validation reports the offending field instead of a decode error.
type holdingDTO struct {
	AssetName rawField `json:"asset_name"`
	Amount    rawField `json:"amount"`
	Price     rawField `json:"price"`
}

func (d holdingDTO) raw() RawHoldingInput {
	return RawHoldingInput{
		AssetName: string(d.AssetName),
		Amount:    string(d.Amount),
		Price:     string(d.Price),
	}
}

// rawField accepts a JSON string, a bare JSON number or null.
type rawField string

func (f *rawField) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*f = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = rawField(s)
	case len(b) > 0 && (b[0] == '{' || b[0] == '['):
		return errors.New("expected a string or a number")
	default:
		*f = rawField(b)
	}
	return nil
}
