package cart

import (
	"encoding/json"
	"fmt"

	"github.com/nikolayk812/fluxshop/internal/domain"
)

func Encode(lines []domain.CartLine) ([]byte, error) {
	if lines == nil {
		lines = []domain.CartLine{}
	}

	data, err := json.Marshal(lines)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}
	return data, nil
}

// Decode never fails: anything that is not a well-formed cart yields an empty one.
// A well-formed cart has non-empty, unique product IDs; quantities below 1 are raised to 1.
func Decode(data []byte) []domain.CartLine {
	lines, err := decodeStrict(data)
	if err != nil {
		return []domain.CartLine{}
	}
	return lines
}

func decodeStrict(data []byte) ([]domain.CartLine, error) {
	var lines []domain.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	seen := make(map[string]struct{}, len(lines))
	out := make([]domain.CartLine, 0, len(lines))
	for _, line := range lines {
		if line.ProductID == "" {
			return nil, fmt.Errorf("productID is empty")
		}
		if _, dup := seen[line.ProductID]; dup {
			return nil, fmt.Errorf("productID[%s] is duplicated", line.ProductID)
		}
		seen[line.ProductID] = struct{}{}

		line.Quantity = max(1, line.Quantity)
		out = append(out, line)
	}

	return out, nil
}
