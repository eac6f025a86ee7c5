package validation

import "fmt"

const (
	// MinItemNameLen is the minimum item name length.
	MinItemNameLen = 2
	// MaxItemNameLen is the maximum item name length.
	MaxItemNameLen = 200

	// MaxDescriptionLen is the maximum item description length.
	MaxDescriptionLen = 1000

	// MaxTax is the maximum tax percentage.
	MaxTax = 100
)

// ValidateItemName checks the item name length.
func ValidateItemName(name string) error {
	if len(name) < MinItemNameLen {
		return fmt.Errorf("item name must be at least %d characters long", MinItemNameLen)
	}
	if len(name) > MaxItemNameLen {
		return fmt.Errorf("item name must not exceed %d characters", MaxItemNameLen)
	}
	return nil
}

// ValidateItemFields checks price, tax and description bounds. Tax and
// description are optional; nil skips the check.
func ValidateItemFields(price float64, tax *float64, description *string) error {
	if price <= 0 {
		return fmt.Errorf("price must be greater than zero")
	}
	if tax != nil && (*tax < 0 || *tax > MaxTax) {
		return fmt.Errorf("tax must be between 0 and %d", MaxTax)
	}
	if description != nil && len(*description) > MaxDescriptionLen {
		return fmt.Errorf("description must not exceed %d characters", MaxDescriptionLen)
	}
	return nil
}
