package utils

import (
	"fmt"
	"strconv"
	"strings"

	"skirentals-backend/internal/domain"
)

// Size ranges in centimeters for length-sized equipment and Mondopoint
// for boots.
const (
	skiMinCm, skiMaxCm             = 70, 200
	snowboardMinCm, snowboardMaxCm = 80, 180
	polesMinCm, polesMaxCm         = 70, 140
	bootsMinMondo, bootsMaxMondo   = 15.0, 33.0
)

var apparelSizes = []string{"XS", "S", "M", "L", "XL", "XXL"}

// ValidateSize checks a size string against the rules for the equipment
// type. The same function backs both the form layer and the persistence
// layer; the two call sites are deliberate, since direct service writes
// bypass form decoding.
func ValidateSize(t domain.EquipmentType, size string) error {
	sizeStr := strings.ToUpper(strings.TrimSpace(size))
	if sizeStr == "" {
		return &domain.ValidationError{Field: "size", Message: "size is required"}
	}

	switch t {
	case domain.EquipmentTypeSki:
		return validateLengthCm(sizeStr, "Ski", skiMinCm, skiMaxCm)
	case domain.EquipmentTypeSnowboard:
		return validateLengthCm(sizeStr, "Snowboard", snowboardMinCm, snowboardMaxCm)
	case domain.EquipmentTypePoles:
		return validateLengthCm(sizeStr, "Pole", polesMinCm, polesMaxCm)
	case domain.EquipmentTypeBoots:
		mondo, err := strconv.ParseFloat(sizeStr, 64)
		if err != nil {
			return &domain.ValidationError{
				Field:   "size",
				Message: "Boot size must be a Mondopoint measurement (e.g., 25.5).",
			}
		}
		if mondo < bootsMinMondo || mondo > bootsMaxMondo {
			return &domain.ValidationError{
				Field:   "size",
				Message: fmt.Sprintf("Boot size (Mondopoint) should typically be between %.1f and %.1f.", bootsMinMondo, bootsMaxMondo),
			}
		}
		return nil
	default:
		// Apparel and accessories use categorical sizes.
		for _, s := range apparelSizes {
			if sizeStr == s {
				return nil
			}
		}
		return &domain.ValidationError{
			Field:   "size",
			Message: fmt.Sprintf("Size must be one of: %s", strings.Join(apparelSizes, ", ")),
		}
	}
}

func validateLengthCm(sizeStr, label string, min, max float64) error {
	length, err := strconv.ParseFloat(sizeStr, 64)
	if err != nil {
		return &domain.ValidationError{
			Field:   "size",
			Message: fmt.Sprintf("%s size must be a number (e.g., 175), without units like 'cm'.", label),
		}
	}
	if length <= 0 {
		return &domain.ValidationError{
			Field:   "size",
			Message: fmt.Sprintf("%s size must be a positive number in centimeters.", label),
		}
	}
	if length < min || length > max {
		return &domain.ValidationError{
			Field:   "size",
			Message: fmt.Sprintf("%s size should typically be between %.0f and %.0f cm.", label, min, max),
		}
	}
	return nil
}
