package domain

import "time"

type EquipmentType string

const (
	EquipmentTypeSki       EquipmentType = "SKI"
	EquipmentTypeSnowboard EquipmentType = "SNOWBOARD"
	EquipmentTypePoles     EquipmentType = "POLES"
	EquipmentTypeBoots     EquipmentType = "BOOTS"
	EquipmentTypeHelmet    EquipmentType = "HELMET"
	EquipmentTypeGoggles   EquipmentType = "GOGGLES"
	EquipmentTypeGloves    EquipmentType = "GLOVES"
	EquipmentTypeJacket    EquipmentType = "JACKET"
	EquipmentTypePants     EquipmentType = "PANTS"
	EquipmentTypeOther     EquipmentType = "OTHER"
)

var equipmentTypes = map[EquipmentType]bool{
	EquipmentTypeSki: true, EquipmentTypeSnowboard: true, EquipmentTypePoles: true,
	EquipmentTypeBoots: true, EquipmentTypeHelmet: true, EquipmentTypeGoggles: true,
	EquipmentTypeGloves: true, EquipmentTypeJacket: true, EquipmentTypePants: true,
	EquipmentTypeOther: true,
}

func (t EquipmentType) IsValid() bool {
	return equipmentTypes[t]
}

// SkiType is only meaningful when the equipment type is SKI. For every
// other type the field is cleared on save.
type SkiType string

const (
	SkiTypePowder      SkiType = "POWDER"
	SkiTypeAllMountain SkiType = "ALL_MOUNTAIN"
	SkiTypeFreestyle   SkiType = "FREESTYLE"
	SkiTypeFreeride    SkiType = "FREERIDE"
	SkiTypeTouring     SkiType = "TOURING"
	SkiTypeCarving     SkiType = "CARVING"
	SkiTypeFrontside   SkiType = "FRONTSIDE"
	SkiTypeSkiBlades   SkiType = "SKI_BLADES"
)

type Condition string

const (
	ConditionNew         Condition = "NEW"
	ConditionExcellent   Condition = "EXCELLENT"
	ConditionGood        Condition = "GOOD"
	ConditionFair        Condition = "FAIR"
	ConditionPoor        Condition = "POOR"
	ConditionMaintenance Condition = "MAINTENANCE"
)

// conditionRank orders conditions from best (NEW) to worst (MAINTENANCE).
var conditionRank = map[Condition]int{
	ConditionNew:         0,
	ConditionExcellent:   1,
	ConditionGood:        2,
	ConditionFair:        3,
	ConditionPoor:        4,
	ConditionMaintenance: 5,
}

// WorseThan reports whether c is strictly worse than other. Unknown
// conditions never compare as worse.
func (c Condition) WorseThan(other Condition) bool {
	cr, ok := conditionRank[c]
	if !ok {
		return false
	}
	or, ok := conditionRank[other]
	if !ok {
		return false
	}
	return cr > or
}

// IsValid reports whether c is one of the known condition values.
func (c Condition) IsValid() bool {
	_, ok := conditionRank[c]
	return ok
}

type Equipment struct {
	ID            int32         `json:"id"`
	EquipmentID   string        `json:"equipment_id"` // public identifier (UUID)
	Type          EquipmentType `json:"equipment_type"`
	Subtype       SkiType       `json:"equipment_subtype,omitempty"`
	Brand         string        `json:"brand"`
	Model         string        `json:"model"`
	Size          string        `json:"size"`
	Location      string        `json:"location"`
	Condition     Condition     `json:"condition"`
	IsAvailable   bool          `json:"is_available"`
	IsDeleted     bool          `json:"is_deleted"`
	Notes         string        `json:"notes"`
	DailyRateCents    int64  `json:"daily_rate_cents"`
	WeeklyRateCents   *int64 `json:"weekly_rate_cents,omitempty"`
	SeasonalRateCents *int64 `json:"seasonal_rate_cents,omitempty"`
	TotalRentals  int32     `json:"total_rentals"`
	AverageRating float64   `json:"average_rating"`
	DateAdded     time.Time `json:"date_added"`
	LastMaintained     time.Time  `json:"last_maintained"`
	NextMaintenanceDue *time.Time `json:"next_maintenance_due,omitempty"`
}

// NormalizeSubtype clears the ski subtype on non-ski equipment. Invoked on
// every write path so a stored row can never carry a stale subtype.
func (e *Equipment) NormalizeSubtype() {
	if e.Type != EquipmentTypeSki {
		e.Subtype = ""
	}
}

type EquipmentImage struct {
	ID          int32     `json:"id"`
	EquipmentID int32     `json:"equipment_id"`
	URL         string    `json:"url"`
	Caption     string    `json:"caption"`
	Order       int32     `json:"order"`
	UploadedOn  time.Time `json:"uploaded_on"`
}
