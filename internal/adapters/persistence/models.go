package persistence

import (
	"time"
)

// PartModel represents the parts table. Installed and warehoused parts
// share the table; unit_id is empty for warehouse stock. The pod contents
// of an omni pod are stored as a nested JSON snapshot.
type PartModel struct {
	ID            string    `gorm:"column:id;primaryKey;not null"`
	Kind          string    `gorm:"column:kind;not null"`
	CatalogKey    string    `gorm:"column:catalog_key;not null"`
	Name          string    `gorm:"column:name;not null"`
	Tonnage       float64   `gorm:"column:tonnage;not null"`
	SubRating     int       `gorm:"column:sub_rating;default:0"`
	Quantity      int       `gorm:"column:quantity;not null;default:1"`
	UnitID        string    `gorm:"column:unit_id;index"`
	Slot          int       `gorm:"column:slot;default:-1"`
	Condition     string    `gorm:"column:condition;not null"`
	WorkStatus    string    `gorm:"column:work_status;not null"`
	Purpose       string    `gorm:"column:purpose"`
	TechID        string    `gorm:"column:tech_id"`
	TimeSpent     int       `gorm:"column:time_spent;default:0"`
	Overtime      int       `gorm:"column:overtime;default:0"`
	DaysToArrival int       `gorm:"column:days_to_arrival;default:0"`
	RequiredSkill int       `gorm:"column:required_skill;default:0"`
	Podded        bool      `gorm:"column:podded;default:false"`
	PodType       string    `gorm:"column:pod_type;type:text"` // JSON snapshot as text
	ArmorPoints   int       `gorm:"column:armor_points;default:0"`
	ArmorTotal    int       `gorm:"column:armor_total;default:0"`
	ShotsNeeded   int       `gorm:"column:shots_needed;default:0"`
	UpdatedAt     time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}

func (PartModel) TableName() string {
	return "parts"
}

// UnitModel represents the units table. The slot blueprint is stored as a
// JSON array.
type UnitModel struct {
	ID        string    `gorm:"column:id;primaryKey;not null"`
	Name      string    `gorm:"column:name;not null"`
	Tonnage   float64   `gorm:"column:tonnage;not null"`
	Deployed  bool      `gorm:"column:deployed;default:false"`
	Salvage   bool      `gorm:"column:salvage;default:false"`
	RefitID   string    `gorm:"column:refit_id"`
	Slots     string    `gorm:"column:slots;type:text;not null"` // JSON array as text
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}

func (UnitModel) TableName() string {
	return "units"
}

// RefitModel represents the refits table. Target blueprint, kit bindings
// and report lists are stored as JSON.
type RefitModel struct {
	ID            string    `gorm:"column:id;primaryKey;not null"`
	UnitID        string    `gorm:"column:unit_id;index;not null"`
	Status        string    `gorm:"column:status;not null"`
	Refurbishment bool      `gorm:"column:refurbishment;default:false"`
	CustomJob     bool      `gorm:"column:custom_job;default:false"`
	TimeRequired  int       `gorm:"column:time_required;default:0"`
	DaysElapsed   int       `gorm:"column:days_elapsed;default:0"`
	WorkMinutes   int       `gorm:"column:work_minutes;default:0"`
	Shortfall     string    `gorm:"column:shortfall;type:text"` // JSON array as text
	Removals      string    `gorm:"column:removals;type:text"`  // JSON array as text
	Target        string    `gorm:"column:target;type:text"`    // JSON array as text
	Kit           string    `gorm:"column:kit;type:text"`       // JSON array as text
	UpdatedAt     time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}

func (RefitModel) TableName() string {
	return "refits"
}

// TechModel represents the techs table.
type TechModel struct {
	ID             string    `gorm:"column:id;primaryKey;not null"`
	Name           string    `gorm:"column:name;not null"`
	Skill          int       `gorm:"column:skill;not null"`
	DailyMinutes   int       `gorm:"column:daily_minutes;not null"`
	MinutesUsed    int       `gorm:"column:minutes_used;default:0"`
	AssignedPartID string    `gorm:"column:assigned_part_id"`
	UpdatedAt      time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}

func (TechModel) TableName() string {
	return "techs"
}
