package models

// ProgressRecord is one self-reported daily log row. It is append-only and
// deliberately unvalidated; several rows per date are allowed. Date stays a
// plain YYYY-MM-DD string as submitted by the form.
type ProgressRecord struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	UserID   uint    `gorm:"index" json:"user_id"`
	Date     string  `gorm:"size:10" json:"date"`
	Steps    int     `json:"steps"`
	Calories int     `json:"calories"`
	Distance float64 `json:"distance"`
}

// TableName keeps the original table name.
func (ProgressRecord) TableName() string {
	return "progress"
}
