package model

import "time"

// Submission is one code-execution attempt relayed to the executor
// service. Rows are written asynchronously by the persist worker.
type Submission struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Language  string    `gorm:"size:32;not null" json:"language"`
	Code      string    `gorm:"type:text" json:"code"`
	Result    string    `gorm:"type:text" json:"result"`
	CreatedAt time.Time `json:"created_at"`
}
