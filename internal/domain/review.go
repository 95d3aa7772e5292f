package domain

import "time"

// Review is one user's rating of one equipment item. A user may review a
// given item at most once; resubmitting overwrites the existing row.
type Review struct {
	ID          int32     `json:"id"`
	EquipmentID int32     `json:"equipment_id"`
	UserID      int32     `json:"user_id"`
	Rating      int32     `json:"rating"` // 1..5
	Comment     string    `json:"comment"`
	DatePosted  time.Time `json:"date_posted"`
}

// RatingBucket is the count and truncated percentage of reviews at one
// star value. Percentages are truncated per bucket and may not sum to 100.
type RatingBucket struct {
	Count   int32 `json:"count"`
	Percent int32 `json:"percent"`
}

type RatingDistribution struct {
	Buckets map[int32]RatingBucket `json:"buckets"` // keyed 1..5
	Total   int32                  `json:"total"`
}
