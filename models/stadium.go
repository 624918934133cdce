package models

type Stadium struct {
	ID       int    `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	City     string `json:"city" db:"city"`
	Country  string `json:"country" db:"country"`
	Capacity *int   `json:"capacity,omitempty" db:"capacity"`
}
