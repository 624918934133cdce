package models

import "time"

type Team struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	CountryCode string    `json:"country_code" db:"country_code"`
	GroupLetter *string   `json:"group_letter,omitempty" db:"group_letter"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	FlagKey *string `json:"-" db:"flag_key"`
	FlagURL *string `json:"flag_url,omitempty" db:"-"`
}
