package models

import "time"

// Pool is a prediction pool that friends can join with a shared code.
// Codes are unguessable ("wc26-xk92m4pq"), so anyone holding one may view
// the pool; mutations require the opaque tokens issued at creation/join.
type Pool struct {
	ID               int       `json:"id" db:"id"`
	Code             string    `json:"code" db:"code"`
	Name             string    `json:"name" db:"name"`
	CreatorTokenHash string    `json:"-" db:"creator_token_hash"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`

	Members []PoolMember `json:"members,omitempty" db:"-"`
}

type PoolMember struct {
	ID          int       `json:"id" db:"id"`
	PoolID      int       `json:"-" db:"pool_id"`
	DisplayName string    `json:"display_name" db:"display_name"`
	BracketData string    `json:"bracket_data" db:"bracket_data"`
	TokenHash   string    `json:"-" db:"member_token_hash"`
	JoinedAt    time.Time `json:"joined_at" db:"joined_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
