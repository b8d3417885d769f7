package models

import "time"

// CardAllocation is a card dealt to a player on a hole. A (suit, rank) pair
// appears at most once per session.
type CardAllocation struct {
	ID        string    `json:"id" db:"id"`
	SessionID string    `json:"session_id" db:"session_id"`
	PlayerID  string    `json:"player_id" db:"player_id"`
	HoleID    string    `json:"hole_id" db:"hole_id"`
	Suit      string    `json:"suit" db:"suit"`
	Rank      string    `json:"rank" db:"rank"`
	IsHidden  bool      `json:"is_hidden" db:"is_hidden"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CardView is a card as presented to a particular viewer
type CardView struct {
	ID       string `json:"id"`
	HoleID   string `json:"hole_id"`
	Hole     int    `json:"hole"`
	Suit     string `json:"suit,omitempty"`
	Rank     string `json:"rank,omitempty"`
	FaceDown bool   `json:"face_down"`
}
