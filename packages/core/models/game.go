package models

import "time"

// Game is immutable once created.
type Game struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	WinnerID    uint      `gorm:"not null;index" json:"-"`
	LoserID     uint      `gorm:"not null;index" json:"-"`
	WinnerScore int       `gorm:"not null" json:"winner_score"`
	LoserScore  int       `gorm:"not null" json:"loser_score"`
	TimeCreated time.Time `gorm:"not null;index" json:"time_created"`

	// Relationships
	Winner Player `gorm:"foreignKey:WinnerID;references:ID;constraint:OnDelete:RESTRICT" json:"-"`
	Loser  Player `gorm:"foreignKey:LoserID;references:ID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (Game) TableName() string {
	return "games"
}

type CreateGameRequest struct {
	Winner      string  `json:"winner" form:"winner" binding:"required"`
	Loser       string  `json:"loser" form:"loser" binding:"required"`
	WinnerScore *int    `json:"winner_score" form:"winner_score" binding:"required"`
	LoserScore  *int    `json:"loser_score" form:"loser_score" binding:"required"`
	TimeCreated *string `json:"time_created" form:"time_created"`
}

type GameResponse struct {
	ID          uint      `json:"id" example:"1"`
	Winner      string    `json:"winner" example:"kumanan"`
	Loser       string    `json:"loser" example:"colin"`
	WinnerScore int       `json:"winner_score" example:"21"`
	LoserScore  int       `json:"loser_score" example:"19"`
	TimeCreated Timestamp `json:"time_created" swaggertype:"string" example:"2015-12-06T00:27:30"`
}

// NewGameResponse expects Winner and Loser to be loaded.
func NewGameResponse(g Game) GameResponse {
	return GameResponse{
		ID:          g.ID,
		Winner:      g.Winner.Name,
		Loser:       g.Loser.Name,
		WinnerScore: g.WinnerScore,
		LoserScore:  g.LoserScore,
		TimeCreated: NewTimestamp(g.TimeCreated),
	}
}
