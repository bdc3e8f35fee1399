package models

import "time"

type Player struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	Name        string    `gorm:"size:64;not null;uniqueIndex:ux_players_name" json:"name"`
	Rating      int       `gorm:"not null;default:1200" json:"rating"`
	TimeCreated time.Time `gorm:"not null" json:"time_created"`
}

func (Player) TableName() string {
	return "players"
}

// GameCounts holds the derived win/loss totals of one player.
type GameCounts struct {
	Wins   int
	Losses int
}

// Played is the total number of games the player took part in.
func (c GameCounts) Played() int {
	return c.Wins + c.Losses
}

// PlayerStanding is a player together with its derived game counts.
type PlayerStanding struct {
	Player Player
	Counts GameCounts
}

// LadderEntry is a ranked standing. Rank is 1-based.
type LadderEntry struct {
	Rank int
	PlayerStanding
}

type CreatePlayerRequest struct {
	Name        string  `json:"name" form:"name" binding:"required,max=64"`
	Rating      *int    `json:"rating" form:"rating" binding:"omitempty,min=1"`
	TimeCreated *string `json:"time_created" form:"time_created"`
}

type PlayerResponse struct {
	Name        string    `json:"name" example:"kumanan"`
	Rating      int       `json:"rating" example:"1200"`
	NumWins     int       `json:"num_wins" example:"3"`
	NumLosses   int       `json:"num_losses" example:"1"`
	TimeCreated Timestamp `json:"time_created" swaggertype:"string" example:"2015-12-06T00:27:30"`
	Rank        int       `json:"rank" example:"1"`
}

func NewPlayerResponse(entry LadderEntry) PlayerResponse {
	return PlayerResponse{
		Name:        entry.Player.Name,
		Rating:      entry.Player.Rating,
		NumWins:     entry.Counts.Wins,
		NumLosses:   entry.Counts.Losses,
		TimeCreated: NewTimestamp(entry.Player.TimeCreated),
		Rank:        entry.Rank,
	}
}
