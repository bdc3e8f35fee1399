package models

import (
	"time"

	"gorm.io/gorm"
)

// Challenge is open while GameID is nil. PlayerLowID and PlayerHighID hold the
// unordered player pair and back the one-open-challenge-per-pair index.
type Challenge struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ChallengerID uint      `gorm:"not null;index" json:"-"`
	ChallengedID uint      `gorm:"not null;index" json:"-"`
	PlayerLowID  uint      `gorm:"not null" json:"-"`
	PlayerHighID uint      `gorm:"not null" json:"-"`
	TimeCreated  time.Time `gorm:"not null;index" json:"time_created"`
	GameID       *uint     `gorm:"index" json:"game_id"`

	// Relationships
	Challenger Player `gorm:"foreignKey:ChallengerID;references:ID;constraint:OnDelete:RESTRICT" json:"-"`
	Challenged Player `gorm:"foreignKey:ChallengedID;references:ID;constraint:OnDelete:RESTRICT" json:"-"`
	Game       *Game  `gorm:"foreignKey:GameID;references:ID;constraint:OnDelete:SET NULL" json:"-"`
}

func (Challenge) TableName() string {
	return "challenges"
}

func (c *Challenge) IsOpen() bool {
	return c.GameID == nil
}

// BeforeCreate fills the normalised pair key.
func (c *Challenge) BeforeCreate(tx *gorm.DB) error {
	c.PlayerLowID, c.PlayerHighID = OrderedPair(c.ChallengerID, c.ChallengedID)
	return nil
}

// OrderedPair returns a and b with the smaller id first.
func OrderedPair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}

type CreateChallengeRequest struct {
	Challenger  string  `json:"challenger" form:"challenger" binding:"required"`
	Challenged  string  `json:"challenged" form:"challenged" binding:"required"`
	TimeCreated *string `json:"time_created" form:"time_created"`
	GameID      *uint   `json:"game_id" form:"game_id"`
}

type ChallengeResponse struct {
	ID          uint      `json:"id" example:"1"`
	Challenger  string    `json:"challenger" example:"colin"`
	Challenged  string    `json:"challenged" example:"kumanan"`
	TimeCreated Timestamp `json:"time_created" swaggertype:"string" example:"2015-12-06T00:27:30"`
	GameID      *uint     `json:"game_id"`
}

// NewChallengeResponse expects Challenger and Challenged to be loaded.
func NewChallengeResponse(c Challenge) ChallengeResponse {
	return ChallengeResponse{
		ID:          c.ID,
		Challenger:  c.Challenger.Name,
		Challenged:  c.Challenged.Name,
		TimeCreated: NewTimestamp(c.TimeCreated),
		GameID:      c.GameID,
	}
}
