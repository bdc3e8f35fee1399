package cli

// Player as returned by the API.
type Player struct {
	Name        string `json:"name"`
	Rating      int    `json:"rating"`
	NumWins     int    `json:"num_wins"`
	NumLosses   int    `json:"num_losses"`
	Rank        int    `json:"rank"`
	TimeCreated string `json:"time_created"`
}

type Game struct {
	ID          uint   `json:"id"`
	Winner      string `json:"winner"`
	Loser       string `json:"loser"`
	WinnerScore int    `json:"winner_score"`
	LoserScore  int    `json:"loser_score"`
	TimeCreated string `json:"time_created"`
}

type Challenge struct {
	ID          uint   `json:"id"`
	Challenger  string `json:"challenger"`
	Challenged  string `json:"challenged"`
	TimeCreated string `json:"time_created"`
	GameID      *uint  `json:"game_id"`
}

type Stats struct {
	TotalPlayers       int64 `json:"total_players"`
	TotalGames         int64 `json:"total_games"`
	OpenChallenges     int64 `json:"open_challenges"`
	GamesLast7Days     int64 `json:"games_last_7_days"`
	GamesPrevious7Days int64 `json:"games_previous_7_days"`
}

type Health struct {
	Message  string `json:"message"`
	Database string `json:"database"`
}
