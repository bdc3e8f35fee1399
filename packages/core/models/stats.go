package models

type Stats struct {
	TotalPlayers       int64 `json:"total_players"`
	TotalGames         int64 `json:"total_games"`
	OpenChallenges     int64 `json:"open_challenges"`
	GamesLast7Days     int64 `json:"games_last_7_days"`
	GamesPrevious7Days int64 `json:"games_previous_7_days"`
}
