package cache

import "fmt"

const keyPrefix = "ladder"

func leaderboardKey() string {
	return fmt.Sprintf("%s:leaderboard", keyPrefix)
}

func leaderboardVersionKey() string {
	return fmt.Sprintf("%s:leaderboard:version", keyPrefix)
}
