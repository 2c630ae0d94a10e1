package entity

import "fmt"

type PlayerConfig struct {
	ID   int
	Mark Mark
	Name string
}

// Player - participant of a game. Two players are equal only when id, mark and name all match.
type Player struct {
	ID   int    `json:"id"`
	Mark Mark   `json:"mark"`
	Name string `json:"name"`
}

func NewPlayer(conf PlayerConfig) Player {
	name := conf.Name
	if name == "" {
		name = fmt.Sprintf("Player %d", conf.ID)
	}

	return Player{
		ID:   conf.ID,
		Mark: conf.Mark,
		Name: name,
	}
}

func (that Player) String() string {
	return that.Name
}
