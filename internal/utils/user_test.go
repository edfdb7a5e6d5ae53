package utils

import (
	"testing"
)

func TestGetUserLevel(t *testing.T) {
	cases := []struct {
		points int
		want   string
	}{
		{-50, LevelNewcomer},
		{0, LevelNewcomer},
		{99, LevelNewcomer},
		{100, LevelFashionEnthusiast},
		{499, LevelFashionEnthusiast},
		{500, LevelEcoChampion},
		{999, LevelEcoChampion},
		{1000, LevelSwapMaster},
		{5000, LevelSwapMaster},
	}
	for _, c := range cases {
		got, icon := GetUserLevel(c.points)
		if got != c.want {
			t.Errorf("GetUserLevel(%d) = %s, want %s", c.points, got, c.want)
		}
		if icon == "" {
			t.Errorf("GetUserLevel(%d) returned empty icon", c.points)
		}
	}
}
