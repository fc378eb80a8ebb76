package entities

import "time"

const (
	ThemeDark  = "dark"
	ThemeLight = "light"

	DefaultTheme = ThemeDark
)

func ValidTheme(theme string) bool {
	return theme == ThemeDark || theme == ThemeLight
}

type DashboardSettings struct {
	UserID    uint64    `json:"user_id" db:"user_id"`
	Theme     string    `json:"theme" db:"theme"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
