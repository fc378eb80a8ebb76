package dto

type ThemeDTO struct {
	Theme string `json:"theme" validate:"required,theme"`
}
