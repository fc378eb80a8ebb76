package dto

type CreateCalendarEventDTO struct {
	Title       string  `json:"title" validate:"required,notblank,max=255"`
	EventDate   string  `json:"event_date" validate:"required,datetime=2006-01-02"`
	Priority    string  `json:"priority" validate:"omitempty,maintenance_priority"`
	Status      string  `json:"status" validate:"omitempty,max=50"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

type CalendarMonthDTO struct {
	Year  int         `json:"year"`
	Month int         `json:"month"`
	Weeks int         `json:"weeks"`
	Days  interface{} `json:"days"`
}
