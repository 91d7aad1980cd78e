package catalogservice

// Room модель комнаты из каталог-сервиса
type Room struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	LocationID   int64   `json:"locationId"`
	LocationName string  `json:"locationName"`
	Capacity     int     `json:"capacity"`
	BasePrice    float64 `json:"basePrice"`
	IsActive     bool    `json:"isActive"`
}

// ErrorResponse модель ошибки от каталог-сервиса
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
