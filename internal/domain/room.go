package domain

type Room struct {
	ID          int64             `json:"id"`
	Title       map[string]string `json:"title"`
	Description map[string]string `json:"description"`
	Image       string            `json:"image"`
	Price       *int64            `json:"price,omitempty"` // whole currency units, optional
}

// RoomPatch is a partial update for a room. Only the whitelisted fields
// (title.ru, description.ru, image, price) are ever applied; everything
// else sent by the client is dropped on decode.
type RoomPatch struct {
	Title       map[string]string `json:"title"`
	Description map[string]string `json:"description"`
	Image       *string           `json:"image"`
	Price       *float64          `json:"price"`
}
