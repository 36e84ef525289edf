package domain

import "time"

// Subscriber é um usuário do bot identificado pelo chat do Telegram
type Subscriber struct {
	ChatID     int64     `json:"chat_id"`
	TrackedID  *string   `json:"tracked_id"`
	Subscribed bool      `json:"subscribed"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Stats resume o estado do bot para administradores
type Stats struct {
	TotalUsers      int        `json:"total_users"`
	Subscribers     int        `json:"subscribers"`
	Snapshots       int        `json:"snapshots"`
	LastSnapshotAt  *time.Time `json:"last_snapshot_at"`
	LastTotalPeople *int       `json:"last_total_people"`
}
