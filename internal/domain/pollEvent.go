package domain

// PollTrigger identifica quem disparou o ciclo de leitura
type PollTrigger string

const (
	PollTriggerSchedule PollTrigger = "schedule"
	PollTriggerManual   PollTrigger = "manual"
	PollTriggerUser     PollTrigger = "user"
)

// PollEvent é publicado quando um ciclo detecta mudança nos contadores
type PollEvent struct {
	RunID    string         `json:"run_id"`
	Trigger  PollTrigger    `json:"trigger"`
	Snapshot RatingSnapshot `json:"snapshot"`
	Changes  ChangeSet      `json:"changes"`
}
