package entity

import "time"

// ReminderMessage - сообщение в очередь напоминаний о скором сроке задачи
type ReminderMessage struct {
	ID         string    `json:"id"`
	TaskID     int       `json:"task_id"`
	UserID     int       `json:"user_id"`
	Title      string    `json:"title"`
	DueDate    time.Time `json:"due_date"`
	Categories []string  `json:"categories"`
	Timestamp  time.Time `json:"timestamp"`
}
