package storage

import "time"

// WorkEntry — одна запись оператора за смену: станок, задача, продукт,
// интервал работы. Поля DisplayDate, WorkingTime и Downtime пишет только
// движок пересчёта, руками они не редактируются.
type WorkEntry struct {
	ID          int64     `json:"id,omitempty"`
	Shift       string    `json:"shift"`
	Machine     string    `json:"machine"`
	Operator    string    `json:"operator"`
	Date        time.Time `json:"date"`
	DisplayDate time.Time `json:"display_date"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Task        string    `json:"task"`
	Product     string    `json:"product"`
	Quantity    int       `json:"quantity"`
	WorkingTime int       `json:"working_time"` // минуты
	Downtime    int       `json:"downtime"`     // минуты
	Reason      *string   `json:"reason"`
	Comment     *string   `json:"comment"`
}

// SaveEntry — форма создания/редактирования записи: дата и время приходят
// с фронтенда строками, нормализация в абсолютные инстанты — на сервере.
type SaveEntry struct {
	Shift     string `json:"shift"`
	Machine   string `json:"machine"`
	Operator  string `json:"operator"`
	Date      string `json:"date"`       // 2006-01-02
	StartTime string `json:"start_time"` // HH:MM
	EndTime   string `json:"end_time"`   // HH:MM
	Task      string `json:"task"`
	Product   string `json:"product"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
	Comment   string `json:"comment"`
}

// MonthEntries — контракт выдачи за месяц: смена → станок → записи.
type MonthEntries map[string]map[string][]WorkEntry
