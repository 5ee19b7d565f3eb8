package storage

type Operator struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Shift string `json:"shift"`
}

type SaveOperator struct {
	Name  string `json:"name"`
	Shift string `json:"shift"`
}
