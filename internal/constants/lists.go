package constants

var (
	// станки цеха
	Machines = map[string]bool{
		"DTG-1": true,
		"DTG-2": true,
		"DTG-3": true,
		"DTG-4": true,
		"DTF-1": true,
		"DTF-2": true,
	}

	// типы задач
	Tasks = map[string]bool{
		"pod":      true,
		"pof":      true,
		"zlecenie": true,
		"sample":   true,
		"test":     true,
	}

	Products = map[string]bool{
		"T-shirt":    true,
		"Hoodie":     true,
		"Bag":        true,
		"Sleeve":     true,
		"Sweatshirt": true,
		"Other":      true,
	}

	// причины простоя для выпадающего списка
	DowntimeReasons = map[string]bool{
		"Отсутствие заданий": true,
		"Замена плёнки":      true,
		"Чистка головы":      true,
		"Поломка станка":     true,
		"Обед":               true,
		"Другое":             true,
	}
)
