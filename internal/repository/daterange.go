package repository

// Окна считаются по часам сервера БД (CURRENT_DATE), а не приложения.
// Начало недели - по соглашению PostgreSQL (понедельник).
var dateRangeConditions = map[string]string{
	"today":      `DATE(t.created_at) = CURRENT_DATE`,
	"yesterday":  `DATE(t.created_at) = CURRENT_DATE - INTERVAL '1 day'`,
	"this_week":  `DATE_TRUNC('week', t.created_at) = DATE_TRUNC('week', CURRENT_DATE)`,
	"last_week":  `DATE_TRUNC('week', t.created_at) = DATE_TRUNC('week', CURRENT_DATE - INTERVAL '1 week')`,
	"this_month": `DATE_TRUNC('month', t.created_at) = DATE_TRUNC('month', CURRENT_DATE)`,
	"last_month": `DATE_TRUNC('month', t.created_at) = DATE_TRUNC('month', CURRENT_DATE - INTERVAL '1 month')`,
}

// DateRangeCondition возвращает условие на created_at для именованного окна.
// Неизвестное или пустое значение - без условия.
func DateRangeCondition(dateRange string) (string, bool) {
	cond, ok := dateRangeConditions[dateRange]
	return cond, ok
}
