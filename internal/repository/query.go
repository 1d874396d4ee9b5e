package repository

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/St1cky1/task-manager/internal/entity"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

const taskSelectColumns = `t.id, t.title, t.description, t.status, t.priority, t.due_date,
	t.reminder_sent, t.user_id, t.created_at, t.updated_at,
	COALESCE(
		json_agg(json_build_object('id', c.id, 'name', c.name, 'user_id', c.user_id, 'created_at', c.created_at)
			ORDER BY c.name) FILTER (WHERE c.id IS NOT NULL),
		'[]'
	) AS categories`

const taskFromJoins = `FROM tasks t
	LEFT JOIN task_categories tc ON tc.task_id = t.id
	LEFT JOIN categories c ON c.id = tc.category_id`

// taskQuery накапливает условия WHERE с параллельным списком параметров,
// ORDER BY и пагинацию. Пользовательские значения идут только параметрами ($n),
// всё, что вставляется в текст запроса, проходит через sanitize.
type taskQuery struct {
	conds  []string
	args   []any
	order  []string
	limit  int
	offset int
	paged  bool
}

func newTaskQuery(userID int) (*taskQuery, error) {
	q := &taskQuery{}
	if err := q.whereEq("user_id", userID); err != nil {
		return nil, err
	}
	return q, nil
}

func (q *taskQuery) placeholder(v any) string {
	q.args = append(q.args, v)
	return "$" + strconv.Itoa(len(q.args))
}

func (q *taskQuery) whereEq(column string, value any) error {
	col, err := ValidateIdentifier(column)
	if err != nil {
		return err
	}
	q.conds = append(q.conds, "t."+col+" = "+q.placeholder(value))
	return nil
}

// whereRaw - только для фиксированных условий из кода (окна дат)
func (q *taskQuery) whereRaw(cond string) {
	q.conds = append(q.conds, cond)
}

func (q *taskQuery) orderByColumn(column, dir string, nullsLast bool) error {
	col, err := ValidateIdentifier(column)
	if err != nil {
		return err
	}
	d, err := ValidateSortDirection(dir)
	if err != nil {
		return err
	}
	term := "t." + col + " " + d
	if nullsLast {
		term += " NULLS LAST"
	}
	q.order = append(q.order, term)
	return nil
}

func (q *taskQuery) orderByPriorityRank(dir string) error {
	d, err := ValidateSortDirection(dir)
	if err != nil {
		return err
	}
	q.order = append(q.order, priorityRankExpr()+" "+d)
	return nil
}

func (q *taskQuery) paginate(page, limit int) error {
	page, err := ValidateNonNegativeInteger(page)
	if err != nil {
		return err
	}
	limit, err = ValidateNonNegativeInteger(limit)
	if err != nil {
		return err
	}
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		return fmt.Errorf("%w: limit %d exceeds %d", entity.ErrInvalidNumber, limit, MaxPageSize)
	}

	q.limit = limit
	// страница далеко за концом: смещение упирается в максимум и выборка пуста,
	// total при этом считается отдельным запросом
	if page-1 > math.MaxInt/limit {
		q.offset = math.MaxInt
	} else {
		q.offset = (page - 1) * limit
	}
	q.paged = true
	return nil
}

func (q *taskQuery) whereSQL() string {
	return "WHERE " + strings.Join(q.conds, " AND ")
}

func (q *taskQuery) countSQL() string {
	return "SELECT COUNT(*) FROM tasks t " + q.whereSQL()
}

func (q *taskQuery) selectSQL() string {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(taskSelectColumns)
	b.WriteString("\n")
	b.WriteString(taskFromJoins)
	b.WriteString("\n")
	b.WriteString(q.whereSQL())
	b.WriteString("\nGROUP BY t.id")
	if len(q.order) > 0 {
		b.WriteString("\nORDER BY ")
		b.WriteString(strings.Join(q.order, ", "))
	}
	if q.paged {
		b.WriteString("\nLIMIT ")
		b.WriteString(strconv.Itoa(q.limit))
		b.WriteString(" OFFSET ")
		b.WriteString(strconv.Itoa(q.offset))
	}
	return b.String()
}

// priorityRankExpr строит CASE из entity.PriorityRank (high=1, medium=2, low=3)
func priorityRankExpr() string {
	priorities := make([]entity.TaskPriority, 0, len(entity.PriorityRank))
	for p := range entity.PriorityRank {
		priorities = append(priorities, p)
	}
	sort.Slice(priorities, func(i, j int) bool {
		return entity.PriorityRank[priorities[i]] < entity.PriorityRank[priorities[j]]
	})

	var b strings.Builder
	b.WriteString("CASE t.priority")
	for _, p := range priorities {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", p, entity.PriorityRank[p])
	}
	b.WriteString(" END")
	return b.String()
}

// invertDirection: приоритет сортируется по рангу, где 1 = high,
// поэтому "desc" по важности - это ASC по рангу
func invertDirection(dir string) string {
	if dir == "ASC" {
		return "DESC"
	}
	return "ASC"
}

// buildTaskListQuery собирает запрос списка задач пользователя по фильтру
func buildTaskListQuery(userID int, f entity.TaskFilter) (*taskQuery, error) {
	q, err := newTaskQuery(userID)
	if err != nil {
		return nil, err
	}

	if f.Status != "" {
		if err := q.whereEq("status", f.Status); err != nil {
			return nil, err
		}
	}
	if f.Priority != "" {
		if err := q.whereEq("priority", f.Priority); err != nil {
			return nil, err
		}
	}
	if cond, ok := DateRangeCondition(f.DateRange); ok {
		q.whereRaw(cond)
	}

	dir := "DESC"
	if f.SortOrder != "" {
		if dir, err = ValidateSortDirection(f.SortOrder); err != nil {
			return nil, err
		}
	}

	switch f.SortBy {
	case "priority":
		err = q.orderByPriorityRank(invertDirection(dir))
		if err == nil {
			err = q.orderByColumn("created_at", "DESC", false)
		}
		if err == nil {
			err = q.orderByColumn("id", "DESC", false)
		}
	case "dueDate", "due_date":
		err = q.orderByColumn("due_date", dir, true)
		if err == nil {
			err = q.orderByColumn("created_at", "DESC", false)
		}
		if err == nil {
			err = q.orderByColumn("id", "DESC", false)
		}
	default:
		err = q.orderByColumn("created_at", dir, false)
		if err == nil {
			err = q.orderByColumn("id", dir, false)
		}
	}
	if err != nil {
		return nil, err
	}

	if err := q.paginate(f.Page, f.Limit); err != nil {
		return nil, err
	}
	return q, nil
}
