package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"bitport/internal/models"
)

// Ошибки репозитория истории обменов
var (
	ErrSwapRecordNotFound = errors.New("swap record not found")
)

// historySortColumns - whitelist колонок сортировки для истории
var historySortColumns = map[string]string{
	"created_at":  "created_at",
	"createdAt":   "created_at",
	"amount_from": "amount_from",
	"amountFrom":  "amount_from",
	"amount_to":   "amount_to",
	"amountTo":    "amount_to",
	"from_symbol": "from_symbol",
	"from":        "from_symbol",
	"to_symbol":   "to_symbol",
	"to":          "to_symbol",
}

// HistoryFilter - параметры выборки истории обменов
type HistoryFilter struct {
	ListParams
	FromSymbol string
	ToSymbol   string
}

// HistoryRepository - работа с таблицей history
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository создает новый экземпляр репозитория
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Create создает запись об обмене
func (r *HistoryRepository) Create(record *models.SwapRecord) error {
	query := `
		INSERT INTO history (user_id, from_symbol, to_symbol, amount_from, amount_to, price_usd, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	record.CreatedAt = time.Now()

	err := r.db.QueryRow(
		query,
		record.UserID,
		record.FromSymbol,
		record.ToSymbol,
		record.AmountFrom,
		record.AmountTo,
		record.PriceUSD,
		record.Note,
		record.CreatedAt,
	).Scan(&record.ID)

	if err != nil {
		return err
	}

	return nil
}

// GetByID возвращает запись пользователя по ID.
// Чужая запись неотличима от несуществующей.
func (r *HistoryRepository) GetByID(id, userID int) (*models.SwapRecord, error) {
	query := `
		SELECT id, user_id, from_symbol, to_symbol, amount_from, amount_to, price_usd, note, created_at
		FROM history
		WHERE id = $1 AND user_id = $2`

	record := &models.SwapRecord{}
	err := r.db.QueryRow(query, id, userID).Scan(
		&record.ID,
		&record.UserID,
		&record.FromSymbol,
		&record.ToSymbol,
		&record.AmountFrom,
		&record.AmountTo,
		&record.PriceUSD,
		&record.Note,
		&record.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSwapRecordNotFound
		}
		return nil, err
	}

	return record, nil
}

// List возвращает страницу истории пользователя и общее число записей,
// удовлетворяющих фильтру. COUNT и выборка используют один предикат
// и выполняются параллельно.
func (r *HistoryRepository) List(userID int, filter HistoryFilter) ([]*models.SwapRecord, int, error) {
	params := filter.ListParams.Normalized()

	where := &whereBuilder{}
	where.add("user_id = $%d", userID)

	if filter.FromSymbol != "" {
		where.add("from_symbol = $%d", filter.FromSymbol)
	}
	if filter.ToSymbol != "" {
		where.add("to_symbol = $%d", filter.ToSymbol)
	}
	if params.Search != "" {
		where.addSearch(params.Search, "from_symbol", "to_symbol")
	}
	where.addDateRange("created_at", params.DateFrom, params.DateTo)

	countQuery := `SELECT COUNT(*) FROM history` + where.clause()

	orderBy := sortColumn(historySortColumns, params.SortBy)
	listQuery := fmt.Sprintf(`
		SELECT id, user_id, from_symbol, to_symbol, amount_from, amount_to, price_usd, note, created_at
		FROM history%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d`,
		where.clause(), orderBy, params.SortOrder, where.next(), where.next()+1)

	listArgs := append(append([]interface{}{}, where.args...), params.Limit, params.offset())

	var (
		total    int
		countErr error
		wg       sync.WaitGroup
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		countErr = r.db.QueryRow(countQuery, where.args...).Scan(&total)
	}()

	records := []*models.SwapRecord{}
	rows, err := r.db.Query(listQuery, listArgs...)
	if err != nil {
		wg.Wait()
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		record := &models.SwapRecord{}
		err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.FromSymbol,
			&record.ToSymbol,
			&record.AmountFrom,
			&record.AmountTo,
			&record.PriceUSD,
			&record.Note,
			&record.CreatedAt,
		)
		if err != nil {
			wg.Wait()
			return nil, 0, err
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		wg.Wait()
		return nil, 0, err
	}

	wg.Wait()
	if countErr != nil {
		return nil, 0, countErr
	}

	return records, total, nil
}

// UpdateNote обновляет комментарий записи пользователя
func (r *HistoryRepository) UpdateNote(id, userID int, note *string) error {
	query := `
		UPDATE history
		SET note = $1
		WHERE id = $2 AND user_id = $3`

	result, err := r.db.Exec(query, note, id, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrSwapRecordNotFound
	}

	return nil
}

// Delete удаляет запись пользователя
func (r *HistoryRepository) Delete(id, userID int) error {
	query := `DELETE FROM history WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(query, id, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrSwapRecordNotFound
	}

	return nil
}

// CountByUser возвращает число записей пользователя
func (r *HistoryRepository) CountByUser(userID int) (int, error) {
	query := `SELECT COUNT(*) FROM history WHERE user_id = $1`

	var count int
	err := r.db.QueryRow(query, userID).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}
