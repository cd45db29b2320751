package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"bitport/internal/models"
)

// Ошибки репозитория watchlist
var (
	ErrWatchlistItemNotFound = errors.New("watchlist item not found")
	ErrWatchlistItemExists   = errors.New("symbol already in watchlist")
	ErrNoWatchlistFields     = errors.New("no fields to update")
)

// watchlistSortColumns - whitelist колонок сортировки для watchlist
var watchlistSortColumns = map[string]string{
	"created_at": "created_at",
	"createdAt":  "created_at",
	"symbol":     "symbol",
	"coin_name":  "coin_name",
	"coinName":   "coin_name",
}

// WatchlistFilter - параметры выборки watchlist
type WatchlistFilter struct {
	ListParams
	Symbol string
}

// WatchlistRepository - работа с таблицей watchlist
type WatchlistRepository struct {
	db *sql.DB
}

// NewWatchlistRepository создает новый экземпляр репозитория
func NewWatchlistRepository(db *sql.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

// Create добавляет монету в watchlist пользователя.
// Символ хранится в верхнем регистре; дубль на пару (user_id, symbol)
// отбивается UNIQUE constraint.
func (r *WatchlistRepository) Create(item *models.WatchlistItem) error {
	query := `
		INSERT INTO watchlist (user_id, symbol, coin_name, note, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	item.Symbol = strings.ToUpper(item.Symbol)
	item.CreatedAt = time.Now()

	err := r.db.QueryRow(
		query,
		item.UserID,
		item.Symbol,
		item.CoinName,
		item.Note,
		item.CreatedAt,
	).Scan(&item.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrWatchlistItemExists
		}
		return err
	}

	return nil
}

// GetByID возвращает позицию пользователя по ID
func (r *WatchlistRepository) GetByID(id, userID int) (*models.WatchlistItem, error) {
	query := `
		SELECT id, user_id, symbol, coin_name, note, created_at
		FROM watchlist
		WHERE id = $1 AND user_id = $2`

	item := &models.WatchlistItem{}
	err := r.db.QueryRow(query, id, userID).Scan(
		&item.ID,
		&item.UserID,
		&item.Symbol,
		&item.CoinName,
		&item.Note,
		&item.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWatchlistItemNotFound
		}
		return nil, err
	}

	return item, nil
}

// ExistsSymbol проверяет наличие символа в watchlist пользователя
func (r *WatchlistRepository) ExistsSymbol(userID int, symbol string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM watchlist WHERE user_id = $1 AND symbol = $2)`

	var exists bool
	err := r.db.QueryRow(query, userID, strings.ToUpper(symbol)).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

// List возвращает страницу watchlist пользователя и общее число позиций
func (r *WatchlistRepository) List(userID int, filter WatchlistFilter) ([]*models.WatchlistItem, int, error) {
	params := filter.ListParams.Normalized()

	where := &whereBuilder{}
	where.add("user_id = $%d", userID)

	if filter.Symbol != "" {
		where.add("symbol = $%d", strings.ToUpper(filter.Symbol))
	}
	if params.Search != "" {
		where.addSearch(params.Search, "symbol", "coin_name")
	}
	where.addDateRange("created_at", params.DateFrom, params.DateTo)

	countQuery := `SELECT COUNT(*) FROM watchlist` + where.clause()

	orderBy := sortColumn(watchlistSortColumns, params.SortBy)
	listQuery := fmt.Sprintf(`
		SELECT id, user_id, symbol, coin_name, note, created_at
		FROM watchlist%s
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

	items := []*models.WatchlistItem{}
	rows, err := r.db.Query(listQuery, listArgs...)
	if err != nil {
		wg.Wait()
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		item := &models.WatchlistItem{}
		err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.Symbol,
			&item.CoinName,
			&item.Note,
			&item.CreatedAt,
		)
		if err != nil {
			wg.Wait()
			return nil, 0, err
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		wg.Wait()
		return nil, 0, err
	}

	wg.Wait()
	if countErr != nil {
		return nil, 0, countErr
	}

	return items, total, nil
}

// Update выполняет частичное обновление позиции пользователя
func (r *WatchlistRepository) Update(id, userID int, coinName, note *string) (*models.WatchlistItem, error) {
	var sets []string
	var args []interface{}

	if coinName != nil {
		args = append(args, *coinName)
		sets = append(sets, fmt.Sprintf("coin_name = $%d", len(args)))
	}
	if note != nil {
		args = append(args, *note)
		sets = append(sets, fmt.Sprintf("note = $%d", len(args)))
	}

	if len(sets) == 0 {
		return nil, ErrNoWatchlistFields
	}

	args = append(args, id, userID)
	query := fmt.Sprintf(`
		UPDATE watchlist
		SET %s
		WHERE id = $%d AND user_id = $%d
		RETURNING id, user_id, symbol, coin_name, note, created_at`,
		strings.Join(sets, ", "), len(args)-1, len(args))

	item := &models.WatchlistItem{}
	err := r.db.QueryRow(query, args...).Scan(
		&item.ID,
		&item.UserID,
		&item.Symbol,
		&item.CoinName,
		&item.Note,
		&item.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWatchlistItemNotFound
		}
		return nil, err
	}

	return item, nil
}

// Delete удаляет позицию пользователя
func (r *WatchlistRepository) Delete(id, userID int) error {
	query := `DELETE FROM watchlist WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(query, id, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrWatchlistItemNotFound
	}

	return nil
}
