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

// Ошибки репозитория ценовых алертов
var (
	ErrAlertNotFound = errors.New("price alert not found")
	ErrNoAlertFields = errors.New("no fields to update")
)

// alertSortColumns - whitelist колонок сортировки для алертов
var alertSortColumns = map[string]string{
	"created_at":   "created_at",
	"createdAt":    "created_at",
	"symbol":       "symbol",
	"coin_name":    "coin_name",
	"coinName":     "coin_name",
	"target_price": "target_price",
	"targetPrice":  "target_price",
	"is_active":    "is_active",
	"isActive":     "is_active",
	"triggered_at": "triggered_at",
	"triggeredAt":  "triggered_at",
}

// AlertFilter - параметры выборки алертов
type AlertFilter struct {
	ListParams
	Symbol    string
	Condition string
	IsActive  *bool
}

// AlertUpdate - частичное обновление алерта (nil-поля не трогаются)
type AlertUpdate struct {
	Symbol      *string
	CoinName    *string
	TargetPrice *float64
	Condition   *string
	IsActive    *bool
}

// AlertRepository - работа с таблицей price_alerts
type AlertRepository struct {
	db *sql.DB
}

// NewAlertRepository создает новый экземпляр репозитория
func NewAlertRepository(db *sql.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

// Create создает ценовой алерт
func (r *AlertRepository) Create(alert *models.PriceAlert) error {
	query := `
		INSERT INTO price_alerts (user_id, symbol, coin_name, target_price, condition, is_active, triggered_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	alert.Symbol = strings.ToUpper(alert.Symbol)
	alert.CreatedAt = time.Now()

	err := r.db.QueryRow(
		query,
		alert.UserID,
		alert.Symbol,
		alert.CoinName,
		alert.TargetPrice,
		alert.Condition,
		alert.IsActive,
		alert.TriggeredAt,
		alert.CreatedAt,
	).Scan(&alert.ID)

	if err != nil {
		return err
	}

	return nil
}

// GetByID возвращает алерт пользователя по ID
func (r *AlertRepository) GetByID(id, userID int) (*models.PriceAlert, error) {
	query := `
		SELECT id, user_id, symbol, coin_name, target_price, condition, is_active, triggered_at, created_at
		FROM price_alerts
		WHERE id = $1 AND user_id = $2`

	alert := &models.PriceAlert{}
	err := r.db.QueryRow(query, id, userID).Scan(
		&alert.ID,
		&alert.UserID,
		&alert.Symbol,
		&alert.CoinName,
		&alert.TargetPrice,
		&alert.Condition,
		&alert.IsActive,
		&alert.TriggeredAt,
		&alert.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAlertNotFound
		}
		return nil, err
	}

	return alert, nil
}

// List возвращает страницу алертов пользователя и общее число алертов
func (r *AlertRepository) List(userID int, filter AlertFilter) ([]*models.PriceAlert, int, error) {
	params := filter.ListParams.Normalized()

	where := &whereBuilder{}
	where.add("user_id = $%d", userID)

	if filter.Symbol != "" {
		where.add("symbol = $%d", strings.ToUpper(filter.Symbol))
	}
	if filter.Condition != "" {
		where.add("condition = $%d", filter.Condition)
	}
	if filter.IsActive != nil {
		where.add("is_active = $%d", *filter.IsActive)
	}
	if params.Search != "" {
		where.addSearch(params.Search, "symbol", "coin_name")
	}
	where.addDateRange("created_at", params.DateFrom, params.DateTo)

	countQuery := `SELECT COUNT(*) FROM price_alerts` + where.clause()

	orderBy := sortColumn(alertSortColumns, params.SortBy)
	listQuery := fmt.Sprintf(`
		SELECT id, user_id, symbol, coin_name, target_price, condition, is_active, triggered_at, created_at
		FROM price_alerts%s
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

	alerts := []*models.PriceAlert{}
	rows, err := r.db.Query(listQuery, listArgs...)
	if err != nil {
		wg.Wait()
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		alert := &models.PriceAlert{}
		err := rows.Scan(
			&alert.ID,
			&alert.UserID,
			&alert.Symbol,
			&alert.CoinName,
			&alert.TargetPrice,
			&alert.Condition,
			&alert.IsActive,
			&alert.TriggeredAt,
			&alert.CreatedAt,
		)
		if err != nil {
			wg.Wait()
			return nil, 0, err
		}
		alerts = append(alerts, alert)
	}

	if err = rows.Err(); err != nil {
		wg.Wait()
		return nil, 0, err
	}

	wg.Wait()
	if countErr != nil {
		return nil, 0, countErr
	}

	return alerts, total, nil
}

// Update выполняет частичное обновление алерта пользователя
func (r *AlertRepository) Update(id, userID int, update AlertUpdate) (*models.PriceAlert, error) {
	var sets []string
	var args []interface{}

	if update.Symbol != nil {
		args = append(args, strings.ToUpper(*update.Symbol))
		sets = append(sets, fmt.Sprintf("symbol = $%d", len(args)))
	}
	if update.CoinName != nil {
		args = append(args, *update.CoinName)
		sets = append(sets, fmt.Sprintf("coin_name = $%d", len(args)))
	}
	if update.TargetPrice != nil {
		args = append(args, *update.TargetPrice)
		sets = append(sets, fmt.Sprintf("target_price = $%d", len(args)))
	}
	if update.Condition != nil {
		args = append(args, *update.Condition)
		sets = append(sets, fmt.Sprintf("condition = $%d", len(args)))
	}
	if update.IsActive != nil {
		args = append(args, *update.IsActive)
		sets = append(sets, fmt.Sprintf("is_active = $%d", len(args)))
	}

	if len(sets) == 0 {
		return nil, ErrNoAlertFields
	}

	args = append(args, id, userID)
	query := fmt.Sprintf(`
		UPDATE price_alerts
		SET %s
		WHERE id = $%d AND user_id = $%d
		RETURNING id, user_id, symbol, coin_name, target_price, condition, is_active, triggered_at, created_at`,
		strings.Join(sets, ", "), len(args)-1, len(args))

	alert := &models.PriceAlert{}
	err := r.db.QueryRow(query, args...).Scan(
		&alert.ID,
		&alert.UserID,
		&alert.Symbol,
		&alert.CoinName,
		&alert.TargetPrice,
		&alert.Condition,
		&alert.IsActive,
		&alert.TriggeredAt,
		&alert.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAlertNotFound
		}
		return nil, err
	}

	return alert, nil
}

// Delete удаляет алерт пользователя
func (r *AlertRepository) Delete(id, userID int) error {
	query := `DELETE FROM price_alerts WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(query, id, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrAlertNotFound
	}

	return nil
}
