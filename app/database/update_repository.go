package database

import (
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// UpdateRepositoryPg handles database operations for company updates
type UpdateRepositoryPg struct {
	db *DB
}

func NewUpdateRepository(db *DB) *UpdateRepositoryPg {
	return &UpdateRepositoryPg{db: db}
}

func (r *UpdateRepositoryPg) CreateUpdate(company Company, category UpdateCategory, title, content, sourceURL string) (*CompanyUpdate, error) {
	update := &CompanyUpdate{
		ID:        uuid.NewString(),
		Company:   company,
		Category:  category,
		Title:     title,
		Content:   content,
		SourceURL: sourceURL,
		Date:      time.Now().UTC(),
	}

	_, err := r.db.Exec(`
		INSERT INTO company_updates (id, company, category, title, content, source_url, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, update.ID, update.Company, update.Category, update.Title, update.Content,
		update.SourceURL, update.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to create update: %w", err)
	}

	return update, nil
}

func (r *UpdateRepositoryPg) LatestByCompany(company Company, limit int) ([]CompanyUpdate, error) {
	rows, err := r.db.Query(`
		SELECT id, company, category, title, content, COALESCE(source_url, ''), date
		FROM company_updates
		WHERE company = $1
		ORDER BY date DESC
		LIMIT $2
	`, company, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get updates by company: %w", err)
	}
	defer rows.Close()

	return scanUpdates(rows)
}

func (r *UpdateRepositoryPg) ByCategory(category UpdateCategory, limit int) ([]CompanyUpdate, error) {
	rows, err := r.db.Query(`
		SELECT id, company, category, title, content, COALESCE(source_url, ''), date
		FROM company_updates
		WHERE category = $1
		ORDER BY date DESC
		LIMIT $2
	`, category, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get updates by category: %w", err)
	}
	defer rows.Close()

	return scanUpdates(rows)
}

func (r *UpdateRepositoryPg) Matrix() (Matrix, error) {
	rows, err := r.db.Query(`
		SELECT id, company, category, title, content, COALESCE(source_url, ''), date
		FROM company_updates
		ORDER BY date DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get updates for matrix: %w", err)
	}
	defer rows.Close()

	updates, err := scanUpdates(rows)
	if err != nil {
		return nil, err
	}

	return buildMatrix(updates), nil
}

func scanUpdates(rows *sql.Rows) ([]CompanyUpdate, error) {
	var updates []CompanyUpdate
	for rows.Next() {
		var u CompanyUpdate
		if err := rows.Scan(&u.ID, &u.Company, &u.Category, &u.Title, &u.Content,
			&u.SourceURL, &u.Date); err != nil {
			return nil, fmt.Errorf("failed to scan update: %w", err)
		}
		updates = append(updates, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate updates: %w", err)
	}
	return updates, nil
}

// buildMatrix keeps the first (newest) update per company and category cell.
// Input must be ordered by date descending.
func buildMatrix(updates []CompanyUpdate) Matrix {
	matrix := make(Matrix, len(Companies()))
	for _, company := range Companies() {
		matrix[company] = make(map[UpdateCategory]CompanyUpdate)
	}

	for _, u := range updates {
		cells, ok := matrix[u.Company]
		if !ok {
			continue
		}
		if _, seen := cells[u.Category]; !seen {
			cells[u.Category] = u
		}
	}

	return matrix
}

// UpdateRepositoryMem is the in-memory counterpart, used in tests and when
// the service runs without a database.
type UpdateRepositoryMem struct {
	mu      sync.RWMutex
	updates []CompanyUpdate
}

func NewUpdateRepositoryMem() *UpdateRepositoryMem {
	return &UpdateRepositoryMem{}
}

func (r *UpdateRepositoryMem) CreateUpdate(company Company, category UpdateCategory, title, content, sourceURL string) (*CompanyUpdate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	update := CompanyUpdate{
		ID:        uuid.NewString(),
		Company:   company,
		Category:  category,
		Title:     title,
		Content:   content,
		SourceURL: sourceURL,
		Date:      time.Now().UTC(),
	}
	r.updates = append(r.updates, update)

	return &update, nil
}

func (r *UpdateRepositoryMem) LatestByCompany(company Company, limit int) ([]CompanyUpdate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []CompanyUpdate
	for _, u := range r.updates {
		if u.Company == company {
			matched = append(matched, u)
		}
	}
	sortByDateDesc(matched)

	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *UpdateRepositoryMem) ByCategory(category UpdateCategory, limit int) ([]CompanyUpdate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []CompanyUpdate
	for _, u := range r.updates {
		if u.Category == category {
			matched = append(matched, u)
		}
	}
	sortByDateDesc(matched)

	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *UpdateRepositoryMem) Matrix() (Matrix, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Reverse insertion order first so equal timestamps resolve to the
	// later write after the stable sort.
	sorted := make([]CompanyUpdate, 0, len(r.updates))
	for i := len(r.updates) - 1; i >= 0; i-- {
		sorted = append(sorted, r.updates[i])
	}
	sortByDateDesc(sorted)

	return buildMatrix(sorted), nil
}

func sortByDateDesc(updates []CompanyUpdate) {
	sort.SliceStable(updates, func(i, j int) bool {
		return updates[i].Date.After(updates[j].Date)
	})
}
