package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/abd-Kabir/cargo-bot/internal/model"
)

const productColumns = `
	id, barcode, customer_id, load_id, status, is_homeless,
	accepted_by_china_id, accepted_time_china,
	accepted_by_tashkent_id, accepted_time_tashkent,
	created_at, updated_at
`

func (s *Store) ProductByBarcode(ctx context.Context, barcode string) (*model.Product, error) {
	var product model.Product
	if err := s.db.WithContext(ctx).Raw(`
		SELECT `+productColumns+`
		FROM products
		WHERE barcode = ?
		LIMIT 1
	`, barcode).Scan(&product).Error; err != nil {
		return nil, err
	}
	if product.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &product, nil
}

func (s *Store) CreateProduct(ctx context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return s.db.WithContext(ctx).Exec(`
		INSERT INTO products (
			id, barcode, customer_id, status, is_homeless,
			accepted_by_china_id, accepted_time_china,
			accepted_by_tashkent_id, accepted_time_tashkent
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Barcode, p.CustomerID, p.Status, p.IsHomeless,
		p.AcceptedByChinaID, p.AcceptedTimeChina,
		p.AcceptedByTashkentID, p.AcceptedTimeTashkent).Error
}

func (s *Store) SaveProduct(ctx context.Context, p *model.Product) error {
	return s.db.WithContext(ctx).Exec(`
		UPDATE products
		SET barcode = ?, customer_id = ?, load_id = ?, status = ?, is_homeless = ?,
			accepted_by_china_id = ?, accepted_time_china = ?,
			accepted_by_tashkent_id = ?, accepted_time_tashkent = ?,
			updated_at = NOW()
		WHERE id = ?
	`, p.Barcode, p.CustomerID, p.LoadID, p.Status, p.IsHomeless,
		p.AcceptedByChinaID, p.AcceptedTimeChina,
		p.AcceptedByTashkentID, p.AcceptedTimeTashkent,
		p.ID).Error
}

func (s *Store) DeliveredProducts(ctx context.Context, customerID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	if err := s.db.WithContext(ctx).Raw(`
		SELECT `+productColumns+`
		FROM products
		WHERE customer_id = ? AND status = ?
		ORDER BY created_at ASC
	`, customerID, model.ProductDelivered).Scan(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Store) ProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}
	var products []model.Product
	if err := s.db.WithContext(ctx).Raw(`
		SELECT `+productColumns+`
		FROM products
		WHERE id IN ?
	`, ids).Scan(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// MarkProductsLoaded moves the listed products DELIVERED -> LOADED and pins
// them to the load. The status guard in WHERE keeps a concurrent double
// submit from re-loading a product.
func (s *Store) MarkProductsLoaded(ctx context.Context, ids []uuid.UUID, loadID uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := s.db.WithContext(ctx).Exec(`
		UPDATE products
		SET status = ?, load_id = ?, updated_at = NOW()
		WHERE id IN ? AND status = ?
	`, model.ProductLoaded, loadID, ids, model.ProductDelivered)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// AdvanceProductsByLoad moves every product of a load from one status to the
// next (dispatch and release use it).
func (s *Store) AdvanceProductsByLoad(ctx context.Context, loadID uuid.UUID, from, to model.ProductStatus) (int64, error) {
	result := s.db.WithContext(ctx).Exec(`
		UPDATE products
		SET status = ?, updated_at = NOW()
		WHERE load_id = ? AND status = ?
	`, to, loadID, from)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (s *Store) CustomerProducts(ctx context.Context, customerID uuid.UUID, statuses []model.ProductStatus) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE customer_id = ?
	`
	args := []interface{}{customerID}
	if len(statuses) > 0 {
		query += ` AND status IN ?`
		args = append(args, statuses)
	}
	query += ` ORDER BY created_at ASC`

	var products []model.Product
	if err := s.db.WithContext(ctx).Raw(query, args...).Scan(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Store) CountCustomerProducts(ctx context.Context, customerID uuid.UUID, status model.ProductStatus) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM products WHERE customer_id = ? AND status = ?
	`, customerID, status).Scan(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type ProductFilter struct {
	Status model.ProductStatus
	Search string
}

func (s *Store) ListProducts(ctx context.Context, filter ProductFilter) ([]model.ProductListRow, error) {
	query := `
		SELECT
			p.id,
			p.barcode,
			p.status,
			COALESCE(c.prefix, '') AS customer_prefix,
			COALESCE(c.code, '') AS customer_code,
			p.is_homeless,
			p.updated_at
		FROM products p
		LEFT JOIN customers c ON c.id = p.customer_id
	`
	var filters []string
	var args []interface{}
	if filter.Status != "" {
		filters = append(filters, "p.status = ?")
		args = append(args, filter.Status)
	}
	if filter.Search != "" {
		filters = append(filters, "(p.barcode ILIKE ? OR (c.prefix || c.code) ILIKE ?)")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}
	if len(filters) > 0 {
		query += " WHERE " + strings.Join(filters, " AND ")
	}
	query += " ORDER BY p.updated_at DESC"

	var rows []model.ProductListRow
	if err := s.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store) CountProductsAcceptedToday(ctx context.Context, operatorID uuid.UUID) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM products
		WHERE (accepted_by_china_id = ? AND accepted_time_china >= CURRENT_DATE)
			OR (accepted_by_tashkent_id = ? AND accepted_time_tashkent >= CURRENT_DATE)
	`, operatorID, operatorID).Scan(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
