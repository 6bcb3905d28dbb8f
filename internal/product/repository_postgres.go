package product

import (
	"database/sql"
	"fmt"
	"strings"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	productColumns = `id, slug, name, category, price, stars, stock_status, image_url, warranty, delivery_days, return_days`

	getProductByIDQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`
	getProductBySlugQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE slug = $1
	`
	insertProductQuery = `
		INSERT INTO products (slug, name, category, price, stars, stock_status, image_url, warranty, delivery_days, return_days)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id
	`
	updateProductQuery = `
		UPDATE products
		SET slug = $1,
			name = $2,
			category = $3,
			price = $4,
			stars = $5,
			stock_status = $6,
			image_url = $7,
			warranty = $8,
			delivery_days = $9,
			return_days = $10
		WHERE id = $11
	`
	deleteProductQuery = `DELETE FROM products WHERE id = $1`

	listImagesQuery = `
		SELECT id, url
		FROM product_images
		WHERE product_id = $1
		ORDER BY ord, id
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(f Filter) ([]Product, int) {
	where := make([]string, 0, 3)
	args := make([]interface{}, 0, 3)
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.PriceMin != nil {
		args = append(args, *f.PriceMin)
		where = append(where, fmt.Sprintf("price >= $%d", len(args)))
	}
	if f.PriceMax != nil {
		args = append(args, *f.PriceMax)
		where = append(where, fmt.Sprintf("price <= $%d", len(args)))
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM products`+clause, args...).Scan(&total); err != nil {
		return nil, 0
	}

	order := "id"
	switch f.Ordering {
	case "price":
		order = "price, id"
	case "-price":
		order = "price DESC, id"
	case "name":
		order = "name, id"
	case "-name":
		order = "name DESC, id"
	}

	query := `SELECT ` + productColumns + ` FROM products` + clause + ` ORDER BY ` + order
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		args = append(args, f.PageSize)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, (page-1)*f.PageSize)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out, total
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	row := r.db.QueryRow(getProductByIDQuery, id)
	p, err := scanProduct(row)
	if err != nil {
		return Product{}, ErrNotFound
	}
	p.Images = r.listImages(p.ID)
	return p, nil
}

func (r *PostgresRepository) GetBySlug(slug string) (Product, error) {
	row := r.db.QueryRow(getProductBySlugQuery, slug)
	p, err := scanProduct(row)
	if err != nil {
		return Product{}, ErrNotFound
	}
	p.Images = r.listImages(p.ID)
	return p, nil
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	err := r.db.QueryRow(insertProductQuery,
		p.Slug, p.Name, p.Category, p.Price, p.Stars, p.StockStatus, p.ImageURL,
		p.Warranty, p.DeliveryDays, p.ReturnDays,
	).Scan(&p.ID)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Update(id int, p Product) (Product, error) {
	res, err := r.db.Exec(updateProductQuery,
		p.Slug, p.Name, p.Category, p.Price, p.Stars, p.StockStatus, p.ImageURL,
		p.Warranty, p.DeliveryDays, p.ReturnDays, id,
	)
	if err != nil {
		return Product{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Product{}, ErrNotFound
	}
	p.ID = id
	return p, nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(deleteProductQuery, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) listImages(productID int) []ProductImage {
	rows, err := r.db.Query(listImagesQuery, productID)
	if err != nil {
		return nil
	}
	defer rows.Close()

	out := make([]ProductImage, 0)
	for rows.Next() {
		var img ProductImage
		if err := rows.Scan(&img.ID, &img.URL); err != nil {
			continue
		}
		out = append(out, img)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (Product, error) {
	var p Product
	var slug, category, imageURL sql.NullString
	var stars sql.NullFloat64
	if err := row.Scan(&p.ID, &slug, &p.Name, &category, &p.Price, &stars,
		&p.StockStatus, &imageURL, &p.Warranty, &p.DeliveryDays, &p.ReturnDays); err != nil {
		return Product{}, err
	}
	p.Slug = slug.String
	p.Category = category.String
	if p.Category == "" {
		p.Category = DefaultCategory
	}
	if stars.Valid {
		p.Stars = &stars.Float64
	}
	if imageURL.Valid && imageURL.String != "" {
		p.ImageURL = &imageURL.String
	}
	return p, nil
}
