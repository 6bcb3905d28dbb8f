package fitment

import (
	"database/sql"
	"strconv"

	"github.com/partline/auto-parts-backend/internal/product"
	"github.com/partline/auto-parts-backend/internal/vin"
)

type PostgresRepository struct {
	db *sql.DB
}

const matchPartsQuery = `
	SELECT f.id, f.make, f.model, f.year_start, f.year_end, f.trim, f.drive_type, f.body_class,
		p.id, p.slug, p.name, p.category, p.price, p.stars, p.stock_status, p.image_url,
		p.warranty, p.delivery_days, p.return_days
	FROM part_fitments f
	JOIN products p ON p.id = f.product_id
	WHERE LOWER(f.make) = LOWER($1)
		AND LOWER(f.model) = LOWER($2)
		AND (f.year_start = 0 OR f.year_start <= $3)
		AND (f.year_end = 0 OR f.year_end >= $3)
	ORDER BY p.category, f.id
`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Match(v vin.Vehicle) map[string][]Part {
	year, _ := strconv.Atoi(v.Year)
	rows, err := r.db.Query(matchPartsQuery, v.Make, v.Model, year)
	if err != nil {
		return map[string][]Part{}
	}
	defer rows.Close()

	out := make(map[string][]Part)
	for rows.Next() {
		pt, err := scanPart(rows)
		if err != nil {
			continue
		}
		out[pt.Product.Category] = append(out[pt.Product.Category], pt)
	}
	return out
}

func scanPart(rows *sql.Rows) (Part, error) {
	var pt Part
	var trim, driveType, bodyClass sql.NullString
	var slug, category, imageURL sql.NullString
	var stars sql.NullFloat64
	err := rows.Scan(&pt.ID, &pt.Make, &pt.Model, &pt.YearStart, &pt.YearEnd,
		&trim, &driveType, &bodyClass,
		&pt.Product.ID, &slug, &pt.Product.Name, &category, &pt.Product.Price, &stars,
		&pt.Product.StockStatus, &imageURL, &pt.Product.Warranty,
		&pt.Product.DeliveryDays, &pt.Product.ReturnDays)
	if err != nil {
		return Part{}, err
	}
	if trim.Valid {
		pt.Trim = &trim.String
	}
	if driveType.Valid {
		pt.DriveType = &driveType.String
	}
	if bodyClass.Valid {
		pt.BodyClass = &bodyClass.String
	}
	pt.Product.Slug = slug.String
	pt.Product.Category = category.String
	if pt.Product.Category == "" {
		pt.Product.Category = product.DefaultCategory
	}
	if stars.Valid {
		pt.Product.Stars = &stars.Float64
	}
	if imageURL.Valid && imageURL.String != "" {
		pt.Product.ImageURL = &imageURL.String
	}
	return pt, nil
}
