package models

import "time"

type Product struct {
	ID            uint   `gorm:"primaryKey"`
	Name          string `gorm:"size:100;not null;unique"`
	// optional, unique when set; the partial index lets any number of
	// products share an empty article number
	ArticleNumber string `gorm:"size:50;index:idx_products_article_number,unique,where:article_number <> ''"`
	Specification string `gorm:"size:255"`
	Unit          string `gorm:"size:20"` // st, kg, m etc.
	CategoryID    *uint
	Category      *Category
	SupplierID    *uint
	Supplier      *Supplier
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Category struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100;not null;unique"`
}

type Supplier struct {
	ID    uint   `gorm:"primaryKey"`
	Name  string `gorm:"size:100;not null;unique"`
	Email string `gorm:"size:100"`
	Phone string `gorm:"size:30"`
}
