package database

import (
	"fmt"
	"time"
)

// Company is the closed set of tracked big tech companies.
type Company string

const (
	CompanyNvidia    Company = "NVIDIA"
	CompanyMeta      Company = "META"
	CompanyApple     Company = "APPLE"
	CompanyMicrosoft Company = "MICROSOFT"
	CompanyAlphabet  Company = "ALPHABET"
	CompanyAmazon    Company = "AMAZON"
	CompanyTesla     Company = "TESLA"
)

// Companies returns all tracked companies in display order.
func Companies() []Company {
	return []Company{
		CompanyNvidia,
		CompanyMeta,
		CompanyApple,
		CompanyMicrosoft,
		CompanyAlphabet,
		CompanyAmazon,
		CompanyTesla,
	}
}

func ParseCompany(s string) (Company, error) {
	for _, c := range Companies() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown company: %q", s)
}

// UpdateCategory is the closed set of update categories.
type UpdateCategory string

const (
	UpdateRegulatory    UpdateCategory = "REGULATORY"
	UpdateProduct       UpdateCategory = "PRODUCT"
	UpdateInvestment    UpdateCategory = "INVESTMENT"
	UpdateAIDevelopment UpdateCategory = "AI_DEVELOPMENT"
	UpdatePartnerships  UpdateCategory = "PARTNERSHIPS"
	UpdateMarketImpact  UpdateCategory = "MARKET_IMPACT"
)

func UpdateCategories() []UpdateCategory {
	return []UpdateCategory{
		UpdateRegulatory,
		UpdateProduct,
		UpdateInvestment,
		UpdateAIDevelopment,
		UpdatePartnerships,
		UpdateMarketImpact,
	}
}

func ParseUpdateCategory(s string) (UpdateCategory, error) {
	for _, c := range UpdateCategories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown update category: %q", s)
}

// CompanyUpdate is an append-only record of one company event.
type CompanyUpdate struct {
	ID        string         `json:"id"`
	Company   Company        `json:"company"`
	Category  UpdateCategory `json:"category"`
	Title     string         `json:"title"`
	Content   string         `json:"content"`
	SourceURL string         `json:"source_url"`
	Date      time.Time      `json:"date"`
}

// Matrix holds the most recent update per company and category. Companies
// with no updates are still present as outer keys; empty cells are absent
// from the inner map.
type Matrix map[Company]map[UpdateCategory]CompanyUpdate

// User is an account record. PasswordHash is never serialized.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
