package home

import (
	"math"
	"strconv"
	"strings"

	"realtor-backend/internal/models"
)

// FilterParams are the raw list query inputs. Empty means not supplied.
type FilterParams struct {
	City         string
	MinPrice     string
	MaxPrice     string
	PropertyType string
}

type PriceRange struct {
	Gte *float64 `json:"gte,omitempty"`
	Lte *float64 `json:"lte,omitempty"`
}

// Filter is the predicate passed to Store.FindHomes. Nil fields match
// everything.
type Filter struct {
	City         *string              `json:"city,omitempty"`
	Price        *PriceRange          `json:"price,omitempty"`
	PropertyType *models.PropertyType `json:"propertyType,omitempty"`
}

// BuildFilter turns optional query inputs into a Filter holding only the
// supplied clauses.
func BuildFilter(p FilterParams) (Filter, error) {
	var f Filter

	if p.City != "" {
		city := p.City
		f.City = &city
	}

	if p.MinPrice != "" || p.MaxPrice != "" {
		gte, err := parsePrice("minPrice", p.MinPrice)
		if err != nil {
			return Filter{}, err
		}
		lte, err := parsePrice("maxPrice", p.MaxPrice)
		if err != nil {
			return Filter{}, err
		}
		f.Price = &PriceRange{Gte: gte, Lte: lte}
	}

	if p.PropertyType != "" {
		pt := models.PropertyType(strings.ToUpper(p.PropertyType))
		if !pt.Valid() {
			return Filter{}, invalidArgument("propertyType must be one of %s, %s", models.PropertyResidential, models.PropertyCondo)
		}
		f.PropertyType = &pt
	}

	return f, nil
}

func parsePrice(name, s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, invalidArgument("%s must be a number", name)
	}
	return &v, nil
}
