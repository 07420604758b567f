package entity

import "github.com/shopspring/decimal"

// Department groups employees and projects. Deleting a department nulls out
// its employees' department reference but cascades delete to its projects.
type Department struct {
	ID     int64
	Name   string
	Budget decimal.Decimal
}
