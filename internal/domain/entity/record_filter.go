package entity

// StockLevel narrows a medicine listing by remaining stock.
type StockLevel string

const (
	StockLevelAny StockLevel = ""
	StockLevelLow StockLevel = "low"
	StockLevelOut StockLevel = "out"
)

// MedicineFilter holds query parameters for listing medicines
type MedicineFilter struct {
	Search string
	Level  StockLevel
}

// Matches applies the stock level part of the filter.
func (f MedicineFilter) Matches(m *Medicine) bool {
	switch f.Level {
	case StockLevelLow:
		return m.Stock > 0 && m.Stock <= LowStockThreshold
	case StockLevelOut:
		return m.Stock <= 0
	}
	return true
}
