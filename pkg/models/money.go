package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the scale of every money column.
const MoneyPlaces = 2

// money renders d with a fixed scale, so 5 is sent as "5.00".
type money decimal.Decimal

func (m money) MarshalJSON() ([]byte, error) {
	return json.Marshal(decimal.Decimal(m).StringFixed(MoneyPlaces))
}

func (m MenuItem) MarshalJSON() ([]byte, error) {
	type plain MenuItem
	return json.Marshal(struct {
		plain
		Price money `json:"price"`
	}{plain(m), money(m.Price)})
}

func (c CartItem) MarshalJSON() ([]byte, error) {
	type plain CartItem
	return json.Marshal(struct {
		plain
		UnitPrice money `json:"unit_price"`
		Price     money `json:"price"`
	}{plain(c), money(c.UnitPrice), money(c.Price)})
}

func (o Order) MarshalJSON() ([]byte, error) {
	type plain Order
	return json.Marshal(struct {
		plain
		Total money `json:"total"`
	}{plain(o), money(o.Total)})
}

func (i OrderItem) MarshalJSON() ([]byte, error) {
	type plain OrderItem
	return json.Marshal(struct {
		plain
		UnitPrice money `json:"unit_price"`
		Price     money `json:"price"`
	}{plain(i), money(i.UnitPrice), money(i.Price)})
}
