package entity

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// HoursPerDay cantidad de puntos de la serie de ventas por hora.
const HoursPerDay = 24

// ItemID identificador de ítem tal como lo envía el backend de ventas:
// puede venir como número (MySQL autoincrement) o como string.
type ItemID string

// UnmarshalJSON acepta números y strings.
func (id *ItemID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ItemID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("item_id: %w", err)
	}
	*id = ItemID(n.String())
	return nil
}

// ItemSales ventas de un ítem para el gráfico de barras.
type ItemSales struct {
	ItemName  string          `json:"item_name"`
	SoldCount decimal.Decimal `json:"soldCount"`
}

// SoldItem ítem del ranking de más/menos vendidos.
type SoldItem struct {
	ItemID    ItemID          `json:"item_id"`
	ItemName  string          `json:"item_name"`
	SoldCount decimal.Decimal `json:"soldCount"`
}

// DiscountedItem ítem con descuento activo en el día.
// "discount_precentage" respeta la ortografía del backend.
type DiscountedItem struct {
	ItemID             ItemID          `json:"item_id"`
	ItemName           string          `json:"item_name"`
	SoldCount          decimal.Decimal `json:"soldCount"`
	DiscountPercentage decimal.Decimal `json:"discount_precentage"`
}

// DashboardData respuesta de GET /api/admindis/dashboard del backend de ventas.
// Todos los campos son opcionales; los faltantes se muestran como "Data not available".
type DashboardData struct {
	HourlySales     []decimal.Decimal `json:"hourlySales"`
	ItemSales       []ItemSales       `json:"itemSales"`
	MostSalesHour   string            `json:"mostSalesHour"`
	LeastSalesHour  string            `json:"leastSalesHour"`
	MostSoldItems   []SoldItem        `json:"mostSoldItems"`
	LeastSoldItems  []SoldItem        `json:"leastSoldItems"`
	DiscountedHours []*int            `json:"discountedHours"`
	DiscountedItems []DiscountedItem  `json:"discountedItems"`
}

// UnmarshalJSON decodifica campo por campo. Un campo con forma inesperada queda
// vacío (se mostrará como "Data not available") y el resto se conserva; solo falla
// si el documento no es un objeto.
func (d *DashboardData) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	*d = DashboardData{
		HourlySales:     decimalList(fields["hourlySales"]),
		ItemSales:       objectList[ItemSales](fields["itemSales"]),
		MostSalesHour:   hourText(fields["mostSalesHour"]),
		LeastSalesHour:  hourText(fields["leastSalesHour"]),
		MostSoldItems:   objectList[SoldItem](fields["mostSoldItems"]),
		LeastSoldItems:  objectList[SoldItem](fields["leastSoldItems"]),
		DiscountedHours: hourList(fields["discountedHours"]),
		DiscountedItems: objectList[DiscountedItem](fields["discountedItems"]),
	}
	return nil
}

// rawList devuelve los elementos si raw es un arreglo JSON; cualquier otra forma es nil.
func rawList(raw json.RawMessage) []json.RawMessage {
	var list []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &list) != nil {
		return nil
	}
	return list
}

// decimalList: una entrada no numérica cuenta como cero para no desplazar las horas.
func decimalList(raw json.RawMessage) []decimal.Decimal {
	list := rawList(raw)
	if list == nil {
		return nil
	}
	out := make([]decimal.Decimal, len(list))
	for i, el := range list {
		var v decimal.Decimal
		if err := json.Unmarshal(el, &v); err != nil {
			v = decimal.Zero
		}
		out[i] = v
	}
	return out
}

// objectList descarta los elementos que no decodifican como T.
func objectList[T any](raw json.RawMessage) []T {
	list := rawList(raw)
	if list == nil {
		return nil
	}
	out := make([]T, 0, len(list))
	for _, el := range list {
		var v T
		if err := json.Unmarshal(el, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

// hourList: cada entrada que no sea un entero queda en nil y solo afecta a su lado.
func hourList(raw json.RawMessage) []*int {
	list := rawList(raw)
	if list == nil {
		return nil
	}
	out := make([]*int, len(list))
	for i, el := range list {
		var n json.Number
		if err := json.Unmarshal(el, &n); err != nil || n == "" {
			continue
		}
		h, err := n.Int64()
		if err != nil {
			continue
		}
		v := int(h)
		out[i] = &v
	}
	return out
}

// hourText acepta un texto ("18:00") o un número de hora (18 → "18:00").
func hourText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil || n == "" {
		return ""
	}
	if h, err := n.Int64(); err == nil && h >= 0 && h < HoursPerDay {
		return fmt.Sprintf("%02d:00", h)
	}
	return n.String()
}

// HourlySeries devuelve exactamente 24 valores: rellena con cero o recorta.
func (d *DashboardData) HourlySeries() []decimal.Decimal {
	out := make([]decimal.Decimal, HoursPerDay)
	for i := range out {
		if i < len(d.HourlySales) {
			out[i] = d.HourlySales[i]
		} else {
			out[i] = decimal.Zero
		}
	}
	return out
}

// AffectedItem elemento de la respuesta de POST /api/discount/apply-discount.
// El backend devuelve filas de producto con campos variables; solo se tipan los conocidos.
type AffectedItem struct {
	ItemID             ItemID          `json:"item_id"`
	ItemName           string          `json:"item_name"`
	SoldCount          decimal.Decimal `json:"soldCount"`
	DiscountPercentage decimal.Decimal `json:"discount_precentage"`
}
