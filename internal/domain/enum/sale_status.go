package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// SaleStatus represents the status of a sale. Checkout always produces a
// completed sale; pending and cancelled are retained for future hold/void
// workflows and are never produced by the checkout path.
type SaleStatus int

const (
	SaleStatusPending   SaleStatus = 0
	SaleStatusCompleted SaleStatus = 1
	SaleStatusCancelled SaleStatus = 2
)

func (s SaleStatus) String() string {
	names := [...]string{"pendiente", "completada", "cancelada"}
	if int(s) < 0 || int(s) >= len(names) {
		return "pendiente"
	}
	return names[s]
}

// ParseSaleStatus converts a status name to its enum value.
func ParseSaleStatus(str string) (SaleStatus, bool) {
	switch str {
	case "pendiente":
		return SaleStatusPending, true
	case "completada":
		return SaleStatusCompleted, true
	case "cancelada":
		return SaleStatusCancelled, true
	}
	return SaleStatusPending, false
}

func (s SaleStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SaleStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = SaleStatus(i)
		return nil
	}
	switch str {
	case "pendiente":
		*s = SaleStatusPending
	case "completada":
		*s = SaleStatusCompleted
	case "cancelada":
		*s = SaleStatusCancelled
	}
	return nil
}

func (s SaleStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *SaleStatus) Scan(value interface{}) error {
	if value == nil {
		*s = SaleStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = SaleStatus(v)
	case int:
		*s = SaleStatus(v)
	}
	return nil
}
