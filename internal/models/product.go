package models

import (
	"encoding/json"
	"time"
)

// Condition enumerates the item condition derived from the marketplace
// "condition" marker.
type Condition string

const (
	ConditionNew  Condition = "New"
	ConditionUsed Condition = "Used"
)

// Attribute is a single name/value pair from the item attribute list.
type Attribute struct {
	Name  string `json:"nome"`
	Value string `json:"valor"`
}

// ProductRecord is the normalized representation of a marketplace item.
// JSON field names follow the outward payload of the lookup endpoints.
type ProductRecord struct {
	ID                string          `json:"id"`
	Title             string          `json:"titulo"`
	Price             float64         `json:"preco"`
	Currency          string          `json:"moeda"`
	Condition         Condition       `json:"condicao"`
	AvailableQuantity int             `json:"estoque"`
	SoldQuantity      int             `json:"vendidos"`
	CategoryID        string          `json:"categoria"`
	Permalink         string          `json:"link"`
	Images            []string        `json:"imagens"`
	Attributes        []Attribute     `json:"atributos"`
	Status            string          `json:"status"`
	FetchedAt         time.Time       `json:"data_busca"`
	RawPayload        json.RawMessage `json:"json_completo"`
}

// ShippingClassification is derived on demand from the raw shipping
// sub-object. It is never stored alongside the record.
type ShippingClassification struct {
	IsFulfilled     bool   `json:"is_fulfilled"`
	FulfillmentKind string `json:"fulfillment_kind"`
	FreeShipping    bool   `json:"frete_gratis"`
	Mode            string `json:"modo"`
	Methods         []any  `json:"metodos"`
	StorePickup     bool   `json:"retirada_em_loja"`
	LocalPickup     bool   `json:"retirada_local"`
}
