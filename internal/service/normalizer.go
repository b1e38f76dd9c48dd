package service

import (
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/meliview/meli_api/internal/models"
	"github.com/meliview/meli_api/pkg/meli"
)

// NormalizeCode strips hyphens and spaces from a raw MLB code and
// upper-cases it. Idempotent.
func NormalizeCode(raw string) string {
	cleaned := strings.ReplaceAll(raw, "-", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	return strings.ToUpper(strings.TrimSpace(cleaned))
}

// Normalize maps a raw item payload into the internal product record.
// Missing or mistyped fields default to zero values instead of failing.
func Normalize(code string, payload meli.Payload, raw []byte, fetchedAt time.Time) models.ProductRecord {
	condition := models.ConditionUsed
	if payload.String("condition") == "new" {
		condition = models.ConditionNew
	}

	images := lo.Map(payload.Objects("pictures"), func(pic meli.Payload, _ int) string {
		return pic.String("url")
	})
	attributes := lo.Map(payload.Objects("attributes"), func(attr meli.Payload, _ int) models.Attribute {
		return models.Attribute{
			Name:  attr.String("name"),
			Value: attr.String("value_name"),
		}
	})

	id := payload.String("id")
	if id == "" {
		id = code
	}

	return models.ProductRecord{
		ID:                id,
		Title:             payload.String("title"),
		Price:             payload.Float("price"),
		Currency:          payload.String("currency_id"),
		Condition:         condition,
		AvailableQuantity: payload.Int("available_quantity"),
		SoldQuantity:      payload.Int("sold_quantity"),
		CategoryID:        payload.String("category_id"),
		Permalink:         payload.String("permalink"),
		Images:            images,
		Attributes:        attributes,
		Status:            payload.String("status"),
		FetchedAt:         fetchedAt,
		RawPayload:        raw,
	}
}

// Logistic types operated by the marketplace fulfillment network.
var fulfilledLogisticTypes = map[string]bool{
	"fulfillment":   true,
	"xd_drop_off":   true,
	"cross_docking": true,
}

var fulfillmentLabels = map[string]string{
	"fulfillment":   "Mercado Envios Full",
	"xd_drop_off":   "Cross docking (drop off)",
	"cross_docking": "Cross docking",
}

const (
	labelNotFulfilled         = "not fulfilled"
	labelFulfilledUnspecified = "fulfilled (unspecified)"
)

// ClassifyShipping derives the fulfillment classification from the raw
// shipping sub-object. Pure and side-effect-free: it is recomputed per
// projection request rather than cached.
func ClassifyShipping(payload meli.Payload) models.ShippingClassification {
	shipping := payload.Object("shipping")
	logisticType := shipping.String("logistic_type")
	tags := shipping.Strings("tags")

	fulfilled := fulfilledLogisticTypes[logisticType] ||
		lo.Contains(tags, "fulfillment") ||
		lo.Contains(tags, "mandatory_free_shipping")

	kind, ok := fulfillmentLabels[logisticType]
	if !ok {
		if fulfilled {
			kind = labelFulfilledUnspecified
		} else {
			kind = labelNotFulfilled
		}
	}

	return models.ShippingClassification{
		IsFulfilled:     fulfilled,
		FulfillmentKind: kind,
		FreeShipping:    shipping.Bool("free_shipping"),
		Mode:            shipping.String("mode"),
		Methods:         shipping.List("methods"),
		StorePickup:     shipping.Bool("store_pick_up"),
		LocalPickup:     shipping.Bool("local_pick_up"),
	}
}
