package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/meliview/meli_api/internal/models"
	"github.com/meliview/meli_api/pkg/meli"
)

// fetchedAtLayout renders data_busca day-first, as the original UI shows it.
const fetchedAtLayout = "02/01/2006 15:04:05"

// SimplifiedView is the reduced outward payload of a lookup.
type SimplifiedView struct {
	Code      string           `json:"codigo"`
	Title     string           `json:"titulo"`
	Price     float64          `json:"preco"`
	Currency  string           `json:"moeda"`
	Condition models.Condition `json:"condicao"`
	Stock     int              `json:"estoque"`
	Sold      int              `json:"vendidos"`
	Category  string           `json:"categoria"`
	Status    string           `json:"status"`
	Permalink string           `json:"link"`
	MainImage string           `json:"imagem_principal"`
	FetchedAt string           `json:"data_busca"`
}

// Simplified projects the reduced field subset of a record.
func Simplified(rec models.ProductRecord) SimplifiedView {
	mainImage := ""
	if len(rec.Images) > 0 {
		mainImage = rec.Images[0]
	}
	return SimplifiedView{
		Code:      rec.ID,
		Title:     rec.Title,
		Price:     rec.Price,
		Currency:  rec.Currency,
		Condition: rec.Condition,
		Stock:     rec.AvailableQuantity,
		Sold:      rec.SoldQuantity,
		Category:  rec.CategoryID,
		Status:    rec.Status,
		Permalink: rec.Permalink,
		MainImage: mainImage,
		FetchedAt: rec.FetchedAt.Format(fetchedAtLayout),
	}
}

// FullView is the deep, explicitly grouped projection of a record.
type FullView struct {
	Basic      BasicInfo                      `json:"informacoes_basicas"`
	PriceStock PriceStock                     `json:"preco_estoque"`
	Attributes []models.Attribute             `json:"atributos"`
	Shipping   *models.ShippingClassification `json:"envio,omitempty"`
	Images     []ImageDetail                  `json:"imagens"`
	Seller     SellerInfo                     `json:"vendedor"`
	Variations []any                          `json:"variacoes,omitempty"`
	Raw        json.RawMessage                `json:"json_completo"`
}

// BasicInfo groups the identifying fields of the item.
type BasicInfo struct {
	Code      string           `json:"codigo"`
	Title     string           `json:"titulo"`
	Condition models.Condition `json:"condicao"`
	Category  string           `json:"categoria"`
	Status    string           `json:"status"`
	Permalink string           `json:"link"`
	FetchedAt string           `json:"data_busca"`
}

// PriceStock groups price and stock counters.
type PriceStock struct {
	Price     float64 `json:"preco"`
	Currency  string  `json:"moeda"`
	Available int     `json:"estoque"`
	Sold      int     `json:"vendidos"`
}

// ImageDetail describes one entry of the raw picture list.
type ImageDetail struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	Size string `json:"tamanho"`
}

// SellerInfo carries seller and location fields extracted from nested
// raw sub-objects.
type SellerInfo struct {
	SellerID int    `json:"seller_id"`
	City     string `json:"cidade"`
	State    string `json:"estado"`
	Country  string `json:"pais"`
}

// Full projects the deep structured document for a record. withShipping adds
// the derived fulfillment classification.
func Full(rec models.ProductRecord, withShipping bool) FullView {
	payload := payloadOf(rec)

	images := make([]ImageDetail, 0, len(payload.Objects("pictures")))
	for _, pic := range payload.Objects("pictures") {
		images = append(images, ImageDetail{
			ID:   pic.String("id"),
			URL:  pic.String("url"),
			Size: pic.String("size"),
		})
	}

	address := payload.Object("seller_address")
	seller := SellerInfo{
		SellerID: payload.Int("seller_id"),
		City:     address.Object("city").String("name"),
		State:    address.Object("state").String("name"),
		Country:  address.Object("country").String("name"),
	}

	view := FullView{
		Basic: BasicInfo{
			Code:      rec.ID,
			Title:     rec.Title,
			Condition: rec.Condition,
			Category:  rec.CategoryID,
			Status:    rec.Status,
			Permalink: rec.Permalink,
			FetchedAt: rec.FetchedAt.Format(fetchedAtLayout),
		},
		PriceStock: PriceStock{
			Price:     rec.Price,
			Currency:  rec.Currency,
			Available: rec.AvailableQuantity,
			Sold:      rec.SoldQuantity,
		},
		Attributes: rec.Attributes,
		Images:     images,
		Seller:     seller,
		Variations: payload.List("variations"),
		Raw:        rec.RawPayload,
	}

	if withShipping {
		shipping := ClassifyShipping(payload)
		view.Shipping = &shipping
	}
	return view
}

// CSVOptions select the optional row groups of the tabular projection.
type CSVOptions struct {
	WithAttributes bool
	WithShipping   bool
}

// CSV renders the two-column field,value table for a record.
func CSV(rec models.ProductRecord, opts CSVOptions) (string, error) {
	rows := [][]string{
		{"campo", "valor"},
		{"codigo", rec.ID},
		{"titulo", sanitizeCSV(rec.Title)},
		{"preco", strconv.FormatFloat(rec.Price, 'f', -1, 64)},
		{"moeda", rec.Currency},
		{"condicao", string(rec.Condition)},
		{"estoque", strconv.Itoa(rec.AvailableQuantity)},
		{"vendidos", strconv.Itoa(rec.SoldQuantity)},
		{"categoria", rec.CategoryID},
		{"status", rec.Status},
		{"link", rec.Permalink},
		{"data_busca", rec.FetchedAt.Format(fetchedAtLayout)},
	}

	if opts.WithAttributes {
		for _, attr := range rec.Attributes {
			rows = append(rows, []string{"atributo: " + sanitizeCSV(attr.Name), sanitizeCSV(attr.Value)})
		}
		for i, img := range rec.Images {
			rows = append(rows, []string{fmt.Sprintf("imagem_%d", i+1), img})
		}
	}

	if opts.WithShipping {
		shipping := ClassifyShipping(payloadOf(rec))
		rows = append(rows,
			[]string{"fulfillment", strconv.FormatBool(shipping.IsFulfilled)},
			[]string{"tipo_fulfillment", shipping.FulfillmentKind},
			[]string{"frete_gratis", strconv.FormatBool(shipping.FreeShipping)},
			[]string{"modo_envio", shipping.Mode},
			[]string{"retirada_em_loja", strconv.FormatBool(shipping.StorePickup)},
			[]string{"retirada_local", strconv.FormatBool(shipping.LocalPickup)},
		)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.WriteAll(rows); err != nil {
		return "", fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.String(), nil
}

// sanitizeCSV replaces separator characters that would collide with the
// two-column layout in naive spreadsheet imports.
func sanitizeCSV(v string) string {
	v = strings.ReplaceAll(v, ",", " ")
	v = strings.ReplaceAll(v, ";", " ")
	return strings.ReplaceAll(v, "\n", " ")
}

// payloadOf re-parses the record's raw payload for projections that need
// fields not extracted during normalization.
func payloadOf(rec models.ProductRecord) meli.Payload {
	var payload meli.Payload
	_ = json.Unmarshal(rec.RawPayload, &payload)
	return payload
}
