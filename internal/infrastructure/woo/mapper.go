package woo

import (
	"fmt"
	"html"
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/medrec/backend/internal/domain"
)

// defaultCategory is used when no mapping keyword matches a product.
const defaultCategory = "sprzet_diagnostyczny"

// categoryMapping resolves WooCommerce category names to internal category
// keys. Entries are checked in order so more specific keywords win; the
// match is a substring test against the lowercased WooCommerce name.
var categoryMapping = []struct {
	keyword  string
	category string
}{
	// Diabetologia
	{"glukometr", "diabetologia"},
	{"paski testowe", "diabetologia"},
	{"lancet", "diabetologia"},
	{"insulin", "diabetologia"},
	{"diabetologia", "diabetologia"},
	{"cukrzyca", "diabetologia"},
	{"glikemia", "diabetologia"},

	// Torby i walizki
	{"torby medyczne", "torby"},
	{"walizki ratownicze", "torby"},
	{"torby", "torby"},
	{"walizki", "torby"},

	// Apteczki i pierwsza pomoc
	{"apteczk", "apteczki"},
	{"pierwsza pomoc", "apteczki"},
	{"zestawy ratownicze", "apteczki"},

	// Sprzęt ratowniczy
	{"defibrylator", "sprzet_ratowniczy"},
	{"aspirator", "sprzet_ratowniczy"},
	{"sprzęt ratowniczy", "sprzet_ratowniczy"},
	{"ratownictwo", "sprzet_ratowniczy"},
	{"staza", "sprzet_ratowniczy"},

	// Opatrunki
	{"opatrunk", "opatrunki"},
	{"bandaż", "opatrunki"},
	{"gaza", "opatrunki"},
	{"plastry", "opatrunki"},

	// Higiena i ochrona osobista
	{"rękawic", "higiena"},
	{"maseczk", "higiena"},
	{"dezynfekcja", "higiena"},
	{"higiena", "higiena"},
	{"fartuch", "higiena"},
	{"czepek", "higiena"},
	{"czepki", "higiena"},

	// Ortopedia i rehabilitacja
	{"ortopedia", "ortopedia"},
	{"stabilizator", "ortopedia"},
	{"kołnierz", "ortopedia"},
	{"rehabilitacja", "ortopedia"},
	{"uciskowe", "ortopedia"},

	// Narzędzia
	{"narzędzia chirurgiczne", "narzedzia"},
	{"nożyczki", "narzedzia"},
	{"narzędzia", "narzedzia"},
	{"igły", "narzedzia"},
	{"kaniula", "narzedzia"},

	// Materiały jednorazowe
	{"strzykawk", "materialy_jednorazowe"},
	{"materiały jednorazowe", "materialy_jednorazowe"},
	{"cewnik", "materialy_jednorazowe"},
	{"jednorazowe", "materialy_jednorazowe"},
	{"włóknin", "materialy_jednorazowe"},

	// Wyposażenie
	{"lampy", "wyposazenie"},
	{"stoły", "wyposazenie"},
	{"wyposażenie", "wyposazenie"},
	{"suplement", "wyposazenie"},
	{"witamina", "wyposazenie"},

	// Sprzęt diagnostyczny
	{"stetoskop", "sprzet_diagnostyczny"},
	{"ciśnieniomierz", "sprzet_diagnostyczny"},
	{"termometr", "sprzet_diagnostyczny"},
	{"pulsoksymetr", "sprzet_diagnostyczny"},
	{"spirometr", "sprzet_diagnostyczny"},
	{"otoskop", "sprzet_diagnostyczny"},
	{"diagnostyka", "sprzet_diagnostyczny"},
}

var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

// MapProduct converts a WooCommerce product row to the internal product
// model.
func MapProduct(raw RawProduct) (domain.Product, error) {
	if raw.ID <= 0 {
		return domain.Product{}, fmt.Errorf("invalid product id %d", raw.ID)
	}

	name := strings.TrimSpace(raw.Name)
	if name == "" {
		return domain.Product{}, fmt.Errorf("product %d has no name", raw.ID)
	}

	price, err := extractPrice(raw)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product %d: %w", raw.ID, err)
	}

	return domain.Product{
		ID:          strconv.Itoa(raw.ID),
		Name:        name,
		Category:    resolveCategory(raw),
		Price:       price,
		Description: extractDescription(raw),
	}, nil
}

// MapProducts converts a list of rows, logging and skipping invalid ones.
func MapProducts(rows []RawProduct) []domain.Product {
	products := make([]domain.Product, 0, len(rows))
	skipped := 0

	for _, raw := range rows {
		product, err := MapProduct(raw)
		if err != nil {
			log.Printf("[WOO] skipping product: %v", err)
			skipped++
			continue
		}
		products = append(products, product)
	}

	if skipped > 0 {
		log.Printf("[WOO] mapped %d products, skipped %d invalid rows", len(products), skipped)
	}
	return products
}

// extractPrice parses the sale price, falling back to the regular price.
// An empty price means the product has no price set and maps to 0.
func extractPrice(raw RawProduct) (float64, error) {
	value := strings.TrimSpace(raw.Price)
	if value == "" {
		value = strings.TrimSpace(raw.RegularPrice)
	}
	if value == "" {
		return 0, nil
	}

	price, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable price %q", value)
	}
	if price < 0 {
		return 0, fmt.Errorf("negative price %q", value)
	}
	return price, nil
}

// extractDescription prefers the short description and strips markup.
func extractDescription(raw RawProduct) string {
	description := raw.ShortDescription
	if strings.TrimSpace(stripHTML(description)) == "" {
		description = raw.Description
	}
	return strings.TrimSpace(stripHTML(description))
}

func stripHTML(s string) string {
	return html.UnescapeString(htmlTagRegex.ReplaceAllString(s, " "))
}

// resolveCategory checks the product's WooCommerce categories against the
// mapping table, then falls back to scanning the product name.
func resolveCategory(raw RawProduct) string {
	for _, entry := range categoryMapping {
		for _, cat := range raw.Categories {
			if strings.Contains(strings.ToLower(cat.Name), entry.keyword) {
				return entry.category
			}
		}
	}

	name := strings.ToLower(raw.Name)
	for _, entry := range categoryMapping {
		if strings.Contains(name, entry.keyword) {
			return entry.category
		}
	}

	return defaultCategory
}
