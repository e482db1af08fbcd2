package usecase

import "github.com/medrec/backend/internal/domain"

// defaultRules maps professions and health conditions to product categories.
// Keywords are lowercase; multi-word keywords are matched as substrings of
// the normalized query.
var defaultRules = []domain.RecommendationRule{
	{
		Keywords:    []string{"ratownik", "paramedyk", "karetka", "pogotowie", "ambulans"},
		Categories:  []string{"sprzet_ratowniczy", "torby", "sprzet_diagnostyczny", "apteczki"},
		Weight:      1.0,
		Description: "Sprzęt dla ratowników medycznych i zespołów pogotowia",
	},
	{
		Keywords:    []string{"lekarz", "doktor", "dr", "physician", "medyk"},
		Categories:  []string{"sprzet_diagnostyczny", "torby", "narzedzia", "wyposazenie"},
		Weight:      1.0,
		Description: "Sprzęt diagnostyczny i narzędzia dla lekarzy",
	},
	{
		Keywords:    []string{"pielęgniarka", "pielęgniarz", "nurse"},
		Categories:  []string{"higiena", "materialy_jednorazowe", "opatrunki", "sprzet_diagnostyczny"},
		Weight:      0.9,
		Description: "Materiały jednorazowe i sprzęt dla pielęgniarek",
	},
	{
		Keywords:    []string{"fizjoterapeuta", "rehabilitant", "physiotherapist"},
		Categories:  []string{"ortopedia", "wyposazenie"},
		Weight:      0.8,
		Description: "Sprzęt ortopedyczny i rehabilitacyjny",
	},
	{
		Keywords:    []string{"cukrzyca", "diabetes", "diabetyk", "insulina", "glukoza", "cukier"},
		Categories:  []string{"diabetologia"},
		Weight:      1.0,
		Description: "Produkty do kontroli i leczenia cukrzycy",
	},
	{
		Keywords:    []string{"serce", "kardiologia", "nadciśnienie", "ciśnienie", "arytmia", "cardio"},
		Categories:  []string{"sprzet_diagnostyczny"},
		Weight:      0.9,
		Description: "Sprzęt do badań kardiologicznych i kontroli ciśnienia",
	},
	{
		Keywords:    []string{"astma", "copd", "oddychanie", "płuca", "spirometria", "kaszel"},
		Categories:  []string{"sprzet_diagnostyczny"},
		Weight:      0.9,
		Description: "Sprzęt do badania funkcji oddechowych",
	},
	{
		Keywords:    []string{"rana", "uraz", "skaleczenie", "oparzenie", "bandaż", "opatrunek"},
		Categories:  []string{"opatrunki", "materialy_jednorazowe"},
		Weight:      0.8,
		Description: "Materiały do opatrywania ran i urazów",
	},
	{
		Keywords:    []string{"higiena", "dezynfekcja", "sterylizacja", "czystość", "profilaktyka"},
		Categories:  []string{"higiena", "materialy_jednorazowe"},
		Weight:      0.7,
		Description: "Produkty higieniczne i do dezynfekcji",
	},
	{
		Keywords:    []string{"badanie", "diagnoza", "pomiar", "test", "kontrola", "monitoring"},
		Categories:  []string{"sprzet_diagnostyczny"},
		Weight:      0.8,
		Description: "Sprzęt do badań i diagnostyki medycznej",
	},
	{
		Keywords:    []string{"pierwsza pomoc", "apteczka", "nagły wypadek", "ratownictwo"},
		Categories:  []string{"apteczki", "opatrunki", "materialy_jednorazowe"},
		Weight:      0.9,
		Description: "Wyposażenie do udzielania pierwszej pomocy",
	},
	{
		Keywords:    []string{"kręgosłup", "stawy", "ortopedia", "rehabilitacja", "stabilizacja"},
		Categories:  []string{"ortopedia"},
		Weight:      0.8,
		Description: "Sprzęt ortopedyczny i stabilizujący",
	},
	{
		Keywords:    []string{"dentysta", "stomatolog", "zęby", "dental"},
		Categories:  []string{"narzedzia", "higiena"},
		Weight:      0.7,
		Description: "Narzędzia i materiały stomatologiczne",
	},
	{
		Keywords:    []string{"szpital", "klinika", "przychodnia", "gabinet"},
		Categories:  []string{"sprzet_diagnostyczny", "higiena", "wyposazenie"},
		Weight:      0.6,
		Description: "Podstawowe wyposażenie placówek medycznych",
	},
}

// RuleRepository serves the static recommendation rule set. It is read-only
// after construction.
type RuleRepository struct {
	rules []domain.RecommendationRule
}

// NewRuleRepository creates a repository backed by the built-in rule table.
func NewRuleRepository() *RuleRepository {
	return &RuleRepository{rules: defaultRules}
}

// Rules returns a deep copy of the rule list so callers cannot mutate the
// repository's state through the returned slice.
func (r *RuleRepository) Rules() []domain.RecommendationRule {
	out := make([]domain.RecommendationRule, len(r.rules))
	for i, rule := range r.rules {
		out[i] = domain.RecommendationRule{
			Keywords:    append([]string(nil), rule.Keywords...),
			Categories:  append([]string(nil), rule.Categories...),
			Weight:      rule.Weight,
			Description: rule.Description,
		}
	}
	return out
}
