// Package catalog содержит поиск и фильтрацию товаров каталога.
//
// Поводы и цвета не хранятся во внешнем API: они выводятся из названия
// и описания товара.
package catalog

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmeshcher/floran-storefront/internal/model"
)

// PriceRange задаёт ценовой диапазон фильтра.
type PriceRange string

const (
	PriceAll     PriceRange = ""
	PriceBudget  PriceRange = "budget"
	PriceMid     PriceRange = "mid"
	PricePremium PriceRange = "premium"
)

// Valid сообщает, известен ли диапазон.
func (r PriceRange) Valid() bool {
	switch r {
	case PriceAll, PriceBudget, PriceMid, PricePremium:
		return true
	}
	return false
}

var (
	budgetCeiling = decimal.NewFromInt(35)
	premiumFloor  = decimal.NewFromInt(70)
)

// Contains сообщает, попадает ли цена в диапазон.
// Бюджетный диапазон ниже 35, средний от 35 до 70 включительно, премиальный выше 70.
func (r PriceRange) Contains(price decimal.Decimal) bool {
	switch r {
	case PriceBudget:
		return price.LessThan(budgetCeiling)
	case PriceMid:
		return price.GreaterThanOrEqual(budgetCeiling) && price.LessThanOrEqual(premiumFloor)
	case PricePremium:
		return price.GreaterThan(premiumFloor)
	default:
		return true
	}
}

type tagRule struct {
	tag string
	re  *regexp.Regexp
}

// Occasions перечисляет поводы в порядке показа в фильтре.
var Occasions = []string{
	"Birthday", "Wedding", "Anniversary", "Sympathy",
	"Romance", "Get Well", "New Baby", "Mothers Day", "Congratulations",
}

// Colors перечисляет цвета в порядке показа в фильтре.
var Colors = []string{"Red", "Pink", "White", "Yellow", "Purple", "Orange", "Blue", "Mixed"}

var occasionRules = []tagRule{
	{"Birthday", regexp.MustCompile(`birthday|celebrat|festiv`)},
	{"Wedding", regexp.MustCompile(`wedding|bridal|bridesmaid|bride`)},
	{"Anniversary", regexp.MustCompile(`anniversary`)},
	{"Sympathy", regexp.MustCompile(`sympathy|condol|memorial`)},
	{"Romance", regexp.MustCompile(`romance|romantic|love|valentine`)},
	{"Congratulations", regexp.MustCompile(`congratulat|achievem`)},
	{"Get Well", regexp.MustCompile(`get well|recovery|wishes`)},
	{"New Baby", regexp.MustCompile(`baby|newborn`)},
	{"Mothers Day", regexp.MustCompile(`mother|mom`)},
}

var colorRules = []tagRule{
	{"Red", regexp.MustCompile(`\bred\b`)},
	{"Pink", regexp.MustCompile(`pink|blush|coral|peach|rose`)},
	{"White", regexp.MustCompile(`white|pure|ivory|snow`)},
	{"Yellow", regexp.MustCompile(`yellow|gold|sunshine|sunny`)},
	{"Purple", regexp.MustCompile(`purple|lavender|violet|royal`)},
	{"Orange", regexp.MustCompile(`orange`)},
	{"Blue", regexp.MustCompile(`blue`)},
	{"Mixed", regexp.MustCompile(`mixed|rainbow|assorted|tropical|exotic|colorful`)},
}

func matchTags(rules []tagRule, text string) []string {
	var tags []string
	for _, r := range rules {
		if r.re.MatchString(text) {
			tags = append(tags, r.tag)
		}
	}
	return tags
}

// OccasionTags выводит поводы из названия и описания товара.
func OccasionTags(p model.Product) []string {
	return matchTags(occasionRules, strings.ToLower(p.Name+" "+p.Description))
}

// ColorTags выводит цвета из названия товара.
func ColorTags(p model.Product) []string {
	return matchTags(colorRules, strings.ToLower(p.Name))
}

// Query описывает условия поиска. Пустые поля не ограничивают выборку.
type Query struct {
	Text       string
	Occasion   string
	Color      string
	PriceRange PriceRange
}

// Empty сообщает, что ни одно условие не задано.
func (q Query) Empty() bool {
	return strings.TrimSpace(q.Text) == "" && q.Occasion == "" && q.Color == "" && q.PriceRange == PriceAll
}

func hasTag(tags []string, want string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, want) {
			return true
		}
	}
	return false
}

func containsTag(tags []string, q string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

// matchesText ищет подстроку в названии, категории, описании и выведенных тегах.
func matchesText(p model.Product, q string) bool {
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Category), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		containsTag(OccasionTags(p), q) ||
		containsTag(ColorTags(p), q)
}

// Filter возвращает товары, удовлетворяющие всем условиям запроса, в исходном порядке.
func Filter(products []model.Product, q Query) []model.Product {
	text := strings.ToLower(strings.TrimSpace(q.Text))

	res := make([]model.Product, 0, len(products))
	for _, p := range products {
		if text != "" && !matchesText(p, text) {
			continue
		}
		if q.Occasion != "" && !hasTag(OccasionTags(p), q.Occasion) {
			continue
		}
		if q.Color != "" && !hasTag(ColorTags(p), q.Color) {
			continue
		}
		if !q.PriceRange.Contains(p.Price) {
			continue
		}
		res = append(res, p)
	}
	return res
}

// MaxSuggestions ограничивает число подсказок поиска.
const MaxSuggestions = 6

// Suggestions возвращает подсказки для строки поиска. Запросы короче двух символов подсказок не дают.
func Suggestions(products []model.Product, text string) []model.Product {
	q := strings.ToLower(strings.TrimSpace(text))
	if len([]rune(q)) < 2 {
		return []model.Product{}
	}

	res := make([]model.Product, 0, MaxSuggestions)
	for _, p := range products {
		if !matchesText(p, q) {
			continue
		}
		res = append(res, p)
		if len(res) == MaxSuggestions {
			break
		}
	}
	return res
}
