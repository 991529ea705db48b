package filter

import (
	"net/url"
)

// Query parameter names recognized by the expense list pages.
const (
	ParamMealType  = "meal_type"
	ParamOrderType = "order_type"
	ParamCategory  = "category"
	ParamStartDate = "start_date"
	ParamEndDate   = "end_date"
	ParamTags      = "tags"
)

// noneSentinel is emitted by the upstream template layer for absent
// values and must be treated the same as an empty parameter.
const noneSentinel = "None"

// MaxActiveCount is the largest value ActiveCount can return: five
// scalar criteria plus the tag set.
const MaxActiveCount = 6

// Criteria holds the active filter selections for an expense list page.
// Scalar fields hold the raw query value, with "" meaning unset.
// Tags preserves insertion order; order may matter for resubmission.
type Criteria struct {
	MealType  string
	OrderType string
	Category  string
	StartDate string
	EndDate   string
	Tags      []string
}

// Decode builds Criteria from parsed query values. For scalar
// parameters the last occurrence wins; the tags parameter collects
// every occurrence, dropping empty values and the "None" sentinel.
func Decode(values url.Values) Criteria {
	c := Criteria{
		MealType:  lastScalar(values, ParamMealType),
		OrderType: lastScalar(values, ParamOrderType),
		Category:  lastScalar(values, ParamCategory),
		StartDate: lastScalar(values, ParamStartDate),
		EndDate:   lastScalar(values, ParamEndDate),
	}
	for _, tag := range values[ParamTags] {
		if tag == "" || tag == noneSentinel {
			continue
		}
		c.Tags = append(c.Tags, tag)
	}
	return c
}

// DecodeQuery parses a raw query string and decodes it. Pairs that
// fail to parse are skipped, matching net/url semantics; the result is
// never an error.
func DecodeQuery(rawQuery string) Criteria {
	values, _ := url.ParseQuery(rawQuery)
	return Decode(values)
}

// Encode is the inverse of Decode: unset scalars are omitted entirely
// rather than emitted as "None".
func (c Criteria) Encode() url.Values {
	values := url.Values{}
	for _, p := range []struct{ key, value string }{
		{ParamMealType, c.MealType},
		{ParamOrderType, c.OrderType},
		{ParamCategory, c.Category},
		{ParamStartDate, c.StartDate},
		{ParamEndDate, c.EndDate},
	} {
		if isSet(p.value) {
			values.Set(p.key, p.value)
		}
	}
	for _, tag := range c.Tags {
		if tag == "" || tag == noneSentinel {
			continue
		}
		values.Add(ParamTags, tag)
	}
	return values
}

// ActiveCount returns how many filter categories are set. Each scalar
// contributes at most 1 and the tag set contributes at most 1
// regardless of how many tags it holds.
func (c Criteria) ActiveCount() int {
	count := 0
	for _, v := range []string{c.MealType, c.OrderType, c.Category, c.StartDate, c.EndDate} {
		if isSet(v) {
			count++
		}
	}
	if len(c.Tags) > 0 {
		count++
	}
	return count
}

// Scalar returns the effective value for a scalar parameter name,
// normalizing the unset sentinels to "". Unknown names return "".
func (c Criteria) Scalar(name string) string {
	var raw string
	switch name {
	case ParamMealType:
		raw = c.MealType
	case ParamOrderType:
		raw = c.OrderType
	case ParamCategory:
		raw = c.Category
	case ParamStartDate:
		raw = c.StartDate
	case ParamEndDate:
		raw = c.EndDate
	default:
		return ""
	}
	if !isSet(raw) {
		return ""
	}
	return raw
}

func lastScalar(values url.Values, key string) string {
	occurrences := values[key]
	if len(occurrences) == 0 {
		return ""
	}
	return occurrences[len(occurrences)-1]
}

func isSet(value string) bool {
	return value != "" && value != noneSentinel
}
