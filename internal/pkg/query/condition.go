package query

import "fmt"

// Condition represents a WHERE clause condition.
// Implementations must generate SQL fragments and parameter maps
// using Spanner's named parameter format (@paramName).
type Condition interface {
	// SQL returns the SQL fragment and parameter map for this condition.
	// paramIndex is used to generate unique parameter names (@p0, @p1, etc.)
	SQL(paramIndex int) (string, map[string]interface{})
}

type eqCondition struct {
	field string
	value interface{}
}

// Eq creates a WHERE condition for equality comparison.
// Example: Eq("half_product_id", id) generates "half_product_id = @p0"
func Eq(field string, value interface{}) Condition {
	return &eqCondition{field: field, value: value}
}

func (c *eqCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s = @%s", c.field, paramName), map[string]interface{}{paramName: c.value}
}

type inCondition struct {
	field  string
	values []string
}

// In creates a WHERE condition matching any of the given string values.
// Example: In("option_type", []string{"paper", "cover"}) generates "option_type IN UNNEST(@p0)"
func In(field string, values []string) Condition {
	return &inCondition{field: field, values: values}
}

func (c *inCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s IN UNNEST(@%s)", c.field, paramName), map[string]interface{}{paramName: c.values}
}

type ltCondition struct {
	field string
	value interface{}
}

// Lt creates a WHERE condition for a strict less-than comparison.
// Example: Lt("processed_at", cutoff) generates "processed_at < @p0"
func Lt(field string, value interface{}) Condition {
	return &ltCondition{field: field, value: value}
}

func (c *ltCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s < @%s", c.field, paramName), map[string]interface{}{paramName: c.value}
}
