package runstore

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/huangsam/cofail/schema"
)

// validateTableName validates that the table name is a safe SQL identifier.
// It ensures the name consists only of alphanumeric characters and underscores,
// starting with a letter or underscore, to prevent SQL injection.
func validateTableName(name string) error {
	if name == "" {
		return fmt.Errorf("table name cannot be empty")
	}
	matched, err := regexp.MatchString(`^[a-zA-Z_][a-zA-Z0-9_]*$`, name)
	if err != nil {
		return fmt.Errorf("error validating table name: %w", err)
	}
	if !matched {
		return fmt.Errorf("invalid table name: %s (must match pattern ^[a-zA-Z_][a-zA-Z0-9_]*$)", name)
	}
	return nil
}

// quoteTableName returns the properly quoted table name for the given backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.PostgreSQLBackend:
		return fmt.Sprintf("\"%s\"", name)
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // SQLite
		return fmt.Sprintf("\"%s\"", name)
	}
}

// storedRuleFrom flattens an association rule into its stored representation.
// Item sets collapse to comma-joined strings and an infinite conviction
// becomes NULL.
func storedRuleFrom(runID int64, rule schema.AssociationRule) schema.StoredRuleRecord {
	var conviction *float64
	if !math.IsInf(rule.Conviction, 1) {
		c := rule.Conviction
		conviction = &c
	}
	return schema.StoredRuleRecord{
		RunID:       runID,
		Antecedents: strings.Join(rule.Antecedents, ", "),
		Consequents: strings.Join(rule.Consequents, ", "),
		Support:     rule.Support,
		Confidence:  rule.Confidence,
		Lift:        rule.Lift,
		Leverage:    rule.Leverage,
		Conviction:  conviction,
	}
}
