package views

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"hms-portal-service/internal/app/models"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const (
	objectDirectory = "directory"

	actionList    = "list"
	actionReplace = "replace"
)

//go:embed rbac_model.conf
var rbacModelContent string

//go:embed rbac_policy.csv
var rbacPolicyContent string

// newEnforcer builds an in-memory enforcer from the embedded model and policy.
func newEnforcer(modelContent, policyContent string) (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelContent)
	if err != nil {
		return nil, fmt.Errorf("parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create casbin enforcer: %w", err)
	}

	rules, err := parsePolicy(policyContent)
	if err != nil {
		return nil, err
	}
	if len(rules) > 0 {
		if _, err := enforcer.AddPolicies(rules); err != nil {
			return nil, fmt.Errorf("load casbin policies: %w", err)
		}
	}

	return enforcer, nil
}

// parsePolicy reads "p, sub, obj, act" lines and returns the rules without the ptype.
func parsePolicy(content string) ([][]string, error) {
	reader := csv.NewReader(strings.NewReader(content))
	reader.TrimLeadingSpace = true
	reader.Comment = '#'
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse casbin policy: %w", err)
	}

	rules := make([][]string, 0, len(records))
	for _, record := range records {
		if len(record) != 4 || record[0] != "p" {
			return nil, fmt.Errorf("parse casbin policy: unexpected line %q", strings.Join(record, ", "))
		}
		rules = append(rules, record[1:])
	}
	return rules, nil
}

func viewProps(enforcer *casbin.Enforcer, role models.Role) (models.ViewProps, error) {
	canList, err := enforcer.Enforce(role.String(), objectDirectory, actionList)
	if err != nil {
		return models.ViewProps{}, err
	}
	canReplace, err := enforcer.Enforce(role.String(), objectDirectory, actionReplace)
	if err != nil {
		return models.ViewProps{}, err
	}
	return models.ViewProps{ReceivesAllUsers: canList, CanReplaceDirectory: canReplace}, nil
}
