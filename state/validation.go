package state

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func PathValidator(s string) error {
	_, err := os.Stat(path.Dir(s))
	if err != nil {
		return err
	}
	_, err = filepath.Abs(s)
	return err
}

func parseInt(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	return v, nil
}

func PositiveIntValidator(s string) error {
	v, err := parseInt(s)
	if err != nil {
		return err
	}
	if v <= 0 {
		return fmt.Errorf("%d must be positive", v)
	}
	return nil
}

func NonNegativeIntValidator(s string) error {
	v, err := parseInt(s)
	if err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("%d must not be negative", v)
	}
	return nil
}

func PercentValidator(s string) error {
	v, err := parseInt(s)
	if err != nil {
		return err
	}
	if v < 0 || v > 100 {
		return fmt.Errorf("%d is not a percentage", v)
	}
	return nil
}

func TopologyValidator(s string) error {
	_, err := ParseTopologyKind(s)
	return err
}

// BuildConfigValidator checks field constraints and the cross-field rules tags can't express
func BuildConfigValidator(cfg *BuildCfg) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if _, err := ParseTopologyKind(string(cfg.Topology)); err != nil {
		return err
	}
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, formatValidationError(err))
	}
	if cfg.Topology == Star && cfg.HubBudget() < 1 {
		return fmt.Errorf("%w: hub budget must be at least 1", ErrInvalidConfig)
	}
	for i, ev := range cfg.Events {
		if (ev.Node == 0) == (ev.Link == 0) {
			return fmt.Errorf("%w: event %d must target exactly one node or link", ErrInvalidConfig, i)
		}
		if ev.Time > cfg.Termination {
			return fmt.Errorf("%w: event %d at %d is after termination %d", ErrInvalidConfig, i, ev.Time, cfg.Termination)
		}
	}
	return nil
}

// formatValidationError reports the first failing field in a readable form
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}
	for _, e := range validationErrs {
		field := e.Namespace()
		param := e.Param()
		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "gt":
			return fmt.Errorf("%s: must be greater than %s", field, param)
		case "gte":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "lte":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "gtefield":
			return fmt.Errorf("%s: must not be below %s", field, param)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}
	return err
}
