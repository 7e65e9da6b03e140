// util/validation_util.go

package util

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	sec_errors "github.com/MichaelGetu-git/Security-Project/errors"
	"github.com/MichaelGetu-git/Security-Project/model"
)

type ValidationUtil struct {
	validate *validator.Validate
}

func NewValidationUtil() *ValidationUtil {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("securitylevel", func(fl validator.FieldLevel) bool {
		return model.SecurityLevel(fl.Field().String()).Valid()
	})
	return &ValidationUtil{validate: v}
}

// describe flattens validator errors into one message wrapped around sentinel.
func describe(sentinel error, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", sentinel, err)
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed on '%s'", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", sentinel, strings.Join(parts, "; "))
}

func (v *ValidationUtil) ValidatePolicy(policy model.Policy) error {
	if err := v.validate.Struct(policy); err != nil {
		return describe(sec_errors.ErrInvalidPolicyData, err)
	}
	rules := policy.Rules
	if rules.AllowedResources != nil && len(*rules.AllowedResources) > 0 && rules.Department == "" {
		return fmt.Errorf("%w: allowedResources requires a department", sec_errors.ErrInvalidPolicyData)
	}
	return nil
}

func (v *ValidationUtil) ValidateDocumentInput(input model.DocumentInput) error {
	if err := v.validate.Struct(input); err != nil {
		return describe(sec_errors.ErrInvalidDocumentData, err)
	}
	if input.Visibility == model.VisibilitySpecific && len(input.Departments) == 0 {
		return fmt.Errorf("%w: specific visibility needs at least one department", sec_errors.ErrInvalidDocumentData)
	}
	return nil
}

func (v *ValidationUtil) ValidateShare(input model.ShareInput) error {
	if err := v.validate.Struct(input); err != nil {
		return describe(sec_errors.ErrInvalidPermissionData, err)
	}
	return nil
}

func (v *ValidationUtil) ValidateResolution(input model.ResolveAccessRequestInput) error {
	if err := v.validate.Struct(input); err != nil {
		return describe(sec_errors.ErrInvalidAccessRequestData, err)
	}
	return nil
}

func (v *ValidationUtil) ValidateRole(role model.Role) error {
	if err := v.validate.Struct(role); err != nil {
		return describe(sec_errors.ErrInvalidRoleData, err)
	}
	return nil
}

func (v *ValidationUtil) ValidateSecurityLevelRequest(input model.SecurityLevelRequestInput) error {
	if err := v.validate.Struct(input); err != nil {
		return describe(sec_errors.ErrInvalidSecurityLevelRequest, err)
	}
	return nil
}

func (v *ValidationUtil) ValidateSecurityLevelResolution(input model.ResolveSecurityLevelRequestInput) error {
	if err := v.validate.Struct(input); err != nil {
		return describe(sec_errors.ErrInvalidSecurityLevelRequest, err)
	}
	return nil
}
